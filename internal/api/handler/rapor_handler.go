package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bugra455/stajuygulamasi-sub001/internal/service"
	"github.com/bugra455/stajuygulamasi-sub001/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// RaporHandler takvim ve rapor dışa aktarma HTTP işleyicisi
type RaporHandler struct {
	takvimSvc service.TakvimService
}

// NewRaporHandler RaporHandler oluşturur
func NewRaporHandler(takvimSvc service.TakvimService) *RaporHandler {
	return &RaporHandler{takvimSvc: takvimSvc}
}

// Takvim danışmanın onaylanmış stajlarını ICS olarak indirir
// GET /api/v1/danisman/takvim.ics
func (h *RaporHandler) Takvim(c *gin.Context) {
	danismanID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	ics, err := h.takvimSvc.DanismanTakvimi(c.Request.Context(), danismanID)
	if err != nil {
		response.InternalError(c)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="staj-takvimi.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(ics))
}

// DurumRaporu verilen durumdaki başvuruları xlsx olarak indirir
// GET /api/v1/kariyer-merkezi/rapor?durum=ONAYLANDI
func (h *RaporHandler) DurumRaporu(c *gin.Context) {
	durum := c.Query("durum")
	if durum == "" {
		response.BadRequest(c, 10001, "durum parametresi zorunludur")
		return
	}

	buf, err := h.takvimSvc.DurumRaporu(c.Request.Context(), durum)
	if err != nil {
		response.InternalError(c)
		return
	}

	dosyaAdi := "staj-raporu-" + time.Now().Format("2006-01-02") + ".xlsx"
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", `attachment; filename="`+dosyaAdi+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf)
}
