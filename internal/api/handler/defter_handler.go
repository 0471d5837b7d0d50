package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/bugra455/stajuygulamasi-sub001/config"
	"github.com/bugra455/stajuygulamasi-sub001/internal/dto"
	"github.com/bugra455/stajuygulamasi-sub001/internal/model"
	"github.com/bugra455/stajuygulamasi-sub001/internal/service"
	"github.com/bugra455/stajuygulamasi-sub001/pkg/response"
)

// DefterHandler staj defteri HTTP işleyicisi
type DefterHandler struct {
	cfg       *config.Config
	defterSvc service.DefterService
}

// NewDefterHandler DefterHandler oluşturur
func NewDefterHandler(cfg *config.Config, defterSvc service.DefterService) *DefterHandler {
	return &DefterHandler{cfg: cfg, defterSvc: defterSvc}
}

// Yukle onaylanmış başvuru için defter yükler; red sonrası yeniden yükleme de buradan
// POST /api/v1/ogrenci/basvurular/:id/defter
func (h *DefterHandler) Yukle(c *gin.Context) {
	ogrenciID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	fh, err := c.FormFile("defter")
	if err != nil {
		response.BadRequest(c, 10001, "defter dosyası eksik")
		return
	}

	yol, err := dosyaKaydet(c, &h.cfg.Upload, fh, "defter")
	if err != nil {
		switch {
		case errors.Is(err, errDosyaBuyuk):
			response.BadRequest(c, 10005, "defter: dosya boyutu izin verilen sınırı aşıyor")
		case errors.Is(err, errDosyaUzanti):
			response.BadRequest(c, 10006, "defter: dosya uzantısına izin verilmiyor")
		default:
			response.InternalError(c)
		}
		return
	}

	result, err := h.defterSvc.Yukle(c.Request.Context(), ogrenciID, c.Param("id"), yol)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Created(c, result)
}

// Get defter detayı
// GET /api/v1/defterler/:id
func (h *DefterHandler) Get(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	rol, ok := MustGetRole(c)
	if !ok {
		return
	}

	result, err := h.defterSvc.GetByID(c.Request.Context(), userID, rol, c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, result)
}

// GetByBasvuru öğrencinin başvurusuna bağlı defter
// GET /api/v1/ogrenci/basvurular/:id/defter
func (h *DefterHandler) GetByBasvuru(c *gin.Context) {
	ogrenciID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.defterSvc.GetByBasvuru(c.Request.Context(), ogrenciID, c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, result)
}

// DanismanKarar danışman defter kararı; şirket onayından sonra sırası gelir
// POST /api/v1/danisman/defterler/:id/karar
func (h *DefterHandler) DanismanKarar(c *gin.Context) {
	danismanID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.KararRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "istek gövdesi geçersiz")
		return
	}

	result, err := h.defterSvc.DanismanKarar(c.Request.Context(), danismanID, c.Param("id"), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, result)
}

// ListDanisman danışmanın onayını bekleyen ya da süzülen defterler
// GET /api/v1/danisman/defterler
func (h *DefterHandler) ListDanisman(c *gin.Context) {
	danismanID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.PaginationRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "sorgu parametreleri geçersiz")
		return
	}

	list, total, err := h.defterSvc.ListForDanisman(c.Request.Context(), danismanID, c.Query("durum"), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, list, total, req.Page, req.Limit())
}

func (h *DefterHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDefterYok):
		response.NotFound(c, 50001, "staj defteri bulunamadı")
	case errors.Is(err, service.ErrDefterYetkisiz):
		response.Forbidden(c, 50002, "bu defter üzerinde işlem yetkiniz yok")
	case errors.Is(err, service.ErrBasvuruOnaylanmamis):
		response.Conflict(c, 50003, "defter yalnızca onaylanmış başvuru için yüklenebilir")
	case errors.Is(err, service.ErrDefterYenidenYukleme):
		response.Conflict(c, 50004, "defter yalnızca reddedilmiş durumdayken yeniden yüklenebilir")
	case errors.Is(err, service.ErrRedSebebiZorunlu):
		response.BadRequest(c, 50005, "red kararında sebep zorunludur")
	case errors.Is(err, service.ErrBasvuruYok):
		response.NotFound(c, 30001, "staj başvurusu bulunamadı")
	case errors.Is(err, model.ErrGecersizGecis):
		response.Forbidden(c, 50006, "defter bu durumda bu işleme izin vermiyor")
	default:
		response.InternalError(c)
	}
}
