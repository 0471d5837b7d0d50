package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/bugra455/stajuygulamasi-sub001/internal/dto"
	"github.com/bugra455/stajuygulamasi-sub001/internal/service"
	"github.com/bugra455/stajuygulamasi-sub001/pkg/response"
)

// DenetimHandler denetim günlüğü HTTP işleyicisi (admin)
type DenetimHandler struct {
	denetimSvc service.DenetimService
}

// NewDenetimHandler DenetimHandler oluşturur
func NewDenetimHandler(denetimSvc service.DenetimService) *DenetimHandler {
	return &DenetimHandler{denetimSvc: denetimSvc}
}

// List denetim günlüğü; hedef verilirse tek kaydın geçmişi döner
// GET /api/v1/admin/islem-kayitlari?hedef=<id>
func (h *DenetimHandler) List(c *gin.Context) {
	if hedef := c.Query("hedef"); hedef != "" {
		kayitlar, err := h.denetimSvc.ListByHedef(c.Request.Context(), hedef)
		if err != nil {
			response.InternalError(c)
			return
		}
		response.OK(c, kayitlar)
		return
	}

	var req dto.PaginationRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "sorgu parametreleri geçersiz")
		return
	}

	kayitlar, total, err := h.denetimSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, kayitlar, total, req.Page, req.Limit())
}
