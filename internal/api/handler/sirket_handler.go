package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bugra455/stajuygulamasi-sub001/internal/dto"
	"github.com/bugra455/stajuygulamasi-sub001/internal/model"
	"github.com/bugra455/stajuygulamasi-sub001/internal/service"
	pkgerrors "github.com/bugra455/stajuygulamasi-sub001/pkg/errors"
	"github.com/bugra455/stajuygulamasi-sub001/pkg/response"
)

// SirketHandler şirket yetkilisi OTP uçları; hesap ya da oturum gerektirmez
type SirketHandler struct {
	sirketSvc service.SirketService
}

// NewSirketHandler SirketHandler oluşturur
func NewSirketHandler(sirketSvc service.SirketService) *SirketHandler {
	return &SirketHandler{sirketSvc: sirketSvc}
}

// Giris e-posta + kod ile kaydı görüntüler; kodu tüketmez
// POST /api/v1/sirket/giris
func (h *SirketHandler) Giris(c *gin.Context) {
	var req dto.SirketGirisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "istek gövdesi geçersiz")
		return
	}

	result, err := h.sirketSvc.Giris(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, result)
}

// Karar onay/red kararı; başarılı karar kodu tüketir
// POST /api/v1/sirket/karar
func (h *SirketHandler) Karar(c *gin.Context) {
	var req dto.SirketKararRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "istek gövdesi geçersiz")
		return
	}

	result, err := h.sirketSvc.Karar(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, result)
}

func (h *SirketHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrOTPDevreDisi):
		response.Error(c, http.StatusServiceUnavailable, 60001, "şirket girişi şu anda kullanılamıyor")
	case errors.Is(err, service.ErrGecersizKod):
		// E-posta mı kod mu yanlış söylenmez
		response.Unauthorized(c, 60002, "e-posta veya kod geçersiz ya da süresi dolmuş")
	case errors.Is(err, service.ErrOTPKaydiBozuk):
		response.NotFound(c, 60003, "kodun bağlı olduğu kayıt bulunamadı")
	case errors.Is(err, service.ErrRedSebebiZorunlu):
		response.BadRequest(c, 60004, "red kararında sebep zorunludur")
	case errors.Is(err, model.ErrGecersizGecis):
		response.Forbidden(c, 60005, "kayıt bu durumda bu işleme izin vermiyor")
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Conflict(c, 60006, "kayıt başka bir işlem tarafından değiştirildi, lütfen yenileyin")
	default:
		response.InternalError(c)
	}
}
