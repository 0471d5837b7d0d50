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

// MuafiyetHandler muafiyet başvurusu HTTP işleyicisi
type MuafiyetHandler struct {
	cfg         *config.Config
	muafiyetSvc service.MuafiyetService
}

// NewMuafiyetHandler MuafiyetHandler oluşturur
func NewMuafiyetHandler(cfg *config.Config, muafiyetSvc service.MuafiyetService) *MuafiyetHandler {
	return &MuafiyetHandler{cfg: cfg, muafiyetSvc: muafiyetSvc}
}

// Create muafiyet başvurusu; kanıt belgesi multipart "belge" alanında gelir
// POST /api/v1/ogrenci/muafiyetler
func (h *MuafiyetHandler) Create(c *gin.Context) {
	ogrenciID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateMuafiyetRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, 10001, "form alanları geçersiz")
		return
	}

	var belgeYolu string
	if fh, err := c.FormFile("belge"); err == nil {
		yol, err := dosyaKaydet(c, &h.cfg.Upload, fh, "muafiyet")
		if err != nil {
			switch {
			case errors.Is(err, errDosyaBuyuk):
				response.BadRequest(c, 10005, "belge: dosya boyutu izin verilen sınırı aşıyor")
			case errors.Is(err, errDosyaUzanti):
				response.BadRequest(c, 10006, "belge: dosya uzantısına izin verilmiyor")
			default:
				response.InternalError(c)
			}
			return
		}
		belgeYolu = yol
	}

	result, err := h.muafiyetSvc.Create(c.Request.Context(), ogrenciID, &req, belgeYolu)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Created(c, result)
}

// Get muafiyet başvurusu detayı
// GET /api/v1/muafiyetler/:id
func (h *MuafiyetHandler) Get(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	rol, ok := MustGetRole(c)
	if !ok {
		return
	}

	result, err := h.muafiyetSvc.GetByID(c.Request.Context(), userID, rol, c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, result)
}

// ListMine öğrencinin muafiyet başvuruları
// GET /api/v1/ogrenci/muafiyetler
func (h *MuafiyetHandler) ListMine(c *gin.Context) {
	ogrenciID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.PaginationRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "sorgu parametreleri geçersiz")
		return
	}

	list, total, err := h.muafiyetSvc.ListByOgrenci(c.Request.Context(), ogrenciID, &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, list, total, req.Page, req.Limit())
}

// ListDanisman danışmana atanan muafiyet başvuruları
// GET /api/v1/danisman/muafiyetler
func (h *MuafiyetHandler) ListDanisman(c *gin.Context) {
	danismanID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.PaginationRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "sorgu parametreleri geçersiz")
		return
	}

	list, total, err := h.muafiyetSvc.ListForDanisman(c.Request.Context(), danismanID, c.Query("durum"), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, list, total, req.Page, req.Limit())
}

// Karar danışman onay/red kararı
// POST /api/v1/danisman/muafiyetler/:id/karar
func (h *MuafiyetHandler) Karar(c *gin.Context) {
	danismanID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.KararRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "istek gövdesi geçersiz")
		return
	}

	result, err := h.muafiyetSvc.DanismanKarar(c.Request.Context(), danismanID, c.Param("id"), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, result)
}

// Iptal öğrenci muafiyet başvurusunu geri çeker
// POST /api/v1/ogrenci/muafiyetler/:id/iptal
func (h *MuafiyetHandler) Iptal(c *gin.Context) {
	ogrenciID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.IptalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "istek gövdesi geçersiz")
		return
	}

	result, err := h.muafiyetSvc.Iptal(c.Request.Context(), ogrenciID, c.Param("id"), req.Sebep)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, result)
}

// Delete muafiyet kaydını siler (admin)
// DELETE /api/v1/admin/muafiyetler/:id
func (h *MuafiyetHandler) Delete(c *gin.Context) {
	if err := h.muafiyetSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *MuafiyetHandler) handleError(c *gin.Context, err error) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		response.ValidationError(c, 10001, ve.Fields)
	case errors.Is(err, service.ErrMuafiyetYok):
		response.NotFound(c, 40001, "muafiyet başvurusu bulunamadı")
	case errors.Is(err, service.ErrMuafiyetYetkisiz):
		response.Forbidden(c, 40002, "bu muafiyet başvurusu üzerinde işlem yetkiniz yok")
	case errors.Is(err, service.ErrRedSebebiZorunlu):
		response.BadRequest(c, 40003, "red kararında sebep zorunludur")
	case errors.Is(err, service.ErrDanismanYok):
		response.BadRequest(c, 40004, "öğrenci için tanımlı danışman bulunamadı")
	case errors.Is(err, service.ErrCapKaydiYok):
		response.BadRequest(c, 40005, "seçilen ÇAP kaydı bulunamadı")
	case errors.Is(err, model.ErrGecersizGecis):
		response.Forbidden(c, 40006, "başvuru bu durumda bu işleme izin vermiyor")
	default:
		response.InternalError(c)
	}
}
