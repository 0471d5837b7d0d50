package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/bugra455/stajuygulamasi-sub001/config"
	"github.com/bugra455/stajuygulamasi-sub001/internal/dto"
	"github.com/bugra455/stajuygulamasi-sub001/internal/model"
	"github.com/bugra455/stajuygulamasi-sub001/internal/service"
	pkgerrors "github.com/bugra455/stajuygulamasi-sub001/pkg/errors"
	"github.com/bugra455/stajuygulamasi-sub001/pkg/response"
)

// BasvuruHandler staj başvurusu HTTP işleyicisi
type BasvuruHandler struct {
	cfg        *config.Config
	basvuruSvc service.BasvuruService
}

// NewBasvuruHandler BasvuruHandler oluşturur
func NewBasvuruHandler(cfg *config.Config, basvuruSvc service.BasvuruService) *BasvuruHandler {
	return &BasvuruHandler{cfg: cfg, basvuruSvc: basvuruSvc}
}

// Create yeni staj başvurusu; form alanları ve üç PDF multipart ile gelir
// POST /api/v1/ogrenci/basvurular
func (h *BasvuruHandler) Create(c *gin.Context) {
	ogrenciID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateBasvuruRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, 10001, "form alanları geçersiz")
		return
	}

	var dosyalar service.BasvuruDosyalari
	for _, d := range []struct {
		alan  string
		hedef *string
	}{
		{"transkript", &dosyalar.Transkript},
		{"hizmet_dokumu", &dosyalar.HizmetDokumu},
		{"sigorta_belgesi", &dosyalar.Sigorta},
	} {
		fh, err := c.FormFile(d.alan)
		if err != nil {
			continue // zorunluluk denetimi servis katmanında
		}
		yol, err := dosyaKaydet(c, &h.cfg.Upload, fh, "basvuru")
		if err != nil {
			h.dosyaHatasi(c, d.alan, err)
			return
		}
		*d.hedef = yol
	}

	result, err := h.basvuruSvc.Create(c.Request.Context(), ogrenciID, &req, dosyalar)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Created(c, result)
}

// Get başvuru detayı; erişim rolü servis katmanında denetlenir
// GET /api/v1/basvurular/:id
func (h *BasvuruHandler) Get(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	rol, ok := MustGetRole(c)
	if !ok {
		return
	}

	result, err := h.basvuruSvc.GetByID(c.Request.Context(), userID, rol, c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, result)
}

// ListMine öğrencinin kendi başvuruları
// GET /api/v1/ogrenci/basvurular
func (h *BasvuruHandler) ListMine(c *gin.Context) {
	ogrenciID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.BasvuruListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "sorgu parametreleri geçersiz")
		return
	}

	list, total, err := h.basvuruSvc.ListByOgrenci(c.Request.Context(), ogrenciID, &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, list, total, req.Page, req.Limit())
}

// ListDanisman danışmana atanan başvurular
// GET /api/v1/danisman/basvurular
func (h *BasvuruHandler) ListDanisman(c *gin.Context) {
	danismanID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.BasvuruListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "sorgu parametreleri geçersiz")
		return
	}

	list, total, err := h.basvuruSvc.ListForDanisman(c.Request.Context(), danismanID, &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, list, total, req.Page, req.Limit())
}

// ListKariyerMerkezi kariyer merkezi onay kuyruğu
// GET /api/v1/kariyer-merkezi/basvurular
func (h *BasvuruHandler) ListKariyerMerkezi(c *gin.Context) {
	var req dto.BasvuruListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "sorgu parametreleri geçersiz")
		return
	}

	list, total, err := h.basvuruSvc.ListForKariyerMerkezi(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, list, total, req.Page, req.Limit())
}

// DanismanKarar danışman onay/red kararı
// POST /api/v1/danisman/basvurular/:id/karar
func (h *BasvuruHandler) DanismanKarar(c *gin.Context) {
	danismanID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.KararRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "istek gövdesi geçersiz")
		return
	}

	result, err := h.basvuruSvc.DanismanKarar(c.Request.Context(), danismanID, c.Param("id"), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, result)
}

// KariyerMerkeziKarar kariyer merkezi onay/red kararı
// POST /api/v1/kariyer-merkezi/basvurular/:id/karar
func (h *BasvuruHandler) KariyerMerkeziKarar(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.KararRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "istek gövdesi geçersiz")
		return
	}

	result, err := h.basvuruSvc.KariyerMerkeziKarar(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, result)
}

// Iptal öğrenci başvurusunu geri çeker
// POST /api/v1/ogrenci/basvurular/:id/iptal
func (h *BasvuruHandler) Iptal(c *gin.Context) {
	ogrenciID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.IptalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "istek gövdesi geçersiz")
		return
	}

	result, err := h.basvuruSvc.Iptal(c.Request.Context(), ogrenciID, c.Param("id"), req.Sebep)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, result)
}

// TarihDuzelt onay sonrası tarih düzeltmesi (5 günlük pencere)
// PUT /api/v1/ogrenci/basvurular/:id/tarih
func (h *BasvuruHandler) TarihDuzelt(c *gin.Context) {
	ogrenciID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.TarihDuzeltmeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "istek gövdesi geçersiz")
		return
	}

	result, err := h.basvuruSvc.TarihDuzelt(c.Request.Context(), ogrenciID, c.Param("id"), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, result)
}

// Delete başvuru kaydını siler (admin)
// DELETE /api/v1/admin/basvurular/:id
func (h *BasvuruHandler) Delete(c *gin.Context) {
	if err := h.basvuruSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *BasvuruHandler) dosyaHatasi(c *gin.Context, alan string, err error) {
	switch {
	case errors.Is(err, errDosyaBuyuk):
		response.BadRequest(c, 10005, alan+": dosya boyutu izin verilen sınırı aşıyor")
	case errors.Is(err, errDosyaUzanti):
		response.BadRequest(c, 10006, alan+": dosya uzantısına izin verilmiyor")
	default:
		response.InternalError(c)
	}
}

func (h *BasvuruHandler) handleError(c *gin.Context, err error) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		response.ValidationError(c, 10001, ve.Fields)
	case errors.Is(err, service.ErrBasvuruYok):
		response.NotFound(c, 30001, "staj başvurusu bulunamadı")
	case errors.Is(err, service.ErrBasvuruYetkisiz):
		response.Forbidden(c, 30002, "bu başvuru üzerinde işlem yetkiniz yok")
	case errors.Is(err, service.ErrRedSebebiZorunlu):
		response.BadRequest(c, 30003, "red kararında sebep zorunludur")
	case errors.Is(err, service.ErrDuzeltmePenceresiKapandi):
		response.Forbidden(c, 30004, "tarih düzeltme süresi doldu")
	case errors.Is(err, service.ErrDanismanYok):
		response.BadRequest(c, 30005, "öğrenci için tanımlı danışman bulunamadı")
	case errors.Is(err, service.ErrCapKaydiYok):
		response.BadRequest(c, 30006, "seçilen ÇAP kaydı bulunamadı")
	case errors.Is(err, model.ErrGecersizGecis):
		response.Forbidden(c, 30007, "başvuru bu durumda bu işleme izin vermiyor")
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Conflict(c, 30008, "kayıt başka bir işlem tarafından değiştirildi, lütfen yenileyin")
	default:
		response.InternalError(c)
	}
}
