package handler

import (
	"errors"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/bugra455/stajuygulamasi-sub001/config"
	"github.com/bugra455/stajuygulamasi-sub001/internal/dto"
	"github.com/bugra455/stajuygulamasi-sub001/internal/service"
	"github.com/bugra455/stajuygulamasi-sub001/pkg/response"
	"github.com/bugra455/stajuygulamasi-sub001/pkg/ws"
)

// YuklemeHandler toplu içe aktarma HTTP işleyicisi (admin)
type YuklemeHandler struct {
	cfg        *config.Config
	yuklemeSvc service.YuklemeService
	hub        *ws.Hub
}

// NewYuklemeHandler YuklemeHandler oluşturur
func NewYuklemeHandler(cfg *config.Config, yuklemeSvc service.YuklemeService, hub *ws.Hub) *YuklemeHandler {
	return &YuklemeHandler{cfg: cfg, yuklemeSvc: yuklemeSvc, hub: hub}
}

// Baslat xlsx dosyasını kuyruklar; işleme arka planda yürür
// POST /api/v1/admin/yuklemeler
func (h *YuklemeHandler) Baslat(c *gin.Context) {
	dosyaTipi := c.PostForm("dosya_tipi")

	fh, err := c.FormFile("dosya")
	if err != nil {
		response.BadRequest(c, 10001, "dosya alanı eksik")
		return
	}

	yol, err := dosyaKaydet(c, &h.cfg.Upload, fh, "import")
	if err != nil {
		switch {
		case errors.Is(err, errDosyaBuyuk):
			response.BadRequest(c, 10005, "dosya boyutu izin verilen sınırı aşıyor")
		case errors.Is(err, errDosyaUzanti):
			response.BadRequest(c, 10006, "dosya uzantısına izin verilmiyor")
		default:
			response.InternalError(c)
		}
		return
	}

	// Servis dosyayı diskten okuyacağı için tam yol geçilir
	result, err := h.yuklemeSvc.Baslat(c.Request.Context(), dosyaTipi, fh.Filename, filepath.Join(h.cfg.Upload.Dir, yol), fh.Size)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Created(c, result)
}

// Iptal devam eden yükleme işini iptal eder
// POST /api/v1/admin/yuklemeler/:id/iptal
func (h *YuklemeHandler) Iptal(c *gin.Context) {
	result, err := h.yuklemeSvc.Iptal(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, result)
}

// Get yükleme işi durumu ve hata listesi
// GET /api/v1/admin/yuklemeler/:id
func (h *YuklemeHandler) Get(c *gin.Context) {
	result, err := h.yuklemeSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, result)
}

// List yükleme işleri
// GET /api/v1/admin/yuklemeler
func (h *YuklemeHandler) List(c *gin.Context) {
	var req dto.PaginationRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "sorgu parametreleri geçersiz")
		return
	}

	list, total, err := h.yuklemeSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, list, total, req.Page, req.Limit())
}

// Izle ilerleme yayını için WebSocket bağlantısı açar
// GET /api/v1/admin/yuklemeler/izle
func (h *YuklemeHandler) Izle(c *gin.Context) {
	if h.hub == nil {
		response.Error(c, http.StatusServiceUnavailable, 70006, "ilerleme kanalı kullanılamıyor")
		return
	}
	if err := h.hub.Serve(c.Writer, c.Request); err != nil {
		// El sıkışma başarısızsa yanıt zaten yazılmıştır
		return
	}
}

func (h *YuklemeHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrYuklemeYok):
		response.NotFound(c, 70001, "yükleme işi bulunamadı")
	case errors.Is(err, service.ErrGecersizDosyaTipi):
		response.BadRequest(c, 70002, "geçersiz dosya tipi: ogrenci, danisman veya cap olmalıdır")
	case errors.Is(err, service.ErrGecersizUzanti):
		response.BadRequest(c, 70003, "yalnızca .xlsx dosyaları kabul edilir")
	case errors.Is(err, service.ErrDosyaCokBuyuk):
		response.BadRequest(c, 10005, "dosya boyutu izin verilen sınırı aşıyor")
	case errors.Is(err, service.ErrAktifYuklemeVar):
		response.Conflict(c, 70004, "aynı dosya tipinde devam eden bir yükleme var")
	case errors.Is(err, service.ErrYuklemeBitti):
		response.Conflict(c, 70005, "yükleme işi zaten sonuçlanmış")
	default:
		response.InternalError(c)
	}
}
