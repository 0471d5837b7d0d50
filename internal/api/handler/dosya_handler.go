package handler

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bugra455/stajuygulamasi-sub001/config"
	"github.com/bugra455/stajuygulamasi-sub001/pkg/response"
)

// DosyaHandler yüklenmiş belgeleri indirir
type DosyaHandler struct {
	cfg *config.Config
}

// NewDosyaHandler DosyaHandler oluşturur
func NewDosyaHandler(cfg *config.Config) *DosyaHandler {
	return &DosyaHandler{cfg: cfg}
}

// Indir yükleme dizinindeki dosyayı content-disposition ile akıtır.
// Yol parametresi yükleme dizini dışına çıkamaz.
// GET /api/v1/dosyalar/*yol
func (h *DosyaHandler) Indir(c *gin.Context) {
	istenen := strings.TrimPrefix(c.Param("yol"), "/")
	if istenen == "" {
		response.BadRequest(c, 10001, "dosya yolu eksik")
		return
	}

	kok, err := filepath.Abs(h.cfg.Upload.Dir)
	if err != nil {
		response.InternalError(c)
		return
	}
	hedef, err := filepath.Abs(filepath.Join(kok, filepath.Clean(istenen)))
	if err != nil || !strings.HasPrefix(hedef, kok+string(os.PathSeparator)) {
		response.Forbidden(c, 10007, "dosya yoluna erişilemez")
		return
	}

	if _, err := os.Stat(hedef); err != nil {
		response.NotFound(c, 10008, "dosya bulunamadı")
		return
	}

	c.FileAttachment(hedef, filepath.Base(hedef))
}
