package handler

import (
	"errors"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bugra455/stajuygulamasi-sub001/config"
)

var (
	errDosyaBuyuk  = errors.New("dosya boyutu izin verilen sınırı aşıyor")
	errDosyaUzanti = errors.New("dosya uzantısına izin verilmiyor")
)

// dosyaKaydet multipart dosyayı yükleme dizinine benzersiz adla yazar ve
// yükleme dizinine göreli yolu döner; kayıtlar bu göreli yolu saklar.
// Orijinal ad yalnızca uzantı için kullanılır, yol olarak asla güvenilmez.
func dosyaKaydet(c *gin.Context, cfg *config.UploadConfig, fh *multipart.FileHeader, altDizin string) (string, error) {
	if cfg.MaxBytes > 0 && fh.Size > cfg.MaxBytes {
		return "", errDosyaBuyuk
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if len(cfg.AllowedExtensions) > 0 {
		izinli := false
		for _, e := range cfg.AllowedExtensions {
			if strings.EqualFold(e, ext) {
				izinli = true
				break
			}
		}
		if !izinli {
			return "", errDosyaUzanti
		}
	}

	goreli := filepath.Join(altDizin, uuid.New().String()+ext)
	if err := c.SaveUploadedFile(fh, filepath.Join(cfg.Dir, goreli)); err != nil {
		return "", err
	}
	return goreli, nil
}
