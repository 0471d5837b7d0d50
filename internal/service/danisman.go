package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/bugra455/stajuygulamasi-sub001/internal/model"
	"github.com/bugra455/stajuygulamasi-sub001/internal/repository"
)

var (
	ErrDanismanYok = errors.New("öğrenci için tanımlı danışman bulunamadı")
	ErrCapKaydiYok = errors.New("seçilen ÇAP kaydı bulunamadı")
)

// danismanCoz bildirim yapılacak danışman e-postasını sıralı arar:
// ÇAP kaydındaki danışman → öğrencinin birincil danışmanı → hata.
// capID nil/boş ise ÇAP seçilmemiş sayılır; ÇAP kaydı var ama danışmanı
// yoksa birincil danışmana düşülür.
func danismanCoz(ctx context.Context, repo *repository.Repository, ogrenci *model.Kullanici, capID *string) (string, error) {
	if capID != nil && *capID != "" {
		cap, err := repo.Cap.GetByIDForOgrenci(ctx, *capID, ogrenci.KullaniciID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return "", ErrCapKaydiYok
			}
			return "", err
		}
		if cap.Danisman != nil && cap.Danisman.Eposta != "" {
			return cap.Danisman.Eposta, nil
		}
	}

	if ogrenci.Danisman != nil && ogrenci.Danisman.Eposta != "" {
		return ogrenci.Danisman.Eposta, nil
	}
	if ogrenci.DanismanID != nil {
		danisman, err := repo.Kullanici.GetByID(ctx, *ogrenci.DanismanID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return "", ErrDanismanYok
			}
			return "", err
		}
		if danisman.Eposta != "" {
			return danisman.Eposta, nil
		}
	}

	return "", ErrDanismanYok
}
