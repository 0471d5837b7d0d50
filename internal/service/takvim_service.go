package service

import (
	"context"
	"errors"
	"fmt"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/bugra455/stajuygulamasi-sub001/internal/repository"
)

// raporSatirSiniri tek seferde dışa aktarılacak en çok başvuru sayısı
const raporSatirSiniri = 10000

// TakvimService danışman takvim beslemesi ve kariyer merkezi dökümü arayüzü
type TakvimService interface {
	// DanismanTakvimi danışmanın onaylanmış stajlarını ICS biçiminde döner
	DanismanTakvimi(ctx context.Context, danismanID string) (string, error)
	// DurumRaporu verilen durumdaki başvuruları xlsx dökümü olarak döner
	DurumRaporu(ctx context.Context, durum string) ([]byte, error)
}

type takvimService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTakvimService TakvimService örneği oluşturur
func NewTakvimService(repo *repository.Repository, logger *zap.Logger) TakvimService {
	return &takvimService{repo: repo, logger: logger}
}

func (s *takvimService) DanismanTakvimi(ctx context.Context, danismanID string) (string, error) {
	danisman, err := s.repo.Kullanici.GetByID(ctx, danismanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrKullaniciYok
		}
		return "", err
	}

	basvurular, err := s.repo.Basvuru.ListOnaylananByDanismanEposta(ctx, danisman.Eposta)
	if err != nil {
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//staj-takip//danisman-takvimi//TR")

	for i := range basvurular {
		b := &basvurular[i]
		event := cal.AddEvent(b.BasvuruID)
		event.SetAllDayStartAt(b.BaslangicTarihi)
		// DTEND ICS kuralı gereği bitişi kapsamaz; bir gün eklenir
		event.SetAllDayEndAt(b.BitisTarihi.AddDate(0, 0, 1))
		event.SetLocation(b.KurumAdi)

		ozet := b.KurumAdi
		if b.Ogrenci != nil {
			ozet = fmt.Sprintf("%s - %s", b.Ogrenci.AdSoyad, b.KurumAdi)
			event.SetDescription(fmt.Sprintf("Öğrenci: %s (%s)\nStaj tipi: %s\nToplam gün: %d",
				b.Ogrenci.AdSoyad, b.Ogrenci.OgrenciNo, b.StajTipi, b.ToplamGun))
		}
		event.SetSummary(ozet)
	}

	return cal.Serialize(), nil
}

func (s *takvimService) DurumRaporu(ctx context.Context, durum string) ([]byte, error) {
	basvurular, _, err := s.repo.Basvuru.ListByDurum(ctx, durum, 0, raporSatirSiniri)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sayfa := f.GetSheetName(0)
	basliklar := []string{"Öğrenci No", "Ad Soyad", "Kurum", "Staj Tipi",
		"Başlangıç", "Bitiş", "Toplam Gün", "Durum", "Danışman"}
	for i, baslik := range basliklar {
		hucre, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sayfa, hucre, baslik); err != nil {
			return nil, err
		}
	}

	for i := range basvurular {
		b := &basvurular[i]
		satir := i + 2

		ogrenciNo, adSoyad := "", ""
		if b.Ogrenci != nil {
			ogrenciNo = b.Ogrenci.OgrenciNo
			adSoyad = b.Ogrenci.AdSoyad
		}
		degerler := []interface{}{
			ogrenciNo, adSoyad, b.KurumAdi, b.StajTipi,
			b.BaslangicTarihi.Format(tarihBicimi),
			b.BitisTarihi.Format(tarihBicimi),
			b.ToplamGun, b.OnayDurumu, b.DanismanEposta,
		}
		for j, deger := range degerler {
			hucre, _ := excelize.CoordinatesToCellName(j+1, satir)
			if err := f.SetCellValue(sayfa, hucre, deger); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("rapor dosyası yazılamadı", zap.Error(err))
		return nil, err
	}
	return buf.Bytes(), nil
}
