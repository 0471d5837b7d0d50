package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/bugra455/stajuygulamasi-sub001/config"
	"github.com/bugra455/stajuygulamasi-sub001/internal/dto"
	"github.com/bugra455/stajuygulamasi-sub001/internal/model"
	"github.com/bugra455/stajuygulamasi-sub001/internal/repository"
	"github.com/bugra455/stajuygulamasi-sub001/pkg/mailer"
	"github.com/bugra455/stajuygulamasi-sub001/pkg/redis"
)

// ── Staj defteri modülü iş hataları ──

var (
	ErrDefterYok            = errors.New("staj defteri bulunamadı")
	ErrDefterYetkisiz       = errors.New("bu defter üzerinde işlem yetkiniz yok")
	ErrBasvuruOnaylanmamis  = errors.New("defter yalnızca onaylanmış başvuru için yüklenebilir")
	ErrDefterYenidenYukleme = errors.New("defter yalnızca reddedilmiş durumdayken yeniden yüklenebilir")
)

// DefterService staj defteri iş arayüzü
type DefterService interface {
	Yukle(ctx context.Context, ogrenciID, basvuruID, dosyaYolu string) (*dto.DefterResponse, error)
	GetByID(ctx context.Context, callerID, callerRol, defterID string) (*dto.DefterResponse, error)
	GetByBasvuru(ctx context.Context, ogrenciID, basvuruID string) (*dto.DefterResponse, error)
	DanismanKarar(ctx context.Context, danismanID, defterID string, req *dto.KararRequest) (*dto.DefterResponse, error)
	ListForDanisman(ctx context.Context, danismanID string, durum string, req *dto.PaginationRequest) ([]dto.DefterResponse, int64, error)
}

type defterService struct {
	cfg    *config.Config
	repo   *repository.Repository
	otp    OTPStore
	posta  mailer.Mailer
	logger *zap.Logger
}

// NewDefterService DefterService örneği oluşturur
func NewDefterService(cfg *config.Config, repo *repository.Repository, otp OTPStore, posta mailer.Mailer, logger *zap.Logger) DefterService {
	return &defterService{cfg: cfg, repo: repo, otp: otp, posta: posta, logger: logger}
}

// Yukle ilk yüklemede defter kaydı açar; red durumlarında dosyayı yeniler.
// Üst başvuru öğrenciye ait ve toplu durumu ONAYLANDI olmalıdır.
func (s *defterService) Yukle(ctx context.Context, ogrenciID, basvuruID, dosyaYolu string) (*dto.DefterResponse, error) {
	basvuru, err := s.repo.Basvuru.GetByID(ctx, basvuruID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBasvuruYok
		}
		return nil, err
	}
	if basvuru.OgrenciID != ogrenciID {
		return nil, ErrDefterYetkisiz
	}
	if basvuru.OnayDurumu != model.DurumOnaylandi {
		return nil, ErrBasvuruOnaylanmamis
	}

	defter, err := s.repo.Defter.GetByBasvuruID(ctx, basvuruID)
	switch {
	case err == nil:
		// Mevcut kayıt: yalnızca red durumlarında yeniden yükleme
		if !model.DefterRedDurumu(defter.Durum) {
			return nil, ErrDefterYenidenYukleme
		}
		defter.DosyaYolu = dosyaYolu
		defter.Durum = model.DefterBeklemede
		defter.SirketOnay = model.KararBekliyor
		defter.DanismanOnay = model.KararBekliyor
		defter.RedSebebi = ""
		if err := s.repo.Defter.Update(ctx, defter); err != nil {
			s.logger.Error("defter güncellenemedi", zap.String("id", defter.DefterID), zap.Error(err))
			return nil, err
		}

	case errors.Is(err, gorm.ErrRecordNotFound):
		defter = &model.StajDefteri{
			BasvuruID: basvuruID,
			DosyaYolu: dosyaYolu,
			Durum:     model.DefterBeklemede,
		}
		if err := s.repo.Defter.Create(ctx, defter); err != nil {
			s.logger.Error("defter oluşturulamadı", zap.String("basvuru_id", basvuruID), zap.Error(err))
			return nil, err
		}

	default:
		return nil, err
	}

	kayit := &model.IslemKaydi{
		KullaniciID: &ogrenciID,
		IslemTipi:   model.IslemOlusturma,
		KayitTipi:   model.KayitStajDefteri,
		HedefID:     &defter.DefterID,
		Aciklama:    "staj defteri yüklendi",
	}
	if err := s.repo.IslemKaydi.Create(ctx, kayit); err != nil {
		s.logger.Warn("defter işlem kaydı yazılamadı", zap.Error(err))
	}

	// Şirket kararı için yetkiliye tek kullanımlık kod; başvurudaki
	// yetkili e-postası yeniden kullanılır.
	govde := fmt.Sprintf(
		"Sayın %s,\n\nKurumunuzda stajını tamamlayan öğrencinin staj defteri onayınızı beklemektedir.\n\nDefteri görüntülemek ve karar vermek için tek kullanımlık kodunuz: %%s\n\nKod tek bir karar için geçerlidir.",
		basvuru.YetkiliAdSoyad,
	)
	sirketKoduYayinla(ctx, s.otp, s.posta, s.logger, s.cfg.Auth.CompanyOTPTTL,
		redis.OTPRecord{Kind: OTPKindDefter, RecordID: defter.DefterID},
		basvuru.YetkiliEposta, "Staj Defteri Onayı", govde)

	defter.Basvuru = basvuru
	return toDefterResponse(defter, time.Now()), nil
}

func (s *defterService) GetByID(ctx context.Context, callerID, callerRol, defterID string) (*dto.DefterResponse, error) {
	defter, err := s.getDefter(ctx, defterID)
	if err != nil {
		return nil, err
	}

	switch callerRol {
	case model.RolOgrenci:
		if defter.Basvuru == nil || defter.Basvuru.OgrenciID != callerID {
			return nil, ErrDefterYetkisiz
		}
	case model.RolDanisman:
		danisman, err := s.repo.Kullanici.GetByID(ctx, callerID)
		if err != nil {
			return nil, err
		}
		if defter.Basvuru == nil || defter.Basvuru.DanismanEposta != danisman.Eposta {
			return nil, ErrDefterYetkisiz
		}
	}

	return toDefterResponse(defter, time.Now()), nil
}

func (s *defterService) GetByBasvuru(ctx context.Context, ogrenciID, basvuruID string) (*dto.DefterResponse, error) {
	defter, err := s.repo.Defter.GetByBasvuruID(ctx, basvuruID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDefterYok
		}
		return nil, err
	}
	if defter.Basvuru == nil || defter.Basvuru.OgrenciID != ogrenciID {
		return nil, ErrDefterYetkisiz
	}
	return toDefterResponse(defter, time.Now()), nil
}

// DanismanKarar şirket onayından geçmiş defter için danışman kararını işler
func (s *defterService) DanismanKarar(ctx context.Context, danismanID, defterID string, req *dto.KararRequest) (*dto.DefterResponse, error) {
	if req.Karar == model.KararRed && req.RedSebebi == "" {
		return nil, ErrRedSebebiZorunlu
	}

	danisman, err := s.repo.Kullanici.GetByID(ctx, danismanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrKullaniciYok
		}
		return nil, err
	}

	defter, err := s.getDefter(ctx, defterID)
	if err != nil {
		return nil, err
	}
	if defter.Basvuru == nil || defter.Basvuru.DanismanEposta != danisman.Eposta {
		return nil, ErrDefterYetkisiz
	}

	yeniDurum, err := model.DefterSonrakiDurum(defter.Durum, model.RolDanisman, req.Karar)
	if err != nil {
		return nil, err
	}

	defter.Durum = yeniDurum
	defter.DanismanOnay = req.Karar
	if req.Karar == model.KararRed {
		defter.RedSebebi = req.RedSebebi
	}

	if err := s.repo.Defter.Update(ctx, defter); err != nil {
		s.logger.Error("defter kararı kaydedilemedi", zap.String("id", defterID), zap.Error(err))
		return nil, err
	}

	islemTipi := model.IslemOnay
	if req.Karar == model.KararRed {
		islemTipi = model.IslemRed
	}
	kayit := &model.IslemKaydi{
		KullaniciID: &danismanID,
		IslemTipi:   islemTipi,
		KayitTipi:   model.KayitStajDefteri,
		Aciklama:    req.RedSebebi,
	}
	if err := s.repo.IslemKaydi.Create(ctx, kayit); err != nil {
		s.logger.Warn("defter işlem kaydı yazılamadı", zap.Error(err))
	}

	return toDefterResponse(defter, time.Now()), nil
}

func (s *defterService) ListForDanisman(ctx context.Context, danismanID string, durum string, req *dto.PaginationRequest) ([]dto.DefterResponse, int64, error) {
	danisman, err := s.repo.Kullanici.GetByID(ctx, danismanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrKullaniciYok
		}
		return nil, 0, err
	}

	defterler, total, err := s.repo.Defter.ListByDanismanEposta(ctx, danisman.Eposta, durum, req.Offset(), req.Limit())
	if err != nil {
		return nil, 0, err
	}

	simdi := time.Now()
	result := make([]dto.DefterResponse, 0, len(defterler))
	for i := range defterler {
		result = append(result, *toDefterResponse(&defterler[i], simdi))
	}
	return result, total, nil
}

func (s *defterService) getDefter(ctx context.Context, id string) (*model.StajDefteri, error) {
	defter, err := s.repo.Defter.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDefterYok
		}
		s.logger.Error("defter sorgusu başarısız", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return defter, nil
}

// toDefterResponse saklanan durumu görüntüleme durumuna çevirerek döner
func toDefterResponse(d *model.StajDefteri, simdi time.Time) *dto.DefterResponse {
	resp := &dto.DefterResponse{
		DefterID:     d.DefterID,
		BasvuruID:    d.BasvuruID,
		DosyaYolu:    d.DosyaYolu,
		Durum:        d.Durum,
		SirketOnay:   d.SirketOnay,
		DanismanOnay: d.DanismanOnay,
		RedSebebi:    d.RedSebebi,
		CreatedAt:    d.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    d.UpdatedAt.Format(time.RFC3339),
	}
	if d.Basvuru != nil {
		resp.KurumAdi = d.Basvuru.KurumAdi
		resp.Durum = model.DefterGorunumDurumu(d.Durum, d.Basvuru.BaslangicTarihi, d.Basvuru.BitisTarihi, simdi)
		if d.Basvuru.Ogrenci != nil {
			resp.OgrenciAdi = d.Basvuru.Ogrenci.AdSoyad
		}
	}
	return resp
}
