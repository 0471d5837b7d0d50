package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/bugra455/stajuygulamasi-sub001/internal/dto"
	"github.com/bugra455/stajuygulamasi-sub001/internal/model"
	"github.com/bugra455/stajuygulamasi-sub001/internal/repository"
	"github.com/bugra455/stajuygulamasi-sub001/pkg/redis"
)

// ── Şirket OTP kapısı iş hataları ──

var (
	ErrOTPDevreDisi  = errors.New("şirket girişi şu anda kullanılamıyor")
	ErrGecersizKod   = errors.New("e-posta veya kod geçersiz ya da süresi dolmuş")
	ErrOTPKaydiBozuk = errors.New("kodun bağlı olduğu kayıt bulunamadı")
)

// SirketService kimliksiz şirket yetkilisinin OTP ile tek kayıt görüp
// tek karar vermesini sağlayan arayüz
type SirketService interface {
	Giris(ctx context.Context, req *dto.SirketGirisRequest) (*dto.SirketGirisResponse, error)
	Karar(ctx context.Context, req *dto.SirketKararRequest) (*dto.SirketGirisResponse, error)
}

type sirketService struct {
	repo   *repository.Repository
	otp    OTPStore
	logger *zap.Logger
}

// NewSirketService SirketService örneği oluşturur
func NewSirketService(repo *repository.Repository, otp OTPStore, logger *zap.Logger) SirketService {
	return &sirketService{repo: repo, otp: otp, logger: logger}
}

// Giris kodu doğrular ve bağlı kaydın detayını döner; kodu tüketmez
func (s *sirketService) Giris(ctx context.Context, req *dto.SirketGirisRequest) (*dto.SirketGirisResponse, error) {
	rec, err := s.kodDogrula(ctx, req.Eposta, req.Kod)
	if err != nil {
		return nil, err
	}
	return s.kayitGetir(ctx, rec)
}

// Karar kodu doğrular, karara uygular ve kodu siler; kod tek kullanımlıktır
func (s *sirketService) Karar(ctx context.Context, req *dto.SirketKararRequest) (*dto.SirketGirisResponse, error) {
	if req.Karar == model.KararRed && req.RedSebebi == "" {
		return nil, ErrRedSebebiZorunlu
	}

	rec, err := s.kodDogrula(ctx, req.Eposta, req.Kod)
	if err != nil {
		return nil, err
	}

	var resp *dto.SirketGirisResponse
	switch rec.Kind {
	case OTPKindBasvuru:
		resp, err = s.basvuruKarar(ctx, rec.RecordID, req)
	case OTPKindDefter:
		resp, err = s.defterKarar(ctx, rec.RecordID, req)
	default:
		return nil, ErrOTPKaydiBozuk
	}
	if err != nil {
		return nil, err
	}

	// Karar düştü; kod artık geçersiz
	if err := s.otp.DeleteCompanyOTP(ctx, req.Eposta); err != nil {
		s.logger.Error("OTP kodu silinemedi", zap.String("eposta", req.Eposta), zap.Error(err))
	}

	return resp, nil
}

// kodDogrula e-postaya bağlı kaydı bulur ve kodu sabit zamanlı karşılaştırır
func (s *sirketService) kodDogrula(ctx context.Context, eposta, kod string) (*redis.OTPRecord, error) {
	if s.otp == nil {
		return nil, ErrOTPDevreDisi
	}

	rec, err := s.otp.GetCompanyOTP(ctx, eposta)
	if err != nil {
		if redis.IsNil(err) {
			return nil, ErrGecersizKod
		}
		s.logger.Error("OTP sorgusu başarısız", zap.String("eposta", eposta), zap.Error(err))
		return nil, err
	}

	if subtle.ConstantTimeCompare([]byte(rec.Code), []byte(kod)) != 1 {
		return nil, ErrGecersizKod
	}
	return rec, nil
}

func (s *sirketService) kayitGetir(ctx context.Context, rec *redis.OTPRecord) (*dto.SirketGirisResponse, error) {
	switch rec.Kind {
	case OTPKindBasvuru:
		basvuru, err := s.repo.Basvuru.GetByID(ctx, rec.RecordID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrOTPKaydiBozuk
			}
			return nil, err
		}
		return &dto.SirketGirisResponse{
			KayitTipi: OTPKindBasvuru,
			Basvuru:   toBasvuruResponse(basvuru),
		}, nil

	case OTPKindDefter:
		defter, err := s.repo.Defter.GetByID(ctx, rec.RecordID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrOTPKaydiBozuk
			}
			return nil, err
		}
		return &dto.SirketGirisResponse{
			KayitTipi: OTPKindDefter,
			Defter:    toDefterResponse(defter, time.Now()),
		}, nil
	}

	return nil, ErrOTPKaydiBozuk
}

func (s *sirketService) basvuruKarar(ctx context.Context, basvuruID string, req *dto.SirketKararRequest) (*dto.SirketGirisResponse, error) {
	basvuru, err := s.repo.Basvuru.GetByID(ctx, basvuruID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOTPKaydiBozuk
		}
		return nil, err
	}

	yeniDurum, err := model.SonrakiDurum(basvuru.OnayDurumu, model.AktorSirket, req.Karar)
	if err != nil {
		return nil, err
	}

	basvuru.OnayDurumu = yeniDurum
	basvuru.SirketOnay = req.Karar
	if req.Karar == model.KararOnay {
		// Tarih düzeltme penceresi bu andan itibaren ölçülür
		simdi := time.Now()
		basvuru.OnaylanmaTarihi = &simdi
	} else {
		basvuru.RedSebebi = req.RedSebebi
	}

	islemTipi := model.IslemOnay
	if req.Karar == model.KararRed {
		islemTipi = model.IslemRed
	}
	kayit := &model.IslemKaydi{
		IslemTipi: islemTipi,
		KayitTipi: model.KayitStajBasvurusu,
		Aciklama:  "şirket kararı: " + req.RedSebebi,
	}

	if err := s.repo.Basvuru.UpdateWithLog(ctx, basvuru, kayit); err != nil {
		s.logger.Error("şirket kararı kaydedilemedi", zap.String("id", basvuruID), zap.Error(err))
		return nil, err
	}

	return &dto.SirketGirisResponse{
		KayitTipi: OTPKindBasvuru,
		Basvuru:   toBasvuruResponse(basvuru),
	}, nil
}

func (s *sirketService) defterKarar(ctx context.Context, defterID string, req *dto.SirketKararRequest) (*dto.SirketGirisResponse, error) {
	defter, err := s.repo.Defter.GetByID(ctx, defterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOTPKaydiBozuk
		}
		return nil, err
	}

	yeniDurum, err := model.DefterSonrakiDurum(defter.Durum, model.AktorSirket, req.Karar)
	if err != nil {
		return nil, err
	}

	defter.Durum = yeniDurum
	defter.SirketOnay = req.Karar
	if req.Karar == model.KararRed {
		defter.RedSebebi = req.RedSebebi
	}

	if err := s.repo.Defter.Update(ctx, defter); err != nil {
		s.logger.Error("şirket defter kararı kaydedilemedi", zap.String("id", defterID), zap.Error(err))
		return nil, err
	}

	islemTipi := model.IslemOnay
	if req.Karar == model.KararRed {
		islemTipi = model.IslemRed
	}
	kayit := &model.IslemKaydi{
		IslemTipi: islemTipi,
		KayitTipi: model.KayitStajDefteri,
		HedefID:   &defter.DefterID,
		Aciklama:  "şirket kararı: " + req.RedSebebi,
	}
	if err := s.repo.IslemKaydi.Create(ctx, kayit); err != nil {
		s.logger.Warn("defter işlem kaydı yazılamadı", zap.Error(err))
	}

	return &dto.SirketGirisResponse{
		KayitTipi: OTPKindDefter,
		Defter:    toDefterResponse(defter, time.Now()),
	}, nil
}
