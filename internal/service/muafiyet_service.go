package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/bugra455/stajuygulamasi-sub001/internal/dto"
	"github.com/bugra455/stajuygulamasi-sub001/internal/model"
	"github.com/bugra455/stajuygulamasi-sub001/internal/repository"
	"github.com/bugra455/stajuygulamasi-sub001/pkg/mailer"
)

// ── Muafiyet modülü iş hataları ──

var (
	ErrMuafiyetYok      = errors.New("muafiyet başvurusu bulunamadı")
	ErrMuafiyetYetkisiz = errors.New("bu muafiyet başvurusu üzerinde işlem yetkiniz yok")
)

// MuafiyetService muafiyet başvurusu iş arayüzü
type MuafiyetService interface {
	Create(ctx context.Context, ogrenciID string, req *dto.CreateMuafiyetRequest, belgeYolu string) (*dto.MuafiyetResponse, error)
	GetByID(ctx context.Context, callerID, callerRol, muafiyetID string) (*dto.MuafiyetResponse, error)
	ListByOgrenci(ctx context.Context, ogrenciID string, req *dto.PaginationRequest) ([]dto.MuafiyetResponse, int64, error)
	ListForDanisman(ctx context.Context, danismanID, durum string, req *dto.PaginationRequest) ([]dto.MuafiyetResponse, int64, error)
	DanismanKarar(ctx context.Context, danismanID, muafiyetID string, req *dto.KararRequest) (*dto.MuafiyetResponse, error)
	Iptal(ctx context.Context, ogrenciID, muafiyetID, sebep string) (*dto.MuafiyetResponse, error)
	Delete(ctx context.Context, muafiyetID string) error
}

type muafiyetService struct {
	repo   *repository.Repository
	posta  mailer.Mailer
	logger *zap.Logger
}

// NewMuafiyetService MuafiyetService örneği oluşturur
func NewMuafiyetService(repo *repository.Repository, posta mailer.Mailer, logger *zap.Logger) MuafiyetService {
	return &muafiyetService{repo: repo, posta: posta, logger: logger}
}

func (s *muafiyetService) Create(ctx context.Context, ogrenciID string, req *dto.CreateMuafiyetRequest, belgeYolu string) (*dto.MuafiyetResponse, error) {
	if belgeYolu == "" {
		return nil, &ValidationError{Fields: map[string]string{"belge": "muafiyet belgesi zorunludur"}}
	}

	ogrenci, err := s.repo.Kullanici.GetByID(ctx, ogrenciID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrKullaniciYok
		}
		return nil, err
	}

	capID := capIDNormalize(req.CapID)
	danismanEposta, err := danismanCoz(ctx, s.repo, ogrenci, capID)
	if err != nil {
		return nil, err
	}

	muafiyet := &model.MuafiyetBasvurusu{
		OgrenciID:      ogrenciID,
		BelgeDosyasi:   belgeYolu,
		DanismanEposta: danismanEposta,
		OnayDurumu:     model.DurumDanismanOnayiBekliyor,
		CapID:          capID,
	}

	kayit := &model.IslemKaydi{
		KullaniciID: &ogrenciID,
		IslemTipi:   model.IslemOlusturma,
		KayitTipi:   model.KayitMuafiyet,
		Aciklama:    "muafiyet başvurusu oluşturuldu",
	}

	if err := s.repo.Muafiyet.CreateWithLog(ctx, muafiyet, kayit); err != nil {
		s.logger.Error("muafiyet başvurusu oluşturulamadı", zap.Error(err))
		return nil, err
	}

	if s.posta != nil {
		body := fmt.Sprintf(
			"Sayın Danışman,\n\n%s (%s) staj muafiyet başvurusu oluşturdu.\n\nBaşvuruyu sistem üzerinden inceleyebilirsiniz.",
			ogrenci.AdSoyad, ogrenci.OgrenciNo,
		)
		if err := s.posta.Send(danismanEposta, "Yeni Muafiyet Başvurusu", body); err != nil {
			s.logger.Warn("danışman bildirimi gönderilemedi",
				zap.String("eposta", danismanEposta), zap.Error(err))
		}
	}

	muafiyet.Ogrenci = ogrenci
	return toMuafiyetResponse(muafiyet), nil
}

func (s *muafiyetService) GetByID(ctx context.Context, callerID, callerRol, muafiyetID string) (*dto.MuafiyetResponse, error) {
	muafiyet, err := s.getMuafiyet(ctx, muafiyetID)
	if err != nil {
		return nil, err
	}

	switch callerRol {
	case model.RolOgrenci:
		if muafiyet.OgrenciID != callerID {
			return nil, ErrMuafiyetYetkisiz
		}
	case model.RolDanisman:
		danisman, err := s.repo.Kullanici.GetByID(ctx, callerID)
		if err != nil {
			return nil, err
		}
		if muafiyet.DanismanEposta != danisman.Eposta {
			return nil, ErrMuafiyetYetkisiz
		}
	}

	return toMuafiyetResponse(muafiyet), nil
}

func (s *muafiyetService) ListByOgrenci(ctx context.Context, ogrenciID string, req *dto.PaginationRequest) ([]dto.MuafiyetResponse, int64, error) {
	muafiyetler, total, err := s.repo.Muafiyet.ListByOgrenci(ctx, ogrenciID, req.Offset(), req.Limit())
	if err != nil {
		return nil, 0, err
	}
	return toMuafiyetResponseList(muafiyetler), total, nil
}

func (s *muafiyetService) ListForDanisman(ctx context.Context, danismanID, durum string, req *dto.PaginationRequest) ([]dto.MuafiyetResponse, int64, error) {
	danisman, err := s.repo.Kullanici.GetByID(ctx, danismanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrKullaniciYok
		}
		return nil, 0, err
	}

	muafiyetler, total, err := s.repo.Muafiyet.ListByDanismanEposta(ctx, danisman.Eposta, durum, req.Offset(), req.Limit())
	if err != nil {
		return nil, 0, err
	}
	return toMuafiyetResponseList(muafiyetler), total, nil
}

// DanismanKarar muafiyet akışının tek karar aşamasıdır; onay doğrudan
// ONAYLANDI durumuna taşır.
func (s *muafiyetService) DanismanKarar(ctx context.Context, danismanID, muafiyetID string, req *dto.KararRequest) (*dto.MuafiyetResponse, error) {
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

	muafiyet, err := s.getMuafiyet(ctx, muafiyetID)
	if err != nil {
		return nil, err
	}
	if muafiyet.DanismanEposta != danisman.Eposta {
		return nil, ErrMuafiyetYetkisiz
	}
	if muafiyet.OnayDurumu != model.DurumDanismanOnayiBekliyor {
		return nil, model.ErrGecersizGecis
	}

	muafiyet.DanismanOnay = req.Karar
	if req.Karar == model.KararOnay {
		muafiyet.OnayDurumu = model.DurumOnaylandi
	} else {
		muafiyet.OnayDurumu = model.DurumReddedildi
		muafiyet.RedSebebi = req.RedSebebi
	}

	if err := s.repo.Muafiyet.Update(ctx, muafiyet); err != nil {
		s.logger.Error("muafiyet kararı kaydedilemedi", zap.String("id", muafiyetID), zap.Error(err))
		return nil, err
	}

	islemTipi := model.IslemOnay
	if req.Karar == model.KararRed {
		islemTipi = model.IslemRed
	}
	kayit := &model.IslemKaydi{
		KullaniciID: &danismanID,
		IslemTipi:   islemTipi,
		KayitTipi:   model.KayitMuafiyet,
		HedefID:     &muafiyet.MuafiyetID,
		Aciklama:    req.RedSebebi,
	}
	if err := s.repo.IslemKaydi.Create(ctx, kayit); err != nil {
		s.logger.Warn("muafiyet işlem kaydı yazılamadı", zap.Error(err))
	}

	return toMuafiyetResponse(muafiyet), nil
}

func (s *muafiyetService) Iptal(ctx context.Context, ogrenciID, muafiyetID, sebep string) (*dto.MuafiyetResponse, error) {
	muafiyet, err := s.getMuafiyet(ctx, muafiyetID)
	if err != nil {
		return nil, err
	}
	if muafiyet.OgrenciID != ogrenciID {
		return nil, ErrMuafiyetYetkisiz
	}
	if muafiyet.OnayDurumu != model.DurumDanismanOnayiBekliyor {
		return nil, model.ErrGecersizGecis
	}

	muafiyet.OnayDurumu = model.DurumIptalEdildi
	muafiyet.RedSebebi = sebep

	if err := s.repo.Muafiyet.Update(ctx, muafiyet); err != nil {
		s.logger.Error("muafiyet iptal edilemedi", zap.String("id", muafiyetID), zap.Error(err))
		return nil, err
	}

	kayit := &model.IslemKaydi{
		KullaniciID: &ogrenciID,
		IslemTipi:   model.IslemIptal,
		KayitTipi:   model.KayitMuafiyet,
		HedefID:     &muafiyet.MuafiyetID,
		Aciklama:    sebep,
	}
	if err := s.repo.IslemKaydi.Create(ctx, kayit); err != nil {
		s.logger.Warn("muafiyet işlem kaydı yazılamadı", zap.Error(err))
	}

	return toMuafiyetResponse(muafiyet), nil
}

func (s *muafiyetService) Delete(ctx context.Context, muafiyetID string) error {
	if _, err := s.getMuafiyet(ctx, muafiyetID); err != nil {
		return err
	}
	return s.repo.Muafiyet.Delete(ctx, muafiyetID)
}

func (s *muafiyetService) getMuafiyet(ctx context.Context, id string) (*model.MuafiyetBasvurusu, error) {
	muafiyet, err := s.repo.Muafiyet.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMuafiyetYok
		}
		s.logger.Error("muafiyet sorgusu başarısız", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return muafiyet, nil
}

func toMuafiyetResponse(m *model.MuafiyetBasvurusu) *dto.MuafiyetResponse {
	resp := &dto.MuafiyetResponse{
		MuafiyetID:     m.MuafiyetID,
		OgrenciID:      m.OgrenciID,
		BelgeDosyasi:   m.BelgeDosyasi,
		DanismanEposta: m.DanismanEposta,
		OnayDurumu:     m.OnayDurumu,
		DanismanOnay:   m.DanismanOnay,
		RedSebebi:      m.RedSebebi,
		CapID:          m.CapID,
		CreatedAt:      m.CreatedAt.Format(time.RFC3339),
	}
	if m.Ogrenci != nil {
		resp.OgrenciAdi = m.Ogrenci.AdSoyad
	}
	return resp
}

func toMuafiyetResponseList(muafiyetler []model.MuafiyetBasvurusu) []dto.MuafiyetResponse {
	result := make([]dto.MuafiyetResponse, 0, len(muafiyetler))
	for i := range muafiyetler {
		result = append(result, *toMuafiyetResponse(&muafiyetler[i]))
	}
	return result
}
