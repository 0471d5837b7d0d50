package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/bugra455/stajuygulamasi-sub001/internal/dto"
	"github.com/bugra455/stajuygulamasi-sub001/internal/model"
	"github.com/bugra455/stajuygulamasi-sub001/internal/repository"
)

// ── Kullanıcı modülü iş hataları ──

var (
	ErrTCKayitli           = errors.New("bu TC kimlik numarasıyla kayıtlı kullanıcı var")
	ErrKullaniciAdiKayitli = errors.New("bu kullanıcı adı kullanımda")
	ErrKendiniSilemez      = errors.New("admin kendi hesabını silemez")
)

// KullaniciService kullanıcı yönetimi iş arayüzü
type KullaniciService interface {
	Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.CreateUserResponse, error)
	GetByID(ctx context.Context, id string) (*dto.UserResponse, error)
	List(ctx context.Context, req *dto.UserListRequest) ([]dto.UserResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	Delete(ctx context.Context, id, callerID string) error
	ListCap(ctx context.Context, ogrenciID string) ([]dto.CapResponse, error)
}

type kullaniciService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewKullaniciService KullaniciService örneği oluşturur
func NewKullaniciService(repo *repository.Repository, logger *zap.Logger) KullaniciService {
	return &kullaniciService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *kullaniciService) Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.CreateUserResponse, error) {
	if _, err := s.repo.Kullanici.GetByTCKimlikNo(ctx, req.TCKimlikNo); err == nil {
		return nil, ErrTCKayitli
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if _, err := s.repo.Kullanici.GetByKullaniciAdi(ctx, req.KullaniciAdi); err == nil {
		return nil, ErrKullaniciAdiKayitli
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	geciciSifre, err := geciciSifreUret(12)
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(geciciSifre), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	kullanici := &model.Kullanici{
		TCKimlikNo:   req.TCKimlikNo,
		KullaniciAdi: req.KullaniciAdi,
		AdSoyad:      req.AdSoyad,
		Eposta:       req.Eposta,
		SifreHash:    string(hash),
		Rol:          req.Rol,
		OgrenciNo:    req.OgrenciNo,
		Fakulte:      req.Fakulte,
		Sinif:        req.Sinif,
		DanismanID:   req.DanismanID,
	}

	if err := s.repo.Kullanici.Create(ctx, kullanici); err != nil {
		s.logger.Error("kullanıcı oluşturulamadı", zap.Error(err))
		return nil, err
	}

	return &dto.CreateUserResponse{
		Kullanici:   *toUserResponse(kullanici),
		GeciciSifre: geciciSifre,
	}, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *kullaniciService) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	kullanici, err := s.repo.Kullanici.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrKullaniciYok
		}
		return nil, err
	}
	return toUserResponse(kullanici), nil
}

// ────────────────────── List ──────────────────────

func (s *kullaniciService) List(ctx context.Context, req *dto.UserListRequest) ([]dto.UserResponse, int64, error) {
	kullanicilar, total, err := s.repo.Kullanici.List(ctx, req.Rol, req.Keyword, req.Offset(), req.Limit())
	if err != nil {
		s.logger.Error("kullanıcı listesi alınamadı", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.UserResponse, 0, len(kullanicilar))
	for i := range kullanicilar {
		result = append(result, *toUserResponse(&kullanicilar[i]))
	}
	return result, total, nil
}

// ────────────────────── Update ──────────────────────

func (s *kullaniciService) Update(ctx context.Context, id string, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	kullanici, err := s.repo.Kullanici.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrKullaniciYok
		}
		return nil, err
	}

	if req.AdSoyad != nil {
		kullanici.AdSoyad = *req.AdSoyad
	}
	if req.Eposta != nil {
		kullanici.Eposta = *req.Eposta
	}
	if req.Fakulte != nil {
		kullanici.Fakulte = *req.Fakulte
	}
	if req.Sinif != nil {
		kullanici.Sinif = *req.Sinif
	}
	if req.DanismanID != nil {
		kullanici.DanismanID = req.DanismanID
	}

	if err := s.repo.Kullanici.Update(ctx, kullanici); err != nil {
		s.logger.Error("kullanıcı güncellenemedi", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toUserResponse(kullanici), nil
}

// ────────────────────── Delete ──────────────────────

func (s *kullaniciService) Delete(ctx context.Context, id, callerID string) error {
	if id == callerID {
		return ErrKendiniSilemez
	}

	if _, err := s.repo.Kullanici.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrKullaniciYok
		}
		return err
	}

	return s.repo.Kullanici.Delete(ctx, id)
}

// ────────────────────── ListCap ──────────────────────

func (s *kullaniciService) ListCap(ctx context.Context, ogrenciID string) ([]dto.CapResponse, error) {
	caplar, err := s.repo.Cap.ListByOgrenci(ctx, ogrenciID)
	if err != nil {
		return nil, err
	}

	result := make([]dto.CapResponse, 0, len(caplar))
	for i := range caplar {
		c := &caplar[i]
		resp := dto.CapResponse{
			CapID:      c.CapID,
			OgrenciID:  c.OgrenciID,
			Fakulte:    c.Fakulte,
			Bolum:      c.Bolum,
			DanismanID: c.DanismanID,
		}
		if c.Danisman != nil {
			resp.DanismanAdi = c.Danisman.AdSoyad
		}
		result = append(result, resp)
	}
	return result, nil
}

// ── Yardımcılar ──

func toUserResponse(k *model.Kullanici) *dto.UserResponse {
	resp := &dto.UserResponse{
		KullaniciID:  k.KullaniciID,
		TCKimlikNo:   k.TCKimlikNo,
		KullaniciAdi: k.KullaniciAdi,
		AdSoyad:      k.AdSoyad,
		Eposta:       k.Eposta,
		Rol:          k.Rol,
		OgrenciNo:    k.OgrenciNo,
		Fakulte:      k.Fakulte,
		Sinif:        k.Sinif,
		DanismanID:   k.DanismanID,
	}
	if k.Danisman != nil {
		resp.DanismanAdi = k.Danisman.AdSoyad
	}
	return resp
}

// geciciSifreUret URL-güvenli rastgele geçici şifre üretir
func geciciSifreUret(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf)[:length], nil
}
