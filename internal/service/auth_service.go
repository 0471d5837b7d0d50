package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/bugra455/stajuygulamasi-sub001/internal/dto"
	"github.com/bugra455/stajuygulamasi-sub001/internal/repository"
	"github.com/bugra455/stajuygulamasi-sub001/pkg/jwt"
)

// ── Kimlik doğrulama modülü iş hataları ──

var (
	ErrGecersizKimlik  = errors.New("kullanıcı adı veya şifre hatalı")
	ErrGecersizRefresh = errors.New("refresh token geçersiz")
	ErrEskiSifreHatali = errors.New("mevcut şifre hatalı")
	ErrKullaniciYok    = errors.New("kullanıcı bulunamadı")
)

// AuthService kimlik doğrulama iş arayüzü
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
	ChangePassword(ctx context.Context, kullaniciID string, req *dto.ChangePasswordRequest) error
	GetCurrentUser(ctx context.Context, kullaniciID string) (*dto.UserResponse, error)
}

type authService struct {
	repo      *repository.Repository
	jwtMgr    *jwt.Manager
	blacklist TokenBlacklist
	logger    *zap.Logger
}

// NewAuthService AuthService örneği oluşturur
func NewAuthService(repo *repository.Repository, jwtMgr *jwt.Manager, blacklist TokenBlacklist, logger *zap.Logger) AuthService {
	return &authService{repo: repo, jwtMgr: jwtMgr, blacklist: blacklist, logger: logger}
}

// ────────────────────── Login ──────────────────────

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	// Kullanıcı adı ya da e-posta ile arama
	kullanici, err := s.repo.Kullanici.GetByKullaniciAdi(ctx, req.Kimlik)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("kullanıcı sorgusu başarısız", zap.Error(err))
			return nil, err
		}
		kullanici, err = s.repo.Kullanici.GetByEposta(ctx, req.Kimlik)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrGecersizKimlik
			}
			s.logger.Error("kullanıcı sorgusu başarısız", zap.Error(err))
			return nil, err
		}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(kullanici.SifreHash), []byte(req.Sifre)); err != nil {
		return nil, ErrGecersizKimlik
	}

	accessToken, err := s.jwtMgr.GenerateAccessToken(kullanici.KullaniciID, kullanici.Rol)
	if err != nil {
		s.logger.Error("access token üretilemedi", zap.Error(err))
		return nil, err
	}

	refreshToken, err := s.jwtMgr.GenerateRefreshToken(kullanici.KullaniciID, kullanici.Rol, req.BeniHatirla)
	if err != nil {
		s.logger.Error("refresh token üretilemedi", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Kullanici:    toUserResponse(kullanici),
	}, nil
}

// ────────────────────── RefreshToken ──────────────────────

func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	claims, err := s.jwtMgr.ParseToken(refreshToken)
	if err != nil {
		return nil, ErrGecersizRefresh
	}
	if claims.TokenType != "refresh" {
		return nil, ErrGecersizRefresh
	}

	if s.blacklist != nil {
		blacklisted, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			s.logger.Warn("kara liste kontrolü başarısız", zap.Error(err))
		} else if blacklisted {
			return nil, ErrGecersizRefresh
		}
	}

	kullanici, err := s.repo.Kullanici.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGecersizRefresh
		}
		return nil, err
	}

	accessToken, err := s.jwtMgr.GenerateAccessToken(kullanici.KullaniciID, kullanici.Rol)
	if err != nil {
		return nil, err
	}

	newRefresh, err := s.jwtMgr.GenerateRefreshToken(kullanici.KullaniciID, kullanici.Rol, claims.RememberMe)
	if err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: newRefresh,
	}, nil
}

// ────────────────────── Logout ──────────────────────

func (s *authService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if s.blacklist == nil {
		return nil // kara liste yoksa çıkış etkisiz ama hatasız
	}
	return s.blacklist.BlacklistToken(ctx, jti, time.Until(expiresAt))
}

// ────────────────────── ChangePassword ──────────────────────

func (s *authService) ChangePassword(ctx context.Context, kullaniciID string, req *dto.ChangePasswordRequest) error {
	kullanici, err := s.repo.Kullanici.GetByID(ctx, kullaniciID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrKullaniciYok
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(kullanici.SifreHash), []byte(req.EskiSifre)); err != nil {
		return ErrEskiSifreHatali
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.YeniSifre), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	kullanici.SifreHash = string(hash)

	return s.repo.Kullanici.Update(ctx, kullanici)
}

// ────────────────────── GetCurrentUser ──────────────────────

func (s *authService) GetCurrentUser(ctx context.Context, kullaniciID string) (*dto.UserResponse, error) {
	kullanici, err := s.repo.Kullanici.GetByID(ctx, kullaniciID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrKullaniciYok
		}
		return nil, err
	}
	return toUserResponse(kullanici), nil
}
