package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/bugra455/stajuygulamasi-sub001/config"
	"github.com/bugra455/stajuygulamasi-sub001/internal/repository"
	"github.com/bugra455/stajuygulamasi-sub001/pkg/jwt"
	"github.com/bugra455/stajuygulamasi-sub001/pkg/mailer"
	"github.com/bugra455/stajuygulamasi-sub001/pkg/redis"
	"github.com/bugra455/stajuygulamasi-sub001/pkg/ws"
)

// TokenBlacklist çıkış yapılan token'ları geçersiz kılma arayüzü
type TokenBlacklist interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// OTPStore şirket tek kullanımlık kod deposu arayüzü
type OTPStore interface {
	SetCompanyOTP(ctx context.Context, email string, rec redis.OTPRecord, ttl time.Duration) error
	GetCompanyOTP(ctx context.Context, email string) (*redis.OTPRecord, error)
	DeleteCompanyOTP(ctx context.Context, email string) error
}

// Notifier içe aktarma ilerleme kanalı yayın arayüzü
type Notifier interface {
	Broadcast(msg ws.Message)
}

// ValidationError alan bazlı doğrulama hatası
// Hatalar ilk ihlalde kesilmez, toplanıp birlikte döner.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "doğrulama hatası" }

// Service tüm servislerin toplanma noktası
type Service struct {
	Auth      AuthService
	Kullanici KullaniciService
	Basvuru   BasvuruService
	Muafiyet  MuafiyetService
	Defter    DefterService
	Sirket    SirketService
	Yukleme   YuklemeService
	Takvim    TakvimService
	Denetim   DenetimService
}

// NewService Service toplamını oluşturur
// rdb nil olabilir; bu durumda kara liste ve OTP deposu devre dışı kalır.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	posta mailer.Mailer,
	hub *ws.Hub,
	logger *zap.Logger,
) *Service {
	var blacklist TokenBlacklist
	var otpStore OTPStore
	if rdb != nil {
		blacklist = rdb
		otpStore = rdb
	}

	var notifier Notifier
	if hub != nil {
		notifier = hub
	}

	return &Service{
		Auth:      NewAuthService(repo, jwtMgr, blacklist, logger),
		Kullanici: NewKullaniciService(repo, logger),
		Basvuru:   NewBasvuruService(cfg, repo, otpStore, posta, logger),
		Muafiyet:  NewMuafiyetService(repo, posta, logger),
		Defter:    NewDefterService(cfg, repo, otpStore, posta, logger),
		Sirket:    NewSirketService(repo, otpStore, logger),
		Yukleme:   NewYuklemeService(cfg, repo, notifier, logger),
		Takvim:    NewTakvimService(repo, logger),
		Denetim:   NewDenetimService(repo, logger),
	}
}
