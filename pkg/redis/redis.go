package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/bugra455/stajuygulamasi-sub001/config"
)

// Client Redis istemci sarmalayıcısı
// Token kara listesi, istek sınırlama ve şirket OTP deposu için kullanılır
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient Redis bağlantısını kurar ve Ping ile doğrular
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("Redis bağlantısı kurulamadı: %w", err)
	}

	logger.Info("Redis bağlantısı kuruldu", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// ── Token kara listesi ──

const blacklistPrefix = "token:blacklist:"

// BlacklistToken JWT ID'yi kalan ömrü kadar kara listeye alır
func (c *Client) BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // token zaten süresi dolmuş
	}
	return c.rdb.Set(ctx, blacklistPrefix+jti, "1", ttl).Err()
}

// IsBlacklisted JWT ID kara listede mi kontrol eder
func (c *Client) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	n, err := c.rdb.Exists(ctx, blacklistPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ── İstek sınırlama ──

// CheckRateLimit sabit pencere sayaçlı istek sınırlaması
// Pencere içindeki istek sayısı limit'i aşarsa false döner
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	n, err := c.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if n == 1 {
		if err := c.rdb.Expire(ctx, key, window).Err(); err != nil {
			return false, err
		}
	}
	return n <= int64(limit), nil
}

// ── Şirket OTP deposu ──

const companyOTPPrefix = "otp:sirket:"

// OTPRecord tek kullanımlık şirket kodunun bağlandığı kayıt
type OTPRecord struct {
	Kind     string // "basvuru" | "defter"
	RecordID string
	Code     string
}

// SetCompanyOTP şirket yetkilisi için tek kullanımlık kod saklar
// Kod TTL süresince geçerlidir; karar verildiğinde silinir.
func (c *Client) SetCompanyOTP(ctx context.Context, email string, rec OTPRecord, ttl time.Duration) error {
	value := rec.Kind + ":" + rec.RecordID + ":" + rec.Code
	return c.rdb.Set(ctx, companyOTPPrefix+strings.ToLower(email), value, ttl).Err()
}

// GetCompanyOTP e-postaya bağlı OTP kaydını getirir
// Kayıt yoksa goredis.Nil döner.
func (c *Client) GetCompanyOTP(ctx context.Context, email string) (*OTPRecord, error) {
	value, err := c.rdb.Get(ctx, companyOTPPrefix+strings.ToLower(email)).Result()
	if err != nil {
		return nil, err
	}
	parts := strings.SplitN(value, ":", 3)
	if len(parts) != 3 {
		return nil, fmt.Errorf("bozuk OTP kaydı: %q", value)
	}
	return &OTPRecord{Kind: parts[0], RecordID: parts[1], Code: parts[2]}, nil
}

// DeleteCompanyOTP kodu tek kullanımlık kılmak için siler
func (c *Client) DeleteCompanyOTP(ctx context.Context, email string) error {
	return c.rdb.Del(ctx, companyOTPPrefix+strings.ToLower(email)).Err()
}

// IsNil redis "anahtar yok" hatası mı kontrol eder
func IsNil(err error) bool {
	return errors.Is(err, goredis.Nil)
}

// Close Redis bağlantısını kapatır
func (c *Client) Close() error {
	return c.rdb.Close()
}
