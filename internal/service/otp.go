package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"go.uber.org/zap"

	"github.com/bugra455/stajuygulamasi-sub001/pkg/mailer"
	"github.com/bugra455/stajuygulamasi-sub001/pkg/redis"
)

// OTP kayıt tipleri; şirket kodunun hangi kayda bağlandığını söyler
const (
	OTPKindBasvuru = "basvuru"
	OTPKindDefter  = "defter"
)

// otpKodUret 6 haneli tek kullanımlık şirket kodu üretir
func otpKodUret() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// sirketKoduYayinla kod üretir, depolar ve yetkiliye e-postayla yollar.
// govdeSablonu tek %s ile kodu alır. Kod/e-posta hataları asıl akışı
// durdurmaz; onay geçerli kalır, hata yalnızca günlüğe düşer.
func sirketKoduYayinla(
	ctx context.Context,
	otp OTPStore,
	posta mailer.Mailer,
	logger *zap.Logger,
	ttl time.Duration,
	rec redis.OTPRecord,
	eposta, konu, govdeSablonu string,
) {
	if otp == nil {
		logger.Warn("OTP deposu yok, şirket kodu üretilemedi",
			zap.String("kayit_id", rec.RecordID))
		return
	}

	kod, err := otpKodUret()
	if err != nil {
		logger.Error("OTP kodu üretilemedi", zap.Error(err))
		return
	}
	rec.Code = kod

	if err := otp.SetCompanyOTP(ctx, eposta, rec, ttl); err != nil {
		logger.Error("OTP kodu saklanamadı", zap.Error(err))
		return
	}

	if posta != nil {
		if err := posta.Send(eposta, konu, fmt.Sprintf(govdeSablonu, kod)); err != nil {
			logger.Warn("şirket bildirimi gönderilemedi",
				zap.String("eposta", eposta), zap.Error(err))
		}
	}
}
