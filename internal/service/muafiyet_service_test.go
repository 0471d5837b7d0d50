package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/bugra455/stajuygulamasi-sub001/internal/dto"
	"github.com/bugra455/stajuygulamasi-sub001/internal/model"
)

func TestMuafiyetCreate(t *testing.T) {
	repo, ogrenci, danisman := testDunyasi(t)
	posta := &mockMailer{}
	svc := NewMuafiyetService(repo, posta, zap.NewNop())
	ctx := context.Background()

	resp, err := svc.Create(ctx, ogrenci.KullaniciID, &dto.CreateMuafiyetRequest{}, "/dosya/sgk.pdf")
	if err != nil {
		t.Fatalf("muafiyet oluşturulamadı: %v", err)
	}
	if resp.OnayDurumu != model.DurumDanismanOnayiBekliyor {
		t.Errorf("durum = %s, beklenen %s", resp.OnayDurumu, model.DurumDanismanOnayiBekliyor)
	}
	if resp.DanismanEposta != danisman.Eposta {
		t.Errorf("danışman = %s, beklenen %s", resp.DanismanEposta, danisman.Eposta)
	}
	if len(posta.gonderilen) != 1 {
		t.Errorf("danışmana bildirim bekleniyordu: %v", posta.gonderilen)
	}

	// Belge zorunlu
	var ve *ValidationError
	if _, err := svc.Create(ctx, ogrenci.KullaniciID, &dto.CreateMuafiyetRequest{}, ""); !errors.As(err, &ve) {
		t.Errorf("belgesiz başvuru doğrulama hatası vermeli, gelen: %v", err)
	}
}

func TestMuafiyetDanismanKarar(t *testing.T) {
	repo, ogrenci, danisman := testDunyasi(t)
	svc := NewMuafiyetService(repo, &mockMailer{}, zap.NewNop())
	ctx := context.Background()

	resp, err := svc.Create(ctx, ogrenci.KullaniciID, &dto.CreateMuafiyetRequest{}, "/dosya/sgk.pdf")
	if err != nil {
		t.Fatal(err)
	}

	// Danışman onayı tek aşamadır; doğrudan onaylanır
	sonuc, err := svc.DanismanKarar(ctx, danisman.KullaniciID, resp.MuafiyetID, &dto.KararRequest{Karar: model.KararOnay})
	if err != nil {
		t.Fatalf("karar başarısız: %v", err)
	}
	if sonuc.OnayDurumu != model.DurumOnaylandi {
		t.Errorf("durum = %s, beklenen %s", sonuc.OnayDurumu, model.DurumOnaylandi)
	}

	// Sonuçlanmış başvuruya ikinci karar verilemez
	if _, err := svc.DanismanKarar(ctx, danisman.KullaniciID, resp.MuafiyetID, &dto.KararRequest{Karar: model.KararRed, RedSebebi: "x"}); !errors.Is(err, model.ErrGecersizGecis) {
		t.Errorf("ErrGecersizGecis bekleniyordu, gelen: %v", err)
	}
}

func TestMuafiyetIptal(t *testing.T) {
	repo, ogrenci, danisman := testDunyasi(t)
	svc := NewMuafiyetService(repo, &mockMailer{}, zap.NewNop())
	ctx := context.Background()

	resp, err := svc.Create(ctx, ogrenci.KullaniciID, &dto.CreateMuafiyetRequest{}, "/dosya/sgk.pdf")
	if err != nil {
		t.Fatal(err)
	}

	// Başkası iptal edemez
	if _, err := svc.Iptal(ctx, "yabanci", resp.MuafiyetID, "sebep"); !errors.Is(err, ErrMuafiyetYetkisiz) {
		t.Errorf("ErrMuafiyetYetkisiz bekleniyordu, gelen: %v", err)
	}

	sonuc, err := svc.Iptal(ctx, ogrenci.KullaniciID, resp.MuafiyetID, "yanlış belge yükledim")
	if err != nil {
		t.Fatalf("iptal başarısız: %v", err)
	}
	if sonuc.OnayDurumu != model.DurumIptalEdildi {
		t.Errorf("durum = %s, beklenen %s", sonuc.OnayDurumu, model.DurumIptalEdildi)
	}

	// İptal edilen başvuruya danışman karar veremez
	if _, err := svc.DanismanKarar(ctx, danisman.KullaniciID, resp.MuafiyetID, &dto.KararRequest{Karar: model.KararOnay}); !errors.Is(err, model.ErrGecersizGecis) {
		t.Errorf("ErrGecersizGecis bekleniyordu, gelen: %v", err)
	}
}
