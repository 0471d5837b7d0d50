package service

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/bugra455/stajuygulamasi-sub001/internal/model"
)

func TestDanismanTakvimi(t *testing.T) {
	repo, ogrenci, danisman := testDunyasi(t)
	ctx := context.Background()

	basvuru := &model.StajBasvurusu{
		OgrenciID:       ogrenci.KullaniciID,
		KurumAdi:        "Örnek Teknoloji A.Ş.",
		KurumAdresi:     "Ankara",
		YetkiliAdSoyad:  "Ali Yetkili",
		YetkiliEposta:   "ali@ornek.com.tr",
		StajTipi:        model.StajTipiGonullu,
		BaslangicTarihi: time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC),
		BitisTarihi:     time.Date(2026, 8, 14, 0, 0, 0, 0, time.UTC),
		SeciliGunler:    model.IntArray{1, 2, 3},
		ToplamGun:       40,
		DanismanEposta:  danisman.Eposta,
		OnayDurumu:      model.DurumOnaylandi,
	}
	if err := repo.Basvuru.CreateWithLog(ctx, basvuru, &model.IslemKaydi{IslemTipi: model.IslemOlusturma, KayitTipi: model.KayitStajBasvurusu}); err != nil {
		t.Fatal(err)
	}

	// Onaylanmamış başvuru takvime girmez
	bekleyen := &model.StajBasvurusu{
		OgrenciID: ogrenci.KullaniciID, KurumAdi: "Bekleyen Kurum", KurumAdresi: "İzmir",
		YetkiliAdSoyad: "X", YetkiliEposta: "x@y.com", StajTipi: model.StajTipiGonullu,
		BaslangicTarihi: time.Now(), BitisTarihi: time.Now().AddDate(0, 1, 0),
		SeciliGunler: model.IntArray{1}, ToplamGun: 10,
		DanismanEposta: danisman.Eposta, OnayDurumu: model.DurumDanismanOnayiBekliyor,
	}
	if err := repo.Basvuru.CreateWithLog(ctx, bekleyen, &model.IslemKaydi{IslemTipi: model.IslemOlusturma, KayitTipi: model.KayitStajBasvurusu}); err != nil {
		t.Fatal(err)
	}

	svc := NewTakvimService(repo, zap.NewNop())
	ics, err := svc.DanismanTakvimi(ctx, danisman.KullaniciID)
	if err != nil {
		t.Fatalf("takvim üretilemedi: %v", err)
	}

	if !strings.Contains(ics, "BEGIN:VCALENDAR") || !strings.Contains(ics, "BEGIN:VEVENT") {
		t.Error("ICS iskeleti eksik")
	}
	if !strings.Contains(ics, "Örnek Teknoloji A.Ş.") {
		t.Error("onaylanmış staj takvimde yer almalı")
	}
	if strings.Contains(ics, "Bekleyen Kurum") {
		t.Error("bekleyen başvuru takvime girmemeli")
	}
}

func TestDurumRaporu(t *testing.T) {
	repo, ogrenci, danisman := testDunyasi(t)
	ctx := context.Background()

	basvuru := &model.StajBasvurusu{
		OgrenciID:       ogrenci.KullaniciID,
		KurumAdi:        "Örnek Teknoloji A.Ş.",
		KurumAdresi:     "Ankara",
		YetkiliAdSoyad:  "Ali Yetkili",
		YetkiliEposta:   "ali@ornek.com.tr",
		StajTipi:        model.StajTipiZorunlu,
		BaslangicTarihi: time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC),
		BitisTarihi:     time.Date(2026, 8, 14, 0, 0, 0, 0, time.UTC),
		SeciliGunler:    model.IntArray{1, 2},
		ToplamGun:       40,
		DanismanEposta:  danisman.Eposta,
		OnayDurumu:      model.DurumOnaylandi,
	}
	if err := repo.Basvuru.CreateWithLog(ctx, basvuru, &model.IslemKaydi{IslemTipi: model.IslemOlusturma, KayitTipi: model.KayitStajBasvurusu}); err != nil {
		t.Fatal(err)
	}

	svc := NewTakvimService(repo, zap.NewNop())
	rapor, err := svc.DurumRaporu(ctx, model.DurumOnaylandi)
	if err != nil {
		t.Fatalf("rapor üretilemedi: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(rapor))
	if err != nil {
		t.Fatalf("rapor xlsx olarak açılamadı: %v", err)
	}
	defer f.Close()

	satirlar, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		t.Fatal(err)
	}
	if len(satirlar) != 2 {
		t.Fatalf("başlık ve bir veri satırı bekleniyordu, gelen %d satır", len(satirlar))
	}
	if satirlar[1][2] != "Örnek Teknoloji A.Ş." || satirlar[1][3] != model.StajTipiZorunlu {
		t.Errorf("veri satırı beklenen gibi değil: %v", satirlar[1])
	}
}
