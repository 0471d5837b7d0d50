package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/bugra455/stajuygulamasi-sub001/internal/model"
	"github.com/bugra455/stajuygulamasi-sub001/internal/repository"
)

// testXlsx başlık satırı ve verilen satırlarla geçici bir xlsx dosyası yazar
func testXlsx(t *testing.T, basliklar []string, satirlar [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sayfa := f.GetSheetName(0)
	for i, baslik := range basliklar {
		hucre, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sayfa, hucre, baslik); err != nil {
			t.Fatal(err)
		}
	}
	for r, satir := range satirlar {
		for c, deger := range satir {
			hucre, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(sayfa, hucre, deger); err != nil {
				t.Fatal(err)
			}
		}
	}

	yol := filepath.Join(t.TempDir(), "liste.xlsx")
	if err := f.SaveAs(yol); err != nil {
		t.Fatal(err)
	}
	return yol
}

// isKur işi kuyruğa yazar ve işleyiciyi eşzamanlı çalıştırmak için servisi döner
func isKur(t *testing.T, repo *repository.Repository, tip string) (*yuklemeService, *model.YuklemeIsi) {
	t.Helper()
	svc := NewYuklemeService(testConfig(), repo, &mockNotifier{}, zap.NewNop()).(*yuklemeService)
	is := &model.YuklemeIsi{DosyaTipi: tip, DosyaAdi: "liste.xlsx", Durum: model.YuklemeKuyrukta}
	if err := repo.Yukleme.Create(context.Background(), is); err != nil {
		t.Fatal(err)
	}
	return svc, is
}

func TestYuklemeBaslatDogrulama(t *testing.T) {
	repo := yeniTestRepo()
	svc := NewYuklemeService(testConfig(), repo, &mockNotifier{}, zap.NewNop())
	ctx := context.Background()

	if _, err := svc.Baslat(ctx, "bilinmeyen", "liste.xlsx", "/tmp/liste.xlsx", 100); !errors.Is(err, ErrGecersizDosyaTipi) {
		t.Errorf("ErrGecersizDosyaTipi bekleniyordu, gelen: %v", err)
	}
	if _, err := svc.Baslat(ctx, model.YuklemeTipiOgrenci, "liste.csv", "/tmp/liste.csv", 100); !errors.Is(err, ErrGecersizUzanti) {
		t.Errorf("ErrGecersizUzanti bekleniyordu, gelen: %v", err)
	}
	if _, err := svc.Baslat(ctx, model.YuklemeTipiOgrenci, "liste.xlsx", "/tmp/liste.xlsx", 11<<20); !errors.Is(err, ErrDosyaCokBuyuk) {
		t.Errorf("ErrDosyaCokBuyuk bekleniyordu, gelen: %v", err)
	}
}

func TestYuklemeAyniTipteCakisma(t *testing.T) {
	repo := yeniTestRepo()
	svc := NewYuklemeService(testConfig(), repo, &mockNotifier{}, zap.NewNop())
	ctx := context.Background()

	aktif := &model.YuklemeIsi{DosyaTipi: model.YuklemeTipiOgrenci, DosyaAdi: "eski.xlsx", Durum: model.YuklemeIsleniyor}
	if err := repo.Yukleme.Create(ctx, aktif); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Baslat(ctx, model.YuklemeTipiOgrenci, "yeni.xlsx", "/tmp/yeni.xlsx", 100); !errors.Is(err, ErrAktifYuklemeVar) {
		t.Errorf("ErrAktifYuklemeVar bekleniyordu, gelen: %v", err)
	}

	// Farklı tip engellenmez; iş kuyruğa alınır
	yol := testXlsx(t, []string{"TC", "Ad Soyad", "E-posta"}, nil)
	if _, err := svc.Baslat(ctx, model.YuklemeTipiDanisman, "liste.xlsx", yol, 100); err != nil {
		t.Errorf("farklı tipte yükleme engellenmemeli: %v", err)
	}
}

func TestYuklemeOgrenciSatirlari(t *testing.T) {
	repo := yeniTestRepo()
	ctx := context.Background()

	danisman := &model.Kullanici{TCKimlikNo: "11111111111", KullaniciAdi: "hoca",
		AdSoyad: "Hoca", Eposta: "hoca@example.edu.tr", Rol: model.RolDanisman}
	if err := repo.Kullanici.Create(ctx, danisman); err != nil {
		t.Fatal(err)
	}

	yol := testXlsx(t,
		[]string{"TC", "Ad Soyad", "Öğrenci No", "Fakülte", "Sınıf", "Danışman TC"},
		[][]interface{}{
			{"22222222222", "Ali Veli", "20210001", "Mühendislik", "3", "11111111111"},
			{"33333333333", "Ayşe Can", "20210002", "Mühendislik", "2", ""},
			{"22222222222", "Ali Tekrar", "20210003", "Mühendislik", "3", ""}, // mükerrer TC
			{"123", "Kısa TC", "20210004", "Mühendislik", "1", ""},            // geçersiz TC
		})

	svc, is := isKur(t, repo, model.YuklemeTipiOgrenci)
	svc.isle(ctx, is.IsID, model.YuklemeTipiOgrenci, yol)

	sonuc, err := repo.Yukleme.GetByID(ctx, is.IsID)
	if err != nil {
		t.Fatal(err)
	}
	if sonuc.Durum != model.YuklemeTamamlandi {
		t.Fatalf("durum = %s, beklenen %s", sonuc.Durum, model.YuklemeTamamlandi)
	}
	if sonuc.ToplamSatir != 4 || sonuc.BasariliSatir != 2 || sonuc.HataliSatir != 2 {
		t.Errorf("sayaçlar beklenen gibi değil: toplam=%d başarılı=%d hatalı=%d",
			sonuc.ToplamSatir, sonuc.BasariliSatir, sonuc.HataliSatir)
	}

	// Başarılı satır kullanıcıya dönüşmüş, danışman bağlanmış olmalı
	ali, err := repo.Kullanici.GetByTCKimlikNo(ctx, "22222222222")
	if err != nil {
		t.Fatalf("öğrenci içe aktarılmamış: %v", err)
	}
	if ali.KullaniciAdi != "20210001" || ali.Eposta != "20210001@ogr.example.edu.tr" {
		t.Errorf("türetilmiş alanlar yanlış: adi=%s eposta=%s", ali.KullaniciAdi, ali.Eposta)
	}
	if ali.DanismanID == nil || *ali.DanismanID != danisman.KullaniciID {
		t.Error("danışman bağlantısı kurulmamış")
	}
	if ali.SifreHash == "" {
		t.Error("ilk parola atanmış olmalı")
	}

	// Mükerrer satır ilk kaydı ezmemeli
	if ali.AdSoyad != "Ali Veli" {
		t.Errorf("mükerrer satır ilk kaydı değiştirmiş: %s", ali.AdSoyad)
	}
}

func TestYuklemeMevcutKullaniciGuncellenir(t *testing.T) {
	repo := yeniTestRepo()
	ctx := context.Background()

	mevcut := &model.Kullanici{TCKimlikNo: "22222222222", KullaniciAdi: "20210001",
		AdSoyad: "Eski Ad", Eposta: "eski@ogr.example.edu.tr", Rol: model.RolOgrenci,
		OgrenciNo: "20210001", SifreHash: "mevcut-hash"}
	if err := repo.Kullanici.Create(ctx, mevcut); err != nil {
		t.Fatal(err)
	}

	yol := testXlsx(t,
		[]string{"TC", "Ad Soyad", "Öğrenci No", "Fakülte", "Sınıf"},
		[][]interface{}{{"22222222222", "Yeni Ad", "20210001", "Mimarlık", "4"}})

	svc, is := isKur(t, repo, model.YuklemeTipiOgrenci)
	svc.isle(ctx, is.IsID, model.YuklemeTipiOgrenci, yol)

	k, err := repo.Kullanici.GetByTCKimlikNo(ctx, "22222222222")
	if err != nil {
		t.Fatal(err)
	}
	if k.AdSoyad != "Yeni Ad" || k.Fakulte != "Mimarlık" {
		t.Errorf("güncelleme uygulanmamış: %+v", k)
	}
	if k.SifreHash != "mevcut-hash" {
		t.Error("mevcut kullanıcının parolası sıfırlanmamalı")
	}
}

func TestYuklemeCapSatirlari(t *testing.T) {
	repo := yeniTestRepo()
	ctx := context.Background()

	ogrenci := &model.Kullanici{TCKimlikNo: "22222222222", KullaniciAdi: "20210001",
		AdSoyad: "Ali Veli", Eposta: "a@ogr.example.edu.tr", Rol: model.RolOgrenci}
	if err := repo.Kullanici.Create(ctx, ogrenci); err != nil {
		t.Fatal(err)
	}

	yol := testXlsx(t,
		[]string{"Öğrenci TC", "Fakülte", "Bölüm", "Danışman TC"},
		[][]interface{}{
			{"22222222222", "İktisat", "İşletme", ""},
			{"99999999999", "İktisat", "İşletme", ""}, // kayıtsız öğrenci
		})

	svc, is := isKur(t, repo, model.YuklemeTipiCap)
	svc.isle(ctx, is.IsID, model.YuklemeTipiCap, yol)

	sonuc, _ := repo.Yukleme.GetByID(ctx, is.IsID)
	if sonuc.BasariliSatir != 1 || sonuc.HataliSatir != 1 {
		t.Errorf("sayaçlar: başarılı=%d hatalı=%d", sonuc.BasariliSatir, sonuc.HataliSatir)
	}

	caplar, err := repo.Cap.ListByOgrenci(ctx, ogrenci.KullaniciID)
	if err != nil || len(caplar) != 1 {
		t.Fatalf("bir ÇAP kaydı bekleniyordu: %v, %d", err, len(caplar))
	}
	if caplar[0].Fakulte != "İktisat" || caplar[0].Bolum != "İşletme" {
		t.Errorf("ÇAP alanları yanlış: %+v", caplar[0])
	}
}

func TestYuklemeIptal(t *testing.T) {
	repo := yeniTestRepo()
	ctx := context.Background()

	var satirlar [][]interface{}
	for i := 0; i < 10; i++ {
		satirlar = append(satirlar, []interface{}{
			fmt.Sprintf("%011d", 10000000000+i), fmt.Sprintf("Öğrenci %d", i),
			fmt.Sprintf("2021%04d", i), "Mühendislik", "1",
		})
	}
	yol := testXlsx(t, []string{"TC", "Ad Soyad", "Öğrenci No", "Fakülte", "Sınıf"}, satirlar)

	svc, is := isKur(t, repo, model.YuklemeTipiOgrenci)

	// Bayrak işleme başlamadan dikilirse hiçbir satır yazılmaz
	svc.mu.Lock()
	svc.iptal[is.IsID] = true
	svc.mu.Unlock()

	svc.isle(ctx, is.IsID, model.YuklemeTipiOgrenci, yol)

	sonuc, _ := repo.Yukleme.GetByID(ctx, is.IsID)
	if sonuc.Durum != model.YuklemeIptal {
		t.Fatalf("durum = %s, beklenen %s", sonuc.Durum, model.YuklemeIptal)
	}
	if sonuc.IslenenSatir != 0 {
		t.Errorf("iptal sonrası satır işlenmemeli: %d", sonuc.IslenenSatir)
	}

	if _, total, err := repo.Kullanici.List(ctx, model.RolOgrenci, "", 0, 100); err != nil || total != 0 {
		t.Errorf("iptal sonrası kullanıcı yazılmamalı: toplam=%d err=%v", total, err)
	}
}

func TestYuklemeIptalSonuclanmisIs(t *testing.T) {
	repo := yeniTestRepo()
	svc := NewYuklemeService(testConfig(), repo, &mockNotifier{}, zap.NewNop())
	ctx := context.Background()

	is := &model.YuklemeIsi{DosyaTipi: model.YuklemeTipiOgrenci, DosyaAdi: "x.xlsx", Durum: model.YuklemeTamamlandi}
	if err := repo.Yukleme.Create(ctx, is); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Iptal(ctx, is.IsID); !errors.Is(err, ErrYuklemeBitti) {
		t.Errorf("ErrYuklemeBitti bekleniyordu, gelen: %v", err)
	}
}

func TestYuklemeIlerlemeYayini(t *testing.T) {
	repo := yeniTestRepo()
	notifier := &mockNotifier{}
	svc := NewYuklemeService(testConfig(), repo, notifier, zap.NewNop()).(*yuklemeService)
	ctx := context.Background()

	var satirlar [][]interface{}
	for i := 0; i < 30; i++ {
		satirlar = append(satirlar, []interface{}{
			fmt.Sprintf("%011d", 20000000000+i), fmt.Sprintf("Öğrenci %d", i),
			fmt.Sprintf("2022%04d", i), "Mühendislik", "1",
		})
	}
	yol := testXlsx(t, []string{"TC", "Ad Soyad", "Öğrenci No", "Fakülte", "Sınıf"}, satirlar)

	is := &model.YuklemeIsi{DosyaTipi: model.YuklemeTipiOgrenci, DosyaAdi: "liste.xlsx", Durum: model.YuklemeKuyrukta}
	if err := repo.Yukleme.Create(ctx, is); err != nil {
		t.Fatal(err)
	}

	svc.isle(ctx, is.IsID, model.YuklemeTipiOgrenci, yol)

	// 25. satırda bir ilerleme, bitişte bir tamamlandı mesajı beklenir
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	var progress, completed int
	for _, m := range notifier.mesajlar {
		switch m.Type {
		case "progress":
			progress++
		case "completed":
			completed++
		}
		if m.DosyaID != is.IsID {
			t.Errorf("mesaj yanlış işe bağlı: %s", m.DosyaID)
		}
	}
	if progress != 1 || completed != 1 {
		t.Errorf("yayın sayıları: progress=%d completed=%d", progress, completed)
	}
}
