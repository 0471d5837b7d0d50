package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/bugra455/stajuygulamasi-sub001/config"
	"github.com/bugra455/stajuygulamasi-sub001/internal/dto"
	"github.com/bugra455/stajuygulamasi-sub001/internal/model"
	"github.com/bugra455/stajuygulamasi-sub001/internal/repository"
	"github.com/bugra455/stajuygulamasi-sub001/pkg/ws"
)

// ── Toplu içe aktarma iş hataları ──

var (
	ErrYuklemeYok        = errors.New("yükleme işi bulunamadı")
	ErrGecersizDosyaTipi = errors.New("geçersiz dosya tipi: ogrenci, danisman veya cap olmalıdır")
	ErrGecersizUzanti    = errors.New("yalnızca .xlsx dosyaları kabul edilir")
	ErrDosyaCokBuyuk     = errors.New("dosya boyutu izin verilen sınırı aşıyor")
	ErrAktifYuklemeVar   = errors.New("aynı dosya tipinde devam eden bir yükleme var")
	ErrYuklemeBitti      = errors.New("yükleme işi zaten sonuçlanmış")
)

// ogrenciEpostaSablonu öğrenci numarasından kurumsal e-posta türetir
const ogrenciEpostaSablonu = "%s@ogr.example.edu.tr"

// ilerlemeAraligi kaç satırda bir ilerleme yayını yapılacağı
const ilerlemeAraligi = 25

// YuklemeService toplu içe aktarma iş arayüzü
type YuklemeService interface {
	Baslat(ctx context.Context, dosyaTipi, dosyaAdi, dosyaYolu string, boyut int64) (*dto.YuklemeResponse, error)
	Iptal(ctx context.Context, isID string) (*dto.YuklemeResponse, error)
	GetByID(ctx context.Context, isID string) (*dto.YuklemeResponse, error)
	List(ctx context.Context, req *dto.PaginationRequest) ([]dto.YuklemeResponse, int64, error)
}

type yuklemeService struct {
	cfg      *config.Config
	repo     *repository.Repository
	notifier Notifier
	logger   *zap.Logger

	mu    sync.Mutex
	iptal map[string]bool // iş kimliği → iptal istendi bayrağı
}

// NewYuklemeService YuklemeService örneği oluşturur
func NewYuklemeService(cfg *config.Config, repo *repository.Repository, notifier Notifier, logger *zap.Logger) YuklemeService {
	return &yuklemeService{
		cfg:      cfg,
		repo:     repo,
		notifier: notifier,
		logger:   logger,
		iptal:    make(map[string]bool),
	}
}

// Baslat dosyayı doğrular, işi kuyruğa alır ve arka planda işler.
// Aynı tipte aktif iş varken yeni yükleme reddedilir.
func (s *yuklemeService) Baslat(ctx context.Context, dosyaTipi, dosyaAdi, dosyaYolu string, boyut int64) (*dto.YuklemeResponse, error) {
	switch dosyaTipi {
	case model.YuklemeTipiOgrenci, model.YuklemeTipiDanisman, model.YuklemeTipiCap:
	default:
		return nil, ErrGecersizDosyaTipi
	}
	if !strings.EqualFold(filepath.Ext(dosyaAdi), ".xlsx") {
		return nil, ErrGecersizUzanti
	}
	if boyut > s.cfg.Upload.MaxBytes {
		return nil, ErrDosyaCokBuyuk
	}

	aktif, err := s.repo.Yukleme.GetAktifByTip(ctx, dosyaTipi)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if aktif != nil {
		return nil, ErrAktifYuklemeVar
	}

	is := &model.YuklemeIsi{
		DosyaTipi: dosyaTipi,
		DosyaAdi:  dosyaAdi,
		Durum:     model.YuklemeKuyrukta,
	}
	if err := s.repo.Yukleme.Create(ctx, is); err != nil {
		s.logger.Error("yükleme işi oluşturulamadı", zap.Error(err))
		return nil, err
	}

	// İstek bağlamından bağımsız çalışır; iş istek bittikten sonra da sürer
	go s.isle(context.Background(), is.IsID, dosyaTipi, dosyaYolu)

	return toYuklemeResponse(is), nil
}

// Iptal çalışan işe iptal bayrağı diker; kuyruktaki işi doğrudan kapatır.
// İşleyici bayrağı bir sonraki satırda görür ve başka satır yazmaz.
func (s *yuklemeService) Iptal(ctx context.Context, isID string) (*dto.YuklemeResponse, error) {
	is, err := s.getIs(ctx, isID)
	if err != nil {
		return nil, err
	}
	if !is.Aktif() {
		return nil, ErrYuklemeBitti
	}

	s.mu.Lock()
	s.iptal[isID] = true
	s.mu.Unlock()

	if is.Durum == model.YuklemeKuyrukta {
		is.Durum = model.YuklemeIptal
		if err := s.repo.Yukleme.Update(ctx, is); err != nil {
			return nil, err
		}
	}

	return toYuklemeResponse(is), nil
}

func (s *yuklemeService) GetByID(ctx context.Context, isID string) (*dto.YuklemeResponse, error) {
	is, err := s.getIs(ctx, isID)
	if err != nil {
		return nil, err
	}
	return toYuklemeResponse(is), nil
}

func (s *yuklemeService) List(ctx context.Context, req *dto.PaginationRequest) ([]dto.YuklemeResponse, int64, error) {
	isler, total, err := s.repo.Yukleme.List(ctx, req.Offset(), req.Limit())
	if err != nil {
		return nil, 0, err
	}
	result := make([]dto.YuklemeResponse, 0, len(isler))
	for i := range isler {
		result = append(result, *toYuklemeResponse(&isler[i]))
	}
	return result, total, nil
}

// ────────────────────── Arka plan işleme ──────────────────────

func (s *yuklemeService) isle(ctx context.Context, isID, dosyaTipi, dosyaYolu string) {
	defer func() {
		s.mu.Lock()
		delete(s.iptal, isID)
		s.mu.Unlock()
	}()

	is, err := s.getIs(ctx, isID)
	if err != nil {
		s.logger.Error("yükleme işi okunamadı", zap.String("is_id", isID), zap.Error(err))
		return
	}

	f, err := excelize.OpenFile(dosyaYolu)
	if err != nil {
		s.bitir(ctx, is, model.YuklemeBasarisiz, []string{"dosya açılamadı: " + err.Error()})
		return
	}
	defer f.Close()

	sayfa := f.GetSheetName(0)
	satirlar, err := f.GetRows(sayfa)
	if err != nil {
		s.bitir(ctx, is, model.YuklemeBasarisiz, []string{"satırlar okunamadı: " + err.Error()})
		return
	}
	if len(satirlar) <= 1 {
		s.bitir(ctx, is, model.YuklemeBasarisiz, []string{"dosyada işlenecek satır yok"})
		return
	}

	// İlk satır başlıktır
	veriler := satirlar[1:]
	is.Durum = model.YuklemeIsleniyor
	is.ToplamSatir = len(veriler)
	if err := s.repo.Yukleme.Update(ctx, is); err != nil {
		s.logger.Error("yükleme işi güncellenemedi", zap.String("is_id", isID), zap.Error(err))
		return
	}

	var hatalar []string
	gorulenTC := make(map[string]int) // TC → ilk görüldüğü satır

	for i, satir := range veriler {
		if s.iptalIstendi(isID) {
			is.Hatalar = hatalariPaketle(hatalar)
			s.bitir(ctx, is, model.YuklemeIptal, hatalar)
			return
		}

		satirNo := i + 2 // başlık dahil gerçek satır numarası
		if err := s.satirIsle(ctx, dosyaTipi, satir, gorulenTC, satirNo); err != nil {
			is.HataliSatir++
			hatalar = append(hatalar, fmt.Sprintf("satır %d: %v", satirNo, err))
		} else {
			is.BasariliSatir++
		}
		is.IslenenSatir++

		if is.IslenenSatir%ilerlemeAraligi == 0 {
			if err := s.repo.Yukleme.Update(ctx, is); err != nil {
				s.logger.Warn("ilerleme kaydedilemedi", zap.String("is_id", isID), zap.Error(err))
			}
			s.ilerlemeYayinla(is, "progress", "işleniyor")
		}
	}

	s.bitir(ctx, is, model.YuklemeTamamlandi, hatalar)
}

// satirIsle tek satırı tipine göre ayrıştırır ve kullanıcı/ÇAP kaydına işler
func (s *yuklemeService) satirIsle(ctx context.Context, dosyaTipi string, satir []string, gorulenTC map[string]int, satirNo int) error {
	switch dosyaTipi {
	case model.YuklemeTipiOgrenci:
		return s.ogrenciSatiri(ctx, satir, gorulenTC, satirNo)
	case model.YuklemeTipiDanisman:
		return s.danismanSatiri(ctx, satir, gorulenTC, satirNo)
	case model.YuklemeTipiCap:
		return s.capSatiri(ctx, satir)
	}
	return ErrGecersizDosyaTipi
}

// Öğrenci sütunları: TC, ad soyad, öğrenci no, fakülte, sınıf, [danışman TC]
func (s *yuklemeService) ogrenciSatiri(ctx context.Context, satir []string, gorulenTC map[string]int, satirNo int) error {
	if len(satir) < 5 {
		return errors.New("eksik sütun: TC, ad soyad, öğrenci no, fakülte, sınıf bekleniyor")
	}
	tc := strings.TrimSpace(satir[0])
	adSoyad := strings.TrimSpace(satir[1])
	ogrenciNo := strings.TrimSpace(satir[2])
	if err := tcDogrula(tc); err != nil {
		return err
	}
	if adSoyad == "" || ogrenciNo == "" {
		return errors.New("ad soyad ve öğrenci no boş olamaz")
	}
	if ilk, ok := gorulenTC[tc]; ok {
		return fmt.Errorf("TC kimlik no dosyada mükerrer (ilk geçtiği satır %d)", ilk)
	}
	gorulenTC[tc] = satirNo

	var danismanID *string
	if len(satir) > 5 && strings.TrimSpace(satir[5]) != "" {
		danisman, err := s.repo.Kullanici.GetByTCKimlikNo(ctx, strings.TrimSpace(satir[5]))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("danışman TC kimlik no sistemde kayıtlı değil")
			}
			return err
		}
		danismanID = &danisman.KullaniciID
	}

	kullanici := &model.Kullanici{
		TCKimlikNo:   tc,
		KullaniciAdi: ogrenciNo,
		AdSoyad:      adSoyad,
		Eposta:       fmt.Sprintf(ogrenciEpostaSablonu, ogrenciNo),
		Rol:          model.RolOgrenci,
		OgrenciNo:    ogrenciNo,
		Fakulte:      strings.TrimSpace(satir[3]),
		Sinif:        strings.TrimSpace(satir[4]),
		DanismanID:   danismanID,
	}
	return s.kullaniciUpsert(ctx, kullanici)
}

// Danışman sütunları: TC, ad soyad, e-posta
func (s *yuklemeService) danismanSatiri(ctx context.Context, satir []string, gorulenTC map[string]int, satirNo int) error {
	if len(satir) < 3 {
		return errors.New("eksik sütun: TC, ad soyad, e-posta bekleniyor")
	}
	tc := strings.TrimSpace(satir[0])
	adSoyad := strings.TrimSpace(satir[1])
	eposta := strings.TrimSpace(satir[2])
	if err := tcDogrula(tc); err != nil {
		return err
	}
	if adSoyad == "" || !strings.Contains(eposta, "@") {
		return errors.New("ad soyad boş olamaz, e-posta geçerli olmalıdır")
	}
	if ilk, ok := gorulenTC[tc]; ok {
		return fmt.Errorf("TC kimlik no dosyada mükerrer (ilk geçtiği satır %d)", ilk)
	}
	gorulenTC[tc] = satirNo

	kullanici := &model.Kullanici{
		TCKimlikNo:   tc,
		KullaniciAdi: eposta[:strings.Index(eposta, "@")],
		AdSoyad:      adSoyad,
		Eposta:       eposta,
		Rol:          model.RolDanisman,
	}
	return s.kullaniciUpsert(ctx, kullanici)
}

// ÇAP sütunları: öğrenci TC, fakülte, bölüm, [danışman TC]
func (s *yuklemeService) capSatiri(ctx context.Context, satir []string) error {
	if len(satir) < 3 {
		return errors.New("eksik sütun: öğrenci TC, fakülte, bölüm bekleniyor")
	}
	ogrenciTC := strings.TrimSpace(satir[0])
	fakulte := strings.TrimSpace(satir[1])
	bolum := strings.TrimSpace(satir[2])
	if fakulte == "" || bolum == "" {
		return errors.New("fakülte ve bölüm boş olamaz")
	}

	ogrenci, err := s.repo.Kullanici.GetByTCKimlikNo(ctx, ogrenciTC)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("öğrenci TC kimlik no sistemde kayıtlı değil")
		}
		return err
	}

	var danismanID *string
	if len(satir) > 3 && strings.TrimSpace(satir[3]) != "" {
		danisman, err := s.repo.Kullanici.GetByTCKimlikNo(ctx, strings.TrimSpace(satir[3]))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("danışman TC kimlik no sistemde kayıtlı değil")
			}
			return err
		}
		danismanID = &danisman.KullaniciID
	}

	cap := &model.CapUser{
		OgrenciID:  ogrenci.KullaniciID,
		Fakulte:    fakulte,
		Bolum:      bolum,
		DanismanID: danismanID,
	}
	return s.repo.Cap.Create(ctx, cap)
}

// kullaniciUpsert TC üzerinden eşleşen kaydı günceller, yoksa oluşturur.
// İlk parola TC kimlik numarasıdır; kullanıcı girişte değiştirmelidir.
func (s *yuklemeService) kullaniciUpsert(ctx context.Context, yeni *model.Kullanici) error {
	mevcut, err := s.repo.Kullanici.GetByTCKimlikNo(ctx, yeni.TCKimlikNo)
	switch {
	case err == nil:
		mevcut.AdSoyad = yeni.AdSoyad
		mevcut.Eposta = yeni.Eposta
		if yeni.OgrenciNo != "" {
			mevcut.OgrenciNo = yeni.OgrenciNo
		}
		if yeni.Fakulte != "" {
			mevcut.Fakulte = yeni.Fakulte
		}
		if yeni.Sinif != "" {
			mevcut.Sinif = yeni.Sinif
		}
		if yeni.DanismanID != nil {
			mevcut.DanismanID = yeni.DanismanID
		}
		return s.repo.Kullanici.Update(ctx, mevcut)

	case errors.Is(err, gorm.ErrRecordNotFound):
		hash, err := bcrypt.GenerateFromPassword([]byte(yeni.TCKimlikNo), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		yeni.SifreHash = string(hash)
		return s.repo.Kullanici.Create(ctx, yeni)

	default:
		return err
	}
}

// bitir işi terminal duruma yazar ve son durumu yayınlar
func (s *yuklemeService) bitir(ctx context.Context, is *model.YuklemeIsi, durum string, hatalar []string) {
	is.Durum = durum
	is.Hatalar = hatalariPaketle(hatalar)
	if err := s.repo.Yukleme.Update(ctx, is); err != nil {
		s.logger.Error("yükleme işi sonlandırılamadı", zap.String("is_id", is.IsID), zap.Error(err))
	}

	switch durum {
	case model.YuklemeTamamlandi:
		s.ilerlemeYayinla(is, "completed", "içe aktarma tamamlandı")
	case model.YuklemeBasarisiz:
		s.ilerlemeYayinla(is, "failed", "içe aktarma başarısız")
	case model.YuklemeIptal:
		s.ilerlemeYayinla(is, "cancelled", "içe aktarma iptal edildi")
	}

	s.logger.Info("yükleme işi sonuçlandı",
		zap.String("is_id", is.IsID),
		zap.String("durum", durum),
		zap.Int("basarili", is.BasariliSatir),
		zap.Int("hatali", is.HataliSatir))
}

func (s *yuklemeService) ilerlemeYayinla(is *model.YuklemeIsi, tip, mesaj string) {
	if s.notifier == nil {
		return
	}
	yuzde := 0
	if is.ToplamSatir > 0 {
		yuzde = is.IslenenSatir * 100 / is.ToplamSatir
	}
	s.notifier.Broadcast(ws.Message{
		Type:    tip,
		DosyaID: is.IsID,
		Message: mesaj,
		Data: dto.YuklemeIlerleme{
			Yuzde:         yuzde,
			ToplamSatir:   is.ToplamSatir,
			IslenenSatir:  is.IslenenSatir,
			BasariliSatir: is.BasariliSatir,
			HataliSatir:   is.HataliSatir,
		},
	})
}

func (s *yuklemeService) iptalIstendi(isID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.iptal[isID]
}

func (s *yuklemeService) getIs(ctx context.Context, id string) (*model.YuklemeIsi, error) {
	is, err := s.repo.Yukleme.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrYuklemeYok
		}
		return nil, err
	}
	return is, nil
}

// tcDogrula TC kimlik numarasının 11 haneli sayı olduğunu kontrol eder
func tcDogrula(tc string) error {
	if len(tc) != 11 {
		return errors.New("TC kimlik no 11 haneli olmalıdır")
	}
	for _, r := range tc {
		if r < '0' || r > '9' {
			return errors.New("TC kimlik no yalnızca rakamlardan oluşmalıdır")
		}
	}
	return nil
}

func hatalariPaketle(hatalar []string) string {
	if len(hatalar) == 0 {
		return ""
	}
	b, err := json.Marshal(hatalar)
	if err != nil {
		return ""
	}
	return string(b)
}

func toYuklemeResponse(is *model.YuklemeIsi) *dto.YuklemeResponse {
	resp := &dto.YuklemeResponse{
		IsID:          is.IsID,
		DosyaTipi:     is.DosyaTipi,
		DosyaAdi:      is.DosyaAdi,
		Durum:         is.Durum,
		ToplamSatir:   is.ToplamSatir,
		IslenenSatir:  is.IslenenSatir,
		BasariliSatir: is.BasariliSatir,
		HataliSatir:   is.HataliSatir,
		CreatedAt:     is.CreatedAt.Format(time.RFC3339),
	}
	if is.Hatalar != "" {
		var hatalar []string
		if err := json.Unmarshal([]byte(is.Hatalar), &hatalar); err == nil {
			resp.Hatalar = hatalar
		}
	}
	return resp
}
