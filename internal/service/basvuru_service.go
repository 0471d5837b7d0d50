package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/bugra455/stajuygulamasi-sub001/config"
	"github.com/bugra455/stajuygulamasi-sub001/internal/dto"
	"github.com/bugra455/stajuygulamasi-sub001/internal/model"
	"github.com/bugra455/stajuygulamasi-sub001/internal/repository"
	"github.com/bugra455/stajuygulamasi-sub001/pkg/mailer"
	"github.com/bugra455/stajuygulamasi-sub001/pkg/redis"
)

// ── Staj başvurusu modülü iş hataları ──

var (
	ErrBasvuruYok               = errors.New("staj başvurusu bulunamadı")
	ErrBasvuruYetkisiz          = errors.New("bu başvuru üzerinde işlem yetkiniz yok")
	ErrRedSebebiZorunlu         = errors.New("red kararında sebep zorunludur")
	ErrDuzeltmePenceresiKapandi = errors.New("tarih düzeltme süresi doldu (onaydan sonra 5 gün)")
)

// DuzeltmePenceresi onay sonrası tarih düzeltmeye açık süre
const DuzeltmePenceresi = 5 * 24 * time.Hour

const tarihBicimi = "2006-01-02"

// BasvuruDosyalari başvuruyla yüklenen belgelerin kayıtlı yolları
type BasvuruDosyalari struct {
	Transkript   string
	HizmetDokumu string
	Sigorta      string
}

// BasvuruService staj başvurusu iş arayüzü
type BasvuruService interface {
	Create(ctx context.Context, ogrenciID string, req *dto.CreateBasvuruRequest, dosyalar BasvuruDosyalari) (*dto.BasvuruResponse, error)
	GetByID(ctx context.Context, callerID, callerRol, basvuruID string) (*dto.BasvuruResponse, error)
	ListByOgrenci(ctx context.Context, ogrenciID string, req *dto.BasvuruListRequest) ([]dto.BasvuruResponse, int64, error)
	ListForDanisman(ctx context.Context, danismanID string, req *dto.BasvuruListRequest) ([]dto.BasvuruResponse, int64, error)
	ListForKariyerMerkezi(ctx context.Context, req *dto.BasvuruListRequest) ([]dto.BasvuruResponse, int64, error)
	DanismanKarar(ctx context.Context, danismanID, basvuruID string, req *dto.KararRequest) (*dto.BasvuruResponse, error)
	KariyerMerkeziKarar(ctx context.Context, kullaniciID, basvuruID string, req *dto.KararRequest) (*dto.BasvuruResponse, error)
	Iptal(ctx context.Context, ogrenciID, basvuruID, sebep string) (*dto.BasvuruResponse, error)
	TarihDuzelt(ctx context.Context, ogrenciID, basvuruID string, req *dto.TarihDuzeltmeRequest) (*dto.BasvuruResponse, error)
	Delete(ctx context.Context, basvuruID string) error
}

type basvuruService struct {
	cfg    *config.Config
	repo   *repository.Repository
	otp    OTPStore
	posta  mailer.Mailer
	logger *zap.Logger
}

// NewBasvuruService BasvuruService örneği oluşturur
func NewBasvuruService(cfg *config.Config, repo *repository.Repository, otp OTPStore, posta mailer.Mailer, logger *zap.Logger) BasvuruService {
	return &basvuruService{cfg: cfg, repo: repo, otp: otp, posta: posta, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *basvuruService) Create(ctx context.Context, ogrenciID string, req *dto.CreateBasvuruRequest, dosyalar BasvuruDosyalari) (*dto.BasvuruResponse, error) {
	baslangic, bitis, hatalar := tarihVeGunDogrula(req.StajTipi, req.BaslangicTarihi, req.BitisTarihi, req.SeciliGunler, req.ToplamGun)
	if len(hatalar) > 0 {
		return nil, &ValidationError{Fields: hatalar}
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

	basvuru := &model.StajBasvurusu{
		OgrenciID:         ogrenciID,
		KurumAdi:          req.KurumAdi,
		KurumAdresi:       req.KurumAdresi,
		YetkiliAdSoyad:    req.YetkiliAdSoyad,
		YetkiliEposta:     req.YetkiliEposta,
		YetkiliTelefon:    req.YetkiliTelefon,
		StajTipi:          req.StajTipi,
		BaslangicTarihi:   baslangic,
		BitisTarihi:       bitis,
		SeciliGunler:      model.IntArray(req.SeciliGunler),
		ToplamGun:         req.ToplamGun,
		SaglikSigortasi:   req.SaglikSigortasi,
		DanismanEposta:    danismanEposta,
		TranskriptDosyasi: dosyalar.Transkript,
		HizmetDokumu:      dosyalar.HizmetDokumu,
		SigortaDosyasi:    dosyalar.Sigorta,
		OnayDurumu:        model.DurumDanismanOnayiBekliyor,
		CapID:             capID,
	}

	kayit := &model.IslemKaydi{
		KullaniciID: &ogrenciID,
		IslemTipi:   model.IslemOlusturma,
		KayitTipi:   model.KayitStajBasvurusu,
		Aciklama:    fmt.Sprintf("%s için staj başvurusu oluşturuldu", req.KurumAdi),
	}

	// Başvuru ve denetim kaydı tek transaksiyonda yazılır
	if err := s.repo.Basvuru.CreateWithLog(ctx, basvuru, kayit); err != nil {
		s.logger.Error("başvuru oluşturulamadı", zap.Error(err))
		return nil, err
	}

	// Danışmana bildirim; e-posta hatası başvuruyu geri almaz
	if s.posta != nil {
		body := fmt.Sprintf(
			"Sayın Danışman,\n\n%s (%s) yeni bir staj başvurusu oluşturdu.\nKurum: %s\nTarih: %s - %s\n\nBaşvuruyu sistem üzerinden inceleyebilirsiniz.",
			ogrenci.AdSoyad, ogrenci.OgrenciNo, req.KurumAdi, req.BaslangicTarihi, req.BitisTarihi,
		)
		if err := s.posta.Send(danismanEposta, "Yeni Staj Başvurusu", body); err != nil {
			s.logger.Warn("danışman bildirimi gönderilemedi",
				zap.String("eposta", danismanEposta), zap.Error(err))
		}
	}

	basvuru.Ogrenci = ogrenci
	return toBasvuruResponse(basvuru), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *basvuruService) GetByID(ctx context.Context, callerID, callerRol, basvuruID string) (*dto.BasvuruResponse, error) {
	basvuru, err := s.getBasvuru(ctx, basvuruID)
	if err != nil {
		return nil, err
	}

	switch callerRol {
	case model.RolOgrenci:
		if basvuru.OgrenciID != callerID {
			return nil, ErrBasvuruYetkisiz
		}
	case model.RolDanisman:
		danisman, err := s.repo.Kullanici.GetByID(ctx, callerID)
		if err != nil {
			return nil, err
		}
		if basvuru.DanismanEposta != danisman.Eposta {
			return nil, ErrBasvuruYetkisiz
		}
	}
	// kariyer merkezi ve admin tüm başvuruları görebilir

	return toBasvuruResponse(basvuru), nil
}

// ────────────────────── Listeler ──────────────────────

func (s *basvuruService) ListByOgrenci(ctx context.Context, ogrenciID string, req *dto.BasvuruListRequest) ([]dto.BasvuruResponse, int64, error) {
	basvurular, total, err := s.repo.Basvuru.ListByOgrenci(ctx, ogrenciID, req.Offset(), req.Limit())
	if err != nil {
		return nil, 0, err
	}
	return toBasvuruResponseList(basvurular), total, nil
}

func (s *basvuruService) ListForDanisman(ctx context.Context, danismanID string, req *dto.BasvuruListRequest) ([]dto.BasvuruResponse, int64, error) {
	danisman, err := s.repo.Kullanici.GetByID(ctx, danismanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrKullaniciYok
		}
		return nil, 0, err
	}

	basvurular, total, err := s.repo.Basvuru.ListByDanismanEposta(ctx, danisman.Eposta, req.Durum, req.Offset(), req.Limit())
	if err != nil {
		return nil, 0, err
	}
	return toBasvuruResponseList(basvurular), total, nil
}

func (s *basvuruService) ListForKariyerMerkezi(ctx context.Context, req *dto.BasvuruListRequest) ([]dto.BasvuruResponse, int64, error) {
	basvurular, total, err := s.repo.Basvuru.ListByDurum(ctx, req.Durum, req.Offset(), req.Limit())
	if err != nil {
		return nil, 0, err
	}
	return toBasvuruResponseList(basvurular), total, nil
}

// ────────────────────── DanismanKarar ──────────────────────

func (s *basvuruService) DanismanKarar(ctx context.Context, danismanID, basvuruID string, req *dto.KararRequest) (*dto.BasvuruResponse, error) {
	danisman, err := s.repo.Kullanici.GetByID(ctx, danismanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrKullaniciYok
		}
		return nil, err
	}

	basvuru, err := s.getBasvuru(ctx, basvuruID)
	if err != nil {
		return nil, err
	}
	if basvuru.DanismanEposta != danisman.Eposta {
		return nil, ErrBasvuruYetkisiz
	}

	return s.kararUygula(ctx, basvuru, model.RolDanisman, danismanID, req)
}

// ────────────────────── KariyerMerkeziKarar ──────────────────────

func (s *basvuruService) KariyerMerkeziKarar(ctx context.Context, kullaniciID, basvuruID string, req *dto.KararRequest) (*dto.BasvuruResponse, error) {
	basvuru, err := s.getBasvuru(ctx, basvuruID)
	if err != nil {
		return nil, err
	}

	resp, err := s.kararUygula(ctx, basvuru, model.RolKariyerMerkezi, kullaniciID, req)
	if err != nil {
		return nil, err
	}

	// Şirket aşamasına geçtiyse yetkiliye tek kullanımlık kod gönderilir
	if basvuru.OnayDurumu == model.DurumSirketOnayiBekliyor {
		s.sirketKoduGonder(ctx, basvuru)
	}

	return resp, nil
}

// ────────────────────── Iptal ──────────────────────

func (s *basvuruService) Iptal(ctx context.Context, ogrenciID, basvuruID, sebep string) (*dto.BasvuruResponse, error) {
	basvuru, err := s.getBasvuru(ctx, basvuruID)
	if err != nil {
		return nil, err
	}
	if basvuru.OgrenciID != ogrenciID {
		return nil, ErrBasvuruYetkisiz
	}

	yeniDurum, err := model.SonrakiDurum(basvuru.OnayDurumu, model.RolOgrenci, model.KararRed)
	if err != nil {
		return nil, err
	}

	basvuru.OnayDurumu = yeniDurum
	basvuru.RedSebebi = sebep

	kayit := &model.IslemKaydi{
		KullaniciID: &ogrenciID,
		IslemTipi:   model.IslemIptal,
		KayitTipi:   model.KayitStajBasvurusu,
		Aciklama:    sebep,
	}

	if err := s.repo.Basvuru.UpdateWithLog(ctx, basvuru, kayit); err != nil {
		s.logger.Error("başvuru iptal edilemedi", zap.String("id", basvuruID), zap.Error(err))
		return nil, err
	}

	return toBasvuruResponse(basvuru), nil
}

// ────────────────────── TarihDuzelt ──────────────────────

func (s *basvuruService) TarihDuzelt(ctx context.Context, ogrenciID, basvuruID string, req *dto.TarihDuzeltmeRequest) (*dto.BasvuruResponse, error) {
	basvuru, err := s.getBasvuru(ctx, basvuruID)
	if err != nil {
		return nil, err
	}
	if basvuru.OgrenciID != ogrenciID {
		return nil, ErrBasvuruYetkisiz
	}
	if basvuru.OnayDurumu != model.DurumOnaylandi {
		return nil, model.ErrGecersizGecis
	}

	// Pencere, onayın düştüğü andan ölçülür; alakasız alan
	// güncellemeleri süreyi sıfırlayamaz.
	if basvuru.OnaylanmaTarihi == nil || time.Since(*basvuru.OnaylanmaTarihi) > DuzeltmePenceresi {
		return nil, ErrDuzeltmePenceresiKapandi
	}

	baslangic, bitis, hatalar := tarihVeGunDogrula(basvuru.StajTipi, req.BaslangicTarihi, req.BitisTarihi, req.SeciliGunler, req.ToplamGun)
	if len(hatalar) > 0 {
		return nil, &ValidationError{Fields: hatalar}
	}

	basvuru.BaslangicTarihi = baslangic
	basvuru.BitisTarihi = bitis
	basvuru.SeciliGunler = model.IntArray(req.SeciliGunler)
	basvuru.ToplamGun = req.ToplamGun

	kayit := &model.IslemKaydi{
		KullaniciID: &ogrenciID,
		IslemTipi:   model.IslemGuncelleme,
		KayitTipi:   model.KayitStajBasvurusu,
		Aciklama:    fmt.Sprintf("staj tarihleri güncellendi: %s - %s", req.BaslangicTarihi, req.BitisTarihi),
	}

	if err := s.repo.Basvuru.UpdateWithLog(ctx, basvuru, kayit); err != nil {
		s.logger.Error("tarih düzeltme kaydedilemedi", zap.String("id", basvuruID), zap.Error(err))
		return nil, err
	}

	return toBasvuruResponse(basvuru), nil
}

// ────────────────────── Delete ──────────────────────

func (s *basvuruService) Delete(ctx context.Context, basvuruID string) error {
	if _, err := s.getBasvuru(ctx, basvuruID); err != nil {
		return err
	}
	return s.repo.Basvuru.Delete(ctx, basvuruID)
}

// ── Yardımcılar ──

func (s *basvuruService) getBasvuru(ctx context.Context, id string) (*model.StajBasvurusu, error) {
	basvuru, err := s.repo.Basvuru.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBasvuruYok
		}
		s.logger.Error("başvuru sorgusu başarısız", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return basvuru, nil
}

// kararUygula durum geçişini ve karar alanını tek yerden işler
func (s *basvuruService) kararUygula(ctx context.Context, basvuru *model.StajBasvurusu, aktor, kullaniciID string, req *dto.KararRequest) (*dto.BasvuruResponse, error) {
	if req.Karar == model.KararRed && req.RedSebebi == "" {
		return nil, ErrRedSebebiZorunlu
	}

	yeniDurum, err := model.SonrakiDurum(basvuru.OnayDurumu, aktor, req.Karar)
	if err != nil {
		return nil, err
	}

	basvuru.OnayDurumu = yeniDurum
	switch aktor {
	case model.RolDanisman:
		basvuru.DanismanOnay = req.Karar
	case model.RolKariyerMerkezi:
		basvuru.KariyerMerkeziOnay = req.Karar
	}
	if req.Karar == model.KararRed {
		basvuru.RedSebebi = req.RedSebebi
	}

	islemTipi := model.IslemOnay
	if req.Karar == model.KararRed {
		islemTipi = model.IslemRed
	}
	kayit := &model.IslemKaydi{
		KullaniciID: &kullaniciID,
		IslemTipi:   islemTipi,
		KayitTipi:   model.KayitStajBasvurusu,
		Aciklama:    req.RedSebebi,
	}

	if err := s.repo.Basvuru.UpdateWithLog(ctx, basvuru, kayit); err != nil {
		s.logger.Error("karar kaydedilemedi", zap.String("id", basvuru.BasvuruID), zap.Error(err))
		return nil, err
	}

	return toBasvuruResponse(basvuru), nil
}

// sirketKoduGonder şirket yetkilisine tek kullanımlık kod üretip yollar
func (s *basvuruService) sirketKoduGonder(ctx context.Context, basvuru *model.StajBasvurusu) {
	govde := fmt.Sprintf(
		"Sayın %s,\n\nKurumunuzda staj yapmak üzere onay bekleyen bir başvuru bulunmaktadır.\n\nBaşvuruyu görüntülemek ve karar vermek için tek kullanımlık kodunuz: %%s\n\nKod tek bir karar için geçerlidir.",
		basvuru.YetkiliAdSoyad,
	)
	sirketKoduYayinla(ctx, s.otp, s.posta, s.logger, s.cfg.Auth.CompanyOTPTTL,
		redis.OTPRecord{Kind: OTPKindBasvuru, RecordID: basvuru.BasvuruID},
		basvuru.YetkiliEposta, "Staj Başvurusu Onayı", govde)
}

// tarihVeGunDogrula tarih ve gün kurallarını topluca doğrular
// Hatalar alan→mesaj haritasında toplanır; boş harita geçerli demektir.
func tarihVeGunDogrula(stajTipi, baslangicStr, bitisStr string, seciliGunler []int, toplamGun int) (time.Time, time.Time, map[string]string) {
	hatalar := make(map[string]string)

	if !model.GecerliStajTipi(stajTipi) {
		hatalar["staj_tipi"] = "geçersiz staj tipi"
	}

	baslangic, err := time.Parse(tarihBicimi, baslangicStr)
	if err != nil {
		hatalar["baslangic_tarihi"] = "tarih biçimi geçersiz (YYYY-AA-GG bekleniyor)"
	}
	bitis, err := time.Parse(tarihBicimi, bitisStr)
	if err != nil {
		hatalar["bitis_tarihi"] = "tarih biçimi geçersiz (YYYY-AA-GG bekleniyor)"
	}
	if hatalar["baslangic_tarihi"] == "" && hatalar["bitis_tarihi"] == "" && !bitis.After(baslangic) {
		hatalar["bitis_tarihi"] = "bitiş tarihi başlangıç tarihinden sonra olmalıdır"
	}

	for _, gun := range seciliGunler {
		if gun < 1 || gun > 7 {
			hatalar["secili_gunler"] = "seçili günler 1-7 aralığında olmalıdır"
			break
		}
	}
	if len(seciliGunler) == 0 {
		hatalar["secili_gunler"] = "en az bir gün seçilmelidir"
	}

	if toplamGun < 1 {
		hatalar["toplam_gun"] = "toplam gün sayısı en az 1 olmalıdır"
	} else if stajTipi == model.StajTipiIMU404 && toplamGun != model.IMU404ToplamGun {
		hatalar["toplam_gun"] = "IMU 404 stajı için toplam gün sayısı tam olarak 70 iş günü olmalıdır."
	}

	return baslangic, bitis, hatalar
}

// capIDNormalize "0" ve boş değeri ÇAP seçilmedi sayar
func capIDNormalize(capID string) *string {
	if capID == "" || capID == "0" {
		return nil
	}
	return &capID
}

func toBasvuruResponse(b *model.StajBasvurusu) *dto.BasvuruResponse {
	resp := &dto.BasvuruResponse{
		BasvuruID:          b.BasvuruID,
		OgrenciID:          b.OgrenciID,
		KurumAdi:           b.KurumAdi,
		KurumAdresi:        b.KurumAdresi,
		YetkiliAdSoyad:     b.YetkiliAdSoyad,
		YetkiliEposta:      b.YetkiliEposta,
		YetkiliTelefon:     b.YetkiliTelefon,
		StajTipi:           b.StajTipi,
		BaslangicTarihi:    b.BaslangicTarihi.Format(tarihBicimi),
		BitisTarihi:        b.BitisTarihi.Format(tarihBicimi),
		SeciliGunler:       []int(b.SeciliGunler),
		ToplamGun:          b.ToplamGun,
		SaglikSigortasi:    b.SaglikSigortasi,
		DanismanEposta:     b.DanismanEposta,
		OnayDurumu:         b.OnayDurumu,
		DanismanOnay:       b.DanismanOnay,
		KariyerMerkeziOnay: b.KariyerMerkeziOnay,
		SirketOnay:         b.SirketOnay,
		RedSebebi:          b.RedSebebi,
		CapID:              b.CapID,
		CreatedAt:          b.CreatedAt.Format(time.RFC3339),
	}
	if b.OnaylanmaTarihi != nil {
		resp.OnaylanmaTarihi = b.OnaylanmaTarihi.Format(time.RFC3339)
	}
	if b.Ogrenci != nil {
		resp.OgrenciAdi = b.Ogrenci.AdSoyad
		resp.OgrenciNo = b.Ogrenci.OgrenciNo
	}
	return resp
}

func toBasvuruResponseList(basvurular []model.StajBasvurusu) []dto.BasvuruResponse {
	result := make([]dto.BasvuruResponse, 0, len(basvurular))
	for i := range basvurular {
		result = append(result, *toBasvuruResponse(&basvurular[i]))
	}
	return result
}
