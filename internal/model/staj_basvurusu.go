package model

import "time"

// Staj tipleri
const (
	StajTipiIMU402      = "IMU_402"
	StajTipiIMU404      = "IMU_404"
	StajTipiMeslekiDers = "MESLEKI_DERS"
	StajTipiGonullu     = "GONULLU"
	StajTipiZorunlu     = "ZORUNLU"
)

// IMU404ToplamGun IMU-404 stajı için zorunlu iş günü sayısı
const IMU404ToplamGun = 70

// StajTipiGunSiniri tip başına bilgilendirme amaçlı gün üst sınırları
// Sunucu tarafında yalnızca IMU-404 katı biçimde uygulanır;
// diğerleri ön yüz mesajları için sunulur.
var StajTipiGunSiniri = map[string]int{
	StajTipiIMU402:      40,
	StajTipiIMU404:      IMU404ToplamGun,
	StajTipiMeslekiDers: 30,
	StajTipiGonullu:     60,
	StajTipiZorunlu:     40,
}

// GecerliStajTipi bilinen bir staj tipi mi kontrol eder
func GecerliStajTipi(tip string) bool {
	_, ok := StajTipiGunSiniri[tip]
	return ok
}

// StajBasvurusu staj başvurusu tablosu — staj_basvurulari
// Üç bağımsız karar alanı (danışman/kariyer merkezi/şirket) ve bunların
// türevi olan tek toplu onay durumu birlikte saklanır; geçişler
// SonrakiDurum üzerinden yürütülür.
type StajBasvurusu struct {
	BasvuruID      string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"basvuru_id"`
	OgrenciID      string `gorm:"type:uuid;not null;index"                       json:"ogrenci_id"`
	KurumAdi       string `gorm:"type:varchar(255);not null"                     json:"kurum_adi"`
	KurumAdresi    string `gorm:"type:varchar(500);not null"                     json:"kurum_adresi"`
	YetkiliAdSoyad string `gorm:"type:varchar(100);not null"                     json:"yetkili_ad_soyad"`
	YetkiliEposta  string `gorm:"type:varchar(255);not null;index"               json:"yetkili_eposta"`
	YetkiliTelefon string `gorm:"type:varchar(20)"                               json:"yetkili_telefon,omitempty"`
	StajTipi       string `gorm:"type:varchar(20);not null"                      json:"staj_tipi"`

	BaslangicTarihi time.Time `gorm:"type:date;not null" json:"baslangic_tarihi"`
	BitisTarihi     time.Time `gorm:"type:date;not null" json:"bitis_tarihi"`
	SeciliGunler    IntArray  `gorm:"type:int[];not null" json:"secili_gunler"`
	ToplamGun       int       `gorm:"not null"           json:"toplam_gun"`

	SaglikSigortasi bool   `gorm:"not null;default:false"     json:"saglik_sigortasi"`
	DanismanEposta  string `gorm:"type:varchar(255);not null" json:"danisman_eposta"`

	TranskriptDosyasi string `gorm:"type:varchar(500)" json:"transkript_dosyasi,omitempty"`
	HizmetDokumu      string `gorm:"type:varchar(500)" json:"hizmet_dokumu,omitempty"`
	SigortaDosyasi    string `gorm:"type:varchar(500)" json:"sigorta_dosyasi,omitempty"`

	OnayDurumu         string `gorm:"type:varchar(40);not null;default:'DANISMAN_ONAYI_BEKLIYOR'" json:"onay_durumu"`
	DanismanOnay       int    `gorm:"type:smallint;not null;default:0" json:"danisman_onay"`
	KariyerMerkeziOnay int    `gorm:"type:smallint;not null;default:0" json:"kariyer_merkezi_onay"`
	SirketOnay         int    `gorm:"type:smallint;not null;default:0" json:"sirket_onay"`
	RedSebebi          string `gorm:"type:varchar(500)"                json:"red_sebebi,omitempty"`

	CapID *string `gorm:"type:uuid" json:"cap_id,omitempty"`

	// Şirket onayının düştüğü an; 5 günlük tarih düzeltme penceresi
	// yalnızca bu alandan hesaplanır, updated_at'ten değil.
	OnaylanmaTarihi *time.Time `json:"onaylanma_tarihi,omitempty"`

	VersionedModel

	// İlişkiler
	Ogrenci *Kullanici `gorm:"foreignKey:OgrenciID;references:KullaniciID" json:"ogrenci,omitempty"`
	Cap     *CapUser   `gorm:"foreignKey:CapID;references:CapID"           json:"cap,omitempty"`
}

// TableName tablo adını belirler
func (StajBasvurusu) TableName() string { return "staj_basvurulari" }
