package model

// Yükleme dosya tipleri
const (
	YuklemeTipiOgrenci  = "ogrenci"
	YuklemeTipiDanisman = "danisman"
	YuklemeTipiCap      = "cap"
)

// Yükleme işi durumları
const (
	YuklemeKuyrukta   = "KUYRUKTA"
	YuklemeIsleniyor  = "ISLENIYOR"
	YuklemeTamamlandi = "TAMAMLANDI"
	YuklemeBasarisiz  = "BASARISIZ"
	YuklemeIptal      = "IPTAL_EDILDI"
)

// YuklemeIsi toplu içe aktarma işi tablosu — yukleme_isleri
// Satır sayaçları işleme sırasında güncellenir; durum terminal
// değerlerden birine ulaştığında iş biter.
type YuklemeIsi struct {
	IsID          string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"is_id"`
	DosyaTipi     string `gorm:"type:varchar(20);not null;index:idx_yukleme_tip_durum" json:"dosya_tipi"`
	DosyaAdi      string `gorm:"type:varchar(255);not null"                     json:"dosya_adi"`
	Durum         string `gorm:"type:varchar(20);not null;default:'KUYRUKTA';index:idx_yukleme_tip_durum" json:"durum"`
	ToplamSatir   int    `gorm:"not null;default:0" json:"toplam_satir"`
	IslenenSatir  int    `gorm:"not null;default:0" json:"islenen_satir"`
	BasariliSatir int    `gorm:"not null;default:0" json:"basarili_satir"`
	HataliSatir   int    `gorm:"not null;default:0" json:"hatali_satir"`
	Hatalar       string `gorm:"type:text"          json:"hatalar,omitempty"` // JSON dizisi olarak saklanır
	BaseModel
}

// TableName tablo adını belirler
func (YuklemeIsi) TableName() string { return "yukleme_isleri" }

// Aktif iş hâlâ çalışıyor mu (kuyrukta ya da işleniyor)
func (y *YuklemeIsi) Aktif() bool {
	return y.Durum == YuklemeKuyrukta || y.Durum == YuklemeIsleniyor
}
