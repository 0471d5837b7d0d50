package model

import "time"

// İşlem tipleri
const (
	IslemOlusturma  = "OLUSTURMA"
	IslemOnay       = "ONAY"
	IslemRed        = "RED"
	IslemIptal      = "IPTAL"
	IslemGuncelleme = "GUNCELLEME"
)

// Kayıt tipleri
const (
	KayitStajBasvurusu = "STAJ_BASVURUSU"
	KayitMuafiyet      = "MUAFIYET_BASVURUSU"
	KayitStajDefteri   = "STAJ_DEFTERI"
)

// IslemKaydi denetim günlüğü tablosu — islem_kayitlari
// Başvuru yaşam döngüsü olaylarında, başvuru yazımıyla aynı
// transaksiyon içinde eklenir.
type IslemKaydi struct {
	KayitID     string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"kayit_id"`
	KullaniciID *string   `gorm:"type:uuid"                                      json:"kullanici_id,omitempty"`
	IslemTipi   string    `gorm:"type:varchar(40);not null"                      json:"islem_tipi"`
	KayitTipi   string    `gorm:"type:varchar(40);not null"                      json:"kayit_tipi"`
	HedefID     *string   `gorm:"type:uuid;index"                                json:"hedef_id,omitempty"`
	Aciklama    string    `gorm:"type:varchar(500)"                              json:"aciklama,omitempty"`
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName tablo adını belirler
func (IslemKaydi) TableName() string { return "islem_kayitlari" }
