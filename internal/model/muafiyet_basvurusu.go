package model

// MuafiyetBasvurusu muafiyet başvurusu tablosu — muafiyet_basvurulari
// Tek belgeli, yalnızca danışman onaylı dar iş akışı.
type MuafiyetBasvurusu struct {
	MuafiyetID     string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"muafiyet_id"`
	OgrenciID      string  `gorm:"type:uuid;not null;index"                       json:"ogrenci_id"`
	BelgeDosyasi   string  `gorm:"type:varchar(500);not null"                     json:"belge_dosyasi"`
	DanismanEposta string  `gorm:"type:varchar(255);not null"                     json:"danisman_eposta"`
	OnayDurumu     string  `gorm:"type:varchar(40);not null;default:'DANISMAN_ONAYI_BEKLIYOR'" json:"onay_durumu"`
	DanismanOnay   int     `gorm:"type:smallint;not null;default:0"               json:"danisman_onay"`
	RedSebebi      string  `gorm:"type:varchar(500)"                              json:"red_sebebi,omitempty"`
	CapID          *string `gorm:"type:uuid"                                      json:"cap_id,omitempty"`
	SoftDeleteModel

	// İlişkiler
	Ogrenci *Kullanici `gorm:"foreignKey:OgrenciID;references:KullaniciID" json:"ogrenci,omitempty"`
	Cap     *CapUser   `gorm:"foreignKey:CapID;references:CapID"           json:"cap,omitempty"`
}

// TableName tablo adını belirler
func (MuafiyetBasvurusu) TableName() string { return "muafiyet_basvurulari" }
