package model

// CapUser çift anadal (ÇAP) kaydı — cap_kayitlari
// Öğrencinin ikinci programdaki fakülte/bölüm ve danışman bilgisini tutar;
// başvuru sırasında seçilirse normal danışmanın yerine geçer.
type CapUser struct {
	CapID      string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"cap_id"`
	OgrenciID  string  `gorm:"type:uuid;not null;index"                       json:"ogrenci_id"`
	Fakulte    string  `gorm:"type:varchar(100);not null"                     json:"fakulte"`
	Bolum      string  `gorm:"type:varchar(100);not null"                     json:"bolum"`
	DanismanID *string `gorm:"type:uuid"                                      json:"danisman_id,omitempty"`
	BaseModel

	// İlişkiler
	Ogrenci  *Kullanici `gorm:"foreignKey:OgrenciID;references:KullaniciID"  json:"ogrenci,omitempty"`
	Danisman *Kullanici `gorm:"foreignKey:DanismanID;references:KullaniciID" json:"danisman,omitempty"`
}

// TableName tablo adını belirler
func (CapUser) TableName() string { return "cap_kayitlari" }
