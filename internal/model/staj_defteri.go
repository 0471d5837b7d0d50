package model

// StajDefteri staj defteri tablosu — staj_defterleri
// Onaylanmış başvuruya bire bir bağlı; şirket → danışman sıralı
// iki taraflı onay döngüsü yürütür.
type StajDefteri struct {
	DefterID     string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"defter_id"`
	BasvuruID    string `gorm:"type:uuid;not null;uniqueIndex"                 json:"basvuru_id"`
	DosyaYolu    string `gorm:"type:varchar(500);not null"                     json:"dosya_yolu"`
	Durum        string `gorm:"type:varchar(40);not null;default:'BEKLEMEDE'"  json:"durum"`
	SirketOnay   int    `gorm:"type:smallint;not null;default:0"               json:"sirket_onay"`
	DanismanOnay int    `gorm:"type:smallint;not null;default:0"               json:"danisman_onay"`
	RedSebebi    string `gorm:"type:varchar(500)"                              json:"red_sebebi,omitempty"`
	VersionedModel

	// İlişkiler
	Basvuru *StajBasvurusu `gorm:"foreignKey:BasvuruID;references:BasvuruID" json:"basvuru,omitempty"`
}

// TableName tablo adını belirler
func (StajDefteri) TableName() string { return "staj_defterleri" }
