package model

// Kullanıcı rolleri
const (
	RolOgrenci        = "OGRENCI"
	RolDanisman       = "DANISMAN"
	RolKariyerMerkezi = "KARIYER_MERKEZI"
	RolAdmin          = "ADMIN"
)

// Kullanici kullanıcı tablosu — kullanicilar
type Kullanici struct {
	KullaniciID  string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"kullanici_id"`
	TCKimlikNo   string  `gorm:"type:varchar(11);not null;uniqueIndex"          json:"tc_kimlik_no"`
	KullaniciAdi string  `gorm:"type:varchar(64);not null;uniqueIndex"          json:"kullanici_adi"`
	AdSoyad      string  `gorm:"type:varchar(100);not null"                     json:"ad_soyad"`
	Eposta       string  `gorm:"type:varchar(255);not null"                     json:"eposta"`
	SifreHash    string  `gorm:"type:varchar(255);not null"                     json:"-"`
	Rol          string  `gorm:"type:varchar(20);not null;default:'OGRENCI'"    json:"rol"`
	OgrenciNo    string  `gorm:"type:varchar(20)"                               json:"ogrenci_no,omitempty"`
	Fakulte      string  `gorm:"type:varchar(100)"                              json:"fakulte,omitempty"`
	Sinif        string  `gorm:"type:varchar(20)"                               json:"sinif,omitempty"`
	DanismanID   *string `gorm:"type:uuid"                                      json:"danisman_id,omitempty"`
	SoftDeleteModel

	// İlişkiler
	Danisman *Kullanici `gorm:"foreignKey:DanismanID;references:KullaniciID" json:"danisman,omitempty"`
}

// TableName tablo adını belirler
func (Kullanici) TableName() string { return "kullanicilar" }
