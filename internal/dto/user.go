package dto

// ── Kullanıcı modülü DTO ──

// UserListRequest kullanıcı listesi sorgu parametreleri
type UserListRequest struct {
	PaginationRequest
	Rol     string `form:"rol"     binding:"omitempty,oneof=OGRENCI DANISMAN KARIYER_MERKEZI ADMIN"`
	Keyword string `form:"keyword" binding:"omitempty,max=50"`
}

// CreateUserRequest admin kullanıcı oluşturma isteği
type CreateUserRequest struct {
	TCKimlikNo   string  `json:"tc_kimlik_no" binding:"required,len=11"`
	KullaniciAdi string  `json:"kullanici_adi" binding:"required,min=3,max=64"`
	AdSoyad      string  `json:"ad_soyad"     binding:"required,min=2,max=100"`
	Eposta       string  `json:"eposta"       binding:"required,email"`
	Rol          string  `json:"rol"          binding:"required,oneof=OGRENCI DANISMAN KARIYER_MERKEZI ADMIN"`
	OgrenciNo    string  `json:"ogrenci_no"   binding:"omitempty,max=20"`
	Fakulte      string  `json:"fakulte"      binding:"omitempty,max=100"`
	Sinif        string  `json:"sinif"        binding:"omitempty,max=20"`
	DanismanID   *string `json:"danisman_id"  binding:"omitempty,uuid"`
}

// UpdateUserRequest kullanıcı güncelleme isteği (kısmi)
type UpdateUserRequest struct {
	AdSoyad    *string `json:"ad_soyad"    binding:"omitempty,min=2,max=100"`
	Eposta     *string `json:"eposta"      binding:"omitempty,email"`
	Fakulte    *string `json:"fakulte"     binding:"omitempty,max=100"`
	Sinif      *string `json:"sinif"       binding:"omitempty,max=20"`
	DanismanID *string `json:"danisman_id" binding:"omitempty,uuid"`
}

// UserResponse kullanıcı yanıtı
type UserResponse struct {
	KullaniciID  string  `json:"kullanici_id"`
	TCKimlikNo   string  `json:"tc_kimlik_no"`
	KullaniciAdi string  `json:"kullanici_adi"`
	AdSoyad      string  `json:"ad_soyad"`
	Eposta       string  `json:"eposta"`
	Rol          string  `json:"rol"`
	OgrenciNo    string  `json:"ogrenci_no,omitempty"`
	Fakulte      string  `json:"fakulte,omitempty"`
	Sinif        string  `json:"sinif,omitempty"`
	DanismanID   *string `json:"danisman_id,omitempty"`
	DanismanAdi  string  `json:"danisman_adi,omitempty"`
}

// CreateUserResponse kullanıcı oluşturma yanıtı
// Geçici şifre yalnızca bu yanıtta döner, saklanmaz.
type CreateUserResponse struct {
	Kullanici   UserResponse `json:"kullanici"`
	GeciciSifre string       `json:"gecici_sifre"`
}

// CapResponse ÇAP kaydı yanıtı
type CapResponse struct {
	CapID       string  `json:"cap_id"`
	OgrenciID   string  `json:"ogrenci_id"`
	Fakulte     string  `json:"fakulte"`
	Bolum       string  `json:"bolum"`
	DanismanID  *string `json:"danisman_id,omitempty"`
	DanismanAdi string  `json:"danisman_adi,omitempty"`
}
