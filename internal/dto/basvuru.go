package dto

// ── Staj başvurusu DTO ──

// CreateBasvuruRequest başvuru oluşturma isteği
// Dosya alanları multipart form ile ayrıca gelir; bu gövde form metadatasıdır.
type CreateBasvuruRequest struct {
	KurumAdi        string `form:"kurum_adi"        json:"kurum_adi"        binding:"required,max=255"`
	KurumAdresi     string `form:"kurum_adresi"     json:"kurum_adresi"     binding:"required,max=500"`
	YetkiliAdSoyad  string `form:"yetkili_ad_soyad" json:"yetkili_ad_soyad" binding:"required,max=100"`
	YetkiliEposta   string `form:"yetkili_eposta"   json:"yetkili_eposta"   binding:"required,email"`
	YetkiliTelefon  string `form:"yetkili_telefon"  json:"yetkili_telefon"  binding:"omitempty,max=20"`
	StajTipi        string `form:"staj_tipi"        json:"staj_tipi"        binding:"required"`
	BaslangicTarihi string `form:"baslangic_tarihi" json:"baslangic_tarihi" binding:"required"` // YYYY-MM-DD
	BitisTarihi     string `form:"bitis_tarihi"     json:"bitis_tarihi"     binding:"required"` // YYYY-MM-DD
	SeciliGunler    []int  `form:"secili_gunler"    json:"secili_gunler"    binding:"required,min=1"`
	ToplamGun       int    `form:"toplam_gun"       json:"toplam_gun"       binding:"required"`
	SaglikSigortasi bool   `form:"saglik_sigortasi" json:"saglik_sigortasi"`
	CapID           string `form:"cap_id"           json:"cap_id"           binding:"omitempty"` // "0" = ÇAP seçilmedi
}

// KararRequest onay/red kararı isteği
// Karar: 1 onay, -1 red. Redde sebep zorunludur.
type KararRequest struct {
	Karar     int    `json:"karar"      binding:"required,oneof=1 -1"`
	RedSebebi string `json:"red_sebebi" binding:"omitempty,max=500"`
}

// IptalRequest öğrenci iptal isteği
type IptalRequest struct {
	Sebep string `json:"sebep" binding:"required,max=500"`
}

// TarihDuzeltmeRequest onay sonrası tarih düzeltme isteği
// Onaylanmayı izleyen 5 gün içinde yapılabilir.
type TarihDuzeltmeRequest struct {
	BaslangicTarihi string `json:"baslangic_tarihi" binding:"required"`
	BitisTarihi     string `json:"bitis_tarihi"     binding:"required"`
	SeciliGunler    []int  `json:"secili_gunler"    binding:"required,min=1"`
	ToplamGun       int    `json:"toplam_gun"       binding:"required"`
}

// BasvuruResponse başvuru yanıtı
type BasvuruResponse struct {
	BasvuruID          string  `json:"basvuru_id"`
	OgrenciID          string  `json:"ogrenci_id"`
	OgrenciAdi         string  `json:"ogrenci_adi,omitempty"`
	OgrenciNo          string  `json:"ogrenci_no,omitempty"`
	KurumAdi           string  `json:"kurum_adi"`
	KurumAdresi        string  `json:"kurum_adresi"`
	YetkiliAdSoyad     string  `json:"yetkili_ad_soyad"`
	YetkiliEposta      string  `json:"yetkili_eposta"`
	YetkiliTelefon     string  `json:"yetkili_telefon,omitempty"`
	StajTipi           string  `json:"staj_tipi"`
	BaslangicTarihi    string  `json:"baslangic_tarihi"`
	BitisTarihi        string  `json:"bitis_tarihi"`
	SeciliGunler       []int   `json:"secili_gunler"`
	ToplamGun          int     `json:"toplam_gun"`
	SaglikSigortasi    bool    `json:"saglik_sigortasi"`
	DanismanEposta     string  `json:"danisman_eposta"`
	OnayDurumu         string  `json:"onay_durumu"`
	DanismanOnay       int     `json:"danisman_onay"`
	KariyerMerkeziOnay int     `json:"kariyer_merkezi_onay"`
	SirketOnay         int     `json:"sirket_onay"`
	RedSebebi          string  `json:"red_sebebi,omitempty"`
	CapID              *string `json:"cap_id,omitempty"`
	OnaylanmaTarihi    string  `json:"onaylanma_tarihi,omitempty"`
	CreatedAt          string  `json:"created_at"`
}

// BasvuruListRequest başvuru listesi sorgu parametreleri
type BasvuruListRequest struct {
	PaginationRequest
	Durum string `form:"durum" binding:"omitempty,max=40"`
}
