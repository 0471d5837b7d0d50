package dto

// ── Şirket OTP DTO ──

// SirketGirisRequest şirket yetkilisi OTP doğrulama isteği
type SirketGirisRequest struct {
	Eposta string `json:"eposta" binding:"required,email"`
	Kod    string `json:"kod"    binding:"required,len=6"`
}

// SirketGirisResponse doğrulama sonrası dönen kayıt
// Kayıt tipine göre yalnızca biri doludur.
type SirketGirisResponse struct {
	KayitTipi string           `json:"kayit_tipi"` // "basvuru" | "defter"
	Basvuru   *BasvuruResponse `json:"basvuru,omitempty"`
	Defter    *DefterResponse  `json:"defter,omitempty"`
}

// SirketKararRequest şirket kararı isteği; kod karar ile birlikte tekrar sunulur
type SirketKararRequest struct {
	Eposta    string `json:"eposta"     binding:"required,email"`
	Kod       string `json:"kod"        binding:"required,len=6"`
	Karar     int    `json:"karar"      binding:"required,oneof=1 -1"`
	RedSebebi string `json:"red_sebebi" binding:"omitempty,max=500"`
}
