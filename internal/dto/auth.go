package dto

// ── Kimlik doğrulama DTO ──

// LoginRequest giriş isteği; kullanıcı adı ya da e-posta kabul edilir
type LoginRequest struct {
	Kimlik     string `json:"kimlik"      binding:"required"`
	Sifre      string `json:"sifre"       binding:"required"`
	BeniHatirla bool  `json:"beni_hatirla"`
}

// TokenResponse giriş/yenileme yanıtı
type TokenResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	Kullanici    *UserResponse `json:"kullanici,omitempty"`
}

// RefreshTokenRequest token yenileme isteği
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ChangePasswordRequest şifre değiştirme isteği
type ChangePasswordRequest struct {
	EskiSifre string `json:"eski_sifre" binding:"required"`
	YeniSifre string `json:"yeni_sifre" binding:"required,min=8,max=64"`
}
