package dto

// ── Muafiyet başvurusu DTO ──

// CreateMuafiyetRequest muafiyet başvurusu isteği (belge multipart ile gelir)
type CreateMuafiyetRequest struct {
	CapID string `form:"cap_id" json:"cap_id" binding:"omitempty"` // "0" = ÇAP seçilmedi
}

// MuafiyetResponse muafiyet başvurusu yanıtı
type MuafiyetResponse struct {
	MuafiyetID     string  `json:"muafiyet_id"`
	OgrenciID      string  `json:"ogrenci_id"`
	OgrenciAdi     string  `json:"ogrenci_adi,omitempty"`
	BelgeDosyasi   string  `json:"belge_dosyasi"`
	DanismanEposta string  `json:"danisman_eposta"`
	OnayDurumu     string  `json:"onay_durumu"`
	DanismanOnay   int     `json:"danisman_onay"`
	RedSebebi      string  `json:"red_sebebi,omitempty"`
	CapID          *string `json:"cap_id,omitempty"`
	CreatedAt      string  `json:"created_at"`
}
