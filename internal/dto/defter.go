package dto

// ── Staj defteri DTO ──

// DefterResponse staj defteri yanıtı
// Durum alanı görüntüleme durumudur; BEKLEMEDE kaydı staj tarih
// aralığına göre BASLAMADI/DEVAM_EDIYOR olarak türetilebilir.
type DefterResponse struct {
	DefterID     string `json:"defter_id"`
	BasvuruID    string `json:"basvuru_id"`
	OgrenciAdi   string `json:"ogrenci_adi,omitempty"`
	KurumAdi     string `json:"kurum_adi,omitempty"`
	DosyaYolu    string `json:"dosya_yolu"`
	Durum        string `json:"durum"`
	SirketOnay   int    `json:"sirket_onay"`
	DanismanOnay int    `json:"danisman_onay"`
	RedSebebi    string `json:"red_sebebi,omitempty"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}
