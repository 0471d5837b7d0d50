package dto

// ── Toplu içe aktarma DTO ──

// YuklemeResponse yükleme işi yanıtı
type YuklemeResponse struct {
	IsID          string   `json:"is_id"`
	DosyaTipi     string   `json:"dosya_tipi"`
	DosyaAdi      string   `json:"dosya_adi"`
	Durum         string   `json:"durum"`
	ToplamSatir   int      `json:"toplam_satir"`
	IslenenSatir  int      `json:"islenen_satir"`
	BasariliSatir int      `json:"basarili_satir"`
	HataliSatir   int      `json:"hatali_satir"`
	Hatalar       []string `json:"hatalar,omitempty"`
	CreatedAt     string   `json:"created_at"`
}

// YuklemeIlerleme ilerleme mesajı gövdesi (push kanalının data alanı)
type YuklemeIlerleme struct {
	Yuzde         int `json:"yuzde"`
	ToplamSatir   int `json:"toplam_satir"`
	IslenenSatir  int `json:"islenen_satir"`
	BasariliSatir int `json:"basarili_satir"`
	HataliSatir   int `json:"hatali_satir"`
}

// IslemKaydiResponse denetim günlüğü yanıtı
type IslemKaydiResponse struct {
	KayitID     string  `json:"kayit_id"`
	KullaniciID *string `json:"kullanici_id,omitempty"`
	IslemTipi   string  `json:"islem_tipi"`
	KayitTipi   string  `json:"kayit_tipi"`
	HedefID     *string `json:"hedef_id,omitempty"`
	Aciklama    string  `json:"aciklama,omitempty"`
	CreatedAt   string  `json:"created_at"`
}
