package handler

import (
	"github.com/bugra455/stajuygulamasi-sub001/config"
	"github.com/bugra455/stajuygulamasi-sub001/internal/service"
	"github.com/bugra455/stajuygulamasi-sub001/pkg/ws"
)

// Handler tüm HTTP işleyicilerinin toplanma noktası
type Handler struct {
	Auth      *AuthHandler
	Kullanici *KullaniciHandler
	Basvuru   *BasvuruHandler
	Muafiyet  *MuafiyetHandler
	Defter    *DefterHandler
	Sirket    *SirketHandler
	Yukleme   *YuklemeHandler
	Rapor     *RaporHandler
	Denetim   *DenetimHandler
	Dosya     *DosyaHandler
}

// NewHandler Handler toplamını oluşturur
func NewHandler(cfg *config.Config, svc *service.Service, hub *ws.Hub) *Handler {
	return &Handler{
		Auth:      NewAuthHandler(svc.Auth),
		Kullanici: NewKullaniciHandler(svc.Kullanici),
		Basvuru:   NewBasvuruHandler(cfg, svc.Basvuru),
		Muafiyet:  NewMuafiyetHandler(cfg, svc.Muafiyet),
		Defter:    NewDefterHandler(cfg, svc.Defter),
		Sirket:    NewSirketHandler(svc.Sirket),
		Yukleme:   NewYuklemeHandler(cfg, svc.Yukleme, hub),
		Rapor:     NewRaporHandler(svc.Takvim),
		Denetim:   NewDenetimHandler(svc.Denetim),
		Dosya:     NewDosyaHandler(cfg),
	}
}
