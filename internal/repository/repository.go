package repository

import "gorm.io/gorm"

// Repository tüm repository'lerin toplanma noktası
type Repository struct {
	Kullanici  KullaniciRepository
	Cap        CapRepository
	Basvuru    BasvuruRepository
	Muafiyet   MuafiyetRepository
	Defter     DefterRepository
	IslemKaydi IslemKaydiRepository
	Yukleme    YuklemeRepository
}

// NewRepository Repository toplamını oluşturur
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Kullanici:  NewKullaniciRepo(db),
		Cap:        NewCapRepo(db),
		Basvuru:    NewBasvuruRepo(db),
		Muafiyet:   NewMuafiyetRepo(db),
		Defter:     NewDefterRepo(db),
		IslemKaydi: NewIslemKaydiRepo(db),
		Yukleme:    NewYuklemeRepo(db),
	}
}
