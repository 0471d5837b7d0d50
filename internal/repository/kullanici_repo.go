package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/bugra455/stajuygulamasi-sub001/internal/model"
)

// KullaniciRepository kullanıcı veri erişim arayüzü
type KullaniciRepository interface {
	Create(ctx context.Context, kullanici *model.Kullanici) error
	GetByID(ctx context.Context, id string) (*model.Kullanici, error)
	GetByKullaniciAdi(ctx context.Context, kullaniciAdi string) (*model.Kullanici, error)
	GetByEposta(ctx context.Context, eposta string) (*model.Kullanici, error)
	GetByTCKimlikNo(ctx context.Context, tc string) (*model.Kullanici, error)
	Update(ctx context.Context, kullanici *model.Kullanici) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, rol, keyword string, offset, limit int) ([]model.Kullanici, int64, error)
}

// kullaniciRepo KullaniciRepository GORM uygulaması
type kullaniciRepo struct {
	db *gorm.DB
}

// NewKullaniciRepo KullaniciRepository örneği oluşturur
func NewKullaniciRepo(db *gorm.DB) KullaniciRepository {
	return &kullaniciRepo{db: db}
}

func (r *kullaniciRepo) Create(ctx context.Context, kullanici *model.Kullanici) error {
	return r.db.WithContext(ctx).Create(kullanici).Error
}

func (r *kullaniciRepo) GetByID(ctx context.Context, id string) (*model.Kullanici, error) {
	var kullanici model.Kullanici
	err := r.db.WithContext(ctx).
		Preload("Danisman").
		Where("kullanici_id = ?", id).
		First(&kullanici).Error
	if err != nil {
		return nil, err
	}
	return &kullanici, nil
}

func (r *kullaniciRepo) GetByKullaniciAdi(ctx context.Context, kullaniciAdi string) (*model.Kullanici, error) {
	var kullanici model.Kullanici
	err := r.db.WithContext(ctx).
		Where("kullanici_adi = ?", kullaniciAdi).
		First(&kullanici).Error
	if err != nil {
		return nil, err
	}
	return &kullanici, nil
}

func (r *kullaniciRepo) GetByEposta(ctx context.Context, eposta string) (*model.Kullanici, error) {
	var kullanici model.Kullanici
	err := r.db.WithContext(ctx).
		Where("eposta = ?", eposta).
		First(&kullanici).Error
	if err != nil {
		return nil, err
	}
	return &kullanici, nil
}

func (r *kullaniciRepo) GetByTCKimlikNo(ctx context.Context, tc string) (*model.Kullanici, error) {
	var kullanici model.Kullanici
	err := r.db.WithContext(ctx).
		Where("tc_kimlik_no = ?", tc).
		First(&kullanici).Error
	if err != nil {
		return nil, err
	}
	return &kullanici, nil
}

func (r *kullaniciRepo) Update(ctx context.Context, kullanici *model.Kullanici) error {
	return r.db.WithContext(ctx).Save(kullanici).Error
}

func (r *kullaniciRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("kullanici_id = ?", id).
		Delete(&model.Kullanici{}).Error
}

func (r *kullaniciRepo) List(ctx context.Context, rol, keyword string, offset, limit int) ([]model.Kullanici, int64, error) {
	var kullanicilar []model.Kullanici
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Kullanici{})
	if rol != "" {
		db = db.Where("rol = ?", rol)
	}
	if keyword != "" {
		like := "%" + keyword + "%"
		db = db.Where("ad_soyad ILIKE ? OR ogrenci_no ILIKE ? OR eposta ILIKE ?", like, like, like)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("Danisman").
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&kullanicilar).Error; err != nil {
		return nil, 0, err
	}

	return kullanicilar, total, nil
}
