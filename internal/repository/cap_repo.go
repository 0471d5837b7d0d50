package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/bugra455/stajuygulamasi-sub001/internal/model"
)

// CapRepository ÇAP kaydı veri erişim arayüzü
type CapRepository interface {
	Create(ctx context.Context, cap *model.CapUser) error
	GetByID(ctx context.Context, id string) (*model.CapUser, error)
	// GetByIDForOgrenci yalnızca söz konusu öğrencinin sahibi olduğu kaydı döner
	GetByIDForOgrenci(ctx context.Context, id, ogrenciID string) (*model.CapUser, error)
	ListByOgrenci(ctx context.Context, ogrenciID string) ([]model.CapUser, error)
	Update(ctx context.Context, cap *model.CapUser) error
	Delete(ctx context.Context, id string) error
}

type capRepo struct {
	db *gorm.DB
}

// NewCapRepo CapRepository örneği oluşturur
func NewCapRepo(db *gorm.DB) CapRepository {
	return &capRepo{db: db}
}

func (r *capRepo) Create(ctx context.Context, cap *model.CapUser) error {
	return r.db.WithContext(ctx).Create(cap).Error
}

func (r *capRepo) GetByID(ctx context.Context, id string) (*model.CapUser, error) {
	var cap model.CapUser
	err := r.db.WithContext(ctx).
		Preload("Danisman").
		Where("cap_id = ?", id).
		First(&cap).Error
	if err != nil {
		return nil, err
	}
	return &cap, nil
}

func (r *capRepo) GetByIDForOgrenci(ctx context.Context, id, ogrenciID string) (*model.CapUser, error) {
	var cap model.CapUser
	err := r.db.WithContext(ctx).
		Preload("Danisman").
		Where("cap_id = ? AND ogrenci_id = ?", id, ogrenciID).
		First(&cap).Error
	if err != nil {
		return nil, err
	}
	return &cap, nil
}

func (r *capRepo) ListByOgrenci(ctx context.Context, ogrenciID string) ([]model.CapUser, error) {
	var caplar []model.CapUser
	err := r.db.WithContext(ctx).
		Preload("Danisman").
		Where("ogrenci_id = ?", ogrenciID).
		Order("created_at DESC").
		Find(&caplar).Error
	if err != nil {
		return nil, err
	}
	return caplar, nil
}

func (r *capRepo) Update(ctx context.Context, cap *model.CapUser) error {
	return r.db.WithContext(ctx).Save(cap).Error
}

func (r *capRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("cap_id = ?", id).
		Delete(&model.CapUser{}).Error
}
