package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/bugra455/stajuygulamasi-sub001/internal/model"
)

// IslemKaydiRepository denetim günlüğü veri erişim arayüzü
type IslemKaydiRepository interface {
	Create(ctx context.Context, kayit *model.IslemKaydi) error
	List(ctx context.Context, offset, limit int) ([]model.IslemKaydi, int64, error)
	ListByHedef(ctx context.Context, hedefID string) ([]model.IslemKaydi, error)
}

type islemKaydiRepo struct {
	db *gorm.DB
}

// NewIslemKaydiRepo IslemKaydiRepository örneği oluşturur
func NewIslemKaydiRepo(db *gorm.DB) IslemKaydiRepository {
	return &islemKaydiRepo{db: db}
}

func (r *islemKaydiRepo) Create(ctx context.Context, kayit *model.IslemKaydi) error {
	return r.db.WithContext(ctx).Create(kayit).Error
}

func (r *islemKaydiRepo) List(ctx context.Context, offset, limit int) ([]model.IslemKaydi, int64, error) {
	var kayitlar []model.IslemKaydi
	var total int64

	db := r.db.WithContext(ctx).Model(&model.IslemKaydi{})

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&kayitlar).Error; err != nil {
		return nil, 0, err
	}

	return kayitlar, total, nil
}

func (r *islemKaydiRepo) ListByHedef(ctx context.Context, hedefID string) ([]model.IslemKaydi, error) {
	var kayitlar []model.IslemKaydi
	err := r.db.WithContext(ctx).
		Where("hedef_id = ?", hedefID).
		Order("created_at").
		Find(&kayitlar).Error
	if err != nil {
		return nil, err
	}
	return kayitlar, nil
}
