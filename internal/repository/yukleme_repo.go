package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/bugra455/stajuygulamasi-sub001/internal/model"
)

// YuklemeRepository toplu içe aktarma işi veri erişim arayüzü
type YuklemeRepository interface {
	Create(ctx context.Context, is *model.YuklemeIsi) error
	GetByID(ctx context.Context, id string) (*model.YuklemeIsi, error)
	Update(ctx context.Context, is *model.YuklemeIsi) error
	// GetAktifByTip aynı dosya tipinde çalışan işi bulur (eşzamanlılık kontrolü)
	GetAktifByTip(ctx context.Context, dosyaTipi string) (*model.YuklemeIsi, error)
	List(ctx context.Context, offset, limit int) ([]model.YuklemeIsi, int64, error)
}

type yuklemeRepo struct {
	db *gorm.DB
}

// NewYuklemeRepo YuklemeRepository örneği oluşturur
func NewYuklemeRepo(db *gorm.DB) YuklemeRepository {
	return &yuklemeRepo{db: db}
}

func (r *yuklemeRepo) Create(ctx context.Context, is *model.YuklemeIsi) error {
	return r.db.WithContext(ctx).Create(is).Error
}

func (r *yuklemeRepo) GetByID(ctx context.Context, id string) (*model.YuklemeIsi, error) {
	var is model.YuklemeIsi
	err := r.db.WithContext(ctx).
		Where("is_id = ?", id).
		First(&is).Error
	if err != nil {
		return nil, err
	}
	return &is, nil
}

func (r *yuklemeRepo) Update(ctx context.Context, is *model.YuklemeIsi) error {
	return r.db.WithContext(ctx).Save(is).Error
}

func (r *yuklemeRepo) GetAktifByTip(ctx context.Context, dosyaTipi string) (*model.YuklemeIsi, error) {
	var is model.YuklemeIsi
	err := r.db.WithContext(ctx).
		Where("dosya_tipi = ? AND durum IN ?", dosyaTipi,
			[]string{model.YuklemeKuyrukta, model.YuklemeIsleniyor}).
		Order("created_at DESC").
		First(&is).Error
	if err != nil {
		return nil, err
	}
	return &is, nil
}

func (r *yuklemeRepo) List(ctx context.Context, offset, limit int) ([]model.YuklemeIsi, int64, error) {
	var isler []model.YuklemeIsi
	var total int64

	db := r.db.WithContext(ctx).Model(&model.YuklemeIsi{})

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&isler).Error; err != nil {
		return nil, 0, err
	}

	return isler, total, nil
}
