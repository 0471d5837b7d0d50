package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/bugra455/stajuygulamasi-sub001/internal/model"
	pkgerrors "github.com/bugra455/stajuygulamasi-sub001/pkg/errors"
)

// DefterRepository staj defteri veri erişim arayüzü
type DefterRepository interface {
	Create(ctx context.Context, defter *model.StajDefteri) error
	GetByID(ctx context.Context, id string) (*model.StajDefteri, error)
	GetByBasvuruID(ctx context.Context, basvuruID string) (*model.StajDefteri, error)
	Update(ctx context.Context, defter *model.StajDefteri) error
	ListByDanismanEposta(ctx context.Context, eposta, durum string, offset, limit int) ([]model.StajDefteri, int64, error)
}

type defterRepo struct {
	db *gorm.DB
}

// NewDefterRepo DefterRepository örneği oluşturur
func NewDefterRepo(db *gorm.DB) DefterRepository {
	return &defterRepo{db: db}
}

func (r *defterRepo) Create(ctx context.Context, defter *model.StajDefteri) error {
	return r.db.WithContext(ctx).Create(defter).Error
}

func (r *defterRepo) GetByID(ctx context.Context, id string) (*model.StajDefteri, error) {
	var defter model.StajDefteri
	err := r.db.WithContext(ctx).
		Preload("Basvuru").
		Preload("Basvuru.Ogrenci").
		Where("defter_id = ?", id).
		First(&defter).Error
	if err != nil {
		return nil, err
	}
	return &defter, nil
}

func (r *defterRepo) GetByBasvuruID(ctx context.Context, basvuruID string) (*model.StajDefteri, error) {
	var defter model.StajDefteri
	err := r.db.WithContext(ctx).
		Preload("Basvuru").
		Where("basvuru_id = ?", basvuruID).
		First(&defter).Error
	if err != nil {
		return nil, err
	}
	return &defter, nil
}

func (r *defterRepo) Update(ctx context.Context, defter *model.StajDefteri) error {
	eskiVersion := defter.Version
	defter.Version = eskiVersion + 1

	result := r.db.WithContext(ctx).Model(&model.StajDefteri{}).
		Where("defter_id = ? AND version = ?", defter.DefterID, eskiVersion).
		Select("*").
		Omit("defter_id", "created_at", "deleted_at").
		Updates(defter)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	return nil
}

func (r *defterRepo) ListByDanismanEposta(ctx context.Context, eposta, durum string, offset, limit int) ([]model.StajDefteri, int64, error) {
	var defterler []model.StajDefteri
	var total int64

	db := r.db.WithContext(ctx).Model(&model.StajDefteri{}).
		Joins("JOIN staj_basvurulari ON staj_basvurulari.basvuru_id = staj_defterleri.basvuru_id").
		Where("staj_basvurulari.danisman_eposta = ?", eposta)
	if durum != "" {
		db = db.Where("staj_defterleri.durum = ?", durum)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("Basvuru").
		Preload("Basvuru.Ogrenci").
		Offset(offset).Limit(limit).
		Order("staj_defterleri.created_at DESC").
		Find(&defterler).Error; err != nil {
		return nil, 0, err
	}

	return defterler, total, nil
}
