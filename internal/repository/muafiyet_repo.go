package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/bugra455/stajuygulamasi-sub001/internal/model"
)

// MuafiyetRepository muafiyet başvurusu veri erişim arayüzü
type MuafiyetRepository interface {
	CreateWithLog(ctx context.Context, muafiyet *model.MuafiyetBasvurusu, kayit *model.IslemKaydi) error
	GetByID(ctx context.Context, id string) (*model.MuafiyetBasvurusu, error)
	Update(ctx context.Context, muafiyet *model.MuafiyetBasvurusu) error
	ListByOgrenci(ctx context.Context, ogrenciID string, offset, limit int) ([]model.MuafiyetBasvurusu, int64, error)
	ListByDanismanEposta(ctx context.Context, eposta, durum string, offset, limit int) ([]model.MuafiyetBasvurusu, int64, error)
	Delete(ctx context.Context, id string) error
}

type muafiyetRepo struct {
	db *gorm.DB
}

// NewMuafiyetRepo MuafiyetRepository örneği oluşturur
func NewMuafiyetRepo(db *gorm.DB) MuafiyetRepository {
	return &muafiyetRepo{db: db}
}

func (r *muafiyetRepo) CreateWithLog(ctx context.Context, muafiyet *model.MuafiyetBasvurusu, kayit *model.IslemKaydi) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(muafiyet).Error; err != nil {
			return err
		}
		kayit.HedefID = &muafiyet.MuafiyetID
		return tx.Create(kayit).Error
	})
}

func (r *muafiyetRepo) GetByID(ctx context.Context, id string) (*model.MuafiyetBasvurusu, error) {
	var muafiyet model.MuafiyetBasvurusu
	err := r.db.WithContext(ctx).
		Preload("Ogrenci").
		Preload("Cap").
		Preload("Cap.Danisman").
		Where("muafiyet_id = ?", id).
		First(&muafiyet).Error
	if err != nil {
		return nil, err
	}
	return &muafiyet, nil
}

func (r *muafiyetRepo) Update(ctx context.Context, muafiyet *model.MuafiyetBasvurusu) error {
	return r.db.WithContext(ctx).Save(muafiyet).Error
}

func (r *muafiyetRepo) ListByOgrenci(ctx context.Context, ogrenciID string, offset, limit int) ([]model.MuafiyetBasvurusu, int64, error) {
	return r.list(ctx, r.db.WithContext(ctx).Model(&model.MuafiyetBasvurusu{}).
		Where("ogrenci_id = ?", ogrenciID), offset, limit)
}

func (r *muafiyetRepo) ListByDanismanEposta(ctx context.Context, eposta, durum string, offset, limit int) ([]model.MuafiyetBasvurusu, int64, error) {
	db := r.db.WithContext(ctx).Model(&model.MuafiyetBasvurusu{}).
		Where("danisman_eposta = ?", eposta)
	if durum != "" {
		db = db.Where("onay_durumu = ?", durum)
	}
	return r.list(ctx, db, offset, limit)
}

func (r *muafiyetRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("muafiyet_id = ?", id).
		Delete(&model.MuafiyetBasvurusu{}).Error
}

func (r *muafiyetRepo) list(ctx context.Context, db *gorm.DB, offset, limit int) ([]model.MuafiyetBasvurusu, int64, error) {
	var muafiyetler []model.MuafiyetBasvurusu
	var total int64

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("Ogrenci").
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&muafiyetler).Error; err != nil {
		return nil, 0, err
	}

	return muafiyetler, total, nil
}
