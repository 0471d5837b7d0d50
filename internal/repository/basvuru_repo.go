package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/bugra455/stajuygulamasi-sub001/internal/model"
	pkgerrors "github.com/bugra455/stajuygulamasi-sub001/pkg/errors"
)

// BasvuruRepository staj başvurusu veri erişim arayüzü
type BasvuruRepository interface {
	// CreateWithLog başvuru ve denetim kaydını tek transaksiyonda yazar
	CreateWithLog(ctx context.Context, basvuru *model.StajBasvurusu, kayit *model.IslemKaydi) error
	GetByID(ctx context.Context, id string) (*model.StajBasvurusu, error)
	// UpdateWithLog iyimser kilitli güncelleme ile denetim kaydını tek transaksiyonda yazar
	UpdateWithLog(ctx context.Context, basvuru *model.StajBasvurusu, kayit *model.IslemKaydi) error
	Update(ctx context.Context, basvuru *model.StajBasvurusu) error
	ListByOgrenci(ctx context.Context, ogrenciID string, offset, limit int) ([]model.StajBasvurusu, int64, error)
	ListByDurum(ctx context.Context, durum string, offset, limit int) ([]model.StajBasvurusu, int64, error)
	ListByDanismanEposta(ctx context.Context, eposta, durum string, offset, limit int) ([]model.StajBasvurusu, int64, error)
	ListOnaylananByDanismanEposta(ctx context.Context, eposta string) ([]model.StajBasvurusu, error)
	Delete(ctx context.Context, id string) error
}

type basvuruRepo struct {
	db *gorm.DB
}

// NewBasvuruRepo BasvuruRepository örneği oluşturur
func NewBasvuruRepo(db *gorm.DB) BasvuruRepository {
	return &basvuruRepo{db: db}
}

func (r *basvuruRepo) CreateWithLog(ctx context.Context, basvuru *model.StajBasvurusu, kayit *model.IslemKaydi) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(basvuru).Error; err != nil {
			return err
		}
		kayit.HedefID = &basvuru.BasvuruID
		return tx.Create(kayit).Error
	})
}

func (r *basvuruRepo) GetByID(ctx context.Context, id string) (*model.StajBasvurusu, error) {
	var basvuru model.StajBasvurusu
	err := r.db.WithContext(ctx).
		Preload("Ogrenci").
		Preload("Cap").
		Preload("Cap.Danisman").
		Where("basvuru_id = ?", id).
		First(&basvuru).Error
	if err != nil {
		return nil, err
	}
	return &basvuru, nil
}

// guncelleVersiyonlu iyimser kilitle günceller; version uyuşmazsa ErrOptimisticLock
func guncelleVersiyonlu(tx *gorm.DB, basvuru *model.StajBasvurusu) error {
	eskiVersion := basvuru.Version
	basvuru.Version = eskiVersion + 1

	result := tx.Model(&model.StajBasvurusu{}).
		Where("basvuru_id = ? AND version = ?", basvuru.BasvuruID, eskiVersion).
		Select("*").
		Omit("basvuru_id", "created_at", "deleted_at").
		Updates(basvuru)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	return nil
}

func (r *basvuruRepo) UpdateWithLog(ctx context.Context, basvuru *model.StajBasvurusu, kayit *model.IslemKaydi) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := guncelleVersiyonlu(tx, basvuru); err != nil {
			return err
		}
		kayit.HedefID = &basvuru.BasvuruID
		return tx.Create(kayit).Error
	})
}

func (r *basvuruRepo) Update(ctx context.Context, basvuru *model.StajBasvurusu) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return guncelleVersiyonlu(tx, basvuru)
	})
}

func (r *basvuruRepo) ListByOgrenci(ctx context.Context, ogrenciID string, offset, limit int) ([]model.StajBasvurusu, int64, error) {
	return r.list(ctx, r.db.WithContext(ctx).Model(&model.StajBasvurusu{}).
		Where("ogrenci_id = ?", ogrenciID), offset, limit)
}

func (r *basvuruRepo) ListByDurum(ctx context.Context, durum string, offset, limit int) ([]model.StajBasvurusu, int64, error) {
	db := r.db.WithContext(ctx).Model(&model.StajBasvurusu{})
	if durum != "" {
		db = db.Where("onay_durumu = ?", durum)
	}
	return r.list(ctx, db, offset, limit)
}

func (r *basvuruRepo) ListByDanismanEposta(ctx context.Context, eposta, durum string, offset, limit int) ([]model.StajBasvurusu, int64, error) {
	db := r.db.WithContext(ctx).Model(&model.StajBasvurusu{}).
		Where("danisman_eposta = ?", eposta)
	if durum != "" {
		db = db.Where("onay_durumu = ?", durum)
	}
	return r.list(ctx, db, offset, limit)
}

func (r *basvuruRepo) ListOnaylananByDanismanEposta(ctx context.Context, eposta string) ([]model.StajBasvurusu, error) {
	var basvurular []model.StajBasvurusu
	err := r.db.WithContext(ctx).
		Preload("Ogrenci").
		Where("danisman_eposta = ? AND onay_durumu = ?", eposta, model.DurumOnaylandi).
		Order("baslangic_tarihi").
		Find(&basvurular).Error
	if err != nil {
		return nil, err
	}
	return basvurular, nil
}

func (r *basvuruRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("basvuru_id = ?", id).
		Delete(&model.StajBasvurusu{}).Error
}

func (r *basvuruRepo) list(ctx context.Context, db *gorm.DB, offset, limit int) ([]model.StajBasvurusu, int64, error) {
	var basvurular []model.StajBasvurusu
	var total int64

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("Ogrenci").
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&basvurular).Error; err != nil {
		return nil, 0, err
	}

	return basvurular, total, nil
}
