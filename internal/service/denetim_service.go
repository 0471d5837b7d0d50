package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/bugra455/stajuygulamasi-sub001/internal/dto"
	"github.com/bugra455/stajuygulamasi-sub001/internal/model"
	"github.com/bugra455/stajuygulamasi-sub001/internal/repository"
)

// DenetimService denetim günlüğü okuma arayüzü (admin)
type DenetimService interface {
	List(ctx context.Context, req *dto.PaginationRequest) ([]dto.IslemKaydiResponse, int64, error)
	ListByHedef(ctx context.Context, hedefID string) ([]dto.IslemKaydiResponse, error)
}

type denetimService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewDenetimService DenetimService örneği oluşturur
func NewDenetimService(repo *repository.Repository, logger *zap.Logger) DenetimService {
	return &denetimService{repo: repo, logger: logger}
}

func (s *denetimService) List(ctx context.Context, req *dto.PaginationRequest) ([]dto.IslemKaydiResponse, int64, error) {
	kayitlar, total, err := s.repo.IslemKaydi.List(ctx, req.Offset(), req.Limit())
	if err != nil {
		s.logger.Error("denetim günlüğü listelenemedi", zap.Error(err))
		return nil, 0, err
	}
	return toIslemKaydiResponseList(kayitlar), total, nil
}

func (s *denetimService) ListByHedef(ctx context.Context, hedefID string) ([]dto.IslemKaydiResponse, error) {
	kayitlar, err := s.repo.IslemKaydi.ListByHedef(ctx, hedefID)
	if err != nil {
		s.logger.Error("denetim günlüğü listelenemedi", zap.String("hedef_id", hedefID), zap.Error(err))
		return nil, err
	}
	return toIslemKaydiResponseList(kayitlar), nil
}

func toIslemKaydiResponseList(kayitlar []model.IslemKaydi) []dto.IslemKaydiResponse {
	result := make([]dto.IslemKaydiResponse, 0, len(kayitlar))
	for i := range kayitlar {
		k := &kayitlar[i]
		result = append(result, dto.IslemKaydiResponse{
			KayitID:     k.KayitID,
			KullaniciID: k.KullaniciID,
			IslemTipi:   k.IslemTipi,
			KayitTipi:   k.KayitTipi,
			HedefID:     k.HedefID,
			Aciklama:    k.Aciklama,
			CreatedAt:   k.CreatedAt.Format(time.RFC3339),
		})
	}
	return result
}
