package service

import (
	"context"
	"fmt"

	"innstay/infras/otel"
	"innstay/internal/domains/stats/model/dto"
	"innstay/internal/domains/stats/repository"
	"innstay/shared/constant"

	"github.com/rs/zerolog/log"
)

type Stats interface {
	RecordView(ctx context.Context)
	Views(ctx context.Context) (dto.ViewsResponse, error)
}

type serviceImpl struct {
	repo repository.Stats
	otel otel.Otel
}

func New(repo repository.Stats, otel otel.Otel) Stats {
	return &serviceImpl{
		repo: repo,
		otel: otel,
	}
}

// RecordView counts a page view. Analytics never fail a request, so errors
// are logged and dropped.
func (s *serviceImpl) RecordView(ctx context.Context) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RecordView")
	defer scope.End()

	if err := s.repo.IncrementViews(ctx); err != nil {
		log.Error().Err(err).Msg("failed to record site view")
	}
}

func (s *serviceImpl) Views(ctx context.Context) (res dto.ViewsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Views")
	defer scope.End()
	defer scope.TraceIfError(err)

	total, err := s.repo.TotalViews(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get site views")

		return res, fmt.Errorf("failed to get site views: %w", err)
	}

	res.TotalViews = total

	return res, nil
}
