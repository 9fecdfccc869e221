package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"innstay/infras/otel/mocks"
	statsMocks "innstay/internal/domains/stats/mocks"
	"innstay/internal/domains/stats/service"
)

func TestStatsService_RecordView(t *testing.T) {
	t.Run("increments the counter", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := statsMocks.NewMockStats(ctrl)

		repo.EXPECT().IncrementViews(gomock.Any()).Return(nil)

		svc := service.New(repo, mocks.NewOtel())
		svc.RecordView(context.Background())
	})

	t.Run("swallows repository errors", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := statsMocks.NewMockStats(ctrl)

		repo.EXPECT().IncrementViews(gomock.Any()).Return(assert.AnError)

		svc := service.New(repo, mocks.NewOtel())

		assert.NotPanics(t, func() {
			svc.RecordView(context.Background())
		})
	})
}

func TestStatsService_Views(t *testing.T) {
	t.Run("returns the running total", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := statsMocks.NewMockStats(ctrl)

		repo.EXPECT().TotalViews(gomock.Any()).Return(int64(1234), nil)

		svc := service.New(repo, mocks.NewOtel())

		res, err := svc.Views(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, int64(1234), res.TotalViews)
	})

	t.Run("propagates repository errors", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := statsMocks.NewMockStats(ctrl)

		repo.EXPECT().TotalViews(gomock.Any()).Return(int64(0), assert.AnError)

		svc := service.New(repo, mocks.NewOtel())

		_, err := svc.Views(context.Background())

		assert.Error(t, err)
	})
}
