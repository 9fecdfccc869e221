package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"innstay/infras/otel"
	"innstay/infras/postgres"
	"innstay/internal/domains/hotel/model"
	"innstay/shared/constant"
	gDto "innstay/shared/dto"
	"innstay/shared/logger"
	gRepo "innstay/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Hotel interface {
	Insert(ctx context.Context, model model.Hotel) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Hotel, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Hotel, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	GetFacilities(ctx context.Context, hotelID string) ([]model.Facility, error)
	ReplaceFacilities(ctx context.Context, hotelID string, facilityIDs []string) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Hotel]
	facilityLinks gRepo.Repository[model.HotelFacility]
	db            *postgres.Connection
	otel          otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Hotel {
	return &repositoryImpl{
		Repository:    gRepo.NewRepository[model.Hotel](model.EntityName, model.TableName, model.FieldID, db, otel),
		facilityLinks: gRepo.NewRepository[model.HotelFacility](model.HotelFacilityEntityName, model.HotelFacilityTableName, model.HotelFacilityFieldHotelID, db, otel),
		db:            db,
		otel:          otel,
	}
}

func (repo *repositoryImpl) GetFacilities(ctx context.Context, hotelID string) (res []model.Facility, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".hotel.GetFacilities")
	defer scope.End()

	query := fmt.Sprintf(
		"SELECT f.id, f.name, f.created_by, f.modified_by FROM %s f JOIN %s hf ON hf.%s = f.%s WHERE hf.%s = $1 ORDER BY f.name",
		model.FacilityTableName,
		model.HotelFacilityTableName,
		model.HotelFacilityFieldFacilityID,
		model.FacilityFieldID,
		model.HotelFacilityFieldHotelID,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if err = repo.db.Read.SelectContext(ctx, &res, query, hotelID); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get hotel facilities: %w", err)
	}

	return res, nil
}

func (repo *repositoryImpl) ReplaceFacilities(ctx context.Context, hotelID string, facilityIDs []string) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".hotel.ReplaceFacilities")
	defer scope.End()

	linkFilter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.HotelFacilityFieldHotelID,
				Operator: gDto.FilterOperatorEq,
				Value:    hotelID,
				Table:    model.HotelFacilityTableName,
			},
		},
	}

	err = repo.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := repo.facilityLinks.DeleteTx(ctx, tx, linkFilter); err != nil {
			return fmt.Errorf("failed to clear hotel facilities: %w", err)
		}

		if len(facilityIDs) == 0 {
			return nil
		}

		links := make([]model.HotelFacility, len(facilityIDs))
		for i, facilityID := range facilityIDs {
			links[i] = model.HotelFacility{HotelID: hotelID, FacilityID: facilityID}
		}

		if err := repo.facilityLinks.InsertBulkTx(ctx, tx, links); err != nil {
			return fmt.Errorf("failed to link hotel facilities: %w", err)
		}

		return nil
	})
	if err != nil {
		scope.TraceError(err)

		return err
	}

	return nil
}
