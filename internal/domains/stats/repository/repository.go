package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"innstay/infras/otel"
	"innstay/infras/postgres"
	"innstay/internal/domains/stats/model"
	"innstay/shared/constant"
	"innstay/shared/logger"
)

type Stats interface {
	IncrementViews(ctx context.Context) error
	TotalViews(ctx context.Context) (int64, error)
}

type repositoryImpl struct {
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Stats {
	return &repositoryImpl{
		db:   db,
		otel: otel,
	}
}

// IncrementViews bumps the site-wide view counter in a single statement.
// The upsert both seeds the singleton row and increments it, so concurrent
// requests never lose counts.
func (repo *repositoryImpl) IncrementViews(ctx context.Context) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".stats.IncrementViews")
	defer scope.End()

	query := fmt.Sprintf(
		"INSERT INTO %s (%s, %s) VALUES ($1, 1) ON CONFLICT (%s) DO UPDATE SET %s = %s.%s + 1",
		model.TableName,
		model.FieldID,
		model.FieldTotalViews,
		model.FieldID,
		model.FieldTotalViews,
		model.TableName,
		model.FieldTotalViews,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err = repo.db.Write.ExecContext(ctx, query, model.SingletonID); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to increment site views: %w", err)
	}

	return nil
}

func (repo *repositoryImpl) TotalViews(ctx context.Context) (res int64, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".stats.TotalViews")
	defer scope.End()

	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1", model.FieldTotalViews, model.TableName, model.FieldID)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	err = repo.db.Read.GetContext(ctx, &res, query, model.SingletonID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}

		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to get site views: %w", err)
	}

	return res, nil
}
