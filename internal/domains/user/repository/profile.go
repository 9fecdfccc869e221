package repository

//go:generate go run go.uber.org/mock/mockgen -source=./profile.go -destination=../mocks/profile_mock.go -package=mocks

import (
	"context"
	"innstay/infras/otel"
	"innstay/infras/postgres"
	"innstay/internal/domains/user/model"
	gDto "innstay/shared/dto"
	gRepo "innstay/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Profile interface {
	Insert(ctx context.Context, model model.Profile) error
	InsertTx(ctx context.Context, tx *sqlx.Tx, model model.Profile) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Profile, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type profileRepositoryImpl struct {
	gRepo.Repository[model.Profile]
	db   *postgres.Connection
	otel otel.Otel
}

func NewProfile(db *postgres.Connection, otel otel.Otel) Profile {
	return &profileRepositoryImpl{
		Repository: gRepo.NewRepository[model.Profile](model.ProfileEntityName, model.ProfileTableName, model.ProfileFieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
