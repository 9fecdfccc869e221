package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"innstay/infras/otel"
	"innstay/infras/postgres"
	"innstay/internal/domains/booking/model"
	hotelModel "innstay/internal/domains/hotel/model"
	"innstay/shared/constant"
	gDto "innstay/shared/dto"
	"innstay/shared/logger"
	gRepo "innstay/shared/repository"

	"github.com/jmoiron/sqlx"
)

// ErrDatesUnavailable is returned when the requested stay collides with an
// active booking on the same room or property.
var ErrDatesUnavailable = errors.New("requested dates are not available")

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	CreateIfAvailable(ctx context.Context, booking model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	GetAllForOwner(ctx context.Context, ownerID string, params gDto.QueryParams) ([]model.Booking, error)
	CountForOwner(ctx context.Context, ownerID string) (int, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// CreateIfAvailable checks the half-open overlap predicate and inserts the
// booking in one SERIALIZABLE transaction, so two concurrent requests for
// the same dates cannot both get through.
func (repo *repositoryImpl) CreateIfAvailable(ctx context.Context, booking model.Booking) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.CreateIfAvailable")
	defer scope.End()
	defer scope.TraceIfError(err)

	conditions := []string{
		fmt.Sprintf("%s = :hotel_id", model.FieldHotelID),
		fmt.Sprintf("%s IN ('%s', '%s')", model.FieldStatus, model.StatusPending, model.StatusConfirmed),
		fmt.Sprintf("%s < :check_out", model.FieldCheckIn),
		fmt.Sprintf("%s > :check_in", model.FieldCheckOut),
	}

	args := map[string]any{
		"hotel_id":  booking.HotelID,
		"check_in":  booking.CheckIn,
		"check_out": booking.CheckOut,
	}

	// Room bookings only conflict within the same room; whole-property
	// bookings conflict with anything active on the hotel.
	if booking.RoomID != nil {
		conditions = append(conditions, fmt.Sprintf("%s = :room_id", model.FieldRoomID))
		args["room_id"] = *booking.RoomID
	}

	query := fmt.Sprintf(
		"SELECT EXISTS (SELECT 1 FROM %s WHERE %s)",
		model.TableName,
		strings.Join(conditions, " AND "),
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	err = repo.db.WithSerializableTx(ctx, func(tx *sqlx.Tx) error {
		rows, err := tx.NamedQuery(query, args)
		if err != nil {
			logger.ErrorWithStack(err)

			return fmt.Errorf("failed to check booking availability: %w", err)
		}
		defer rows.Close()

		var taken bool
		if rows.Next() {
			if err := rows.Scan(&taken); err != nil {
				return fmt.Errorf("failed to scan booking availability: %w", err)
			}
		}

		if err := rows.Err(); err != nil {
			return fmt.Errorf("failed to check booking availability: %w", err)
		}

		if taken {
			return ErrDatesUnavailable
		}

		return repo.InsertTx(ctx, tx, booking) //nolint:wrapcheck
	})
	if postgres.IsSerializationFailure(err) {
		// The losing side of a concurrent insert for the same dates. For
		// the caller that is the same outcome as the dates being taken.
		return ErrDatesUnavailable
	}

	return err
}

// GetAllForOwner returns the bookings across every hotel the owner manages,
// newest first.
func (repo *repositoryImpl) GetAllForOwner(ctx context.Context, ownerID string, params gDto.QueryParams) (res []model.Booking, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.GetAllForOwner")
	defer scope.End()
	defer scope.TraceIfError(err)

	offset := (params.Page - 1) * params.Limit

	query := fmt.Sprintf(
		"SELECT b.id, b.hotel_id, b.room_id, b.customer_id, b.guest_name, b.guest_phone, b.check_in, b.check_out, b.status, b.total_amount, b.created_by, b.modified_by FROM %s b JOIN %s h ON h.%s = b.%s WHERE h.%s = $1 ORDER BY b.check_in DESC LIMIT $2 OFFSET $3",
		model.TableName,
		hotelModel.TableName,
		hotelModel.FieldID,
		model.FieldHotelID,
		hotelModel.FieldOwnerID,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if err = repo.db.Read.SelectContext(ctx, &res, query, ownerID, params.Limit, offset); err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to get owner bookings: %w", err)
	}

	return res, nil
}

func (repo *repositoryImpl) CountForOwner(ctx context.Context, ownerID string) (res int, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.CountForOwner")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := fmt.Sprintf(
		"SELECT COUNT(*) FROM %s b JOIN %s h ON h.%s = b.%s WHERE h.%s = $1",
		model.TableName,
		hotelModel.TableName,
		hotelModel.FieldID,
		model.FieldHotelID,
		hotelModel.FieldOwnerID,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if err = repo.db.Read.GetContext(ctx, &res, query, ownerID); err != nil {
		logger.ErrorWithStack(err)

		return 0, fmt.Errorf("failed to count owner bookings: %w", err)
	}

	return res, nil
}
