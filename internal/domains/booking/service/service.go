package service

import (
	"context"
	"errors"
	"fmt"

	"innstay/config"
	"innstay/infras/kafka"
	"innstay/infras/otel"
	"innstay/infras/sms"
	"innstay/internal/domains/booking/model"
	"innstay/internal/domains/booking/model/dto"
	"innstay/internal/domains/booking/repository"
	hotelModel "innstay/internal/domains/hotel/model"
	hotelRepo "innstay/internal/domains/hotel/repository"
	roomModel "innstay/internal/domains/room/model"
	roomRepo "innstay/internal/domains/room/repository"
	userModel "innstay/internal/domains/user/model"
	userRepo "innstay/internal/domains/user/repository"
	"innstay/shared"
	"innstay/shared/cache"
	"innstay/shared/constant"
	gDto "innstay/shared/dto"
	"innstay/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) error
	CreateManual(ctx context.Context, req dto.ManualBookingRequest) error
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	GetMine(ctx context.Context, req gDto.QueryParams) (dto.GetBookingsResponse, error)
	GetAllForOwner(ctx context.Context, req gDto.QueryParams) (dto.GetBookingsResponse, error)
	Confirm(ctx context.Context, id string) error
	Reject(ctx context.Context, id string) error
	Cancel(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo        repository.Booking
	hotelRepo   hotelRepo.Hotel
	roomRepo    roomRepo.Room
	profileRepo userRepo.Profile
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
	sms         sms.SMS
	kafka       kafka.Client
}

func New(
	repo repository.Booking,
	hotelRepo hotelRepo.Hotel,
	roomRepo roomRepo.Room,
	profileRepo userRepo.Profile,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	sms sms.SMS,
	kafka kafka.Client,
) Booking {
	return &serviceImpl{
		repo:        repo,
		hotelRepo:   hotelRepo,
		roomRepo:    roomRepo,
		profileRepo: profileRepo,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
		sms:         sms,
		kafka:       kafka,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	customerID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := req.ToModel(customerID)
	if err != nil {
		return err
	}

	hotel, err := s.loadHotel(ctx, booking.HotelID)
	if err != nil {
		return err
	}

	if err = s.validateStayTarget(ctx, &booking, hotel); err != nil {
		return err
	}

	if err = s.repo.CreateIfAvailable(ctx, booking); err != nil {
		if errors.Is(err, repository.ErrDatesUnavailable) {
			return failure.Conflict("requested dates are not available") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create booking")

		return fmt.Errorf("failed to create booking: %w", err)
	}

	s.afterChange(ctx, booking, constant.Empty)

	return nil
}

func (s *serviceImpl) CreateManual(ctx context.Context, req dto.ManualBookingRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateManual")
	defer scope.End()
	defer scope.TraceIfError(err)

	ownerID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := req.ToModel(ownerID)
	if err != nil {
		return err
	}

	hotel, err := s.loadHotel(ctx, booking.HotelID)
	if err != nil {
		return err
	}

	if err = requireHotelAccess(ctx, hotel.OwnerID); err != nil {
		return err
	}

	if err = s.validateStayTarget(ctx, &booking, hotel); err != nil {
		return err
	}

	// Walk-in bookings are confirmed on the spot, so they are priced on
	// the spot too.
	rate, err := s.nightlyRateFor(ctx, booking, hotel)
	if err != nil {
		return err
	}

	total := model.PriceFor(booking.Nights(), rate)
	booking.TotalAmount = &total

	// The owner records what happened at the front desk; the dates are
	// taken as given rather than availability-checked.
	if err = s.repo.Insert(ctx, booking); err != nil {
		log.Error().Err(err).Msg("failed to create manual booking")

		return fmt.Errorf("failed to create manual booking: %w", err)
	}

	s.afterChange(ctx, booking, constant.Empty)

	return nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.loadBooking(ctx, id)
	if err != nil {
		return res, err
	}

	if err = s.requireBookingAccess(ctx, booking); err != nil {
		return res, err
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) GetMine(ctx context.Context, req gDto.QueryParams) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetMine")
	defer scope.End()
	defer scope.TraceIfError(err)

	customerID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldCustomerID,
				Operator: gDto.FilterOperatorEq,
				Value:    customerID,
				Table:    model.TableName,
			},
		},
	}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetAllForOwner(ctx context.Context, req gDto.QueryParams) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAllForOwner")
	defer scope.End()
	defer scope.TraceIfError(err)

	ownerID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	total, err := s.repo.CountForOwner(ctx, ownerID)
	if err != nil {
		log.Error().Err(err).Msg("failed to count owner bookings")

		return res, fmt.Errorf("failed to count owner bookings: %w", err)
	}

	models, err := s.repo.GetAllForOwner(ctx, ownerID, req)
	if err != nil {
		log.Error().Err(err).Msg("failed to get owner bookings")

		return res, fmt.Errorf("failed to get owner bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) Confirm(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Confirm")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.loadBooking(ctx, id)
	if err != nil {
		return err
	}

	hotel, err := s.loadHotel(ctx, booking.HotelID)
	if err != nil {
		return err
	}

	if err = requireHotelAccess(ctx, hotel.OwnerID); err != nil {
		return err
	}

	if !booking.Status.CanTransitionTo(model.StatusConfirmed) {
		return failure.Conflict(fmt.Sprintf("cannot confirm a %s booking", booking.Status)) // nolint:wrapcheck
	}

	// The price is computed at confirmation time from the current rate,
	// and overwritten wholesale on retry so confirming twice never
	// double-charges.
	rate, err := s.nightlyRateFor(ctx, booking, hotel)
	if err != nil {
		return err
	}

	total := model.PriceFor(booking.Nights(), rate)
	update := dto.UpdateStatusAndAmountRequest{
		Status:      model.StatusConfirmed,
		TotalAmount: &total,
	}

	if err = s.updateBooking(ctx, booking, update); err != nil {
		return err
	}

	booking.Status = model.StatusConfirmed
	booking.TotalAmount = &total

	message := fmt.Sprintf(
		"Your booking at %s from %s to %s is confirmed. Total: %.2f",
		hotel.Name,
		booking.CheckIn.Format(constant.DateOnlyFormat),
		booking.CheckOut.Format(constant.DateOnlyFormat),
		total,
	)
	s.afterChange(ctx, booking, message)

	return nil
}

func (s *serviceImpl) Reject(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reject")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.loadBooking(ctx, id)
	if err != nil {
		return err
	}

	hotel, err := s.loadHotel(ctx, booking.HotelID)
	if err != nil {
		return err
	}

	if err = requireHotelAccess(ctx, hotel.OwnerID); err != nil {
		return err
	}

	if !booking.Status.CanTransitionTo(model.StatusCancelled) {
		return failure.Conflict(fmt.Sprintf("cannot reject a %s booking", booking.Status)) // nolint:wrapcheck
	}

	if err = s.updateBooking(ctx, booking, dto.UpdateStatusRequest{Status: model.StatusCancelled}); err != nil {
		return err
	}

	booking.Status = model.StatusCancelled

	message := fmt.Sprintf(
		"Your booking at %s from %s to %s was declined by the property.",
		hotel.Name,
		booking.CheckIn.Format(constant.DateOnlyFormat),
		booking.CheckOut.Format(constant.DateOnlyFormat),
	)
	s.afterChange(ctx, booking, message)

	return nil
}

func (s *serviceImpl) Cancel(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.loadBooking(ctx, id)
	if err != nil {
		return err
	}

	customerID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if booking.CustomerID != customerID {
		return failure.Forbidden("only the booking's customer may cancel it") // nolint:wrapcheck
	}

	// Cancelling an already-cancelled booking is a no-op, not an error.
	if booking.Status == model.StatusCancelled {
		return nil
	}

	if booking.Status == model.StatusConfirmed {
		return failure.Conflict("confirmed bookings can only be cancelled by the property") // nolint:wrapcheck
	}

	if err = s.updateBooking(ctx, booking, dto.UpdateStatusRequest{Status: model.StatusCancelled}); err != nil {
		return err
	}

	booking.Status = model.StatusCancelled
	s.afterChange(ctx, booking, constant.Empty)

	return nil
}

func (s *serviceImpl) loadBooking(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) loadHotel(ctx context.Context, id string) (hotelModel.Hotel, error) {
	hotel, err := s.hotelRepo.Get(ctx, shared.FilterByID(id, hotelModel.FieldID, hotelModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get hotel")

		return hotel, fmt.Errorf("failed to get hotel: %w", err)
	}

	if hotel.ID == constant.Empty {
		return hotel, failure.NotFound("hotel not found") // nolint:wrapcheck
	}

	return hotel, nil
}

// validateStayTarget checks that the booking targets what the hotel actually
// rents out: a room for room-by-room hotels, the whole property otherwise.
func (s *serviceImpl) validateStayTarget(ctx context.Context, booking *model.Booking, hotel hotelModel.Hotel) error {
	if !hotel.Active {
		return failure.BadRequestFromString("hotel is not accepting bookings") // nolint:wrapcheck
	}

	switch hotel.RentalMode {
	case hotelModel.RentalModeIndividualRooms:
		if booking.RoomID == nil {
			return failure.BadRequestFromString("room_id is required for this hotel") // nolint:wrapcheck
		}

		room, err := s.roomRepo.Get(ctx, shared.FilterByID(*booking.RoomID, roomModel.FieldID, roomModel.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to get room")

			return fmt.Errorf("failed to get room: %w", err)
		}

		if room.ID == constant.Empty || room.HotelID != hotel.ID {
			return failure.BadRequestFromString("room does not belong to this hotel") // nolint:wrapcheck
		}

		if !room.Active {
			return failure.BadRequestFromString("room is not accepting bookings") // nolint:wrapcheck
		}
	case hotelModel.RentalModeWholeProperty:
		if booking.RoomID != nil {
			return failure.BadRequestFromString("this hotel is booked as a whole property, not by room") // nolint:wrapcheck
		}
	default:
		return failure.InternalError(fmt.Errorf("unknown rental mode %q", hotel.RentalMode)) // nolint:wrapcheck
	}

	return nil
}

// nightlyRateFor resolves the rate a stay is priced at: the room's rate for
// room bookings, the hotel's whole-property rate otherwise.
func (s *serviceImpl) nightlyRateFor(ctx context.Context, booking model.Booking, hotel hotelModel.Hotel) (float64, error) {
	if booking.RoomID != nil {
		room, err := s.roomRepo.Get(ctx, shared.FilterByID(*booking.RoomID, roomModel.FieldID, roomModel.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to get room")

			return 0, fmt.Errorf("failed to get room: %w", err)
		}

		if room.ID == constant.Empty {
			return 0, failure.NotFound("room not found") // nolint:wrapcheck
		}

		return room.NightlyRate, nil
	}

	if hotel.NightlyRate == nil {
		return 0, failure.Conflict("hotel has no nightly rate configured") // nolint:wrapcheck
	}

	return *hotel.NightlyRate, nil
}

func (s *serviceImpl) updateBooking(ctx context.Context, booking model.Booking, req any) error {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	updatedFields := shared.TransformFields(req, user)

	if err := s.repo.Update(ctx, updatedFields, shared.FilterByID(booking.ID, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update booking")

		return fmt.Errorf("failed to update booking: %w", err)
	}

	return nil
}

// requireBookingAccess lets the customer who made the booking, the hotel's
// owner, and managers read it.
func (s *serviceImpl) requireBookingAccess(ctx context.Context, booking model.Booking) error {
	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	if role == constant.RoleManager || booking.CustomerID == userID {
		return nil
	}

	hotel, err := s.loadHotel(ctx, booking.HotelID)
	if err != nil {
		return err
	}

	if hotel.OwnerID == userID {
		return nil
	}

	return failure.Forbidden("you may not view this booking") // nolint:wrapcheck
}

func requireHotelAccess(ctx context.Context, ownerID string) error {
	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	if role == constant.RoleManager || userID == ownerID {
		return nil
	}

	return failure.Forbidden("you do not manage this hotel") // nolint:wrapcheck
}

// afterChange invalidates listings, notifies the guest over SMS and emits a
// booking event. All of it is best effort and never fails the request.
func (s *serviceImpl) afterChange(ctx context.Context, booking model.Booking, smsMessage string) {
	c := context.WithoutCancel(ctx)

	go func() {
		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, booking.ID)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()

	go func() {
		event := kafka.Message{Key: booking.ID, Value: dto.NewBookingEvent(booking)}
		if err := s.kafka.SendMessages(c, constant.KafkaTopicBookingEvents, event); err != nil {
			log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to publish booking event")
		}
	}()

	if smsMessage == constant.Empty {
		return
	}

	go func() {
		phone, err := s.guestPhone(c, booking)
		if err != nil {
			log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to resolve guest phone")

			return
		}

		if err := s.sms.SendText(c, phone, smsMessage); err != nil {
			log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to send booking SMS")
		}
	}()
}

func (s *serviceImpl) guestPhone(ctx context.Context, booking model.Booking) (string, error) {
	if booking.GuestPhone != nil {
		return *booking.GuestPhone, nil
	}

	profile, err := s.profileRepo.Get(ctx, shared.FilterByID(booking.CustomerID, userModel.ProfileFieldUserID, userModel.ProfileTableName))
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to get customer profile: %w", err)
	}

	if profile.Phone == constant.Empty {
		return constant.Empty, errors.New("customer has no phone number")
	}

	return profile.Phone, nil
}
