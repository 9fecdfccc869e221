package hotel

import (
	"net/http"

	"innstay/infras/otel"
	"innstay/internal/domains/hotel/model"
	"innstay/internal/domains/hotel/model/dto"
	"innstay/internal/domains/hotel/service"
	roomDto "innstay/internal/domains/room/model/dto"
	roomService "innstay/internal/domains/room/service"
	"innstay/shared"
	"innstay/shared/constant"
	gDto "innstay/shared/dto"
	"innstay/shared/validator"
	"innstay/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service     service.Hotel
	roomService roomService.Room
	otel        otel.Otel
}

func New(service service.Hotel, roomService roomService.Room, otel otel.Otel) Handler {
	return Handler{
		service:     service,
		roomService: roomService,
		otel:        otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/hotels", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetHotels)
		routerGroup.Post("/", handler.CreateHotel)
		routerGroup.Get("/{id}", handler.GetHotelByID)
		routerGroup.Patch("/{id}", handler.UpdateHotel)
		routerGroup.Delete("/{id}", handler.DeleteHotel)
		routerGroup.Get("/{id}/rooms", handler.GetHotelRooms)
		routerGroup.Post("/{id}/rooms", handler.CreateHotelRoom)
	})

	router.Get("/owners/hotels", handler.GetOwnerHotels)
}

// GetHotels retrieves hotels with optional search and pagination.
// @Summary Search hotels
// @Description Retrieve hotels, optionally filtered by a free-text search over name and address.
// @Tags Hotel
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param q query string false "Search by name or address"
// @Param rental_mode query string false "Filter by rental mode (individual_rooms, whole_property)"
// @Success 200 {object} response.Data[dto.GetHotelsResponse] "List of hotels"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/hotels [get]
func (handler *Handler) GetHotels(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetHotels")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	query := r.URL.Query().Get("q")
	rentalMode := r.URL.Query().Get(model.FieldRentalMode)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldActive,
				Operator: gDto.FilterOperatorEq,
				Value:    true,
				Table:    model.TableName,
			},
		},
	}

	if query != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorOr,
			Filters: []any{
				gDto.Filter{
					Field:    model.FieldName,
					Operator: gDto.FilterOperatorLike,
					Value:    query,
					Table:    model.TableName,
				},
				gDto.Filter{
					Field:    model.FieldAddress,
					Operator: gDto.FilterOperatorLike,
					Value:    query,
					Table:    model.TableName,
				},
			},
		})
	}

	if rentalMode != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldRentalMode,
			Operator: gDto.FilterOperatorEq,
			Value:    rentalMode,
			Table:    model.TableName,
		})
	}

	hotels, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get hotels")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Hotels retrieved successfully")

	response.WithJSON(w, http.StatusOK, hotels)
}

// CreateHotel handles the creation of a new hotel listing.
// @Summary Create a new hotel
// @Description List a new hotel or villa owned by the authenticated owner.
// @Tags Hotel
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Hotel name"
// @Param address formData string true "Hotel address"
// @Param description formData string false "Hotel description"
// @Param rental_mode formData string true "Rental mode (individual_rooms, whole_property)"
// @Param nightly_rate formData number false "Whole-property nightly rate"
// @Param image formData file false "Hotel image"
// @Success 201 {object} response.Message "Hotel created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/hotels [post]
// @Security BearerAuth
func (handler *Handler) CreateHotel(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateHotel")
	defer scope.End()

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(w, err)

		return
	}

	req := dto.CreateHotelRequest{
		Name:        r.FormValue(model.FieldName),
		Address:     r.FormValue(model.FieldAddress),
		Description: r.FormValue(model.FieldDescription),
		RentalMode:  r.FormValue(model.FieldRentalMode),
	}

	if rateStr := r.FormValue(model.FieldNightlyRate); rateStr != "" {
		if rate, err := shared.ConvertStringToFloat(rateStr); err == nil {
			req.NightlyRate = &rate
		}
	}

	if facilityIDs := r.Form["facility_ids"]; len(facilityIDs) > 0 {
		req.FacilityIDs = facilityIDs
	}

	file, fileHeader, err := r.FormFile("image")
	if err == nil {
		req.Image = fileHeader
		req.ImageFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create hotel")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Hotel created successfully by user " + user)

	response.WithMessage(w, http.StatusCreated, "Hotel created successfully")
}

// GetHotelByID retrieves a hotel by its ID.
// @Summary Get a hotel by ID
// @Description Retrieve a hotel with its facilities by its unique identifier.
// @Tags Hotel
// @Accept json
// @Produce json
// @Param id path string true "Hotel ID"
// @Success 200 {object} response.Data[dto.HotelResponse] "Hotel details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/hotels/{id} [get]
func (handler *Handler) GetHotelByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetHotelByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	hotel, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get hotel by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Hotel retrieved successfully")

	response.WithJSON(w, http.StatusOK, hotel)
}

// UpdateHotel updates an existing hotel by its ID.
// @Summary Update a hotel by ID
// @Description Update the details of a hotel owned by the authenticated owner.
// @Tags Hotel
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Hotel ID"
// @Param name formData string false "Hotel name"
// @Param address formData string false "Hotel address"
// @Param description formData string false "Hotel description"
// @Param nightly_rate formData number false "Whole-property nightly rate"
// @Param active formData boolean false "Hotel active status"
// @Param image formData file false "Hotel image"
// @Success 200 {object} response.Message "Hotel updated successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/hotels/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateHotel(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateHotel")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(w, err)

		return
	}

	req := dto.UpdateHotelRequest{
		Name:        r.FormValue(model.FieldName),
		Address:     r.FormValue(model.FieldAddress),
		Description: r.FormValue(model.FieldDescription),
	}

	if rateStr := r.FormValue(model.FieldNightlyRate); rateStr != "" {
		if rate, err := shared.ConvertStringToFloat(rateStr); err == nil {
			req.NightlyRate = &rate
		}
	}

	if facilityIDs, ok := r.Form["facility_ids"]; ok {
		req.FacilityIDs = facilityIDs
	}

	if activeStr := r.FormValue(model.FieldActive); activeStr != "" {
		req.Active = shared.ConvertStringToBool(activeStr)
	}

	file, fileHeader, err := r.FormFile("image")
	if err == nil {
		req.Image = fileHeader
		req.ImageFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update hotel")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Hotel updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Hotel updated successfully")
}

// DeleteHotel deletes a hotel by its ID.
// @Summary Delete a hotel by ID
// @Description Remove a hotel listing owned by the authenticated owner.
// @Tags Hotel
// @Accept json
// @Produce json
// @Param id path string true "Hotel ID"
// @Success 200 {object} response.Message "Hotel deleted successfully"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/hotels/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteHotel(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteHotel")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete hotel")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Hotel deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Hotel deleted successfully")
}

// GetHotelRooms lists the rooms of a hotel.
// @Summary Get hotel rooms
// @Description Retrieve the rooms of a hotel with pagination.
// @Tags Hotel
// @Accept json
// @Produce json
// @Param id path string true "Hotel ID"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[roomDto.GetRoomsResponse] "List of rooms"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/hotels/{id}/rooms [get]
func (handler *Handler) GetHotelRooms(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetHotelRooms")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	rooms, err := handler.roomService.GetAllByHotel(ctx, id, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get hotel rooms")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Hotel rooms retrieved successfully")

	response.WithJSON(w, http.StatusOK, rooms)
}

// CreateHotelRoom adds a room to a hotel.
// @Summary Add a room to a hotel
// @Description Add a room to a hotel owned by the authenticated owner.
// @Tags Hotel
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Hotel ID"
// @Param number formData string true "Room number"
// @Param room_type formData string true "Room type (single, double, suite, family)"
// @Param air_conditioned formData boolean false "Air conditioned"
// @Param nightly_rate formData number true "Nightly rate"
// @Param image formData file false "Room image"
// @Success 201 {object} response.Message "Room created successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/hotels/{id}/rooms [post]
// @Security BearerAuth
func (handler *Handler) CreateHotelRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateHotelRoom")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(w, err)

		return
	}

	req := roomDto.CreateRoomRequest{
		Number:   r.FormValue("number"),
		RoomType: r.FormValue("room_type"),
	}

	if acStr := r.FormValue("air_conditioned"); acStr != "" {
		if ac := shared.ConvertStringToBool(acStr); ac != nil {
			req.AirConditioned = *ac
		}
	}

	if rateStr := r.FormValue("nightly_rate"); rateStr != "" {
		if rate, err := shared.ConvertStringToFloat(rateStr); err == nil {
			req.NightlyRate = rate
		}
	}

	file, fileHeader, err := r.FormFile("image")
	if err == nil {
		req.Image = fileHeader
		req.ImageFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.roomService.Create(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create room")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Room created successfully by user " + user)

	response.WithMessage(w, http.StatusCreated, "Room created successfully")
}

// GetOwnerHotels lists the hotels owned by the authenticated owner.
// @Summary Get my hotels
// @Description Retrieve the hotels owned by the authenticated owner.
// @Tags Owner
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetHotelsResponse] "List of owned hotels"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/owners/hotels [get]
// @Security BearerAuth
func (handler *Handler) GetOwnerHotels(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOwnerHotels")
	defer scope.End()

	ownerID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldOwnerID,
				Operator: gDto.FilterOperatorEq,
				Value:    ownerID,
				Table:    model.TableName,
			},
		},
	}

	hotels, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get owner hotels")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Owner hotels retrieved successfully")

	response.WithJSON(w, http.StatusOK, hotels)
}
