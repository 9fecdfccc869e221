package dto

import (
	"time"

	"innstay/internal/domains/booking/model"
	"innstay/shared"
	"innstay/shared/constant"
	gDto "innstay/shared/dto"
	"innstay/shared/failure"
	gModel "innstay/shared/model"
	"innstay/shared/timezone"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	HotelID  string  `json:"hotel_id"           validate:"required,uuid4"`
	RoomID   *string `json:"room_id,omitempty"  validate:"omitempty,uuid4"`
	CheckIn  string  `json:"check_in"           validate:"required"`
	CheckOut string  `json:"check_out"          validate:"required"`
}

func (c *CreateBookingRequest) ToModel(customerID string) (model.Booking, error) {
	checkIn, checkOut, err := ParseStayDates(c.CheckIn, c.CheckOut)
	if err != nil {
		return model.Booking{}, err
	}

	return model.Booking{
		ID:         uuid.NewString(),
		HotelID:    c.HotelID,
		RoomID:     c.RoomID,
		CustomerID: customerID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Status:     model.StatusPending,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  customerID,
			ModifiedBy: customerID,
		},
	}, nil
}

// ManualBookingRequest records a walk-in stay on behalf of a guest who has
// no account. The booking lands directly in confirmed status.
type ManualBookingRequest struct {
	HotelID    string  `json:"hotel_id"          validate:"required,uuid4"`
	RoomID     *string `json:"room_id,omitempty" validate:"omitempty,uuid4"`
	GuestName  string  `json:"guest_name"        validate:"required,max=100"`
	GuestPhone string  `json:"guest_phone"       validate:"required,e164"`
	CheckIn    string  `json:"check_in"          validate:"required"`
	CheckOut   string  `json:"check_out"         validate:"required"`
}

func (c *ManualBookingRequest) ToModel(ownerID string) (model.Booking, error) {
	checkIn, checkOut, err := ParseStayDates(c.CheckIn, c.CheckOut)
	if err != nil {
		return model.Booking{}, err
	}

	return model.Booking{
		ID:         uuid.NewString(),
		HotelID:    c.HotelID,
		RoomID:     c.RoomID,
		CustomerID: ownerID,
		GuestName:  &c.GuestName,
		GuestPhone: &c.GuestPhone,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Status:     model.StatusConfirmed,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  ownerID,
			ModifiedBy: ownerID,
		},
	}, nil
}

// ParseStayDates parses check-in and check-out and enforces that the stay
// covers at least one night.
func ParseStayDates(checkInStr, checkOutStr string) (checkIn, checkOut time.Time, err error) {
	checkIn, err = time.Parse(constant.DateOnlyFormat, checkInStr)
	if err != nil {
		return checkIn, checkOut, failure.BadRequestFromString("check_in must be a date in YYYY-MM-DD format") // nolint:wrapcheck
	}

	checkOut, err = time.Parse(constant.DateOnlyFormat, checkOutStr)
	if err != nil {
		return checkIn, checkOut, failure.BadRequestFromString("check_out must be a date in YYYY-MM-DD format") // nolint:wrapcheck
	}

	if !checkOut.After(checkIn) {
		return checkIn, checkOut, failure.BadRequestFromString("check_out must be after check_in") // nolint:wrapcheck
	}

	return checkIn, checkOut, nil
}

type UpdateStatusRequest struct {
	Status model.Status `db:"status"`
}

type UpdateStatusAndAmountRequest struct {
	Status      model.Status `db:"status"`
	TotalAmount *float64     `db:"total_amount"`
}

type BookingResponse struct {
	ID          string   `json:"id"`
	HotelID     string   `json:"hotel_id"`
	RoomID      *string  `json:"room_id,omitempty"`
	CustomerID  string   `json:"customer_id"`
	GuestName   *string  `json:"guest_name,omitempty"`
	GuestPhone  *string  `json:"guest_phone,omitempty"`
	CheckIn     string   `json:"check_in"`
	CheckOut    string   `json:"check_out"`
	Nights      int      `json:"nights"`
	Status      string   `json:"status"`
	TotalAmount *float64 `json:"total_amount,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.HotelID = model.HotelID
	r.RoomID = model.RoomID
	r.CustomerID = model.CustomerID
	r.GuestName = model.GuestName
	r.GuestPhone = model.GuestPhone
	r.CheckIn = model.CheckIn.Format(constant.DateOnlyFormat)
	r.CheckOut = model.CheckOut.Format(constant.DateOnlyFormat)
	r.Nights = model.Nights()
	r.Status = string(model.Status)
	r.TotalAmount = model.TotalAmount
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

// BookingEvent is what gets published to the booking events topic when a
// booking changes state.
type BookingEvent struct {
	BookingID  string `json:"booking_id"`
	HotelID    string `json:"hotel_id"`
	CustomerID string `json:"customer_id"`
	Status     string `json:"status"`
	OccurredAt string `json:"occurred_at"`
}

func NewBookingEvent(booking model.Booking) BookingEvent {
	return BookingEvent{
		BookingID:  booking.ID,
		HotelID:    booking.HotelID,
		CustomerID: booking.CustomerID,
		Status:     string(booking.Status),
		OccurredAt: timezone.Now().Format(constant.DateFormat),
	}
}
