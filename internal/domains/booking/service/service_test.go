package service_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"innstay/config"
	kafkaMocks "innstay/infras/kafka/mocks"
	"innstay/infras/otel/mocks"
	smsMocks "innstay/infras/sms/mocks"
	bookingMocks "innstay/internal/domains/booking/mocks"
	"innstay/internal/domains/booking/model"
	"innstay/internal/domains/booking/model/dto"
	"innstay/internal/domains/booking/repository"
	"innstay/internal/domains/booking/service"
	hotelMocks "innstay/internal/domains/hotel/mocks"
	hotelModel "innstay/internal/domains/hotel/model"
	roomMocks "innstay/internal/domains/room/mocks"
	roomModel "innstay/internal/domains/room/model"
	userMocks "innstay/internal/domains/user/mocks"
	userModel "innstay/internal/domains/user/model"
	cacheMocks "innstay/shared/cache/mocks"
	"innstay/shared/constant"
	"innstay/shared/failure"
)

const (
	testCustomerID = "customer-id-1"
	testOwnerID    = "owner-id-1"
	testHotelID    = "hotel-id-1"
	testRoomID     = "room-id-1"
)

type bookingFixture struct {
	repo    *bookingMocks.MockBooking
	hotel   *hotelMocks.MockHotel
	room    *roomMocks.MockRoom
	profile *userMocks.MockProfile
	cache   *cacheMocks.MockRedisCache
	sms     *smsMocks.MockSMS
	kafka   *kafkaMocks.MockClient
	svc     service.Booking
}

func newBookingFixture(t *testing.T) bookingFixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := bookingFixture{
		repo:    bookingMocks.NewMockBooking(ctrl),
		hotel:   hotelMocks.NewMockHotel(ctrl),
		room:    roomMocks.NewMockRoom(ctrl),
		profile: userMocks.NewMockProfile(ctrl),
		cache:   cacheMocks.NewMockRedisCache(ctrl),
		sms:     smsMocks.NewMockSMS(ctrl),
		kafka:   kafkaMocks.NewMockClient(ctrl),
	}

	f.svc = service.New(f.repo, f.hotel, f.room, f.profile, &config.Config{}, f.cache, mocks.NewOtel(), f.sms, f.kafka)

	// Cache invalidation and event publishing run async and are best effort.
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.kafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func ctxAs(userID, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func roomRentalHotel() hotelModel.Hotel {
	return hotelModel.Hotel{
		ID:         testHotelID,
		OwnerID:    testOwnerID,
		Name:       "Pine Lodge",
		RentalMode: hotelModel.RentalModeIndividualRooms,
		Active:     true,
	}
}

func wholePropertyHotel(rate *float64) hotelModel.Hotel {
	return hotelModel.Hotel{
		ID:          testHotelID,
		OwnerID:     testOwnerID,
		Name:        "Cedar Villa",
		RentalMode:  hotelModel.RentalModeWholeProperty,
		NightlyRate: rate,
		Active:      true,
	}
}

func activeRoom() roomModel.Room {
	return roomModel.Room{
		ID:          testRoomID,
		HotelID:     testHotelID,
		Number:      "101",
		RoomType:    roomModel.RoomTypeDouble,
		NightlyRate: 5000,
		Active:      true,
	}
}

func pendingRoomBooking() model.Booking {
	roomID := testRoomID

	return model.Booking{
		ID:         "booking-id-1",
		HotelID:    testHotelID,
		RoomID:     &roomID,
		CustomerID: testCustomerID,
		CheckIn:    time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
		CheckOut:   time.Date(2025, time.June, 4, 0, 0, 0, 0, time.UTC),
		Status:     model.StatusPending,
	}
}

func TestBookingService_Create(t *testing.T) {
	roomID := testRoomID

	tests := []struct {
		name      string
		req       dto.CreateBookingRequest
		setupMock func(f bookingFixture)
		wantCode  int
		wantErr   bool
	}{
		{
			name: "successful room booking",
			req: dto.CreateBookingRequest{
				HotelID:  testHotelID,
				RoomID:   &roomID,
				CheckIn:  "2025-06-01",
				CheckOut: "2025-06-04",
			},
			setupMock: func(f bookingFixture) {
				f.hotel.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomRentalHotel(), nil)
				f.room.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeRoom(), nil)
				f.repo.EXPECT().CreateIfAvailable(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantErr: false,
		},
		{
			name: "dates already taken",
			req: dto.CreateBookingRequest{
				HotelID:  testHotelID,
				RoomID:   &roomID,
				CheckIn:  "2025-06-01",
				CheckOut: "2025-06-04",
			},
			setupMock: func(f bookingFixture) {
				f.hotel.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomRentalHotel(), nil)
				f.room.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeRoom(), nil)
				f.repo.EXPECT().CreateIfAvailable(gomock.Any(), gomock.Any()).Return(repository.ErrDatesUnavailable)
			},
			wantCode: http.StatusConflict,
			wantErr:  true,
		},
		{
			name: "check out before check in",
			req: dto.CreateBookingRequest{
				HotelID:  testHotelID,
				RoomID:   &roomID,
				CheckIn:  "2025-06-04",
				CheckOut: "2025-06-01",
			},
			setupMock: func(f bookingFixture) {},
			wantCode:  http.StatusBadRequest,
			wantErr:   true,
		},
		{
			name: "room required for room-by-room hotel",
			req: dto.CreateBookingRequest{
				HotelID:  testHotelID,
				CheckIn:  "2025-06-01",
				CheckOut: "2025-06-04",
			},
			setupMock: func(f bookingFixture) {
				f.hotel.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomRentalHotel(), nil)
			},
			wantCode: http.StatusBadRequest,
			wantErr:  true,
		},
		{
			name: "room from another hotel",
			req: dto.CreateBookingRequest{
				HotelID:  testHotelID,
				RoomID:   &roomID,
				CheckIn:  "2025-06-01",
				CheckOut: "2025-06-04",
			},
			setupMock: func(f bookingFixture) {
				foreign := activeRoom()
				foreign.HotelID = "some-other-hotel"

				f.hotel.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomRentalHotel(), nil)
				f.room.EXPECT().Get(gomock.Any(), gomock.Any()).Return(foreign, nil)
			},
			wantCode: http.StatusBadRequest,
			wantErr:  true,
		},
		{
			name: "no room on a whole-property villa",
			req: dto.CreateBookingRequest{
				HotelID:  testHotelID,
				RoomID:   &roomID,
				CheckIn:  "2025-06-01",
				CheckOut: "2025-06-04",
			},
			setupMock: func(f bookingFixture) {
				rate := 12000.0
				f.hotel.EXPECT().Get(gomock.Any(), gomock.Any()).Return(wholePropertyHotel(&rate), nil)
			},
			wantCode: http.StatusBadRequest,
			wantErr:  true,
		},
		{
			name: "inactive hotel",
			req: dto.CreateBookingRequest{
				HotelID:  testHotelID,
				RoomID:   &roomID,
				CheckIn:  "2025-06-01",
				CheckOut: "2025-06-04",
			},
			setupMock: func(f bookingFixture) {
				closed := roomRentalHotel()
				closed.Active = false

				f.hotel.EXPECT().Get(gomock.Any(), gomock.Any()).Return(closed, nil)
			},
			wantCode: http.StatusBadRequest,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBookingFixture(t)
			tt.setupMock(f)

			err := f.svc.Create(ctxAs(testCustomerID, constant.RoleCustomer), tt.req)

			time.Sleep(10 * time.Millisecond)

			if !tt.wantErr {
				assert.NoError(t, err)

				return
			}

			assert.Error(t, err)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			}
		})
	}
}

func TestBookingService_CreateManual(t *testing.T) {
	roomID := testRoomID

	req := dto.ManualBookingRequest{
		HotelID:    testHotelID,
		RoomID:     &roomID,
		GuestName:  "Walk-in Guest",
		GuestPhone: "+6281234567890",
		CheckIn:    "2025-06-01",
		CheckOut:   "2025-06-04",
	}

	t.Run("walk-in booking is confirmed and priced immediately", func(t *testing.T) {
		f := newBookingFixture(t)

		f.hotel.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomRentalHotel(), nil)
		f.room.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeRoom(), nil).Times(2)
		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, booking model.Booking) error {
				assert.Equal(t, model.StatusConfirmed, booking.Status)
				if assert.NotNil(t, booking.TotalAmount) {
					assert.InDelta(t, 15000.0, *booking.TotalAmount, 0.001)
				}
				return nil
			})

		err := f.svc.CreateManual(ctxAs(testOwnerID, constant.RoleOwner), req)

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})

	t.Run("only the hotel's owner may record walk-ins", func(t *testing.T) {
		f := newBookingFixture(t)

		f.hotel.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomRentalHotel(), nil)

		err := f.svc.CreateManual(ctxAs("someone-else", constant.RoleOwner), req)

		assert.Error(t, err)
		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})
}

func TestBookingService_Confirm(t *testing.T) {
	t.Run("owner confirms pending booking and guest is notified", func(t *testing.T) {
		f := newBookingFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingRoomBooking(), nil)
		f.hotel.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomRentalHotel(), nil)
		f.room.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeRoom(), nil)
		f.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				assert.Equal(t, model.StatusConfirmed, fields["status"])
				if total, ok := fields["total_amount"].(*float64); assert.True(t, ok) {
					assert.InDelta(t, 15000.0, *total, 0.001)
				}
				return nil
			})
		f.profile.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(userModel.Profile{UserID: testCustomerID, Phone: "+6281234567890"}, nil).
			AnyTimes()
		f.sms.EXPECT().
			SendText(gomock.Any(), "+6281234567890", gomock.Any()).
			Return(nil).
			AnyTimes()

		err := f.svc.Confirm(ctxAs(testOwnerID, constant.RoleOwner), "booking-id-1")

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})

	t.Run("confirming a cancelled booking conflicts", func(t *testing.T) {
		f := newBookingFixture(t)

		cancelled := pendingRoomBooking()
		cancelled.Status = model.StatusCancelled

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(cancelled, nil)
		f.hotel.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomRentalHotel(), nil)

		err := f.svc.Confirm(ctxAs(testOwnerID, constant.RoleOwner), "booking-id-1")

		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("whole property without a nightly rate conflicts", func(t *testing.T) {
		f := newBookingFixture(t)

		booking := pendingRoomBooking()
		booking.RoomID = nil

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
		f.hotel.EXPECT().Get(gomock.Any(), gomock.Any()).Return(wholePropertyHotel(nil), nil)

		err := f.svc.Confirm(ctxAs(testOwnerID, constant.RoleOwner), "booking-id-1")

		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("customer cannot confirm", func(t *testing.T) {
		f := newBookingFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingRoomBooking(), nil)
		f.hotel.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomRentalHotel(), nil)

		err := f.svc.Confirm(ctxAs(testCustomerID, constant.RoleCustomer), "booking-id-1")

		assert.Error(t, err)
		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("sms failure does not fail the confirmation", func(t *testing.T) {
		f := newBookingFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingRoomBooking(), nil)
		f.hotel.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomRentalHotel(), nil)
		f.room.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeRoom(), nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.profile.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(userModel.Profile{UserID: testCustomerID, Phone: "+6281234567890"}, nil).
			AnyTimes()
		f.sms.EXPECT().
			SendText(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(assert.AnError).
			AnyTimes()

		err := f.svc.Confirm(ctxAs(testOwnerID, constant.RoleOwner), "booking-id-1")

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})
}

func TestBookingService_Reject(t *testing.T) {
	t.Run("owner rejects pending booking", func(t *testing.T) {
		f := newBookingFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingRoomBooking(), nil)
		f.hotel.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomRentalHotel(), nil)
		f.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				assert.Equal(t, model.StatusCancelled, fields["status"])
				return nil
			})
		f.profile.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(userModel.Profile{UserID: testCustomerID, Phone: "+6281234567890"}, nil).
			AnyTimes()
		f.sms.EXPECT().
			SendText(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		err := f.svc.Reject(ctxAs(testOwnerID, constant.RoleOwner), "booking-id-1")

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})

	t.Run("rejecting a cancelled booking conflicts", func(t *testing.T) {
		f := newBookingFixture(t)

		cancelled := pendingRoomBooking()
		cancelled.Status = model.StatusCancelled

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(cancelled, nil)
		f.hotel.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomRentalHotel(), nil)

		err := f.svc.Reject(ctxAs(testOwnerID, constant.RoleOwner), "booking-id-1")

		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})
}

func TestBookingService_Cancel(t *testing.T) {
	t.Run("customer cancels own pending booking", func(t *testing.T) {
		f := newBookingFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingRoomBooking(), nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		err := f.svc.Cancel(ctxAs(testCustomerID, constant.RoleCustomer), "booking-id-1")

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})

	t.Run("cancelling twice is a no-op", func(t *testing.T) {
		f := newBookingFixture(t)

		cancelled := pendingRoomBooking()
		cancelled.Status = model.StatusCancelled

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(cancelled, nil)

		err := f.svc.Cancel(ctxAs(testCustomerID, constant.RoleCustomer), "booking-id-1")

		assert.NoError(t, err)
	})

	t.Run("confirmed bookings cannot be cancelled by the customer", func(t *testing.T) {
		f := newBookingFixture(t)

		confirmed := pendingRoomBooking()
		confirmed.Status = model.StatusConfirmed

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(confirmed, nil)

		err := f.svc.Cancel(ctxAs(testCustomerID, constant.RoleCustomer), "booking-id-1")

		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("someone else's booking is off limits", func(t *testing.T) {
		f := newBookingFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingRoomBooking(), nil)

		err := f.svc.Cancel(ctxAs("another-customer", constant.RoleCustomer), "booking-id-1")

		assert.Error(t, err)
		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})
}
