package service_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"innstay/config"
	"innstay/infras/otel/mocks"
	s3Mocks "innstay/infras/s3/mocks"
	hotelMocks "innstay/internal/domains/hotel/mocks"
	"innstay/internal/domains/hotel/model"
	"innstay/internal/domains/hotel/model/dto"
	"innstay/internal/domains/hotel/service"
	"innstay/shared/cache"
	cacheMocks "innstay/shared/cache/mocks"
	"innstay/shared/constant"
	"innstay/shared/failure"
)

const (
	testOwnerID = "owner-id-1"
	testHotelID = "hotel-id-1"
)

type hotelFixture struct {
	repo  *hotelMocks.MockHotel
	cache *cacheMocks.MockRedisCache
	s3    *s3Mocks.MockS3
	svc   service.Hotel
}

func newHotelFixture(t *testing.T) hotelFixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := hotelFixture{
		repo:  hotelMocks.NewMockHotel(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
		s3:    s3Mocks.NewMockS3(ctrl),
	}

	f.svc = service.New(f.repo, &config.Config{}, f.cache, mocks.NewOtel(), f.s3)

	// Cache writes and invalidation happen in goroutines and are best effort.
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func ctxAs(userID, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func existingHotel() model.Hotel {
	return model.Hotel{
		ID:         testHotelID,
		OwnerID:    testOwnerID,
		Name:       "Pine Lodge",
		Address:    "Jalan Raya 1",
		RentalMode: model.RentalModeIndividualRooms,
		Active:     true,
	}
}

func TestHotelService_Create(t *testing.T) {
	t.Run("successful create with facilities", func(t *testing.T) {
		f := newHotelFixture(t)

		req := dto.CreateHotelRequest{
			Name:        "Pine Lodge",
			Address:     "Jalan Raya 1",
			RentalMode:  model.RentalModeIndividualRooms,
			FacilityIDs: []string{"facility-id-1", "facility-id-2"},
		}

		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, hotel model.Hotel) error {
				assert.Equal(t, testOwnerID, hotel.OwnerID)
				assert.True(t, hotel.Active)
				return nil
			})
		f.repo.EXPECT().
			ReplaceFacilities(gomock.Any(), gomock.Any(), []string{"facility-id-1", "facility-id-2"}).
			Return(nil)

		err := f.svc.Create(ctxAs(testOwnerID, constant.RoleOwner), req)

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})

	t.Run("nightly rate rejected on room-by-room hotels", func(t *testing.T) {
		f := newHotelFixture(t)

		rate := 5000.0
		req := dto.CreateHotelRequest{
			Name:        "Pine Lodge",
			Address:     "Jalan Raya 1",
			RentalMode:  model.RentalModeIndividualRooms,
			NightlyRate: &rate,
		}

		err := f.svc.Create(ctxAs(testOwnerID, constant.RoleOwner), req)

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("insert failure surfaces", func(t *testing.T) {
		f := newHotelFixture(t)

		req := dto.CreateHotelRequest{
			Name:       "Pine Lodge",
			Address:    "Jalan Raya 1",
			RentalMode: model.RentalModeWholeProperty,
		}

		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(assert.AnError)

		err := f.svc.Create(ctxAs(testOwnerID, constant.RoleOwner), req)

		assert.Error(t, err)
	})
}

func TestHotelService_Get(t *testing.T) {
	t.Run("cache miss loads hotel and facilities", func(t *testing.T) {
		f := newHotelFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existingHotel(), nil)
		f.repo.EXPECT().
			GetFacilities(gomock.Any(), testHotelID).
			Return([]model.Facility{{ID: "facility-id-1", Name: "Pool"}}, nil)

		res, err := f.svc.Get(context.Background(), testHotelID)

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
		assert.Equal(t, testHotelID, res.ID)
		if assert.Len(t, res.Facilities, 1) {
			assert.Equal(t, "Pool", res.Facilities[0].Name)
		}
	})

	t.Run("cache hit skips the database", func(t *testing.T) {
		f := newHotelFixture(t)

		f.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, value any) error {
				res, ok := value.(*dto.HotelResponse)
				if assert.True(t, ok) {
					res.ID = testHotelID
					res.Name = "Pine Lodge"
				}
				return nil
			})

		res, err := f.svc.Get(context.Background(), testHotelID)

		assert.NoError(t, err)
		assert.Equal(t, "Pine Lodge", res.Name)
	})

	t.Run("unknown hotel is not found", func(t *testing.T) {
		f := newHotelFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Hotel{}, nil)

		_, err := f.svc.Get(context.Background(), testHotelID)

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestHotelService_Update(t *testing.T) {
	t.Run("owner updates basic fields", func(t *testing.T) {
		f := newHotelFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existingHotel(), nil)
		f.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				assert.Equal(t, "Cedar Lodge", fields["name"])
				assert.Equal(t, testOwnerID, fields["modified_by"])
				return nil
			})

		err := f.svc.Update(ctxAs(testOwnerID, constant.RoleOwner), dto.UpdateHotelRequest{Name: "Cedar Lodge"}, testHotelID)

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})

	t.Run("facilities replaced when provided", func(t *testing.T) {
		f := newHotelFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existingHotel(), nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.repo.EXPECT().ReplaceFacilities(gomock.Any(), testHotelID, []string{"facility-id-1"}).Return(nil)

		req := dto.UpdateHotelRequest{FacilityIDs: []string{"facility-id-1"}}

		err := f.svc.Update(ctxAs(testOwnerID, constant.RoleOwner), req, testHotelID)

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})

	t.Run("manager may update any hotel", func(t *testing.T) {
		f := newHotelFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existingHotel(), nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		err := f.svc.Update(ctxAs("manager-id-1", constant.RoleManager), dto.UpdateHotelRequest{Name: "Renamed"}, testHotelID)

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})

	t.Run("someone else's hotel is off limits", func(t *testing.T) {
		f := newHotelFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existingHotel(), nil)

		err := f.svc.Update(ctxAs("another-owner", constant.RoleOwner), dto.UpdateHotelRequest{Name: "Taken Over"}, testHotelID)

		assert.Error(t, err)
		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("unknown hotel is not found", func(t *testing.T) {
		f := newHotelFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Hotel{}, nil)

		err := f.svc.Update(ctxAs(testOwnerID, constant.RoleOwner), dto.UpdateHotelRequest{Name: "Ghost"}, testHotelID)

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestHotelService_Delete(t *testing.T) {
	t.Run("owner deletes own hotel", func(t *testing.T) {
		f := newHotelFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existingHotel(), nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		err := f.svc.Delete(ctxAs(testOwnerID, constant.RoleOwner), testHotelID)

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		f := newHotelFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existingHotel(), nil)

		err := f.svc.Delete(ctxAs("another-owner", constant.RoleOwner), testHotelID)

		assert.Error(t, err)
		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})
}
