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
	userMocks "innstay/internal/domains/user/mocks"
	"innstay/internal/domains/user/model"
	"innstay/internal/domains/user/model/dto"
	"innstay/internal/domains/user/service"
	"innstay/shared/cache"
	cacheMocks "innstay/shared/cache/mocks"
	"innstay/shared/failure"
)

const testUserID = "user-id-1"

type userFixture struct {
	repo    *userMocks.MockUser
	profile *userMocks.MockProfile
	cache   *cacheMocks.MockRedisCache
	svc     service.User
}

func newUserFixture(t *testing.T) userFixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := userFixture{
		repo:    userMocks.NewMockUser(ctrl),
		profile: userMocks.NewMockProfile(ctrl),
		cache:   cacheMocks.NewMockRedisCache(ctrl),
	}

	f.svc = service.New(f.repo, f.profile, &config.Config{}, f.cache, mocks.NewOtel())

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func TestUserService_Get(t *testing.T) {
	t.Run("cache miss loads user and profile", func(t *testing.T) {
		f := newUserFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.User{ID: testUserID, Email: "jane@example.com", FullName: "Jane Doe", Active: true}, nil)
		f.profile.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Profile{UserID: testUserID, Role: "customer", Phone: "+6281234567890"}, nil)

		res, err := f.svc.Get(context.Background(), testUserID)

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
		assert.Equal(t, "jane@example.com", res.Email)
		assert.Equal(t, "customer", res.Role)
		assert.Equal(t, "+6281234567890", res.Phone)
	})

	t.Run("cache hit skips the database", func(t *testing.T) {
		f := newUserFixture(t)

		f.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, value any) error {
				res, ok := value.(*dto.UserResponse)
				if assert.True(t, ok) {
					res.ID = testUserID
					res.FullName = "Jane Doe"
				}
				return nil
			})

		res, err := f.svc.Get(context.Background(), testUserID)

		assert.NoError(t, err)
		assert.Equal(t, "Jane Doe", res.FullName)
	})

	t.Run("unknown user is not found", func(t *testing.T) {
		f := newUserFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{}, nil)

		_, err := f.svc.Get(context.Background(), testUserID)

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestUserService_UpdateProfile(t *testing.T) {
	t.Run("full name goes to the user, phone to the profile", func(t *testing.T) {
		f := newUserFixture(t)

		fullName := "Jane Smith"
		phone := "+6289876543210"

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				assert.Equal(t, "Jane Smith", fields["full_name"])
				return nil
			})
		f.profile.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				assert.Equal(t, "+6289876543210", fields["phone"])
				return nil
			})

		err := f.svc.UpdateProfile(context.Background(), dto.UpdateProfileRequest{FullName: &fullName, Phone: &phone}, testUserID)

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})

	t.Run("phone only touches the profile", func(t *testing.T) {
		f := newUserFixture(t)

		phone := "+6289876543210"

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.profile.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		err := f.svc.UpdateProfile(context.Background(), dto.UpdateProfileRequest{Phone: &phone}, testUserID)

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})

	t.Run("empty request is rejected", func(t *testing.T) {
		f := newUserFixture(t)

		err := f.svc.UpdateProfile(context.Background(), dto.UpdateProfileRequest{}, testUserID)

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("unknown user is not found", func(t *testing.T) {
		f := newUserFixture(t)

		fullName := "Jane Smith"

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := f.svc.UpdateProfile(context.Background(), dto.UpdateProfileRequest{FullName: &fullName}, testUserID)

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
