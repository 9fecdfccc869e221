package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"innstay/infras/jwt"
	"innstay/internal/domains/auth/model/dto"
	"innstay/shared/constant"
)

func TestLoginResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "test-access-token",
		RefreshToken: "test-refresh-token",
		ExpiresIn:    900,
	}

	var response dto.LoginResponse
	response.FromTokenPair(tokenPair, constant.RoleCustomer)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
	assert.Equal(t, tokenPair.ExpiresIn, response.ExpiresIn)
	assert.Equal(t, constant.RoleCustomer, response.Role)
}

func TestRefreshTokenResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "new-access-token",
		RefreshToken: "new-refresh-token",
	}

	var response dto.RefreshTokenResponse
	response.FromTokenPair(tokenPair)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
}

func TestRegisterRequest_ToUserModel(t *testing.T) {
	req := dto.RegisterRequest{
		Email:    "guest@example.com",
		Password: "plaintext",
		FullName: "Guest User",
		Phone:    "+6281234567890",
		Role:     constant.RoleCustomer,
	}

	user := req.ToUserModel("system", "hashed-password")

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, req.Email, user.Email)
	assert.Equal(t, "hashed-password", user.Password)
	assert.Equal(t, req.FullName, user.FullName)
	assert.True(t, user.Active)
	assert.Equal(t, "system", user.CreatedBy)
}

func TestRegisterRequest_ToProfileModel(t *testing.T) {
	req := dto.RegisterRequest{
		Email:    "host@example.com",
		Password: "plaintext",
		FullName: "Host User",
		Phone:    "+6281234567890",
		Role:     constant.RoleOwner,
	}

	profile := req.ToProfileModel("system", "user-id-123")

	assert.NotEmpty(t, profile.ID)
	assert.Equal(t, "user-id-123", profile.UserID)
	assert.Equal(t, constant.RoleOwner, profile.Role)
	assert.Equal(t, req.Phone, profile.Phone)
}
