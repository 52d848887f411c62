package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"nyumba/infras/jwt"
	"nyumba/internal/domains/auth/model/dto"
	"nyumba/shared/constant"
)

func TestRegisterRequest_ToUserModel(t *testing.T) {
	t.Run("defaults to guest role", func(t *testing.T) {
		req := dto.RegisterRequest{
			Email:    "guest@example.com",
			Password: "plaintext",
			FullName: stringPtr("Guest User"),
		}

		user := req.ToUserModel("registration", "hashed-password")

		assert.NotEmpty(t, user.ID)
		assert.Equal(t, req.Email, user.Email)
		assert.Equal(t, "hashed-password", user.Password)
		assert.Equal(t, constant.RoleGuest, user.Role)
		assert.True(t, user.Active)
		assert.Equal(t, "registration", user.CreatedBy)
	})

	t.Run("keeps an explicit host role", func(t *testing.T) {
		req := dto.RegisterRequest{
			Email:    "host@example.com",
			Password: "plaintext",
			Role:     constant.RoleHost,
		}

		user := req.ToUserModel("registration", "hashed-password")

		assert.Equal(t, constant.RoleHost, user.Role)
	})
}

func TestLoginResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "test-access-token",
		RefreshToken: "test-refresh-token",
		ExpiresIn:    900,
	}

	var response dto.LoginResponse
	response.FromTokenPair(tokenPair)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
	assert.Equal(t, tokenPair.ExpiresIn, response.ExpiresIn)
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

// Helper function to create string pointer
func stringPtr(s string) *string {
	return &s
}
