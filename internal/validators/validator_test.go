package validators

import (
	"errors"
	"net/http"
	"testing"

	"github.com/anonto42/fritter/backend/internal/models"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestUsernameRule(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name     string
		username string
		ok       bool
	}{
		{"letters and digits", "alice99", true},
		{"underscore", "al_ice", true},
		{"dash", "al-ice", false},
		{"space", "al ice", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(models.CreateLocalUserRequest{Username: tt.username, Password: "secret1"})
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			var he *echo.HTTPError
			if assert.True(t, errors.As(err, &he)) {
				assert.Equal(t, http.StatusBadRequest, he.Code)
			}
		})
	}
}

func TestOptionalFieldsOnUpdate(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Validate(models.UpdateUserRequest{}))
	assert.Error(t, v.Validate(models.UpdateUserRequest{Password: "123"}))
	assert.Error(t, v.Validate(models.UpdateUserRequest{Username: "no spaces"}))
}

func TestFreetContentLength(t *testing.T) {
	v := NewValidator()
	long := make([]byte, 141)
	for i := range long {
		long[i] = 'x'
	}

	assert.NoError(t, v.Validate(models.CreateFreetRequest{Content: "short"}))
	assert.Error(t, v.Validate(models.CreateFreetRequest{Content: string(long)}))
	assert.Error(t, v.Validate(models.CreateFreetRequest{Content: ""}))
}

func TestNewValidatorRegistersRules(t *testing.T) {
	assert.NotPanics(t, func() { NewValidator() })
}
