package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "github.com/s-soya2421/muscle-pal-sub000/internal/models"
)

func TestGetUserFromContext(t *testing.T) {
	t.Run("user present", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req = WithUser(req, model.UserProfile{ID: "user-1", Name: "Aiko"})

		user, err := GetUserFromContext(req)
		require.NoError(t, err)
		assert.Equal(t, "user-1", user.ID)
		assert.Equal(t, "Aiko", user.Name)
	})

	t.Run("user absent", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)

		_, err := GetUserFromContext(req)
		assert.Error(t, err)
	})
}

func TestGetUserIDFromContext(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req = WithUser(req, model.UserProfile{ID: "user-2"})

	id, err := GetUserIDFromContext(req)
	require.NoError(t, err)
	assert.Equal(t, "user-2", id)
}

func TestIsOwnerOrAdmin(t *testing.T) {
	t.Run("owner", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req = WithUser(req, model.UserProfile{ID: "user-1"})

		assert.True(t, IsOwnerOrAdmin(req, "user-1"))
		assert.False(t, IsOwnerOrAdmin(req, "user-2"))
	})

	t.Run("admin acts on anyone", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req = WithUser(req, model.UserProfile{ID: "admin-1", IsAdmin: true})

		assert.True(t, IsOwnerOrAdmin(req, "user-2"))
	})

	t.Run("unauthenticated", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)

		assert.False(t, IsOwnerOrAdmin(req, "user-1"))
	})
}
