package handler

import (
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
)

func imageHeader(contentType string, size int64) *multipart.FileHeader {
	return &multipart.FileHeader{
		Filename: "photo",
		Size:     size,
		Header:   textproto.MIMEHeader{"Content-Type": []string{contentType}},
	}
}

func TestValidateImageUpload(t *testing.T) {
	t.Run("valid jpeg", func(t *testing.T) {
		assert.NoError(t, validateImageUpload(imageHeader("image/jpeg", 1024)))
	})

	t.Run("valid png and webp", func(t *testing.T) {
		assert.NoError(t, validateImageUpload(imageHeader("image/png", 1024)))
		assert.NoError(t, validateImageUpload(imageHeader("image/webp", 1024)))
	})

	t.Run("too large", func(t *testing.T) {
		err := validateImageUpload(imageHeader("image/jpeg", maxImageSize+1))
		assert.Error(t, err)
	})

	t.Run("unsupported type", func(t *testing.T) {
		assert.Error(t, validateImageUpload(imageHeader("image/gif", 1024)))
		assert.Error(t, validateImageUpload(imageHeader("application/pdf", 1024)))
	})
}

func TestParsePagination(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/posts", nil)

		limit, offset := parsePagination(req, 20)
		assert.Equal(t, 20, limit)
		assert.Equal(t, 0, offset)
	})

	t.Run("explicit values", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/posts?limit=5&offset=10", nil)

		limit, offset := parsePagination(req, 20)
		assert.Equal(t, 5, limit)
		assert.Equal(t, 10, offset)
	})

	t.Run("invalid values fall back to defaults", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/posts?limit=abc&offset=-3", nil)

		limit, offset := parsePagination(req, 20)
		assert.Equal(t, 20, limit)
		assert.Equal(t, 0, offset)
	})

	t.Run("limit capped at 100", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/posts?limit=500", nil)

		limit, _ := parsePagination(req, 20)
		assert.Equal(t, 20, limit)
	})
}
