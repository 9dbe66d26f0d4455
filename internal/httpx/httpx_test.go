package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name string `json:"name"`
}

func TestDecodeJSON(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"chair"}`))
		var p payload
		require.NoError(t, DecodeJSON(r, &p))
		assert.Equal(t, "chair", p.Name)
	})

	t.Run("Empty body", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
		var p payload
		assert.ErrorIs(t, DecodeJSON(r, &p), ErrEmptyBody)
	})

	t.Run("Unknown field", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"nme":"chair"}`))
		var p payload
		assert.ErrorContains(t, DecodeJSON(r, &p), "invalid JSON")
	})

	t.Run("Trailing object", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a"}{"name":"b"}`))
		var p payload
		assert.ErrorContains(t, DecodeJSON(r, &p), "single JSON object")
	})
}

func TestResponses(t *testing.T) {
	t.Run("Created sets Location", func(t *testing.T) {
		w := httptest.NewRecorder()
		Created(w, "/api/products/7", map[string]int{"id": 7})

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "/api/products/7", w.Header().Get("Location"))
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	})

	t.Run("Validation lists fields", func(t *testing.T) {
		w := httptest.NewRecorder()
		Validation(w, validation.New("price", "must be greater than 0"))

		var body ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, http.StatusBadRequest, body.Status)
		assert.Equal(t, "must be greater than 0", body.Fields["price"])
	})

	t.Run("InternalError hides details", func(t *testing.T) {
		w := httptest.NewRecorder()
		InternalError(w)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "internal server error")
	})
}
