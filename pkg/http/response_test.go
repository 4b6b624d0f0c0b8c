package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "gymbook/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError_AppError(t *testing.T) {
	rec := httptest.NewRecorder()

	err := WriteError(rec, apperrors.SlotFull("2024-03-15", "06:00 AM"))
	require.NoError(t, err)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, apperrors.CodeSlotFull, body.Error.Code)
	assert.Equal(t, "06:00 AM", body.Error.Details["timeSlot"])
}

func TestWriteError_HidesPlainErrors(t *testing.T) {
	rec := httptest.NewRecorder()

	require.NoError(t, WriteError(rec, errors.New("connection refused to 10.0.0.4:27017")))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "10.0.0.4")
	assert.Contains(t, rec.Body.String(), apperrors.CodeInternal)
}

func TestWritePaginated(t *testing.T) {
	rec := httptest.NewRecorder()

	require.NoError(t, WritePaginated(rec, []string{"a"}, 7, 1, 3))

	var body PaginatedResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, int64(7), body.TotalCount)
	assert.Equal(t, 1, body.Limit)
	assert.Equal(t, int64(3), body.Offset)
}

func TestExtractLimitOffset(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantLimit  int
		wantOffset int64
		wantErr    bool
	}{
		{"defaults", "", 10, 0, false},
		{"explicit", "?limit=5&offset=20", 5, 20, false},
		{"capped", "?limit=5000", 100, 0, false},
		{"negative offset", "?offset=-4", 10, 0, false},
		{"bad limit", "?limit=ten", 0, 0, true},
		{"bad offset", "?offset=x", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/bookings"+tt.query, nil)
			limit, offset, err := ExtractLimitOffset(req)
			if tt.wantErr {
				assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLimit, limit)
			assert.Equal(t, tt.wantOffset, offset)
		})
	}
}

func TestDecodeJSON_RejectsUnknownFields(t *testing.T) {
	var dst struct {
		Date string `json:"date"`
	}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"date":"2024-03-15","status":"cancelled"}`))

	err := DecodeJSON(req, &dst)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidInput))
}
