package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "gymbook/pkg/errors"
	"gymbook/pkg/identity"
	"gymbook/pkg/logger"
	"gymbook/pkg/model"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	bookErr   error
	cancelErr error
	available bool

	gotUser   *identity.User
	gotReq    *model.BookingRequest
	gotID     string
	gotLimit  int
	gotOffset int64
}

func (s *stubService) Book(_ context.Context, user *identity.User, req *model.BookingRequest) (*model.Booking, error) {
	s.gotUser, s.gotReq = user, req
	if s.bookErr != nil {
		return nil, s.bookErr
	}
	return &model.Booking{ID: "b1", Date: req.Date, TimeSlot: req.TimeSlot, Status: model.StatusConfirmed}, nil
}

func (s *stubService) Create(context.Context, *identity.User, string, string, string, string) (*model.Booking, error) {
	return nil, nil
}

func (s *stubService) CheckAvailability(context.Context, string, string) bool {
	return s.available
}

func (s *stubService) Availability(_ context.Context, date string) ([]model.SlotAvailability, error) {
	return []model.SlotAvailability{{TimeSlot: "06:00 AM", Remaining: 20, Available: true}}, nil
}

func (s *stubService) List(_ context.Context, user *identity.User, limit int) ([]*model.Booking, error) {
	s.gotUser, s.gotLimit = user, limit
	return []*model.Booking{{
		ID:          "b1",
		SessionName: "Yoga Class",
		Date:        "2024-03-15",
		Duration:    60,
		Price:       25,
		Status:      model.StatusConfirmed,
	}}, nil
}

func (s *stubService) Cancel(_ context.Context, user *identity.User, id string) error {
	s.gotUser, s.gotID = user, id
	return s.cancelErr
}

func (s *stubService) ListAll(_ context.Context, user *identity.User, limit int, offset int64) ([]*model.Booking, int64, error) {
	s.gotUser, s.gotLimit, s.gotOffset = user, limit, offset
	return []*model.Booking{}, 42, nil
}

var member = &identity.User{ID: "u1", Email: "member@example.com"}

func serve(t *testing.T, svc *stubService, method, target, body string, user *identity.User) *httptest.ResponseRecorder {
	t.Helper()
	router := httprouter.New()
	NewBookingHandler(svc, logger.Discard()).RegisterRoutes(router)

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if user != nil {
		req = req.WithContext(identity.WithUser(req.Context(), user))
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Data
}

func TestBook(t *testing.T) {
	svc := &stubService{}
	rec := serve(t, svc, http.MethodPost, "/api/v1/bookings",
		`{"date":"2024-03-20","timeSlot":"07:00 AM","sessionType":"yoga","notes":"hi"}`, member)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, member, svc.gotUser)
	assert.Equal(t, "yoga", svc.gotReq.SessionType)
	assert.Equal(t, "b1", decodeData(t, rec)["id"])
}

func TestBook_SlotFull(t *testing.T) {
	svc := &stubService{bookErr: apperrors.SlotFull("2024-03-20", "07:00 AM")}
	rec := serve(t, svc, http.MethodPost, "/api/v1/bookings",
		`{"date":"2024-03-20","timeSlot":"07:00 AM","sessionType":"yoga"}`, member)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), apperrors.CodeSlotFull)
}

func TestBook_RejectsUnknownFields(t *testing.T) {
	svc := &stubService{}
	rec := serve(t, svc, http.MethodPost, "/api/v1/bookings", `{"date":"2024-03-20","price":0}`, member)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, svc.gotReq)
}

func TestListMine(t *testing.T) {
	svc := &stubService{}
	rec := serve(t, svc, http.MethodGet, "/api/v1/bookings/me?limit=5", "", member)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, svc.gotLimit)

	data := decodeData(t, rec)
	cards, ok := data["cards"].([]any)
	require.True(t, ok)
	require.Len(t, cards, 1)
	card := cards[0].(map[string]any)
	assert.Equal(t, "Fri, Mar 15, 2024", card["date"])
	assert.Equal(t, "$25", card["price"])
	assert.Equal(t, true, card["cancellable"])
}

func TestListMine_BadLimit(t *testing.T) {
	rec := serve(t, &stubService{}, http.MethodGet, "/api/v1/bookings/me?limit=ten", "", member)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCancel(t *testing.T) {
	svc := &stubService{}
	rec := serve(t, svc, http.MethodPost, "/api/v1/bookings/id/65f0c0ffee0000000000abcd/cancel", "", member)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "65f0c0ffee0000000000abcd", svc.gotID)
}

func TestCancel_Forbidden(t *testing.T) {
	svc := &stubService{cancelErr: apperrors.Forbidden("You can only cancel your own bookings")}
	rec := serve(t, svc, http.MethodPost, "/api/v1/bookings/id/x/cancel", "", member)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestListAll(t *testing.T) {
	svc := &stubService{}
	rec := serve(t, svc, http.MethodGet, "/api/v1/admin/bookings?limit=500&offset=10", "", member)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 100, svc.gotLimit)
	assert.Equal(t, int64(10), svc.gotOffset)
	assert.Contains(t, rec.Body.String(), `"total_count":42`)
}

func TestAvailability_RequiresUser(t *testing.T) {
	rec := serve(t, &stubService{}, http.MethodGet, "/api/v1/availability?date=2024-03-20", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = serve(t, &stubService{}, http.MethodGet, "/api/v1/availability?date=2024-03-20", "", member)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCheckAvailability(t *testing.T) {
	rec := serve(t, &stubService{available: true}, http.MethodGet,
		"/api/v1/availability/check?date=2024-03-20&timeSlot=07:00%20AM", "", member)

	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeData(t, rec)
	assert.Equal(t, true, data["available"])
	assert.Equal(t, "07:00 AM", data["timeSlot"])

	rec = serve(t, &stubService{}, http.MethodGet, "/api/v1/availability/check?date=2024-03-20", "", member)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCatalog(t *testing.T) {
	rec := serve(t, &stubService{}, http.MethodGet, "/api/v1/catalog", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeData(t, rec)
	assert.Len(t, data["timeSlots"], 16)
	assert.Len(t, data["sessionTypes"], 6)
	assert.Len(t, data["sessionOptions"], 6)
}
