package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"gymbook/internal/hours/cache"
	hourserrors "gymbook/internal/hours/errors"
	"gymbook/internal/hours/validator"
	"gymbook/pkg/config"
	apperrors "gymbook/pkg/errors"
	"gymbook/pkg/identity"
	"gymbook/pkg/logger"
	"gymbook/pkg/metrics"
	"gymbook/pkg/model"

	"github.com/go-redis/redismock/v9"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSettingsRepo struct {
	stored    *model.OperatingHours
	findErr   error
	saveErr   error
	findCalls int
	saved     *model.OperatingHours
}

func (r *fakeSettingsRepo) FindOperatingHours(context.Context) (*model.OperatingHours, error) {
	r.findCalls++
	if r.findErr != nil {
		return nil, r.findErr
	}
	if r.stored == nil {
		return nil, hourserrors.ErrNotFound
	}
	copied := *r.stored
	return &copied, nil
}

func (r *fakeSettingsRepo) SaveOperatingHours(_ context.Context, hours *model.OperatingHours) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	copied := *hours
	r.saved = &copied
	r.stored = &copied
	return nil
}

const testTTL = 5 * time.Minute

var (
	adminUser  = &identity.User{ID: "admin-1", Role: identity.RoleAdmin}
	memberUser = &identity.User{ID: "member-1"}
)

func testConfig() *config.Config {
	return &config.Config{
		GymTimeZone:   "UTC",
		HoursCacheTTL: testTTL,
		Log:           logger.Discard(),
	}
}

func newTestService(repo *fakeSettingsRepo, hoursCache cache.HoursCache) *hoursService {
	cfg := testConfig()
	return newHoursService(repo, hoursCache, validator.NewHoursValidator(cfg.Log), cfg)
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return raw
}

func TestSchedule_MissingDocumentFallsBackToDefault(t *testing.T) {
	svc := newTestService(&fakeSettingsRepo{}, nil)

	got, err := svc.Schedule(context.Background())
	require.NoError(t, err)

	assert.Equal(t, model.DayHours{Open: "06:00", Close: "22:00", Closed: false}, got.Monday)
	assert.Equal(t, model.DayHours{Open: "06:00", Close: "22:00", Closed: false}, got.Tuesday)
	assert.Equal(t, model.DayHours{Open: "06:00", Close: "22:00", Closed: false}, got.Wednesday)
	assert.Equal(t, model.DayHours{Open: "06:00", Close: "22:00", Closed: false}, got.Thursday)
	assert.Equal(t, model.DayHours{Open: "06:00", Close: "22:00", Closed: false}, got.Friday)
	assert.Equal(t, model.DayHours{Open: "08:00", Close: "20:00", Closed: false}, got.Saturday)
	assert.Equal(t, model.DayHours{Open: "08:00", Close: "18:00", Closed: false}, got.Sunday)
}

func TestSchedule_StorageError(t *testing.T) {
	svc := newTestService(&fakeSettingsRepo{findErr: errors.New("mongo down")}, nil)

	_, err := svc.Schedule(context.Background())
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInternal))
}

func TestSchedule_CacheMissPopulatesCache(t *testing.T) {
	db, mock := redismock.NewClientMock()
	stored := model.DefaultOperatingHours()
	stored.Sunday = model.DayHours{Closed: true}
	repo := &fakeSettingsRepo{stored: stored}
	svc := newTestService(repo, cache.NewRedisHoursCache(db))

	before := testutil.ToFloat64(metrics.HoursCacheTotal.WithLabelValues(metrics.CacheMiss))

	mock.ExpectGet(cache.Key).RedisNil()
	mock.ExpectSet(cache.Key, mustJSON(t, stored), testTTL).SetVal("OK")

	got, err := svc.Schedule(context.Background())
	require.NoError(t, err)
	assert.True(t, got.Sunday.Closed)
	assert.Equal(t, 1, repo.findCalls)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.HoursCacheTotal.WithLabelValues(metrics.CacheMiss)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSchedule_CacheHitSkipsDatabase(t *testing.T) {
	db, mock := redismock.NewClientMock()
	repo := &fakeSettingsRepo{}
	svc := newTestService(repo, cache.NewRedisHoursCache(db))

	cached := model.DefaultOperatingHours()
	cached.Monday.Open = "05:00"
	before := testutil.ToFloat64(metrics.HoursCacheTotal.WithLabelValues(metrics.CacheHit))

	mock.ExpectGet(cache.Key).SetVal(string(mustJSON(t, cached)))

	got, err := svc.Schedule(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "05:00", got.Monday.Open)
	assert.Equal(t, 0, repo.findCalls)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.HoursCacheTotal.WithLabelValues(metrics.CacheHit)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSchedule_CacheErrorFallsBackToDatabase(t *testing.T) {
	db, mock := redismock.NewClientMock()
	repo := &fakeSettingsRepo{}
	svc := newTestService(repo, cache.NewRedisHoursCache(db))

	mock.ExpectGet(cache.Key).SetErr(errors.New("connection refused"))
	mock.ExpectSet(cache.Key, mustJSON(t, model.DefaultOperatingHours()), testTTL).SetErr(errors.New("connection refused"))

	got, err := svc.Schedule(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.DefaultOperatingHours(), got)
	assert.Equal(t, 1, repo.findCalls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatus(t *testing.T) {
	svc := newTestService(&fakeSettingsRepo{}, nil)
	svc.now = func() time.Time { return monday(7, 30) }

	snap, err := svc.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.GymStatus{State: model.GymOpen, Boundary: "22:00"}, snap.Status)
	assert.Equal(t, time.Monday, snap.Now.Weekday())
	assert.Equal(t, "06:00", snap.Today().Open)
}

func TestStatus_UsesGymTimeZone(t *testing.T) {
	svc := newTestService(&fakeSettingsRepo{}, nil)
	svc.cfg.GymTimeZone = "Asia/Tokyo"
	// 21:30 UTC on Sunday is 06:30 on Monday in Tokyo.
	svc.now = func() time.Time { return time.Date(2024, 3, 17, 21, 30, 0, 0, time.UTC) }

	snap, err := svc.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, time.Monday, snap.Now.Weekday())
	assert.Equal(t, model.GymStatus{State: model.GymOpen, Boundary: "22:00"}, snap.Status)
}

func TestStatus_InvalidStoredHoursReportClosed(t *testing.T) {
	stored := model.DefaultOperatingHours()
	stored.Monday.Open = "six"
	svc := newTestService(&fakeSettingsRepo{stored: stored}, nil)
	svc.now = func() time.Time { return monday(12, 0) }

	snap, err := svc.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.GymStatus{State: model.GymClosed}, snap.Status)
}

func TestUpdateSchedule(t *testing.T) {
	db, mock := redismock.NewClientMock()
	repo := &fakeSettingsRepo{}
	svc := newTestService(repo, cache.NewRedisHoursCache(db))
	fixed := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	hours := model.DefaultOperatingHours()
	hours.Sunday = model.DayHours{Closed: true}

	mock.ExpectDel(cache.Key).SetVal(1)

	got, err := svc.UpdateSchedule(context.Background(), adminUser, hours)
	require.NoError(t, err)
	require.NotNil(t, repo.saved)
	assert.Equal(t, adminUser.ID, repo.saved.UpdatedBy)
	require.NotNil(t, repo.saved.UpdatedAt)
	assert.True(t, fixed.Equal(*repo.saved.UpdatedAt))
	assert.True(t, got.Sunday.Closed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateSchedule_InvalidateFailureStillSucceeds(t *testing.T) {
	db, mock := redismock.NewClientMock()
	repo := &fakeSettingsRepo{}
	svc := newTestService(repo, cache.NewRedisHoursCache(db))

	mock.ExpectDel(cache.Key).SetErr(errors.New("timeout"))

	_, err := svc.UpdateSchedule(context.Background(), adminUser, model.DefaultOperatingHours())
	require.NoError(t, err)
	assert.NotNil(t, repo.saved)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateSchedule_Rejections(t *testing.T) {
	invalid := model.DefaultOperatingHours()
	invalid.Monday.Open = "6:00"

	tests := []struct {
		name     string
		user     *identity.User
		hours    *model.OperatingHours
		saveErr  error
		wantCode string
	}{
		{name: "anonymous", user: nil, hours: model.DefaultOperatingHours(), wantCode: apperrors.CodeUnauthorized},
		{name: "member", user: memberUser, hours: model.DefaultOperatingHours(), wantCode: apperrors.CodeForbidden},
		{name: "missing body", user: adminUser, hours: nil, wantCode: apperrors.CodeInvalidInput},
		{name: "bad time", user: adminUser, hours: invalid, wantCode: apperrors.CodeValidation},
		{name: "storage failure", user: adminUser, hours: model.DefaultOperatingHours(), saveErr: errors.New("write conflict"), wantCode: apperrors.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeSettingsRepo{saveErr: tt.saveErr}
			svc := newTestService(repo, nil)

			_, err := svc.UpdateSchedule(context.Background(), tt.user, tt.hours)
			assert.True(t, apperrors.HasCode(err, tt.wantCode), "got %v", err)
			assert.Nil(t, repo.saved)
		})
	}
}
