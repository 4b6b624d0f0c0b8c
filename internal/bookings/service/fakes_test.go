package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	bookingserrors "gymbook/internal/bookings/errors"
	mongotx "gymbook/pkg/db/mongo"
	"gymbook/pkg/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type txLogKey struct{}

// txLog collects undo steps so a failed transaction leaves the store as it
// was.
type txLog struct {
	undo []func()
}

func recordUndo(ctx context.Context, fn func()) {
	if log, ok := ctx.Value(txLogKey{}).(*txLog); ok {
		log.undo = append(log.undo, fn)
	}
}

// fakeStore backs both repositories in memory.
type fakeStore struct {
	mu       sync.Mutex
	bookings map[string]*model.Booking
	counters map[string]int
	clock    time.Time

	countErr     error
	aggregateErr error
	createErr    error
	findErr      error

	markCalls    int
	releaseCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		bookings: make(map[string]*model.Booking),
		counters: make(map[string]int),
		clock:    time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC),
	}
}

func (f *fakeStore) Create(ctx context.Context, booking *model.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}

	f.clock = f.clock.Add(time.Second)
	booking.ID = primitive.NewObjectID().Hex()
	booking.CreatedAt = f.clock
	stored := *booking
	f.bookings[booking.ID] = &stored

	id := booking.ID
	recordUndo(ctx, func() { delete(f.bookings, id) })
	return nil
}

func (f *fakeStore) FindByID(_ context.Context, id string) (*model.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	if !primitive.IsValidObjectID(id) {
		return nil, bookingserrors.ErrInvalidID
	}
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingserrors.ErrNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeStore) FindByUser(_ context.Context, userID string, limit int) ([]*model.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}

	var out []*model.Booking
	for _, b := range f.bookings {
		if b.UserID == userID {
			copied := *b
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeStore) FindAll(_ context.Context, limit int, offset int64) ([]*model.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}

	out := make([]*model.Booking, 0, len(f.bookings))
	for _, b := range f.bookings {
		copied := *b
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset >= int64(len(out)) {
		return []*model.Booking{}, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeStore) Count(context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.bookings)), nil
}

func (f *fakeStore) CountConfirmed(_ context.Context, date, timeSlot string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.countErr != nil {
		return 0, f.countErr
	}
	var n int64
	for _, b := range f.bookings {
		if b.Date == date && b.TimeSlot == timeSlot && b.Status == model.StatusConfirmed {
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) CountConfirmedByDate(_ context.Context, date string) (map[string]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.aggregateErr != nil {
		return nil, f.aggregateErr
	}
	counts := map[string]int64{}
	for _, b := range f.bookings {
		if b.Date == date && b.Status == model.StatusConfirmed {
			counts[b.TimeSlot]++
		}
	}
	return counts, nil
}

func (f *fakeStore) MarkCancelled(ctx context.Context, id string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok || b.Status != model.StatusConfirmed {
		return bookingserrors.ErrNotConfirmed
	}

	f.markCalls++
	prev := *b
	b.Status = model.StatusCancelled
	stamped := at
	b.CancelledAt = &stamped
	recordUndo(ctx, func() { *b = prev })
	return nil
}

func (f *fakeStore) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	log := &txLog{}
	if err := fn(context.WithValue(ctx, txLogKey{}, log)); err != nil {
		f.mu.Lock()
		for i := len(log.undo) - 1; i >= 0; i-- {
			log.undo[i]()
		}
		f.mu.Unlock()
		return err
	}
	return nil
}

func (f *fakeStore) Reserve(ctx context.Context, date, timeSlot string, capacity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := model.SlotKey(date, timeSlot)
	if f.counters[key] >= capacity {
		return bookingserrors.ErrSlotFull
	}
	f.counters[key]++
	recordUndo(ctx, func() { f.counters[key]-- })
	return nil
}

func (f *fakeStore) Release(ctx context.Context, date, timeSlot string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := model.SlotKey(date, timeSlot)
	f.releaseCalls++
	if f.counters[key] > 0 {
		f.counters[key]--
		recordUndo(ctx, func() { f.counters[key]++ })
	}
	return nil
}

func (f *fakeStore) counter(date, timeSlot string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.counters[model.SlotKey(date, timeSlot)]
}

func (f *fakeStore) size() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.bookings)
}

type fakePublisher struct {
	mu     sync.Mutex
	events []string
	err    error
}

func (p *fakePublisher) Publish(_ context.Context, eventType string, _ *model.Booking) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, eventType)
	return nil
}

func (p *fakePublisher) published() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.events...)
}

var errStoreDown = errors.New("store unavailable")
