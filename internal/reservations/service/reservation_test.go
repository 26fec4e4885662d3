package service

import (
	"context"
	"io"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"venuebook/internal/reservations/availability"
	reserrors "venuebook/internal/reservations/errors"
	"venuebook/internal/reservations/validator"
	"venuebook/pkg/config"
	mongotx "venuebook/pkg/db/mongo"
	apperrors "venuebook/pkg/errors"
	"venuebook/pkg/kafka"
	"venuebook/pkg/logger"
	"venuebook/pkg/model"
)

type mockReservationRepo struct {
	create    func(ctx context.Context, res *model.Reservation) error
	findByID  func(ctx context.Context, id string) (*model.Reservation, error)
	findAll   func(ctx context.Context, limit int, offset int64) ([]*model.Reservation, error)
	findByDay func(ctx context.Context, day string, excludeID string) ([]*model.Reservation, error)
	update    func(ctx context.Context, id string, res *model.Reservation) (*mongo.UpdateResult, error)
	delete    func(ctx context.Context, id string) error
	count     func(ctx context.Context) (int64, error)
}

func (m *mockReservationRepo) Create(ctx context.Context, res *model.Reservation) error {
	if m.create != nil {
		return m.create(ctx, res)
	}
	res.ID = "68b000000000000000000001"
	return nil
}

func (m *mockReservationRepo) FindByID(ctx context.Context, id string) (*model.Reservation, error) {
	if m.findByID != nil {
		return m.findByID(ctx, id)
	}
	return nil, reserrors.ErrNotFound
}

func (m *mockReservationRepo) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Reservation, error) {
	if m.findAll != nil {
		return m.findAll(ctx, limit, offset)
	}
	return nil, nil
}

func (m *mockReservationRepo) FindByDay(ctx context.Context, day string, excludeID string) ([]*model.Reservation, error) {
	if m.findByDay != nil {
		return m.findByDay(ctx, day, excludeID)
	}
	return nil, nil
}

func (m *mockReservationRepo) Update(ctx context.Context, id string, res *model.Reservation) (*mongo.UpdateResult, error) {
	if m.update != nil {
		return m.update(ctx, id, res)
	}
	return &mongo.UpdateResult{MatchedCount: 1}, nil
}

func (m *mockReservationRepo) Delete(ctx context.Context, id string) error {
	if m.delete != nil {
		return m.delete(ctx, id)
	}
	return nil
}

func (m *mockReservationRepo) Count(ctx context.Context) (int64, error) {
	if m.count != nil {
		return m.count(ctx)
	}
	return 0, nil
}

func (m *mockReservationRepo) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(mongo.NewSessionContext(ctx, nil))
}

type mockLockRepo struct {
	created []string
	deleted []string
	fail    error
}

func (m *mockLockRepo) Create(_ context.Context, lock *model.DayLock) (*model.DayLock, error) {
	if m.fail != nil {
		return nil, m.fail
	}
	m.created = append(m.created, lock.ID)
	return lock, nil
}

func (m *mockLockRepo) Delete(_ context.Context, lockID string) error {
	m.deleted = append(m.deleted, lockID)
	return nil
}

type mockPublisher struct {
	events []kafka.Message
}

func (m *mockPublisher) Publish(_ context.Context, msg kafka.Message) error {
	m.events = append(m.events, msg)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Log:        logger.New(logger.Config{Level: logger.ERROR, Output: io.Discard}),
		Location:   time.FixedZone("CST", -6*3600),
		DayLockTTL: time.Minute,
	}
}

func newTestService(repo *mockReservationRepo, locks *mockLockRepo, pub EventPublisher) ReservationService {
	cfg := testConfig()
	checker := availability.NewChecker(repo, cfg.Location)
	return NewReservationService(
		repo,
		locks,
		checker,
		validator.NewReservationValidator(cfg.Log),
		cfg,
		pub,
	)
}

func testReservation() *model.Reservation {
	return &model.Reservation{
		ClientName: "Maria Lopez",
		EventType:  "Wedding",
		Date:       time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC),
		StartTime:  "18:00",
		EndTime:    "22:00",
		GuestCount: 120,
		Price:      500000,
	}
}

func TestCreateReservation(t *testing.T) {
	repo := &mockReservationRepo{}
	locks := &mockLockRepo{}
	pub := &mockPublisher{}
	svc := newTestService(repo, locks, pub)

	res := testReservation()
	if err := svc.Create(context.Background(), res); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Day != "2024-05-01" {
		t.Errorf("Day = %q, want 2024-05-01", res.Day)
	}
	if res.Status != model.StatusConfirmed {
		t.Errorf("Status = %q, want %q", res.Status, model.StatusConfirmed)
	}
	// The stored instant is re-anchored at local noon of the business day.
	if got := res.Date.UTC().Hour(); got != 18 {
		t.Errorf("anchored Date renders at %d:00 UTC, want 18:00", got)
	}
	if res.EventType != "wedding" {
		t.Errorf("EventType = %q, want lowercased label", res.EventType)
	}

	if len(locks.created) != 1 || locks.created[0] != "lock:2024-05-01" {
		t.Errorf("day lock created = %v, want [lock:2024-05-01]", locks.created)
	}
	if len(locks.deleted) != 1 || locks.deleted[0] != "lock:2024-05-01" {
		t.Errorf("day lock released = %v, want [lock:2024-05-01]", locks.deleted)
	}

	if len(pub.events) != 1 {
		t.Fatalf("published %d events, want 1", len(pub.events))
	}
	if got := pub.events[0].Headers[kafka.HeaderEventType]; got != EventReservationCreated {
		t.Errorf("event type = %q, want %q", got, EventReservationCreated)
	}
}

func TestCreateRejectsConflictingSlot(t *testing.T) {
	existing := &model.Reservation{
		ID:        "68b000000000000000000009",
		Day:       "2024-05-01",
		StartTime: "18:00",
		EndTime:   "22:00",
		Status:    model.StatusConfirmed,
	}

	created := false
	repo := &mockReservationRepo{
		findByDay: func(_ context.Context, day string, _ string) ([]*model.Reservation, error) {
			if day == "2024-05-01" {
				return []*model.Reservation{existing}, nil
			}
			return nil, nil
		},
		create: func(context.Context, *model.Reservation) error {
			created = true
			return nil
		},
	}
	locks := &mockLockRepo{}
	pub := &mockPublisher{}
	svc := newTestService(repo, locks, pub)

	res := testReservation()
	res.StartTime = "20:00"
	res.EndTime = "23:00"

	err := svc.Create(context.Background(), res)
	if err == nil {
		t.Fatal("expected conflict error")
	}
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeConflict {
		t.Errorf("expected %s, got %v", apperrors.CodeConflict, err)
	}

	if created {
		t.Error("reservation must not be written on conflict")
	}
	if len(pub.events) != 0 {
		t.Error("no event may be published on conflict")
	}
	if len(locks.deleted) != 1 {
		t.Errorf("day lock must still be released, got %v", locks.deleted)
	}
}

func TestCreateAcceptsTouchingSlot(t *testing.T) {
	existing := &model.Reservation{
		ID:        "68b000000000000000000009",
		Day:       "2024-05-01",
		StartTime: "18:00",
		EndTime:   "22:00",
		Status:    model.StatusConfirmed,
	}
	repo := &mockReservationRepo{
		findByDay: func(_ context.Context, day string, _ string) ([]*model.Reservation, error) {
			if day == "2024-05-01" {
				return []*model.Reservation{existing}, nil
			}
			return nil, nil
		},
	}
	svc := newTestService(repo, &mockLockRepo{}, nil)

	res := testReservation()
	res.StartTime = "22:00"
	res.EndTime = "23:00"

	if err := svc.Create(context.Background(), res); err != nil {
		t.Errorf("back-to-back slot must be accepted: %v", err)
	}
}

func TestCreateDayLockContention(t *testing.T) {
	repo := &mockReservationRepo{
		create: func(context.Context, *model.Reservation) error {
			t.Error("no write may happen while the day is locked elsewhere")
			return nil
		},
	}
	locks := &mockLockRepo{
		fail: mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}},
	}
	svc := newTestService(repo, locks, nil)

	err := svc.Create(context.Background(), testReservation())
	if err == nil {
		t.Fatal("expected conflict error")
	}
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeConflict {
		t.Errorf("expected %s, got %v", apperrors.CodeConflict, err)
	}
}

func TestCreateValidationFailureSkipsLock(t *testing.T) {
	locks := &mockLockRepo{}
	svc := newTestService(&mockReservationRepo{}, locks, nil)

	res := testReservation()
	res.ClientName = ""

	err := svc.Create(context.Background(), res)
	if err == nil {
		t.Fatal("expected validation error")
	}
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeValidation {
		t.Errorf("expected %s, got %v", apperrors.CodeValidation, err)
	}
	if len(locks.created) != 0 {
		t.Error("invalid input must not touch the day lock")
	}
}

func TestUpdateExcludesOwnReservation(t *testing.T) {
	const id = "68b000000000000000000001"
	existing := testReservation()
	existing.ID = id
	existing.Day = "2024-05-01"
	existing.Status = model.StatusConfirmed

	var seenExclude string
	repo := &mockReservationRepo{
		findByID: func(_ context.Context, gotID string) (*model.Reservation, error) {
			if gotID != id {
				t.Errorf("FindByID called with %q, want %q", gotID, id)
			}
			return existing, nil
		},
		findByDay: func(_ context.Context, _ string, excludeID string) ([]*model.Reservation, error) {
			seenExclude = excludeID
			return nil, nil
		},
	}
	pub := &mockPublisher{}
	svc := newTestService(repo, &mockLockRepo{}, pub)

	updates := &model.ReservationUpdate{StartTime: "19:00", EndTime: "23:00"}
	if err := svc.Update(context.Background(), id, updates); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if seenExclude != id {
		t.Errorf("availability re-check excluded %q, want own id %q", seenExclude, id)
	}
	if len(pub.events) != 1 || pub.events[0].Headers[kafka.HeaderEventType] != EventReservationUpdated {
		t.Errorf("expected one %s event, got %v", EventReservationUpdated, pub.events)
	}
}

func TestUpdateNotFound(t *testing.T) {
	svc := newTestService(&mockReservationRepo{}, &mockLockRepo{}, nil)

	err := svc.Update(context.Background(), "68b000000000000000000002", &model.ReservationUpdate{StartTime: "10:00"})
	if err == nil {
		t.Fatal("expected not found error")
	}
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeNotFound {
		t.Errorf("expected %s, got %v", apperrors.CodeNotFound, err)
	}
}

func TestDeletePublishesCancelledEvent(t *testing.T) {
	const id = "68b000000000000000000001"
	existing := testReservation()
	existing.ID = id

	repo := &mockReservationRepo{
		findByID: func(context.Context, string) (*model.Reservation, error) {
			return existing, nil
		},
	}
	pub := &mockPublisher{}
	svc := newTestService(repo, &mockLockRepo{}, pub)

	if err := svc.Delete(context.Background(), id); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pub.events) != 1 || pub.events[0].Headers[kafka.HeaderEventType] != EventReservationCancelled {
		t.Errorf("expected one %s event, got %v", EventReservationCancelled, pub.events)
	}
}

func TestGetByDayCanonicalizesInput(t *testing.T) {
	var seenDay string
	repo := &mockReservationRepo{
		findByDay: func(_ context.Context, day string, _ string) ([]*model.Reservation, error) {
			seenDay = day
			return nil, nil
		},
	}
	svc := newTestService(repo, &mockLockRepo{}, nil)

	// 03:00 UTC on May 2nd is still May 1st at UTC-6.
	if _, err := svc.GetByDay(context.Background(), "2024-05-02T03:00:00Z"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seenDay != "2024-05-01" {
		t.Errorf("queried day %q, want 2024-05-01", seenDay)
	}

	if _, err := svc.GetByDay(context.Background(), "yesterday"); err == nil {
		t.Error("expected error for malformed day")
	}
}
