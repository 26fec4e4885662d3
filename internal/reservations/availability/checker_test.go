package availability

import (
	"context"
	"errors"
	"testing"

	apperrors "venuebook/pkg/errors"
	"venuebook/pkg/model"
)

type mockRepository struct {
	findByDay func(ctx context.Context, day string, excludeID string) ([]*model.Reservation, error)
}

func (m *mockRepository) FindByDay(ctx context.Context, day string, excludeID string) ([]*model.Reservation, error) {
	return m.findByDay(ctx, day, excludeID)
}

func reservationsByDay(byDay map[string][]*model.Reservation) *mockRepository {
	return &mockRepository{
		findByDay: func(_ context.Context, day string, excludeID string) ([]*model.Reservation, error) {
			var out []*model.Reservation
			for _, r := range byDay[day] {
				if excludeID != "" && r.ID == excludeID {
					continue
				}
				out = append(out, r)
			}
			return out, nil
		},
	}
}

func reservation(id, day, start, end string) *model.Reservation {
	return &model.Reservation{
		ID:        id,
		Day:       day,
		StartTime: start,
		EndTime:   end,
		Status:    model.StatusConfirmed,
	}
}

func TestCheckEmptyDayIsAvailable(t *testing.T) {
	checker := NewChecker(reservationsByDay(nil), businessZone)

	verdict, err := checker.Check(context.Background(), Request{
		Date:      "2024-05-01",
		StartTime: "10:00",
		EndTime:   "12:00",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !verdict.Available {
		t.Errorf("expected available, got reason %q", verdict.Reason)
	}
}

func TestCheckIncompleteData(t *testing.T) {
	checker := NewChecker(reservationsByDay(nil), businessZone)

	tests := []struct {
		name string
		req  Request
	}{
		{name: "missing date", req: Request{StartTime: "10:00", EndTime: "12:00"}},
		{name: "missing start", req: Request{Date: "2024-05-01", EndTime: "12:00"}},
		{name: "missing end", req: Request{Date: "2024-05-01", StartTime: "10:00"}},
		{name: "all missing", req: Request{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict, err := checker.Check(context.Background(), tt.req)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if verdict.Available {
				t.Fatal("expected unavailable")
			}
			if verdict.Reason != ReasonIncompleteData {
				t.Errorf("reason = %q, want %q", verdict.Reason, ReasonIncompleteData)
			}
		})
	}
}

func TestCheckInvalidTimeRange(t *testing.T) {
	checker := NewChecker(reservationsByDay(nil), businessZone)

	tests := []struct {
		name       string
		start, end string
	}{
		{name: "inverted range", start: "15:00", end: "14:00"},
		{name: "zero length range", start: "14:00", end: "14:00"},
		{name: "malformed start", start: "25:00", end: "14:00"},
		{name: "malformed end", start: "10:00", end: "10:3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict, err := checker.Check(context.Background(), Request{
				Date:      "2024-05-01",
				StartTime: tt.start,
				EndTime:   tt.end,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if verdict.Available {
				t.Fatal("expected unavailable")
			}
			if verdict.Reason != ReasonInvalidTimeRange {
				t.Errorf("reason = %q, want %q", verdict.Reason, ReasonInvalidTimeRange)
			}
		})
	}
}

func TestCheckAgainstExistingReservation(t *testing.T) {
	repo := reservationsByDay(map[string][]*model.Reservation{
		"2024-05-01": {reservation("a1", "2024-05-01", "18:00", "22:00")},
	})
	checker := NewChecker(repo, businessZone)

	tests := []struct {
		name          string
		date          string
		start, end    string
		wantAvailable bool
	}{
		{name: "overlapping request rejected", date: "2024-05-01", start: "20:00", end: "23:00", wantAvailable: false},
		{name: "request inside existing rejected", date: "2024-05-01", start: "19:00", end: "20:00", wantAvailable: false},
		{name: "request covering existing rejected", date: "2024-05-01", start: "17:00", end: "23:00", wantAvailable: false},
		{name: "touching end accepted", date: "2024-05-01", start: "22:00", end: "23:00", wantAvailable: true},
		{name: "touching start accepted", date: "2024-05-01", start: "16:00", end: "18:00", wantAvailable: true},
		{name: "same slot next day accepted", date: "2024-05-02", start: "18:00", end: "22:00", wantAvailable: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict, err := checker.Check(context.Background(), Request{
				Date:      tt.date,
				StartTime: tt.start,
				EndTime:   tt.end,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if verdict.Available != tt.wantAvailable {
				t.Fatalf("available = %v, want %v (reason %q)", verdict.Available, tt.wantAvailable, verdict.Reason)
			}
			if !tt.wantAvailable && verdict.Reason != ReasonConflict {
				t.Errorf("reason = %q, want %q", verdict.Reason, ReasonConflict)
			}
		})
	}
}

func TestCheckExcludeIDSkipsOwnReservation(t *testing.T) {
	repo := reservationsByDay(map[string][]*model.Reservation{
		"2024-05-01": {
			reservation("a1", "2024-05-01", "18:00", "22:00"),
			reservation("b2", "2024-05-01", "10:00", "12:00"),
		},
	})
	checker := NewChecker(repo, businessZone)

	// Re-checking a1's own slot while editing a1 must not self-conflict.
	verdict, err := checker.Check(context.Background(), Request{
		Date:      "2024-05-01",
		StartTime: "18:00",
		EndTime:   "22:00",
		ExcludeID: "a1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !verdict.Available {
		t.Errorf("expected available when excluding own id, got reason %q", verdict.Reason)
	}

	// Excluding a1 does not grant b2's slot.
	verdict, err = checker.Check(context.Background(), Request{
		Date:      "2024-05-01",
		StartTime: "11:00",
		EndTime:   "13:00",
		ExcludeID: "a1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if verdict.Available {
		t.Error("expected conflict with remaining reservation")
	}
}

func TestCheckRFC3339DateMatchesPlainDate(t *testing.T) {
	repo := reservationsByDay(map[string][]*model.Reservation{
		"2024-05-01": {reservation("a1", "2024-05-01", "18:00", "22:00")},
	})
	checker := NewChecker(repo, businessZone)

	verdict, err := checker.Check(context.Background(), Request{
		Date:      "2024-05-01T12:00:00Z",
		StartTime: "19:00",
		EndTime:   "20:00",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if verdict.Available {
		t.Error("instant form of the same day must see the same conflicts")
	}
}

func TestCheckMalformedDate(t *testing.T) {
	checker := NewChecker(reservationsByDay(nil), businessZone)

	_, err := checker.Check(context.Background(), Request{
		Date:      "01/05/2024",
		StartTime: "10:00",
		EndTime:   "12:00",
	})
	if err == nil {
		t.Fatal("expected error for malformed date")
	}
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeInvalidInput {
		t.Errorf("expected %s error, got %v", apperrors.CodeInvalidInput, err)
	}
}

func TestCheckSkipsCorruptCandidates(t *testing.T) {
	repo := reservationsByDay(map[string][]*model.Reservation{
		"2024-05-01": {
			reservation("bad", "2024-05-01", "whenever", "22:00"),
			reservation("good", "2024-05-01", "18:00", "22:00"),
		},
	})
	checker := NewChecker(repo, businessZone)

	verdict, err := checker.Check(context.Background(), Request{
		Date:      "2024-05-01",
		StartTime: "19:00",
		EndTime:   "20:00",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if verdict.Available {
		t.Error("parseable candidate must still conflict")
	}
}

func TestCheckRepositoryFailure(t *testing.T) {
	repo := &mockRepository{
		findByDay: func(context.Context, string, string) ([]*model.Reservation, error) {
			return nil, errors.New("connection reset")
		},
	}
	checker := NewChecker(repo, businessZone)

	_, err := checker.Check(context.Background(), Request{
		Date:      "2024-05-01",
		StartTime: "10:00",
		EndTime:   "12:00",
	})
	if err == nil {
		t.Fatal("expected error from repository failure")
	}
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeInternal {
		t.Errorf("expected %s error, got %v", apperrors.CodeInternal, err)
	}
}
