package validator

import (
	"io"
	"strings"
	"testing"
	"time"

	"venuebook/pkg/logger"
	"venuebook/pkg/model"
)

func newTestValidator(t *testing.T) *ReservationValidator {
	t.Helper()
	log := logger.New(logger.Config{Level: logger.ERROR, Output: io.Discard})
	return NewReservationValidator(log)
}

func validReservation() *model.Reservation {
	return &model.Reservation{
		ClientName: "Maria Lopez",
		EventType:  "wedding",
		Date:       time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Day:        "2024-05-01",
		StartTime:  "18:00",
		EndTime:    "22:00",
		GuestCount: 120,
		Price:      500000,
		Status:     model.StatusConfirmed,
	}
}

func TestValidateAcceptsValidReservation(t *testing.T) {
	v := newTestValidator(t)
	if err := v.Validate(validReservation()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidateRejectsBadFields(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*model.Reservation)
		wantPart string
	}{
		{
			name:     "missing client name",
			mutate:   func(r *model.Reservation) { r.ClientName = "" },
			wantPart: "ClientName is required",
		},
		{
			name:     "bad start time",
			mutate:   func(r *model.Reservation) { r.StartTime = "6pm" },
			wantPart: "StartTime must be a 24-hour HH:MM time",
		},
		{
			name:     "out of range start time",
			mutate:   func(r *model.Reservation) { r.StartTime = "24:00" },
			wantPart: "StartTime must be a 24-hour HH:MM time",
		},
		{
			name:     "bad day key",
			mutate:   func(r *model.Reservation) { r.Day = "01-05-2024" },
			wantPart: "Day must be a YYYY-MM-DD date",
		},
		{
			name:     "bad status",
			mutate:   func(r *model.Reservation) { r.Status = "pending" },
			wantPart: "Status must be one of",
		},
		{
			name:     "bad phone",
			mutate:   func(r *model.Reservation) { r.ClientPhone = "555-1234" },
			wantPart: "ClientPhone must be in E.164 format",
		},
		{
			name:     "bad email",
			mutate:   func(r *model.Reservation) { r.ClientEmail = "not-an-email" },
			wantPart: "ClientEmail must be a valid email address",
		},
		{
			name:     "negative price",
			mutate:   func(r *model.Reservation) { r.Price = -1 },
			wantPart: "Price must be at least",
		},
	}

	v := newTestValidator(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := validReservation()
			tt.mutate(res)
			err := v.Validate(res)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantPart) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.wantPart)
			}
		})
	}
}

func TestValidateRejectsInvertedTimeRange(t *testing.T) {
	v := newTestValidator(t)

	res := validReservation()
	res.StartTime = "22:00"
	res.EndTime = "18:00"
	if err := v.Validate(res); err == nil {
		t.Error("expected error for inverted range")
	}

	res = validReservation()
	res.StartTime = "14:00"
	res.EndTime = "14:00"
	if err := v.Validate(res); err == nil {
		t.Error("expected error for zero-length range")
	}
}

func TestValidateUpdate(t *testing.T) {
	v := newTestValidator(t)

	if err := v.ValidateUpdate(&model.ReservationUpdate{StartTime: "10:00"}); err != nil {
		t.Errorf("partial update with only start time should pass: %v", err)
	}

	if err := v.ValidateUpdate(&model.ReservationUpdate{StartTime: "12:00", EndTime: "11:00"}); err == nil {
		t.Error("expected error when update inverts the range")
	}

	if err := v.ValidateUpdate(&model.ReservationUpdate{Status: "archived"}); err == nil {
		t.Error("expected error for unknown status")
	}
}
