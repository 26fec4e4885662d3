package availability

import (
	"testing"
	"time"
)

// businessZone matches the venue's UTC-6 offset without depending on the
// host's timezone database.
var businessZone = time.FixedZone("CST", -6*3600)

func TestCanonicalDay(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    string
		wantErr bool
	}{
		{name: "plain date", value: "2024-05-01", want: "2024-05-01"},
		{name: "rfc3339 midday utc", value: "2024-05-01T12:00:00Z", want: "2024-05-01"},
		{name: "rfc3339 crosses day boundary westward", value: "2024-05-01T03:00:00Z", want: "2024-04-30"},
		{name: "rfc3339 with offset", value: "2024-05-01T22:30:00-06:00", want: "2024-05-01"},
		{name: "garbage", value: "not-a-date", wantErr: true},
		{name: "empty", value: "", wantErr: true},
		{name: "partial date", value: "2024-05", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CanonicalDay(tt.value, businessZone)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("CanonicalDay(%q) expected error, got %q", tt.value, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("CanonicalDay(%q) unexpected error: %v", tt.value, err)
			}
			if got != tt.want {
				t.Errorf("CanonicalDay(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestCanonicalDayStableAcrossRepresentations(t *testing.T) {
	fromDate, err := CanonicalDay("2024-05-01", businessZone)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fromInstant, err := CanonicalDay("2024-05-01T12:00:00Z", businessZone)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fromDate != fromInstant {
		t.Errorf("day key differs by representation: %q vs %q", fromDate, fromInstant)
	}
}

func TestCanonicalDayOf(t *testing.T) {
	// 02:00 UTC on May 2nd is still May 1st at UTC-6.
	instant := time.Date(2024, 5, 2, 2, 0, 0, 0, time.UTC)
	if got := CanonicalDayOf(instant, businessZone); got != "2024-05-01" {
		t.Errorf("CanonicalDayOf = %q, want %q", got, "2024-05-01")
	}
}

func TestAnchorNoon(t *testing.T) {
	anchored, err := AnchorNoon("2024-05-01", businessZone)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := time.Date(2024, 5, 1, 12, 0, 0, 0, businessZone)
	if !anchored.Equal(want) {
		t.Errorf("AnchorNoon = %v, want %v", anchored, want)
	}

	// Rendering the anchored instant in UTC must not shift the day.
	if got := anchored.UTC().Format(DayFormat); got != "2024-05-01" {
		t.Errorf("anchored instant renders as %q in UTC, want 2024-05-01", got)
	}
}

func TestAnchorNoonRejectsMalformedDay(t *testing.T) {
	if _, err := AnchorNoon("05/01/2024", businessZone); err == nil {
		t.Error("expected error for malformed day key")
	}
}
