// Package availability decides whether a proposed reservation slot may be
// booked without colliding with existing reservations on the same venue day.
package availability

import (
	"context"
	"time"

	apperrors "venuebook/pkg/errors"
	"venuebook/pkg/model"
)

const (
	ReasonIncompleteData   = "incomplete data"
	ReasonInvalidTimeRange = "invalid time range"
	ReasonConflict         = "conflicts with another reservation"
)

// Verdict is the availability answer: either the slot is free, or it is not
// and Reason says why. Business outcomes are values here, never errors.
type Verdict struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

// Request is a proposed slot. ExcludeID, when set, removes that reservation
// from the collision set so an edit is not rejected against itself.
type Request struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	ExcludeID string `json:"exclude_id,omitempty"`
}

// Repository is the read-side the checker depends on: all non-cancelled
// reservations on one canonical day, optionally minus one id.
type Repository interface {
	FindByDay(ctx context.Context, day string, excludeID string) ([]*model.Reservation, error)
}

type Checker struct {
	repo Repository
	loc  *time.Location
}

func NewChecker(repo Repository, loc *time.Location) *Checker {
	return &Checker{
		repo: repo,
		loc:  loc,
	}
}

// Check runs the full availability decision for a proposed slot. It is a
// stateless existential test: the first conflicting reservation short-circuits.
// Only repository failures surface as errors; every business outcome is a
// Verdict.
func (c *Checker) Check(ctx context.Context, req Request) (Verdict, error) {
	if req.Date == "" || req.StartTime == "" || req.EndTime == "" {
		return Verdict{Available: false, Reason: ReasonIncompleteData}, nil
	}

	start, err := MinuteOfDay(req.StartTime)
	if err != nil {
		return Verdict{Available: false, Reason: ReasonInvalidTimeRange}, nil
	}
	end, err := MinuteOfDay(req.EndTime)
	if err != nil {
		return Verdict{Available: false, Reason: ReasonInvalidTimeRange}, nil
	}
	if end <= start {
		return Verdict{Available: false, Reason: ReasonInvalidTimeRange}, nil
	}

	day, err := CanonicalDay(req.Date, c.loc)
	if err != nil {
		return Verdict{}, apperrors.InvalidInput("date must be YYYY-MM-DD or RFC3339")
	}

	existing, err := c.repo.FindByDay(ctx, day, req.ExcludeID)
	if err != nil {
		return Verdict{}, apperrors.Internal("Failed to load same-day reservations", err)
	}

	for _, r := range existing {
		otherStart, err := MinuteOfDay(r.StartTime)
		if err != nil {
			continue
		}
		otherEnd, err := MinuteOfDay(r.EndTime)
		if err != nil {
			continue
		}
		if Overlap(start, end, otherStart, otherEnd) {
			return Verdict{Available: false, Reason: ReasonConflict}, nil
		}
	}

	return Verdict{Available: true}, nil
}
