package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"venuebook/internal/reservations/availability"
	reserrors "venuebook/internal/reservations/errors"
	"venuebook/internal/reservations/repository"
	"venuebook/internal/reservations/validator"
	"venuebook/pkg/config"
	apperrors "venuebook/pkg/errors"
	"venuebook/pkg/kafka"
	"venuebook/pkg/model"
	"venuebook/pkg/sanitizer"
)

const (
	EventReservationCreated   = "reservation.created"
	EventReservationUpdated   = "reservation.updated"
	EventReservationCancelled = "reservation.cancelled"
)

// EventPublisher is the producer side of the reservation event stream. A nil
// publisher disables events entirely.
type EventPublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type ReservationService interface {
	Create(ctx context.Context, res *model.Reservation) error
	GetByID(ctx context.Context, id string) (*model.Reservation, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Reservation, int64, error)
	GetByDay(ctx context.Context, day string) ([]*model.Reservation, error)
	Update(ctx context.Context, id string, updates *model.ReservationUpdate) error
	Delete(ctx context.Context, id string) error
	CheckAvailability(ctx context.Context, req availability.Request) (availability.Verdict, error)
}

type reservationService struct {
	repo      repository.ReservationRepository
	lockRepo  repository.DayLockRepository
	checker   *availability.Checker
	validator *validator.ReservationValidator
	cfg       *config.Config
	publisher EventPublisher
}

func NewReservationService(
	repo repository.ReservationRepository,
	lockRepo repository.DayLockRepository,
	checker *availability.Checker,
	resValidator *validator.ReservationValidator,
	cfg *config.Config,
	publisher EventPublisher,
) ReservationService {
	return &reservationService{
		repo:      repo,
		lockRepo:  lockRepo,
		checker:   checker,
		validator: resValidator,
		cfg:       cfg,
		publisher: publisher,
	}
}

func (s *reservationService) Create(ctx context.Context, res *model.Reservation) error {
	s.applyDefaults(res)
	s.sanitize(res)
	if err := s.anchorDay(res); err != nil {
		return err
	}
	if err := s.validate(res); err != nil {
		return err
	}

	// Serialize against concurrent bookings for the same day: the check and
	// the insert below are not atomic on their own.
	lockID, err := s.acquireDayLock(ctx, res.Day)
	if err != nil {
		return err
	}
	defer func() {
		if releaseErr := s.releaseDayLock(ctx, lockID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release day lock", "lock_id", lockID, "error", releaseErr)
		}
	}()

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.verifySlot(sessCtx, res, ""); err != nil {
			return err
		}
		if err := s.repo.Create(sessCtx, res); err != nil {
			return apperrors.Internal("Failed to create reservation", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create reservation", "error", err)
		return err
	}

	s.publishEvent(ctx, EventReservationCreated, res)

	s.cfg.Log.Info("Reservation created successfully",
		"id", res.ID,
		"day", res.Day,
		"start_time", res.StartTime,
		"end_time", res.EndTime,
	)
	return nil
}

func (s *reservationService) GetByID(ctx context.Context, id string) (*model.Reservation, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Reservation ID cannot be empty")
	}

	res, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, id)
	}

	return res, nil
}

func (s *reservationService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Reservation, int64, error) {
	var count int64
	var reservations []*model.Reservation
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count reservations", "error", errCount)
			errCount = apperrors.Internal("Failed to count reservations", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		reservations, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list reservations", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve reservations", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return reservations, count, nil
}

func (s *reservationService) GetByDay(ctx context.Context, day string) ([]*model.Reservation, error) {
	if day == "" {
		return nil, apperrors.InvalidInput("Day cannot be empty")
	}

	canonical, err := availability.CanonicalDay(day, s.cfg.Location)
	if err != nil {
		return nil, apperrors.InvalidInput("day must be YYYY-MM-DD or RFC3339")
	}

	reservations, err := s.repo.FindByDay(ctx, canonical, "")
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve reservations for day", err)
	}

	return reservations, nil
}

func (s *reservationService) Update(ctx context.Context, id string, updates *model.ReservationUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Reservation ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return s.mapRepoError(err, id)
	}

	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Reservation update validation failed", "id", id, "error", err)
		return apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	merged := s.mergeUpdates(existing, updates)
	s.sanitize(merged)
	if err := s.anchorDay(merged); err != nil {
		return err
	}
	if err := s.validate(merged); err != nil {
		return err
	}

	lockID, err := s.acquireDayLock(ctx, merged.Day)
	if err != nil {
		return err
	}
	defer func() {
		if releaseErr := s.releaseDayLock(ctx, lockID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release day lock", "lock_id", lockID, "error", releaseErr)
		}
	}()

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		// Re-validate against other reservations only; the record must not
		// conflict with itself when keeping its own slot.
		if err := s.verifySlot(sessCtx, merged, id); err != nil {
			return err
		}
		if _, err := s.repo.Update(sessCtx, id, merged); err != nil {
			return apperrors.Internal("Failed to update reservation", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to update reservation", "id", id, "error", err)
		return err
	}

	merged.ID = id
	s.publishEvent(ctx, EventReservationUpdated, merged)

	s.cfg.Log.Info("Reservation updated successfully", "id", id)
	return nil
}

func (s *reservationService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Reservation ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return s.mapRepoError(err, id)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapRepoError(err, id)
	}

	s.publishEvent(ctx, EventReservationCancelled, existing)

	s.cfg.Log.Info("Reservation deleted successfully", "id", id)
	return nil
}

func (s *reservationService) CheckAvailability(ctx context.Context, req availability.Request) (availability.Verdict, error) {
	return s.checker.Check(ctx, req)
}

// --- Helpers ---

func (s *reservationService) applyDefaults(res *model.Reservation) {
	if res.Status == "" {
		res.Status = model.StatusConfirmed
	}
}

func (s *reservationService) sanitize(res *model.Reservation) {
	res.ClientName = sanitizer.NormalizeName(res.ClientName)
	res.ClientPhone = sanitizer.SanitizePhone(res.ClientPhone)
	res.ClientEmail = sanitizer.SanitizeEmail(res.ClientEmail)
	res.EventType = sanitizer.NormalizeLabel(res.EventType)
	res.Notes = sanitizer.TrimAndNormalize(res.Notes)
}

// anchorDay derives the canonical day key from the stored instant and
// re-anchors the instant at local noon so the day survives any later
// timezone-naive rendering.
func (s *reservationService) anchorDay(res *model.Reservation) error {
	if res.Date.IsZero() {
		return apperrors.Validation("Reservation validation failed", map[string]any{
			"error": "Date is required",
		})
	}

	res.Day = availability.CanonicalDayOf(res.Date, s.cfg.Location)
	anchored, err := availability.AnchorNoon(res.Day, s.cfg.Location)
	if err != nil {
		return apperrors.Internal("Failed to anchor reservation date", err)
	}
	res.Date = anchored
	return nil
}

func (s *reservationService) mergeUpdates(existing *model.Reservation, updates *model.ReservationUpdate) *model.Reservation {
	merged := *existing

	if updates.ClientName != "" {
		merged.ClientName = updates.ClientName
	}
	if updates.ClientPhone != nil {
		merged.ClientPhone = *updates.ClientPhone
	}
	if updates.ClientEmail != nil {
		merged.ClientEmail = *updates.ClientEmail
	}
	if updates.EventType != "" {
		merged.EventType = updates.EventType
	}
	if updates.Date != nil {
		merged.Date = *updates.Date
	}
	if updates.StartTime != "" {
		merged.StartTime = updates.StartTime
	}
	if updates.EndTime != "" {
		merged.EndTime = updates.EndTime
	}
	if updates.GuestCount != nil {
		merged.GuestCount = *updates.GuestCount
	}
	if updates.Price != nil {
		merged.Price = *updates.Price
	}
	if updates.Notes != nil {
		merged.Notes = *updates.Notes
	}
	if updates.Status != "" {
		merged.Status = updates.Status
	}

	return &merged
}

func (s *reservationService) validate(res *model.Reservation) error {
	if err := s.validator.Validate(res); err != nil {
		s.cfg.Log.Warn("Reservation validation failed", "error", err)
		return apperrors.Validation("Reservation validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}

// verifySlot re-runs the availability check inside the transaction. A
// cancelled reservation never occupies its slot.
func (s *reservationService) verifySlot(ctx context.Context, res *model.Reservation, excludeID string) error {
	if res.Status == model.StatusCancelled {
		return nil
	}

	verdict, err := s.checker.Check(ctx, availability.Request{
		Date:      res.Day,
		StartTime: res.StartTime,
		EndTime:   res.EndTime,
		ExcludeID: excludeID,
	})
	if err != nil {
		return err
	}
	if !verdict.Available {
		switch verdict.Reason {
		case availability.ReasonConflict:
			return apperrors.Conflict(fmt.Sprintf(
				"Reservation %s %s-%s conflicts with another reservation",
				res.Day, res.StartTime, res.EndTime,
			))
		default:
			return apperrors.Validation("Reservation slot rejected", map[string]any{
				"reason": verdict.Reason,
			})
		}
	}
	return nil
}

func (s *reservationService) acquireDayLock(ctx context.Context, day string) (string, error) {
	lockID := "lock:" + day

	lock := &model.DayLock{
		ID:        lockID,
		ExpiresAt: time.Now().Add(s.cfg.DayLockTTL),
	}

	if _, err := s.lockRepo.Create(ctx, lock); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", apperrors.Conflict("This day is currently being booked by another request. Please try again.")
		}
		return "", apperrors.Internal("Failed to acquire day lock", err)
	}

	return lockID, nil
}

func (s *reservationService) releaseDayLock(ctx context.Context, lockID string) error {
	return s.lockRepo.Delete(ctx, lockID)
}

func (s *reservationService) publishEvent(ctx context.Context, eventType string, res *model.Reservation) {
	if s.publisher == nil {
		return
	}

	msg := kafka.NewMessage().
		WithKey(res.ID).
		WithEventType(eventType).
		WithSource("reservations").
		WithValue(res).
		Build()

	// Event delivery is best-effort; the booking itself already committed.
	if err := s.publisher.Publish(ctx, msg); err != nil {
		s.cfg.Log.Warn("Failed to publish reservation event",
			"event_type", eventType,
			"reservation_id", res.ID,
			"error", err,
		)
	}
}

func (s *reservationService) mapRepoError(err error, id string) error {
	if errors.Is(err, reserrors.ErrNotFound) {
		return apperrors.NotFoundWithID("Reservation", id)
	}
	if errors.Is(err, reserrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid reservation ID format")
	}
	return apperrors.Internal("Reservation lookup failed", err)
}
