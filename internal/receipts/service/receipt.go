package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	rcperrors "venuebook/internal/receipts/errors"
	"venuebook/internal/receipts/repository"
	"venuebook/internal/receipts/validator"
	reserrors "venuebook/internal/reservations/errors"
	"venuebook/pkg/config"
	apperrors "venuebook/pkg/errors"
	"venuebook/pkg/model"
	"venuebook/pkg/sanitizer"
)

// ReservationReader is the slice of the reservations store the receipt
// service needs: the reservation a payment applies to.
type ReservationReader interface {
	FindByID(ctx context.Context, id string) (*model.Reservation, error)
}

type ReceiptService interface {
	Create(ctx context.Context, receipt *model.Receipt) error
	GetByID(ctx context.Context, id string) (*model.Receipt, error)
	GetByReservation(ctx context.Context, reservationID string) ([]*model.Receipt, *model.ReceiptSummary, error)
	Delete(ctx context.Context, id string) error
}

type receiptService struct {
	repo         repository.ReceiptRepository
	reservations ReservationReader
	validator    *validator.ReceiptValidator
	cfg          *config.Config
}

func NewReceiptService(
	repo repository.ReceiptRepository,
	reservations ReservationReader,
	rcpValidator *validator.ReceiptValidator,
	cfg *config.Config,
) ReceiptService {
	return &receiptService{
		repo:         repo,
		reservations: reservations,
		validator:    rcpValidator,
		cfg:          cfg,
	}
}

func (s *receiptService) Create(ctx context.Context, receipt *model.Receipt) error {
	receipt.Concept = sanitizer.TrimAndNormalize(receipt.Concept)
	if receipt.Folio == "" {
		receipt.Folio = uuid.New().String()
	}

	if err := s.validator.Validate(receipt); err != nil {
		s.cfg.Log.Warn("Receipt validation failed", "error", err)
		return apperrors.Validation("Receipt validation failed", map[string]any{"error": err.Error()})
	}

	reservation, err := s.reservations.FindByID(ctx, receipt.ReservationID)
	if err != nil {
		if errors.Is(err, reserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Reservation", receipt.ReservationID)
		}
		if errors.Is(err, reserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid reservation ID format")
		}
		return apperrors.Internal("Failed to load reservation for receipt", err)
	}
	if reservation.Status == model.StatusCancelled {
		return apperrors.Conflict("Cannot record a payment against a cancelled reservation")
	}

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		// The balance check and the insert must observe the same snapshot,
		// otherwise two concurrent payments could overshoot the price.
		paid, err := s.repo.SumByReservation(sessCtx, receipt.ReservationID)
		if err != nil {
			return apperrors.Internal("Failed to compute paid total", err)
		}
		if paid+receipt.Amount > reservation.Price {
			return apperrors.Conflict("Payment exceeds the outstanding balance").WithDetails(map[string]any{
				"price":   reservation.Price,
				"paid":    paid,
				"attempt": receipt.Amount,
			})
		}
		if err := s.repo.Create(sessCtx, receipt); err != nil {
			return apperrors.Internal("Failed to create receipt", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create receipt", "reservation_id", receipt.ReservationID, "error", err)
		return err
	}

	s.cfg.Log.Info("Receipt created successfully",
		"id", receipt.ID,
		"folio", receipt.Folio,
		"reservation_id", receipt.ReservationID,
		"amount", receipt.Amount,
	)
	return nil
}

func (s *receiptService) GetByID(ctx context.Context, id string) (*model.Receipt, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Receipt ID cannot be empty")
	}

	receipt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, id)
	}

	return receipt, nil
}

func (s *receiptService) GetByReservation(ctx context.Context, reservationID string) ([]*model.Receipt, *model.ReceiptSummary, error) {
	if reservationID == "" {
		return nil, nil, apperrors.InvalidInput("Reservation ID cannot be empty")
	}

	reservation, err := s.reservations.FindByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, reserrors.ErrNotFound) {
			return nil, nil, apperrors.NotFoundWithID("Reservation", reservationID)
		}
		if errors.Is(err, reserrors.ErrInvalidID) {
			return nil, nil, apperrors.InvalidInput("Invalid reservation ID format")
		}
		return nil, nil, apperrors.Internal("Failed to load reservation", err)
	}

	receipts, err := s.repo.FindByReservation(ctx, reservationID)
	if err != nil {
		return nil, nil, apperrors.Internal("Failed to retrieve receipts", err)
	}

	var paid int64
	for _, r := range receipts {
		paid += r.Amount
	}

	summary := &model.ReceiptSummary{
		Total:   reservation.Price,
		Paid:    paid,
		Balance: reservation.Price - paid,
	}

	return receipts, summary, nil
}

func (s *receiptService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Receipt ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapRepoError(err, id)
	}

	s.cfg.Log.Info("Receipt voided", "id", id)
	return nil
}

func (s *receiptService) mapRepoError(err error, id string) error {
	if errors.Is(err, rcperrors.ErrNotFound) {
		return apperrors.NotFoundWithID("Receipt", id)
	}
	if errors.Is(err, rcperrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid receipt ID format")
	}
	return apperrors.Internal("Receipt lookup failed", err)
}
