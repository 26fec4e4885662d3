package service

import (
	"context"
	"io"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"venuebook/internal/receipts/validator"
	reserrors "venuebook/internal/reservations/errors"
	"venuebook/pkg/config"
	mongotx "venuebook/pkg/db/mongo"
	apperrors "venuebook/pkg/errors"
	"venuebook/pkg/logger"
	"venuebook/pkg/model"
)

const (
	testReservationID = "68b000000000000000000001"
	testReceiptID     = "68b000000000000000000002"
)

type mockReceiptRepo struct {
	receipts []*model.Receipt
	failSum  error
}

func (m *mockReceiptRepo) Create(_ context.Context, receipt *model.Receipt) error {
	receipt.ID = testReceiptID
	m.receipts = append(m.receipts, receipt)
	return nil
}

func (m *mockReceiptRepo) FindByID(_ context.Context, id string) (*model.Receipt, error) {
	for _, r := range m.receipts {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}

func (m *mockReceiptRepo) FindByReservation(_ context.Context, reservationID string) ([]*model.Receipt, error) {
	var out []*model.Receipt
	for _, r := range m.receipts {
		if r.ReservationID == reservationID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockReceiptRepo) SumByReservation(_ context.Context, reservationID string) (int64, error) {
	if m.failSum != nil {
		return 0, m.failSum
	}
	var sum int64
	for _, r := range m.receipts {
		if r.ReservationID == reservationID {
			sum += r.Amount
		}
	}
	return sum, nil
}

func (m *mockReceiptRepo) Delete(context.Context, string) error {
	return nil
}

func (m *mockReceiptRepo) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(mongo.NewSessionContext(ctx, nil))
}

type mockReservationReader struct {
	reservation *model.Reservation
	err         error
}

func (m *mockReservationReader) FindByID(context.Context, string) (*model.Reservation, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.reservation, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{Level: logger.ERROR, Output: io.Discard}),
	}
}

func newTestService(repo *mockReceiptRepo, reservations *mockReservationReader) ReceiptService {
	cfg := testConfig()
	return NewReceiptService(repo, reservations, validator.NewReceiptValidator(cfg.Log), cfg)
}

func confirmedReservation(price int64) *model.Reservation {
	return &model.Reservation{
		ID:     testReservationID,
		Day:    "2024-05-01",
		Date:   time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC),
		Price:  price,
		Status: model.StatusConfirmed,
	}
}

func testReceipt(amount int64) *model.Receipt {
	return &model.Receipt{
		ReservationID: testReservationID,
		Amount:        amount,
		Method:        model.PaymentCash,
		Concept:       "advance payment",
	}
}

func TestCreateReceipt(t *testing.T) {
	repo := &mockReceiptRepo{}
	svc := newTestService(repo, &mockReservationReader{reservation: confirmedReservation(500000)})

	receipt := testReceipt(200000)
	if err := svc.Create(context.Background(), receipt); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if receipt.Folio == "" {
		t.Error("folio must be assigned when absent")
	}
	if len(repo.receipts) != 1 {
		t.Fatalf("stored %d receipts, want 1", len(repo.receipts))
	}
}

func TestCreateReceiptKeepsProvidedFolio(t *testing.T) {
	repo := &mockReceiptRepo{}
	svc := newTestService(repo, &mockReservationReader{reservation: confirmedReservation(500000)})

	receipt := testReceipt(100000)
	receipt.Folio = "7b6bdc5e-84d2-4c5a-9f09-2a40a630c3f4"
	if err := svc.Create(context.Background(), receipt); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if receipt.Folio != "7b6bdc5e-84d2-4c5a-9f09-2a40a630c3f4" {
		t.Errorf("folio rewritten to %q", receipt.Folio)
	}
}

func TestCreateReceiptEnforcesBalance(t *testing.T) {
	repo := &mockReceiptRepo{}
	svc := newTestService(repo, &mockReservationReader{reservation: confirmedReservation(500000)})

	if err := svc.Create(context.Background(), testReceipt(300000)); err != nil {
		t.Fatalf("first payment: %v", err)
	}
	if err := svc.Create(context.Background(), testReceipt(200000)); err != nil {
		t.Fatalf("payment up to the exact price must pass: %v", err)
	}

	err := svc.Create(context.Background(), testReceipt(1))
	if err == nil {
		t.Fatal("expected overpayment to be rejected")
	}
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeConflict {
		t.Errorf("expected %s, got %v", apperrors.CodeConflict, err)
	}
	if len(repo.receipts) != 2 {
		t.Errorf("stored %d receipts, want 2", len(repo.receipts))
	}
}

func TestCreateReceiptRejectsCancelledReservation(t *testing.T) {
	cancelled := confirmedReservation(500000)
	cancelled.Status = model.StatusCancelled
	svc := newTestService(&mockReceiptRepo{}, &mockReservationReader{reservation: cancelled})

	err := svc.Create(context.Background(), testReceipt(100000))
	if err == nil {
		t.Fatal("expected conflict for cancelled reservation")
	}
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeConflict {
		t.Errorf("expected %s, got %v", apperrors.CodeConflict, err)
	}
}

func TestCreateReceiptUnknownReservation(t *testing.T) {
	svc := newTestService(&mockReceiptRepo{}, &mockReservationReader{err: reserrors.ErrNotFound})

	err := svc.Create(context.Background(), testReceipt(100000))
	if err == nil {
		t.Fatal("expected not found error")
	}
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeNotFound {
		t.Errorf("expected %s, got %v", apperrors.CodeNotFound, err)
	}
}

func TestCreateReceiptValidation(t *testing.T) {
	svc := newTestService(&mockReceiptRepo{}, &mockReservationReader{reservation: confirmedReservation(500000)})

	receipt := testReceipt(100000)
	receipt.Method = "barter"

	err := svc.Create(context.Background(), receipt)
	if err == nil {
		t.Fatal("expected validation error")
	}
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeValidation {
		t.Errorf("expected %s, got %v", apperrors.CodeValidation, err)
	}
}

func TestGetByReservationSummary(t *testing.T) {
	repo := &mockReceiptRepo{}
	svc := newTestService(repo, &mockReservationReader{reservation: confirmedReservation(500000)})

	if err := svc.Create(context.Background(), testReceipt(150000)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Create(context.Background(), testReceipt(100000)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	receipts, summary, err := svc.GetByReservation(context.Background(), testReservationID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(receipts) != 2 {
		t.Errorf("got %d receipts, want 2", len(receipts))
	}
	if summary.Total != 500000 || summary.Paid != 250000 || summary.Balance != 250000 {
		t.Errorf("summary = %+v, want total 500000 paid 250000 balance 250000", summary)
	}
}
