package service

import (
	"context"
	"io"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"

	"venuebook/internal/clients/validator"
	"venuebook/pkg/config"
	apperrors "venuebook/pkg/errors"
	"venuebook/pkg/logger"
	"venuebook/pkg/model"
)

type mockClientRepo struct {
	create   func(ctx context.Context, c *model.Client) error
	findByID func(ctx context.Context, id string) (*model.Client, error)
	search   func(ctx context.Context, query string, limit int) ([]*model.Client, error)
}

func (m *mockClientRepo) Create(ctx context.Context, c *model.Client) error {
	if m.create != nil {
		return m.create(ctx, c)
	}
	c.ID = "68b000000000000000000001"
	return nil
}

func (m *mockClientRepo) FindByID(ctx context.Context, id string) (*model.Client, error) {
	if m.findByID != nil {
		return m.findByID(ctx, id)
	}
	return nil, nil
}

func (m *mockClientRepo) FindAll(context.Context, int, int64) ([]*model.Client, error) {
	return nil, nil
}

func (m *mockClientRepo) Search(ctx context.Context, query string, limit int) ([]*model.Client, error) {
	if m.search != nil {
		return m.search(ctx, query, limit)
	}
	return nil, nil
}

func (m *mockClientRepo) Update(context.Context, string, *model.Client) (*mongo.UpdateResult, error) {
	return &mongo.UpdateResult{MatchedCount: 1}, nil
}

func (m *mockClientRepo) Delete(context.Context, string) error {
	return nil
}

func (m *mockClientRepo) Count(context.Context) (int64, error) {
	return 0, nil
}

func newTestService(repo *mockClientRepo) ClientService {
	cfg := &config.Config{
		Log: logger.New(logger.Config{Level: logger.ERROR, Output: io.Discard}),
	}
	return NewClientService(repo, validator.NewClientValidator(cfg.Log), cfg)
}

func TestCreateClientSanitizes(t *testing.T) {
	var stored *model.Client
	repo := &mockClientRepo{
		create: func(_ context.Context, c *model.Client) error {
			stored = c
			return nil
		},
	}
	svc := newTestService(repo)

	err := svc.Create(context.Background(), &model.Client{
		Name:  "  Maria   Lopez ",
		Email: " Maria@Example.COM",
		Phone: "+52 55 1234 5678",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stored.Name != "Maria Lopez" {
		t.Errorf("name = %q", stored.Name)
	}
	if stored.Email != "maria@example.com" {
		t.Errorf("email = %q", stored.Email)
	}
	if stored.Phone != "+525512345678" {
		t.Errorf("phone = %q", stored.Phone)
	}
}

func TestCreateClientValidation(t *testing.T) {
	svc := newTestService(&mockClientRepo{})

	err := svc.Create(context.Background(), &model.Client{Name: "X"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeValidation {
		t.Errorf("expected %s, got %v", apperrors.CodeValidation, err)
	}
}

func TestSearchNormalizesQuery(t *testing.T) {
	var seenQuery string
	var seenLimit int
	repo := &mockClientRepo{
		search: func(_ context.Context, query string, limit int) ([]*model.Client, error) {
			seenQuery = query
			seenLimit = limit
			return []*model.Client{{Name: "Maria Lopez"}}, nil
		},
	}
	svc := newTestService(repo)

	results, err := svc.Search(context.Background(), "  maria   lo ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seenQuery != "maria lo" {
		t.Errorf("query = %q, want %q", seenQuery, "maria lo")
	}
	if seenLimit != searchLimit {
		t.Errorf("limit = %d, want %d", seenLimit, searchLimit)
	}
	if len(results) != 1 {
		t.Errorf("got %d results", len(results))
	}
}

func TestSearchRejectsEmptyQuery(t *testing.T) {
	svc := newTestService(&mockClientRepo{})

	if _, err := svc.Search(context.Background(), "   "); err == nil {
		t.Error("expected error for empty query")
	}
}
