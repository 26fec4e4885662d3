package service

import (
	"context"
	"errors"
	"sync"

	clienterrors "venuebook/internal/clients/errors"
	"venuebook/internal/clients/repository"
	"venuebook/internal/clients/validator"
	"venuebook/pkg/config"
	apperrors "venuebook/pkg/errors"
	"venuebook/pkg/model"
	"venuebook/pkg/sanitizer"
)

const searchLimit = 20

type ClientService interface {
	Create(ctx context.Context, c *model.Client) error
	GetByID(ctx context.Context, id string) (*model.Client, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Client, int64, error)
	Search(ctx context.Context, query string) ([]*model.Client, error)
	Update(ctx context.Context, id string, updates *model.ClientUpdate) error
	Delete(ctx context.Context, id string) error
}

type clientService struct {
	repo      repository.ClientRepository
	validator *validator.ClientValidator
	cfg       *config.Config
}

func NewClientService(
	repo repository.ClientRepository,
	clientValidator *validator.ClientValidator,
	cfg *config.Config,
) ClientService {
	return &clientService{
		repo:      repo,
		validator: clientValidator,
		cfg:       cfg,
	}
}

func (s *clientService) Create(ctx context.Context, c *model.Client) error {
	s.sanitize(c)
	if err := s.validate(c); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, c); err != nil {
		s.cfg.Log.Error("Failed to create client", "error", err)
		return apperrors.Internal("Failed to create client", err)
	}

	s.cfg.Log.Info("Client created successfully", "id", c.ID, "name", c.Name)
	return nil
}

func (s *clientService) GetByID(ctx context.Context, id string) (*model.Client, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Client ID cannot be empty")
	}

	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, id)
	}

	return c, nil
}

func (s *clientService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Client, int64, error) {
	var count int64
	var clients []*model.Client
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count clients", "error", errCount)
			errCount = apperrors.Internal("Failed to count clients", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		clients, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list clients", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve clients", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return clients, count, nil
}

func (s *clientService) Search(ctx context.Context, query string) ([]*model.Client, error) {
	query = sanitizer.TrimAndNormalize(query)
	if query == "" {
		return nil, apperrors.InvalidInput("Search query cannot be empty")
	}

	clients, err := s.repo.Search(ctx, query, searchLimit)
	if err != nil {
		s.cfg.Log.Error("Failed to search clients", "query", query, "error", err)
		return nil, apperrors.Internal("Failed to search clients", err)
	}

	return clients, nil
}

func (s *clientService) Update(ctx context.Context, id string, updates *model.ClientUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Client ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return s.mapRepoError(err, id)
	}

	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Client update validation failed", "id", id, "error", err)
		return apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	merged := s.mergeUpdates(existing, updates)
	s.sanitize(merged)
	if err := s.validate(merged); err != nil {
		return err
	}

	if _, err := s.repo.Update(ctx, id, merged); err != nil {
		return s.mapRepoError(err, id)
	}

	s.cfg.Log.Info("Client updated successfully", "id", id)
	return nil
}

func (s *clientService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Client ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapRepoError(err, id)
	}

	s.cfg.Log.Info("Client deleted successfully", "id", id)
	return nil
}

func (s *clientService) sanitize(c *model.Client) {
	c.Name = sanitizer.NormalizeName(c.Name)
	c.Phone = sanitizer.SanitizePhone(c.Phone)
	c.Email = sanitizer.SanitizeEmail(c.Email)
	c.Address = sanitizer.TrimAndNormalize(c.Address)
	c.Notes = sanitizer.TrimAndNormalize(c.Notes)
}

func (s *clientService) mergeUpdates(existing *model.Client, updates *model.ClientUpdate) *model.Client {
	merged := *existing

	if updates.Name != "" {
		merged.Name = updates.Name
	}
	if updates.Phone != nil {
		merged.Phone = *updates.Phone
	}
	if updates.Email != nil {
		merged.Email = *updates.Email
	}
	if updates.Address != nil {
		merged.Address = *updates.Address
	}
	if updates.Notes != nil {
		merged.Notes = *updates.Notes
	}

	return &merged
}

func (s *clientService) validate(c *model.Client) error {
	if err := s.validator.Validate(c); err != nil {
		s.cfg.Log.Warn("Client validation failed", "error", err)
		return apperrors.Validation("Client validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}

func (s *clientService) mapRepoError(err error, id string) error {
	if errors.Is(err, clienterrors.ErrNotFound) {
		return apperrors.NotFoundWithID("Client", id)
	}
	if errors.Is(err, clienterrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid client ID format")
	}
	return apperrors.Internal("Client lookup failed", err)
}
