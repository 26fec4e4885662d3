package service

import (
	"context"
	"errors"
	"sync"

	inverrors "venuebook/internal/inventory/errors"
	"venuebook/internal/inventory/repository"
	"venuebook/internal/inventory/validator"
	"venuebook/pkg/config"
	apperrors "venuebook/pkg/errors"
	"venuebook/pkg/model"
	"venuebook/pkg/sanitizer"
)

type ProductService interface {
	Create(ctx context.Context, p *model.Product) error
	GetByID(ctx context.Context, id string) (*model.Product, error)
	GetAll(ctx context.Context, kind string, limit int, offset int64) ([]*model.Product, int64, error)
	Update(ctx context.Context, id string, updates *model.ProductUpdate) error
	Delete(ctx context.Context, id string) error
}

type productService struct {
	repo      repository.ProductRepository
	validator *validator.ProductValidator
	cfg       *config.Config
}

func NewProductService(
	repo repository.ProductRepository,
	productValidator *validator.ProductValidator,
	cfg *config.Config,
) ProductService {
	return &productService{
		repo:      repo,
		validator: productValidator,
		cfg:       cfg,
	}
}

func (s *productService) Create(ctx context.Context, p *model.Product) error {
	s.sanitize(p)
	if err := s.validate(p); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, p); err != nil {
		s.cfg.Log.Error("Failed to create product", "error", err)
		return apperrors.Internal("Failed to create product", err)
	}

	s.cfg.Log.Info("Product created successfully", "id", p.ID, "name", p.Name, "kind", p.Kind)
	return nil
}

func (s *productService) GetByID(ctx context.Context, id string) (*model.Product, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Product ID cannot be empty")
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, id)
	}

	return p, nil
}

func (s *productService) GetAll(ctx context.Context, kind string, limit int, offset int64) ([]*model.Product, int64, error) {
	if kind != "" && kind != model.KindProduct && kind != model.KindAccessory {
		return nil, 0, apperrors.InvalidInput("kind must be 'product' or 'accessory'")
	}

	var count int64
	var products []*model.Product
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx, kind)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count products", "error", errCount)
			errCount = apperrors.Internal("Failed to count products", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		products, errFind = s.repo.FindAll(ctx, kind, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list products", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve products", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return products, count, nil
}

func (s *productService) Update(ctx context.Context, id string, updates *model.ProductUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Product ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return s.mapRepoError(err, id)
	}

	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Product update validation failed", "id", id, "error", err)
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

	s.cfg.Log.Info("Product updated successfully", "id", id)
	return nil
}

func (s *productService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Product ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapRepoError(err, id)
	}

	s.cfg.Log.Info("Product deleted successfully", "id", id)
	return nil
}

func (s *productService) sanitize(p *model.Product) {
	p.Name = sanitizer.NormalizeName(p.Name)
	p.Kind = sanitizer.NormalizeLabel(p.Kind)
	p.Description = sanitizer.TrimAndNormalize(p.Description)
}

func (s *productService) mergeUpdates(existing *model.Product, updates *model.ProductUpdate) *model.Product {
	merged := *existing

	if updates.Name != "" {
		merged.Name = updates.Name
	}
	if updates.Kind != "" {
		merged.Kind = updates.Kind
	}
	if updates.Price != nil {
		merged.Price = *updates.Price
	}
	if updates.Stock != nil {
		merged.Stock = *updates.Stock
	}
	if updates.Description != nil {
		merged.Description = *updates.Description
	}

	return &merged
}

func (s *productService) validate(p *model.Product) error {
	if err := s.validator.Validate(p); err != nil {
		s.cfg.Log.Warn("Product validation failed", "error", err)
		return apperrors.Validation("Product validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}

func (s *productService) mapRepoError(err error, id string) error {
	if errors.Is(err, inverrors.ErrNotFound) {
		return apperrors.NotFoundWithID("Product", id)
	}
	if errors.Is(err, inverrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid product ID format")
	}
	return apperrors.Internal("Product lookup failed", err)
}
