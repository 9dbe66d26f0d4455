package product

import (
	"context"
	"errors"
	"strings"

	"storefront/internal/logger"
	"storefront/internal/metrics"
	"storefront/internal/validation"

	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context, opts ListOptions) ([]*Product, error)
	GetByID(ctx context.Context, id int64) (*Product, error)
	Create(ctx context.Context, input ProductInput) (*Product, error)
	Replace(ctx context.Context, id int64, input ProductInput) (*Product, error)
	Patch(ctx context.Context, id int64, patch ProductPatch) (*Product, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, opts ListOptions) ([]*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ListProducts"),
	)
	timer := metrics.StartTimer()

	if opts.MinPrice != nil && opts.MinPrice.IsNegative() {
		return nil, validation.Wrap(ErrInvalidPrice, "minPrice", ErrInvalidPrice.Error())
	}
	if opts.MaxPrice != nil && opts.MaxPrice.IsNegative() {
		return nil, validation.Wrap(ErrInvalidPrice, "maxPrice", ErrInvalidPrice.Error())
	}

	products, err := s.repo.List(ctx, opts)
	if err != nil {
		log.Error("failed to fetch product list", zap.Error(err))
		return nil, err
	}

	log.Debug("get product list success",
		zap.Int("count", len(products)),
		zap.Duration("duration", timer.Duration()),
	)
	return products, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Create(ctx context.Context, input ProductInput) (*Product, error) {
	input = normalizeInput(input)
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	p := &Product{
		Name:        input.Name,
		Category:    input.Category,
		Price:       input.Price,
		Description: input.Description,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		logger.FromCtx(ctx).Error("failed to create product", zap.String("name", p.Name), zap.Error(err))
		return nil, err
	}

	logger.FromCtx(ctx).Info("product created", zap.Int64("product_id", p.ID))
	return p, nil
}

func (s *service) Replace(ctx context.Context, id int64, input ProductInput) (*Product, error) {
	input = normalizeInput(input)
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	p := &Product{
		ID:          id,
		Name:        input.Name,
		Category:    input.Category,
		Price:       input.Price,
		Description: input.Description,
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Patch(ctx context.Context, id int64, patch ProductPatch) (*Product, error) {
	if !patch.HasUpdates() {
		return nil, validation.Wrap(ErrNoUpdates, "body", ErrNoUpdates.Error())
	}
	patch.Name = trimPtr(patch.Name)
	patch.Category = trimPtr(patch.Category)
	if err := validation.Struct(patch); err != nil {
		return nil, err
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Description != nil {
		p.Description = patch.Description
	}

	if err := s.repo.Update(ctx, p); err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return nil, err
		}
		logger.FromCtx(ctx).Error("failed to patch product", zap.Int64("product_id", id), zap.Error(err))
		return nil, err
	}
	return p, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func normalizeInput(in ProductInput) ProductInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)
	return in
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
