package app

import (
	"context"

	"github.com/google/uuid"
	"github.com/mahede182/appifyEcommerce/internal/domain"
	"github.com/shopspring/decimal"
)

type CatalogRepository interface {
	CreateProduct(ctx context.Context, p domain.Product) error
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, productID string) (domain.Product, error)
}

// CatalogService manages the product catalog. Reads are public; writes
// require the privileged capability.
type CatalogService struct {
	repo CatalogRepository
}

func NewCatalogService(repo CatalogRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

type CreateProductInput struct {
	Actor         domain.Actor
	Name          string
	Description   string
	Price         decimal.Decimal
	StockQuantity int
}

func (s *CatalogService) CreateProduct(ctx context.Context, in CreateProductInput) (domain.Product, error) {
	if !in.Actor.Privileged() {
		return domain.Product{}, domain.ErrForbidden
	}
	if in.Name == "" {
		return domain.Product{}, domain.ErrProductNameRequired
	}
	if in.Price.IsNegative() {
		return domain.Product{}, domain.ErrInvalidPrice
	}
	if in.StockQuantity < 0 {
		return domain.Product{}, domain.ErrInvalidStock
	}

	product := domain.Product{
		ID:            uuid.NewString(),
		Name:          in.Name,
		Description:   in.Description,
		Price:         in.Price,
		StockQuantity: in.StockQuantity,
	}
	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return domain.Product{}, err
	}
	return product, nil
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.repo.ListProducts(ctx)
}

func (s *CatalogService) GetProduct(ctx context.Context, productID string) (domain.Product, error) {
	return s.repo.GetProduct(ctx, productID)
}
