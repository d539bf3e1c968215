package services

import (
	"context"

	"storefront/internal/domain"
	"storefront/internal/repos"
)

const defaultPageSize = 12

// ProductFinder resolves a product id to its current catalog entry.
type ProductFinder interface {
	Get(ctx context.Context, id string) (domain.Product, error)
}

type CatalogService struct {
	Cats     *repos.CategoryRepo
	Prods    *repos.ProductRepo
	Products ProductFinder
}

// NewCatalogService serves single product lookups through finder, which
// may be a cache in front of prods.
func NewCatalogService(cats *repos.CategoryRepo, prods *repos.ProductRepo, finder ProductFinder) *CatalogService {
	if finder == nil {
		finder = prods
	}
	return &CatalogService{Cats: cats, Prods: prods, Products: finder}
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.Cats.List(ctx)
}

func (s *CatalogService) ListProductsByCategory(ctx context.Context, catID string, page, pageSize int) ([]domain.Product, error) {
	limit, offset := paging(page, pageSize)
	return s.Prods.ListByCategory(ctx, catID, limit, offset)
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	if err := requireProductID(id); err != nil {
		return domain.Product{}, err
	}
	return s.Products.Get(ctx, id)
}

func (s *CatalogService) Search(ctx context.Context, q, category string, page, pageSize int) ([]domain.Product, error) {
	limit, offset := paging(page, pageSize)
	return s.Prods.Search(ctx, q, category, limit, offset)
}

func paging(page, pageSize int) (limit, offset int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return pageSize, (page - 1) * pageSize
}
