package handlers

import (
	"storefront/internal/cache"
	"storefront/internal/config"
	"storefront/internal/events"
	"storefront/internal/repos"
	"storefront/internal/services"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

type Deps struct {
	AuthSvc *services.AuthService

	AuthHandler     *AuthHandler
	CategoryHandler *CategoryHandler
	ProductHandler  *ProductHandler
	SearchHandler   *SearchHandler
	CartHandler     *CartHandler
	WishlistHandler *WishlistHandler
}

// NewDeps wires repos, services and handlers. rdb and pub may be nil:
// without Redis products are read straight from the database, and
// without a publisher no events are emitted.
func NewDeps(db *sqlx.DB, cfg config.Config, rdb *redis.Client, pub events.Publisher) *Deps {
	catRepo := repos.NewCategoryRepo(db)
	prodRepo := repos.NewProductRepo(db)
	cartRepo := repos.NewCartRepo(db)
	wishRepo := repos.NewWishlistRepo(db)

	var finder services.ProductFinder = prodRepo
	if rdb != nil {
		finder = cache.NewProductCache(rdb, prodRepo, cfg.CatalogCacheTTL)
	}

	authSvc := &services.AuthService{Users: repos.NewUserRepo(db)}
	catalogSvc := services.NewCatalogService(catRepo, prodRepo, finder)
	cartSvc := services.NewCartService(cartRepo, finder, pub)
	wishSvc := services.NewWishlistService(wishRepo, cartRepo, finder, pub)

	return &Deps{
		AuthSvc:         authSvc,
		AuthHandler:     &AuthHandler{Auth: authSvc, CookieSecure: cfg.CookieSecure},
		CategoryHandler: &CategoryHandler{Catalog: catalogSvc},
		ProductHandler:  &ProductHandler{Catalog: catalogSvc},
		SearchHandler:   &SearchHandler{Catalog: catalogSvc},
		CartHandler:     &CartHandler{Cart: cartSvc},
		WishlistHandler: &WishlistHandler{Wish: wishSvc},
	}
}
