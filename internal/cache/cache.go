package cache

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/nguyeenvoxx/strengths-best-gateway/internal/domain"
)

//go:generate mockgen -source internal/cache/cache.go -destination=internal/cache/cache_mock_test.go -package=cache

type catalog interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

// Cache is a bounded LRU over product details, keyed by product ID.
type Cache struct {
	size int
	lru  *lru.Cache[string, domain.Product]
}

func New(size int) (*Cache, error) {
	if size < 1 {
		size = 1
	}
	c, err := lru.New[string, domain.Product](size)
	if err != nil {
		return nil, err
	}
	return &Cache{
		size: size,
		lru:  c,
	}, nil
}

// Warm primes the cache from the catalog listing. Errors are ignored;
// a cold cache just means detail lookups go to the backend first.
func (c *Cache) Warm(ctx context.Context, catalog catalog) {
	if products, err := catalog.ListProducts(ctx); err == nil {
		for i := range products {
			if c.lru.Len() >= c.size {
				break
			}
			c.Set(&products[i])
		}
	}
}

func (c *Cache) Get(id string) (*domain.Product, bool) {
	p, ok := c.lru.Get(id)
	return &p, ok
}

func (c *Cache) Set(p *domain.Product) {
	c.lru.Add(p.ID, *p)
}
