package catalog

import (
	"context"
	"log"
	"sort"
	"sync"

	"prince-pos/internal/domain"
)

const uncategorized = "Uncategorized"

// Backend covers the catalog read endpoints of the remote API.
type Backend interface {
	ListDishes(ctx context.Context) ([]domain.Dish, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

// Cache holds catalog snapshots between backend fetches.
type Cache interface {
	GetDishes(ctx context.Context) ([]domain.Dish, bool)
	SetDishes(ctx context.Context, dishes []domain.Dish) error
	GetCategories(ctx context.Context) ([]domain.Category, bool)
	SetCategories(ctx context.Context, categories []domain.Category) error
}

type ServiceInterface interface {
	Dishes(ctx context.Context) ([]domain.Dish, error)
	Categories(ctx context.Context) ([]domain.Category, error)
	Refresh(ctx context.Context) error
}

// Service fetches and normalizes the menu. A fetch failure never blanks the
// catalog: the previous snapshot keeps serving until a fetch succeeds.
type Service struct {
	backend Backend
	cache   Cache

	mu             sync.Mutex
	lastDishes     []domain.Dish
	lastCategories []domain.Category
}

func NewService(backend Backend, cache Cache) *Service {
	return &Service{backend: backend, cache: cache}
}

var _ ServiceInterface = (*Service)(nil)

func (s *Service) Categories(ctx context.Context) ([]domain.Category, error) {
	if s.cache != nil {
		if cached, ok := s.cache.GetCategories(ctx); ok {
			return cached, nil
		}
	}

	categories, err := s.backend.ListCategories(ctx)
	if err != nil {
		return s.staleCategories(), err
	}

	s.mu.Lock()
	s.lastCategories = categories
	s.mu.Unlock()

	if s.cache != nil {
		if err := s.cache.SetCategories(ctx, categories); err != nil {
			log.Printf("Warning: failed to cache categories: %v", err)
		}
	}
	return categories, nil
}

func (s *Service) Dishes(ctx context.Context) ([]domain.Dish, error) {
	if s.cache != nil {
		if cached, ok := s.cache.GetDishes(ctx); ok {
			return cached, nil
		}
	}

	dishes, err := s.fetchDishes(ctx)
	if err != nil {
		return s.staleDishes(), err
	}

	s.mu.Lock()
	s.lastDishes = dishes
	s.mu.Unlock()

	if s.cache != nil {
		if err := s.cache.SetDishes(ctx, dishes); err != nil {
			log.Printf("Warning: failed to cache dishes: %v", err)
		}
	}
	return dishes, nil
}

// Refresh forces a backend round trip, repopulating the cache.
func (s *Service) Refresh(ctx context.Context) error {
	categories, err := s.backend.ListCategories(ctx)
	if err != nil {
		return err
	}
	dishes, err := s.fetchDishesWith(ctx, categories)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.lastCategories = categories
	s.lastDishes = dishes
	s.mu.Unlock()

	if s.cache != nil {
		if err := s.cache.SetCategories(ctx, categories); err != nil {
			return err
		}
		if err := s.cache.SetDishes(ctx, dishes); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) fetchDishes(ctx context.Context) ([]domain.Dish, error) {
	categories, err := s.Categories(ctx)
	if err != nil && categories == nil {
		return nil, err
	}
	return s.fetchDishesWith(ctx, categories)
}

// fetchDishesWith resolves each dish's category name, falling back to
// "Uncategorized" for unknown ids, and sorts the result for display.
func (s *Service) fetchDishesWith(ctx context.Context, categories []domain.Category) ([]domain.Dish, error) {
	dishes, err := s.backend.ListDishes(ctx)
	if err != nil {
		return nil, err
	}

	names := make(map[int]string, len(categories))
	for _, category := range categories {
		names[category.ID] = category.Name
	}

	for idx := range dishes {
		name, ok := names[dishes[idx].CategoryID]
		if !ok || name == "" {
			name = uncategorized
		}
		dishes[idx].CategoryName = name
	}

	sort.SliceStable(dishes, func(i, j int) bool {
		if dishes[i].CategoryName != dishes[j].CategoryName {
			return dishes[i].CategoryName < dishes[j].CategoryName
		}
		return dishes[i].Name < dishes[j].Name
	})
	return dishes, nil
}

func (s *Service) staleDishes() []domain.Dish {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastDishes
}

func (s *Service) staleCategories() []domain.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastCategories
}
