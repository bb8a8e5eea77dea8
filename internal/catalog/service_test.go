package catalog_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"prince-pos/internal/catalog"
	"prince-pos/internal/domain"
	"prince-pos/internal/mocks"
)

func backendMenu() ([]domain.Category, []domain.Dish) {
	categories := []domain.Category{
		{ID: 1, Name: "Bakery"},
		{ID: 2, Name: "Drinks"},
	}
	dishes := []domain.Dish{
		{ID: 10, Name: "Latte", Price: 4.5, CategoryID: 2},
		{ID: 11, Name: "Croissant", Price: 3, CategoryID: 1},
		{ID: 12, Name: "Mystery Pie", Price: 5, CategoryID: 99},
	}
	return categories, dishes
}

func TestDishes_NormalizationAndFallback(t *testing.T) {
	backend := mocks.NewCatalogBackend(t)
	svc := catalog.NewService(backend, nil)

	categories, dishes := backendMenu()
	backend.On("ListCategories", mock.Anything).Return(categories, nil).Once()
	backend.On("ListDishes", mock.Anything).Return(dishes, nil).Once()

	normalized, err := svc.Dishes(context.Background())
	assert.NoError(t, err)
	assert.Len(t, normalized, 3)

	// Sorted by category name then dish name; unknown category falls back.
	assert.Equal(t, "Croissant", normalized[0].Name)
	assert.Equal(t, "Bakery", normalized[0].CategoryName)
	assert.Equal(t, "Latte", normalized[1].Name)
	assert.Equal(t, "Drinks", normalized[1].CategoryName)
	assert.Equal(t, "Uncategorized", normalized[2].CategoryName)
}

func TestDishes_CacheAvoidsSecondFetch(t *testing.T) {
	redisServer := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: redisServer.Addr()})
	cache := catalog.NewRedisCache(client, time.Minute)

	backend := mocks.NewCatalogBackend(t)
	svc := catalog.NewService(backend, cache)

	categories, dishes := backendMenu()
	backend.On("ListCategories", mock.Anything).Return(categories, nil).Once()
	backend.On("ListDishes", mock.Anything).Return(dishes, nil).Once()

	first, err := svc.Dishes(context.Background())
	assert.NoError(t, err)

	second, err := svc.Dishes(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, first, second)
	backend.AssertNumberOfCalls(t, "ListDishes", 1)
}

func TestDishes_TTLExpiryRefetches(t *testing.T) {
	redisServer := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: redisServer.Addr()})
	cache := catalog.NewRedisCache(client, time.Minute)

	backend := mocks.NewCatalogBackend(t)
	svc := catalog.NewService(backend, cache)

	categories, dishes := backendMenu()
	backend.On("ListCategories", mock.Anything).Return(categories, nil).Twice()
	backend.On("ListDishes", mock.Anything).Return(dishes, nil).Twice()

	_, err := svc.Dishes(context.Background())
	assert.NoError(t, err)

	redisServer.FastForward(2 * time.Minute)

	_, err = svc.Dishes(context.Background())
	assert.NoError(t, err)
	backend.AssertNumberOfCalls(t, "ListDishes", 2)
}

func TestDishes_StaleServedOnFetchFailure(t *testing.T) {
	backend := mocks.NewCatalogBackend(t)
	svc := catalog.NewService(backend, nil)

	categories, dishes := backendMenu()
	backend.On("ListCategories", mock.Anything).Return(categories, nil).Once()
	backend.On("ListDishes", mock.Anything).Return(dishes, nil).Once()

	fresh, err := svc.Dishes(context.Background())
	assert.NoError(t, err)
	assert.Len(t, fresh, 3)

	backend.On("ListCategories", mock.Anything).Return(nil, errors.New("backend down")).Once()
	backend.On("ListDishes", mock.Anything).Return(nil, errors.New("backend down")).Once()

	stale, err := svc.Dishes(context.Background())
	assert.Error(t, err)
	assert.Equal(t, fresh, stale)
}

func TestRefresh_RepopulatesCache(t *testing.T) {
	redisServer := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: redisServer.Addr()})
	cache := catalog.NewRedisCache(client, time.Minute)

	backend := mocks.NewCatalogBackend(t)
	svc := catalog.NewService(backend, cache)

	categories, dishes := backendMenu()
	backend.On("ListCategories", mock.Anything).Return(categories, nil).Once()
	backend.On("ListDishes", mock.Anything).Return(dishes, nil).Once()

	assert.NoError(t, svc.Refresh(context.Background()))

	cached, ok := cache.GetDishes(context.Background())
	assert.True(t, ok)
	assert.Len(t, cached, 3)
}
