package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"prince-pos/internal/catalog"
	"prince-pos/internal/domain"
)

// CatalogBackend is a mock of catalog.Backend.
type CatalogBackend struct {
	mock.Mock
}

func NewCatalogBackend(t constructorTestingT) *CatalogBackend {
	m := &CatalogBackend{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *CatalogBackend) ListDishes(ctx context.Context) ([]domain.Dish, error) {
	args := m.Called(ctx)
	var dishes []domain.Dish
	if args.Get(0) != nil {
		dishes = args.Get(0).([]domain.Dish)
	}
	return dishes, args.Error(1)
}

func (m *CatalogBackend) ListCategories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	var categories []domain.Category
	if args.Get(0) != nil {
		categories = args.Get(0).([]domain.Category)
	}
	return categories, args.Error(1)
}

var _ catalog.Backend = (*CatalogBackend)(nil)

// CatalogServiceInterface is a mock of catalog.ServiceInterface.
type CatalogServiceInterface struct {
	mock.Mock
}

func NewCatalogServiceInterface(t constructorTestingT) *CatalogServiceInterface {
	m := &CatalogServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *CatalogServiceInterface) Dishes(ctx context.Context) ([]domain.Dish, error) {
	args := m.Called(ctx)
	var dishes []domain.Dish
	if args.Get(0) != nil {
		dishes = args.Get(0).([]domain.Dish)
	}
	return dishes, args.Error(1)
}

func (m *CatalogServiceInterface) Categories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	var categories []domain.Category
	if args.Get(0) != nil {
		categories = args.Get(0).([]domain.Category)
	}
	return categories, args.Error(1)
}

func (m *CatalogServiceInterface) Refresh(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

var _ catalog.ServiceInterface = (*CatalogServiceInterface)(nil)
