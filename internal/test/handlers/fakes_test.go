package handlers_test

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"digital-store-backend/internal/database"
	"digital-store-backend/internal/models"
)

// fakeStore is an in-memory stand-in for database.Store covering the slices
// the handlers and the fulfillment service consume.
type fakeStore struct {
	products map[uuid.UUID]*models.Product
	users    map[string]*models.User
	orders   map[uuid.UUID]*models.Order
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products: make(map[uuid.UUID]*models.Product),
		users:    make(map[string]*models.User),
		orders:   make(map[uuid.UUID]*models.Order),
	}
}

func (s *fakeStore) CreateProduct(product *models.Product) error {
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt
	clone := *product
	s.products[product.ID] = &clone
	return nil
}

func (s *fakeStore) GetProduct(id uuid.UUID) (*models.Product, error) {
	product, ok := s.products[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	clone := *product
	return &clone, nil
}

func (s *fakeStore) ListProducts(onlyAvailable bool) ([]models.Product, error) {
	var products []models.Product
	for _, product := range s.products {
		if onlyAvailable && !product.IsAvailableForPurchase {
			continue
		}
		products = append(products, *product)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].Name < products[j].Name })
	return products, nil
}

func (s *fakeStore) ListNewestProducts(limit int) ([]models.Product, error) {
	products, _ := s.ListProducts(true)
	sort.Slice(products, func(i, j int) bool { return products[i].CreatedAt.After(products[j].CreatedAt) })
	if len(products) > limit {
		products = products[:limit]
	}
	return products, nil
}

func (s *fakeStore) UpdateProduct(product *models.Product) error {
	if _, ok := s.products[product.ID]; !ok {
		return database.ErrNotFound
	}
	product.UpdatedAt = time.Now()
	clone := *product
	s.products[product.ID] = &clone
	return nil
}

func (s *fakeStore) SetProductAvailability(id uuid.UUID, available bool) error {
	product, ok := s.products[id]
	if !ok {
		return database.ErrNotFound
	}
	product.IsAvailableForPurchase = available
	return nil
}

func (s *fakeStore) DeleteProduct(id uuid.UUID) (*models.Product, error) {
	product, ok := s.products[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	delete(s.products, id)
	return product, nil
}

func (s *fakeStore) GetUserByEmail(email string) (*models.User, error) {
	user, ok := s.users[email]
	if !ok {
		return nil, database.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (s *fakeStore) UpsertUserByEmail(email string) (*models.User, error) {
	if user, ok := s.users[email]; ok {
		clone := *user
		return &clone, nil
	}
	user := &models.User{
		ID:        uuid.New(),
		Email:     email,
		Role:      models.RoleCustomer,
		CreatedAt: time.Now(),
	}
	s.users[email] = user
	clone := *user
	return &clone, nil
}

func (s *fakeStore) CreateOrder(order *models.Order) (bool, error) {
	for _, existing := range s.orders {
		if existing.PaymentIntentID == order.PaymentIntentID {
			return false, nil
		}
	}
	order.CreatedAt = time.Now()
	clone := *order
	s.orders[order.ID] = &clone
	return true, nil
}

func (s *fakeStore) GetOrder(id uuid.UUID) (*models.Order, error) {
	order, ok := s.orders[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	clone := *order
	return &clone, nil
}
