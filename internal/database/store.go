package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"digital-store-backend/internal/models"
)

// ErrNotFound is returned when a query matches no row.
var ErrNotFound = errors.New("not found")

type Store struct {
	db *sql.DB
}

func NewStore(connectionString string) (*Store, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) CreateProduct(product *models.Product) error {
	err := s.db.QueryRow(`
		INSERT INTO products (id, name, description, price_in_cents, file_path, image_path, is_available_for_purchase)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`, product.ID, product.Name, product.Description, product.PriceInCents,
		product.FilePath, product.ImagePath, product.IsAvailableForPurchase,
	).Scan(&product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (s *Store) GetProduct(id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := s.db.QueryRow(`
		SELECT id, name, description, price_in_cents, file_path, image_path, is_available_for_purchase, created_at, updated_at
		FROM products
		WHERE id = $1
	`, id).Scan(
		&product.ID, &product.Name, &product.Description, &product.PriceInCents,
		&product.FilePath, &product.ImagePath, &product.IsAvailableForPurchase,
		&product.CreatedAt, &product.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &product, nil
}

func (s *Store) ListProducts(onlyAvailable bool) ([]models.Product, error) {
	query := `
		SELECT id, name, description, price_in_cents, file_path, image_path, is_available_for_purchase, created_at, updated_at
		FROM products
	`
	if onlyAvailable {
		query += ` WHERE is_available_for_purchase = TRUE`
	}
	query += ` ORDER BY name ASC`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

// ListNewestProducts returns the most recently created available products.
func (s *Store) ListNewestProducts(limit int) ([]models.Product, error) {
	rows, err := s.db.Query(`
		SELECT id, name, description, price_in_cents, file_path, image_path, is_available_for_purchase, created_at, updated_at
		FROM products
		WHERE is_available_for_purchase = TRUE
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list newest products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

func (s *Store) UpdateProduct(product *models.Product) error {
	err := s.db.QueryRow(`
		UPDATE products
		SET name = $1, description = $2, price_in_cents = $3, file_path = $4, image_path = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING updated_at
	`, product.Name, product.Description, product.PriceInCents,
		product.FilePath, product.ImagePath, product.ID,
	).Scan(&product.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	return nil
}

func (s *Store) SetProductAvailability(id uuid.UUID, available bool) error {
	res, err := s.db.Exec(`
		UPDATE products
		SET is_available_for_purchase = $1, updated_at = NOW()
		WHERE id = $2
	`, available, id)
	if err != nil {
		return fmt.Errorf("failed to set product availability: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteProduct removes the row and returns it so the caller can delete the
// blobs it referenced.
func (s *Store) DeleteProduct(id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := s.db.QueryRow(`
		DELETE FROM products
		WHERE id = $1
		RETURNING id, name, description, price_in_cents, file_path, image_path, is_available_for_purchase, created_at, updated_at
	`, id).Scan(
		&product.ID, &product.Name, &product.Description, &product.PriceInCents,
		&product.FilePath, &product.ImagePath, &product.IsAvailableForPurchase,
		&product.CreatedAt, &product.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete product: %w", err)
	}
	return &product, nil
}

func (s *Store) CreateUser(user *models.User) error {
	err := s.db.QueryRow(`
		INSERT INTO users (id, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`, user.ID, user.Email, user.PasswordHash, user.Role).Scan(&user.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (s *Store) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.db.QueryRow(`
		SELECT id, email, password_hash, role, created_at
		FROM users
		WHERE email = $1
	`, email).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Role, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// UpsertUserByEmail returns the user with the given email, creating a customer
// row when none exists.
func (s *Store) UpsertUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.db.QueryRow(`
		INSERT INTO users (id, email, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email
		RETURNING id, email, password_hash, role, created_at
	`, uuid.New(), email, models.RoleCustomer,
	).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Role, &user.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}
	return &user, nil
}

// CreateOrder inserts a paid order. Orders are keyed by the gateway's payment
// intent id; a redelivered webhook event inserts nothing and reports it via
// the bool return.
func (s *Store) CreateOrder(order *models.Order) (bool, error) {
	res, err := s.db.Exec(`
		INSERT INTO orders (id, user_id, product_id, price_paid_in_cents, payment_intent_id, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (payment_intent_id) DO NOTHING
	`, order.ID, order.UserID, order.ProductID, order.PricePaidInCents,
		order.PaymentIntentID, order.Status)
	if err != nil {
		return false, fmt.Errorf("failed to create order: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to create order: %w", err)
	}
	return n > 0, nil
}

func (s *Store) GetOrder(id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := s.db.QueryRow(`
		SELECT id, user_id, product_id, price_paid_in_cents, payment_intent_id, status, created_at
		FROM orders
		WHERE id = $1
	`, id).Scan(
		&order.ID, &order.UserID, &order.ProductID, &order.PricePaidInCents,
		&order.PaymentIntentID, &order.Status, &order.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &order, nil
}

func scanProducts(rows *sql.Rows) ([]models.Product, error) {
	var products []models.Product
	for rows.Next() {
		var product models.Product
		err := rows.Scan(
			&product.ID, &product.Name, &product.Description, &product.PriceInCents,
			&product.FilePath, &product.ImagePath, &product.IsAvailableForPurchase,
			&product.CreatedAt, &product.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}
	return products, rows.Err()
}
