package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"vitrine/internal/domain"
	"vitrine/internal/errors"
)

// MySQLStore implements the same order store contract on a MySQL table, for
// deployments that outgrow the flat file.
type MySQLStore struct {
	db *sql.DB
}

func NewMySQLStore(db *sql.DB) *MySQLStore {
	return &MySQLStore{db: db}
}

func (s *MySQLStore) Append(ctx context.Context, order *domain.Order) error {
	prepare(order)

	query := `
		INSERT INTO orders (id, product_title, price, size, image_url, customer_phone, received_at, processed, processed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		order.ID, order.ProductTitle, order.Price, order.Size, order.ImageURL,
		order.CustomerPhone, order.ReceivedAt, order.Processed, order.ProcessedAt,
	)
	if err != nil {
		return errors.NewInternalError("inserting order", err)
	}

	return nil
}

func (s *MySQLStore) List(ctx context.Context) ([]domain.Order, error) {
	query := `
		SELECT id, product_title, price, size, image_url, customer_phone, received_at, processed, processed_at
		FROM orders
		ORDER BY received_at
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying orders: %w", err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		var order domain.Order
		err := rows.Scan(
			&order.ID, &order.ProductTitle, &order.Price, &order.Size, &order.ImageURL,
			&order.CustomerPhone, &order.ReceivedAt, &order.Processed, &order.ProcessedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning order row: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order rows: %w", err)
	}

	return orders, nil
}

func (s *MySQLStore) ToggleProcessed(ctx context.Context, id string) (*domain.Order, error) {
	order, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}

	order.ToggleProcessed(time.Now().UTC())

	query := `UPDATE orders SET processed = ?, processed_at = ? WHERE id = ?`
	if _, err := s.db.ExecContext(ctx, query, order.Processed, order.ProcessedAt, id); err != nil {
		return nil, errors.NewInternalError("updating order", err)
	}

	return order, nil
}

func (s *MySQLStore) Delete(ctx context.Context, id string) (*domain.Order, error) {
	order, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM orders WHERE id = ?`, id); err != nil {
		return nil, errors.NewInternalError("deleting order", err)
	}

	return order, nil
}

func (s *MySQLStore) findByID(ctx context.Context, id string) (*domain.Order, error) {
	query := `
		SELECT id, product_title, price, size, image_url, customer_phone, received_at, processed, processed_at
		FROM orders
		WHERE id = ?
	`

	var order domain.Order
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&order.ID, &order.ProductTitle, &order.Price, &order.Size, &order.ImageURL,
		&order.CustomerPhone, &order.ReceivedAt, &order.Processed, &order.ProcessedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order with id %s not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying order by id: %w", err)
	}

	return &order, nil
}
