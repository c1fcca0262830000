package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/polkiloo/eshop-orders/internal/domain/errors"
	"github.com/polkiloo/eshop-orders/internal/domain/model"
	"github.com/polkiloo/eshop-orders/internal/domain/repository"
)

// Pool is the subset of pgxpool.Pool the storage uses. Tests substitute a
// pgxmock pool through the same interface.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// newPgxPool is swapped out in tests.
var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (Pool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   Pool
	logger *slog.Logger
}

type orderRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// NewWithPool wraps an existing pool without schema initialization.
func NewWithPool(pool Pool, logger *slog.Logger) *Storage {
	return &Storage{pool: pool, logger: logger}
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Orders returns the order repository bound to this storage.
func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS orders (
            id BIGSERIAL PRIMARY KEY,
            product_id BIGINT NOT NULL,
            quantity BIGINT NOT NULL,
            amount BIGINT NOT NULL,
            status TEXT NOT NULL,
            failure_reason TEXT,
            order_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_status_date ON orders(status, order_date)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- OrderRepository implementation ---

func (r *orderRepository) Create(ctx context.Context, productID, quantity, amount int64) (*model.Order, error) {
	const query = `INSERT INTO orders (product_id, quantity, amount, status) VALUES ($1, $2, $3, $4)
                   RETURNING id, order_date, updated_at`
	order := model.Order{
		ProductID: productID,
		Quantity:  quantity,
		Amount:    amount,
		Status:    model.OrderStatusCreated,
	}
	err := r.storage.pool.QueryRow(ctx, query, productID, quantity, amount, model.OrderStatusCreated).
		Scan(&order.ID, &order.OrderDate, &order.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetByID(ctx context.Context, orderID int64) (*model.Order, error) {
	const query = `SELECT id, product_id, quantity, amount, status, failure_reason, order_date, updated_at
                   FROM orders WHERE id=$1`
	var order model.Order
	err := r.storage.pool.QueryRow(ctx, query, orderID).
		Scan(&order.ID, &order.ProductID, &order.Quantity, &order.Amount, &order.Status, &order.FailureReason, &order.OrderDate, &order.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// UpdateStatus applies a terminal transition in one statement. The CREATED
// guard keeps terminal states from regressing when two writers race.
func (r *orderRepository) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus, failureReason *string) error {
	const query = `UPDATE orders SET status=$1, failure_reason=$2, updated_at=NOW()
                   WHERE id=$3 AND status=$4`
	tag, err := r.storage.pool.Exec(ctx, query, status, failureReason, orderID, model.OrderStatusCreated)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, orderID); err != nil {
			return err
		}
		return domainErrors.ErrOrderFinalized
	}
	return nil
}

func (r *orderRepository) MarkStaleFailed(ctx context.Context, olderThan time.Time, limit int) ([]int64, error) {
	const selectQuery = `SELECT id FROM orders
                         WHERE status=$1 AND order_date < $2
                         ORDER BY order_date
                         LIMIT $3
                         FOR UPDATE SKIP LOCKED`
	const updateQuery = `UPDATE orders SET status=$1, failure_reason=$2, updated_at=NOW() WHERE id=$3`

	var ids []int64
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, selectQuery, model.OrderStatusCreated, olderThan, limit)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var id int64
			if err := rows.Scan(&id); err != nil {
				return err
			}
			ids = append(ids, id)
		}
		if err := rows.Err(); err != nil {
			return err
		}

		for _, id := range ids {
			if _, err := tx.Exec(ctx, updateQuery, model.OrderStatusFailed, "abandoned: no terminal state recorded", id); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}
