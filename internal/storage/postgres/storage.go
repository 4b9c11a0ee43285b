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
	"github.com/shopspring/decimal"

	domainErrors "github.com/minjae-ko/tableorder/internal/domain/errors"
	"github.com/minjae-ko/tableorder/internal/domain/model"
	"github.com/minjae-ko/tableorder/internal/domain/repository"
)

const uniqueViolationCode = "23505"

// Pool is the subset of pgxpool.Pool the storage relies on.
type Pool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   Pool
	logger *slog.Logger
}

type catalogRepository struct {
	storage *Storage
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

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
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

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Catalog() repository.CatalogRepository {
	return &catalogRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS menu_items (
            id BIGSERIAL PRIMARY KEY,
            store_id BIGINT NOT NULL,
            name TEXT NOT NULL,
            price NUMERIC(12,2) NOT NULL,
            is_available BOOLEAN NOT NULL DEFAULT TRUE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id BIGSERIAL PRIMARY KEY,
            store_id BIGINT NOT NULL,
            table_number INT NOT NULL,
            total_amount NUMERIC(12,2) NOT NULL,
            status TEXT NOT NULL,
            order_code TEXT UNIQUE,
            payment_key TEXT,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS order_items (
            id BIGSERIAL PRIMARY KEY,
            order_id BIGINT NOT NULL REFERENCES orders(id),
            menu_item_id BIGINT NOT NULL,
            quantity INT NOT NULL,
            price_at_time NUMERIC(12,2) NOT NULL
        )`,
		// At most one actively accumulated order per table; racing creators
		// hit a unique violation instead of fragmenting the table's tab.
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_orders_pending_table ON orders(store_id, table_number) WHERE status='pending'`,
		`CREATE INDEX IF NOT EXISTS idx_orders_table ON orders(store_id, table_number, id DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- CatalogRepository implementation ---

func (r *catalogRepository) GetByIDsInStore(ctx context.Context, storeID int64, itemIDs []int64) ([]model.MenuItem, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}

	const query = `SELECT id, store_id, name, price::text, is_available, created_at
                   FROM menu_items WHERE store_id=$1 AND id = ANY($2)`
	rows, err := r.storage.pool.Query(ctx, query, storeID, itemIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.MenuItem
	for rows.Next() {
		var (
			item      model.MenuItem
			priceText string
		)
		if err := rows.Scan(&item.ID, &item.StoreID, &item.Name, &priceText, &item.IsAvailable, &item.CreatedAt); err != nil {
			return nil, err
		}
		if item.Price, err = decimal.NewFromString(priceText); err != nil {
			return nil, fmt.Errorf("parse price of item %d: %w", item.ID, err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- OrderRepository implementation ---

func (r *orderRepository) CreateConfirmed(ctx context.Context, params repository.ConfirmedOrderParams, lines []model.PricedLine) (*model.Order, bool, error) {
	var (
		order   *model.Order
		created bool
	)
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insertOrder = `INSERT INTO orders (store_id, table_number, total_amount, status, order_code, payment_key)
                             VALUES ($1, $2, $3, $4, $5, $6)
                             ON CONFLICT (order_code) DO NOTHING
                             RETURNING id, total_amount::text, created_at, updated_at`
		var (
			o         model.Order
			totalText string
		)
		err := tx.QueryRow(ctx, insertOrder,
			params.StoreID, params.TableNumber, params.TotalAmount.String(),
			model.OrderStatusConfirmed, params.OrderCode, params.PaymentKey,
		).Scan(&o.ID, &totalText, &o.CreatedAt, &o.UpdatedAt)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				// Duplicate provider callback for this order code: the order
				// is already recorded, return it untouched.
				existing, err := getOrderByCode(ctx, tx, params.OrderCode)
				if err != nil {
					return err
				}
				order = existing
				return nil
			}
			return err
		}

		if o.TotalAmount, err = decimal.NewFromString(totalText); err != nil {
			return fmt.Errorf("parse order total: %w", err)
		}
		o.StoreID = params.StoreID
		o.TableNumber = params.TableNumber
		o.Status = model.OrderStatusConfirmed
		orderCode := params.OrderCode
		paymentKey := params.PaymentKey
		o.OrderCode = &orderCode
		o.PaymentKey = &paymentKey

		if err := insertOrderItems(ctx, tx, o.ID, lines); err != nil {
			return err
		}

		order = &o
		created = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return order, created, nil
}

func (r *orderRepository) GetByCode(ctx context.Context, orderCode string) (*model.Order, error) {
	return getOrderByCode(ctx, r.storage.pool, orderCode)
}

func (r *orderRepository) AccumulatePending(ctx context.Context, storeID int64, tableNumber int32, lines []model.PricedLine, addTotal decimal.Decimal) (*model.AccumulateResult, error) {
	var (
		result  *model.AccumulateResult
		lastErr error
	)

	// Two racing first-time submissions can both observe "no pending order";
	// the partial unique index turns the loser's insert into a 23505, after
	// which one retry joins the winner's order under FOR UPDATE.
	for attempt := 0; attempt < 2; attempt++ {
		err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
			const findPending = `SELECT id, total_amount::text FROM orders
                                 WHERE store_id=$1 AND table_number=$2 AND status=$3
                                 ORDER BY id DESC LIMIT 1
                                 FOR UPDATE`
			var (
				orderID   int64
				totalText string
			)
			err := tx.QueryRow(ctx, findPending, storeID, tableNumber, model.OrderStatusPending).Scan(&orderID, &totalText)
			if errors.Is(err, pgx.ErrNoRows) {
				const insertOrder = `INSERT INTO orders (store_id, table_number, total_amount, status)
                                     VALUES ($1, $2, $3, $4) RETURNING id`
				if err := tx.QueryRow(ctx, insertOrder, storeID, tableNumber, addTotal.String(), model.OrderStatusPending).Scan(&orderID); err != nil {
					return err
				}
				if err := insertOrderItems(ctx, tx, orderID, lines); err != nil {
					return err
				}
				result = &model.AccumulateResult{
					CreatedNew:      true,
					OrderID:         orderID,
					AddedItemsCount: len(lines),
					AddedTotal:      addTotal,
					TotalAmount:     addTotal,
					Status:          model.OrderStatusPending,
				}
				return nil
			}
			if err != nil {
				return err
			}

			if err := insertOrderItems(ctx, tx, orderID, lines); err != nil {
				return err
			}

			const bumpTotal = `UPDATE orders SET total_amount = total_amount + $1, updated_at = NOW()
                               WHERE id=$2 RETURNING total_amount::text`
			var newTotalText string
			if err := tx.QueryRow(ctx, bumpTotal, addTotal.String(), orderID).Scan(&newTotalText); err != nil {
				return err
			}
			newTotal, err := decimal.NewFromString(newTotalText)
			if err != nil {
				return fmt.Errorf("parse order total: %w", err)
			}

			result = &model.AccumulateResult{
				OrderID:         orderID,
				AddedItemsCount: len(lines),
				AddedTotal:      addTotal,
				TotalAmount:     newTotal,
				Status:          model.OrderStatusPending,
			}
			return nil
		})
		if err == nil {
			return result, nil
		}

		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			lastErr = err
			continue
		}
		return nil, err
	}
	return nil, lastErr
}

func (r *orderRepository) ListByTable(ctx context.Context, storeID int64, tableNumber int32) ([]model.Order, error) {
	const query = `SELECT id, store_id, table_number, total_amount::text, status, order_code, payment_key, created_at, updated_at
                   FROM orders WHERE store_id=$1 AND table_number=$2 ORDER BY id DESC`
	rows, err := r.storage.pool.Query(ctx, query, storeID, tableNumber)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) ListItems(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	const query = `SELECT id, order_id, menu_item_id, quantity, price_at_time::text
                   FROM order_items WHERE order_id=$1 ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.OrderItem
	for rows.Next() {
		var (
			item      model.OrderItem
			priceText string
		)
		if err := rows.Scan(&item.ID, &item.OrderID, &item.MenuItemID, &item.Quantity, &priceText); err != nil {
			return nil, err
		}
		if item.PriceAtTime, err = decimal.NewFromString(priceText); err != nil {
			return nil, fmt.Errorf("parse price of order item %d: %w", item.ID, err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func getOrderByCode(ctx context.Context, q rowQuerier, orderCode string) (*model.Order, error) {
	const query = `SELECT id, store_id, table_number, total_amount::text, status, order_code, payment_key, created_at, updated_at
                   FROM orders WHERE order_code=$1`
	order, err := scanOrder(q.QueryRow(ctx, query, orderCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

func scanOrder(row pgx.Row) (*model.Order, error) {
	var (
		order     model.Order
		totalText string
	)
	err := row.Scan(&order.ID, &order.StoreID, &order.TableNumber, &totalText, &order.Status,
		&order.OrderCode, &order.PaymentKey, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if order.TotalAmount, err = decimal.NewFromString(totalText); err != nil {
		return nil, fmt.Errorf("parse order total: %w", err)
	}
	return &order, nil
}

func insertOrderItems(ctx context.Context, tx pgx.Tx, orderID int64, lines []model.PricedLine) error {
	const query = `INSERT INTO order_items (order_id, menu_item_id, quantity, price_at_time)
                   VALUES ($1, $2, $3, $4)`
	for _, line := range lines {
		if _, err := tx.Exec(ctx, query, orderID, line.MenuItemID, line.Quantity, line.PriceAtTime.String()); err != nil {
			return err
		}
	}
	return nil
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

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
