package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"retailgenie/gateway/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
	id            UUID PRIMARY KEY,
	taken_at      TIMESTAMPTZ NOT NULL,
	product_count INTEGER NOT NULL DEFAULT 0,
	order_count   INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS snapshot_products (
	snapshot_id UUID NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
	position    INTEGER NOT NULL,
	product_id  TEXT NOT NULL,
	name        TEXT NOT NULL,
	price       DOUBLE PRECISION NOT NULL,
	category    TEXT NOT NULL,
	description TEXT NOT NULL,
	image_url   TEXT NOT NULL,
	in_stock    BOOLEAN,
	PRIMARY KEY (snapshot_id, position)
);

CREATE TABLE IF NOT EXISTS snapshot_orders (
	snapshot_id   UUID NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
	position      INTEGER NOT NULL,
	order_id      TEXT NOT NULL,
	customer_name TEXT NOT NULL,
	total_amount  DOUBLE PRECISION NOT NULL,
	status        TEXT NOT NULL,
	items         JSONB NOT NULL,
	created_at    TEXT NOT NULL,
	PRIMARY KEY (snapshot_id, position)
);`

type SnapshotRepository struct {
	db *pgxpool.Pool
}

func NewSnapshotRepository(db *pgxpool.Pool) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

func (r *SnapshotRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create snapshot schema: %w", err)
	}
	return nil
}

// RunAtomic executes fn within a transaction. Repository calls made with the
// ctx passed to fn join that transaction.
func (r *SnapshotRepository) RunAtomic(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	// no-op after a successful commit
	defer tx.Rollback(ctx)

	ctx = context.WithValue(ctx, txKey{}, tx)

	if err := fn(ctx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

type txKey struct{}

func (r *SnapshotRepository) getExecutor(ctx context.Context) PgxExecutor {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return r.db
}

// PgxExecutor is an interface that matches both *pgxpool.Pool and pgx.Tx
type PgxExecutor interface {
	Exec(ctx context.Context, sql string, arguments ...any) (commandTag pgconn.CommandTag, err error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

func (r *SnapshotRepository) CreateSnapshot(ctx context.Context, snap model.Snapshot) error {
	_, err := r.getExecutor(ctx).Exec(ctx,
		"INSERT INTO snapshots (id, taken_at, product_count, order_count) VALUES ($1, $2, $3, $4)",
		snap.ID, snap.TakenAt, snap.ProductCount, snap.OrderCount)
	if err != nil {
		return fmt.Errorf("failed to create snapshot: %w", err)
	}
	return nil
}

// SaveProducts copies products keyed by their position in the backend list,
// since ids may be absent.
func (r *SnapshotRepository) SaveProducts(ctx context.Context, snapshotID uuid.UUID, products []model.Product) error {
	rows := make([][]any, len(products))
	for i, p := range products {
		rows[i] = []any{snapshotID, i, p.ID, p.Name, p.Price, p.Category, p.Description, p.ImageURL, p.InStock}
	}

	_, err := r.getExecutor(ctx).CopyFrom(ctx,
		pgx.Identifier{"snapshot_products"},
		[]string{"snapshot_id", "position", "product_id", "name", "price", "category", "description", "image_url", "in_stock"},
		pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("failed to save products: %w", err)
	}
	return nil
}

func (r *SnapshotRepository) SaveOrders(ctx context.Context, snapshotID uuid.UUID, orders []model.Order) error {
	rows := make([][]any, len(orders))
	for i, o := range orders {
		items := o.Items
		if items == nil {
			items = []model.OrderItem{}
		}
		rows[i] = []any{snapshotID, i, o.ID, o.CustomerName, o.TotalAmount, string(o.Status), items, o.CreatedAt}
	}

	_, err := r.getExecutor(ctx).CopyFrom(ctx,
		pgx.Identifier{"snapshot_orders"},
		[]string{"snapshot_id", "position", "order_id", "customer_name", "total_amount", "status", "items", "created_at"},
		pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("failed to save orders: %w", err)
	}
	return nil
}

// ListSnapshots returns the most recent snapshots first.
func (r *SnapshotRepository) ListSnapshots(ctx context.Context, limit int) ([]model.Snapshot, error) {
	rows, err := r.getExecutor(ctx).Query(ctx,
		"SELECT id, taken_at, product_count, order_count FROM snapshots ORDER BY taken_at DESC LIMIT $1", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}

	snapshots, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Snapshot, error) {
		var s model.Snapshot
		err := row.Scan(&s.ID, &s.TakenAt, &s.ProductCount, &s.OrderCount)
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan snapshots: %w", err)
	}
	return snapshots, nil
}

func (r *SnapshotRepository) GetSnapshot(ctx context.Context, id uuid.UUID) (model.Snapshot, error) {
	var s model.Snapshot
	err := r.getExecutor(ctx).QueryRow(ctx,
		"SELECT id, taken_at, product_count, order_count FROM snapshots WHERE id = $1", id).
		Scan(&s.ID, &s.TakenAt, &s.ProductCount, &s.OrderCount)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Snapshot{}, model.ErrSnapshotNotFound
	}
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("failed to get snapshot: %w", err)
	}
	return s, nil
}

// LoadProducts returns a snapshot's products in their original list order.
func (r *SnapshotRepository) LoadProducts(ctx context.Context, snapshotID uuid.UUID) ([]model.Product, error) {
	rows, err := r.getExecutor(ctx).Query(ctx,
		`SELECT product_id, name, price, category, description, image_url, in_stock
		FROM snapshot_products WHERE snapshot_id = $1 ORDER BY position`, snapshotID)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	products, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Product, error) {
		var p model.Product
		err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Category, &p.Description, &p.ImageURL, &p.InStock)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan products: %w", err)
	}
	return products, nil
}

func (r *SnapshotRepository) LoadOrders(ctx context.Context, snapshotID uuid.UUID) ([]model.Order, error) {
	rows, err := r.getExecutor(ctx).Query(ctx,
		`SELECT order_id, customer_name, total_amount, status, items, created_at
		FROM snapshot_orders WHERE snapshot_id = $1 ORDER BY position`, snapshotID)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}

	orders, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Order, error) {
		var o model.Order
		err := row.Scan(&o.ID, &o.CustomerName, &o.TotalAmount, &o.Status, &o.Items, &o.CreatedAt)
		return o, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan orders: %w", err)
	}
	return orders, nil
}

// CountDocuments reports how many rows a snapshot holds per collection.
func (r *SnapshotRepository) CountDocuments(ctx context.Context, snapshotID uuid.UUID) (products, orders int, err error) {
	err = r.getExecutor(ctx).QueryRow(ctx,
		`SELECT
			(SELECT COUNT(*) FROM snapshot_products WHERE snapshot_id = $1),
			(SELECT COUNT(*) FROM snapshot_orders WHERE snapshot_id = $1)`,
		snapshotID).Scan(&products, &orders)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count snapshot documents: %w", err)
	}
	return products, orders, nil
}
