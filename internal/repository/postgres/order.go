package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"equishare-storefront/internal/domain"
	"equishare-storefront/internal/logger"
	"equishare-storefront/internal/repository"
)

type orderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, o *domain.OrderRecord) error {
	logger.EnterMethod("orderRepository.Create", "orderID", o.ID, "lines", len(o.Lines))

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		logger.ExitMethodWithError("orderRepository.Create", err, "orderID", o.ID)
		return err
	}
	defer tx.Rollback()

	var actorID sql.NullInt64
	if o.ActorID != 0 {
		actorID = sql.NullInt64{Int64: o.ActorID, Valid: true}
	}
	query := `INSERT INTO orders (id, actor_id, total_cents, duration_days, delivery_address, phone, notes, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	if _, err := tx.ExecContext(ctx, query, o.ID, actorID, o.TotalCents, o.DurationDays, o.DeliveryAddress, o.Phone, o.Notes, o.Status, o.CreatedAt, o.UpdatedAt); err != nil {
		logger.ExitMethodWithError("orderRepository.Create", err, "orderID", o.ID)
		return fmt.Errorf("failed to insert order: %w", err)
	}

	lineQuery := `INSERT INTO order_lines (order_id, line_no, item_id, name, category, price_per_day_cents, quantity, days)
	              VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for i, l := range o.Lines {
		if _, err := tx.ExecContext(ctx, lineQuery, o.ID, i+1, l.ItemID, l.Name, l.Category, l.PricePerDayCents, l.Quantity, l.Days); err != nil {
			logger.ExitMethodWithError("orderRepository.Create", err, "orderID", o.ID, "line", i+1)
			return fmt.Errorf("failed to insert order line: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		logger.ExitMethodWithError("orderRepository.Create", err, "orderID", o.ID)
		return err
	}
	logger.ExitMethod("orderRepository.Create", "orderID", o.ID)
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*domain.OrderRecord, error) {
	query := `SELECT id, COALESCE(actor_id, 0), total_cents, duration_days, delivery_address, phone, COALESCE(notes, ''), status, created_at, updated_at
	          FROM orders WHERE id = $1`
	o := &domain.OrderRecord{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&o.ID, &o.ActorID, &o.TotalCents, &o.DurationDays, &o.DeliveryAddress, &o.Phone, &o.Notes, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, notFound(err, "order", id)
	}

	lines, err := r.lines(ctx, id)
	if err != nil {
		return nil, err
	}
	o.Lines = lines
	return o, nil
}

func (r *orderRepository) ListByActor(ctx context.Context, actorID int64) ([]domain.OrderRecord, error) {
	query := `SELECT id, COALESCE(actor_id, 0), total_cents, duration_days, delivery_address, phone, COALESCE(notes, ''), status, created_at, updated_at
	          FROM orders WHERE actor_id = $1 ORDER BY id`
	logger.DatabaseCall("orderRepository.ListByActor", query, "actorID", actorID)
	rows, err := r.db.QueryContext(ctx, query, actorID)
	if err != nil {
		logger.DatabaseResult("orderRepository.ListByActor", 0, err)
		return nil, err
	}

	var orders []domain.OrderRecord
	for rows.Next() {
		var o domain.OrderRecord
		if err := rows.Scan(&o.ID, &o.ActorID, &o.TotalCents, &o.DurationDays, &o.DeliveryAddress, &o.Phone, &o.Notes, &o.Status, &o.CreatedAt, &o.UpdatedAt); err != nil {
			rows.Close()
			return nil, err
		}
		orders = append(orders, o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		lines, err := r.lines(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Lines = lines
	}
	logger.DatabaseResult("orderRepository.ListByActor", int64(len(orders)), nil)
	return orders, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus, at time.Time) error {
	query := `UPDATE orders SET status=$1, updated_at=$2 WHERE id=$3`
	res, err := r.db.ExecContext(ctx, query, status, at, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NewNotFoundError("order", id)
	}
	return nil
}

func (r *orderRepository) lines(ctx context.Context, orderID int64) ([]domain.OrderLine, error) {
	query := `SELECT item_id, name, category, price_per_day_cents, quantity, days FROM order_lines WHERE order_id = $1 ORDER BY line_no`
	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []domain.OrderLine
	for rows.Next() {
		var l domain.OrderLine
		if err := rows.Scan(&l.ItemID, &l.Name, &l.Category, &l.PricePerDayCents, &l.Quantity, &l.Days); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}
