package postgres

import (
	"context"
	"database/sql"
	"time"

	"equishare-storefront/internal/domain"
	"equishare-storefront/internal/logger"
	"equishare-storefront/internal/repository"
)

const itemColumns = `id, COALESCE(owner_id, 0), name, COALESCE(description, ''), category, price_per_day_cents, available, rating, owner_label, location, created_on`

type catalogRepository struct {
	db *sql.DB
}

func NewCatalogRepository(db *sql.DB) repository.CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) List(ctx context.Context) ([]domain.CatalogItem, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE deleted_on IS NULL ORDER BY id`
	logger.DatabaseCall("catalogRepository.List", query)
	items, err := r.query(ctx, query)
	logger.DatabaseResult("catalogRepository.List", int64(len(items)), err)
	return items, err
}

func (r *catalogRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.CatalogItem, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE owner_id = $1 AND deleted_on IS NULL ORDER BY id`
	return r.query(ctx, query, ownerID)
}

func (r *catalogRepository) GetByID(ctx context.Context, id int64) (*domain.CatalogItem, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1 AND deleted_on IS NULL`
	var it domain.CatalogItem
	var createdOn time.Time
	err := r.db.QueryRowContext(ctx, query, id).Scan(&it.ID, &it.OwnerID, &it.Name, &it.Description, &it.Category, &it.PricePerDayCents, &it.Available, &it.Rating, &it.Owner, &it.Location, &createdOn)
	if err != nil {
		return nil, notFound(err, "item", id)
	}
	it.CreatedOn = createdOn.Format("2006-01-02")
	return &it, nil
}

func (r *catalogRepository) Create(ctx context.Context, it *domain.CatalogItem) error {
	query := `INSERT INTO items (owner_id, name, description, category, price_per_day_cents, available, rating, owner_label, location, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	it.CreatedOn = time.Now().Format("2006-01-02")
	var ownerID sql.NullInt64
	if it.OwnerID != 0 {
		ownerID = sql.NullInt64{Int64: it.OwnerID, Valid: true}
	}
	return r.db.QueryRowContext(ctx, query, ownerID, it.Name, it.Description, it.Category, it.PricePerDayCents, it.Available, it.Rating, it.Owner, it.Location, it.CreatedOn).Scan(&it.ID)
}

func (r *catalogRepository) Update(ctx context.Context, it *domain.CatalogItem) error {
	query := `UPDATE items SET name=$1, description=$2, category=$3, price_per_day_cents=$4, available=$5, location=$6 WHERE id=$7 AND deleted_on IS NULL`
	res, err := r.db.ExecContext(ctx, query, it.Name, it.Description, it.Category, it.PricePerDayCents, it.Available, it.Location, it.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NewNotFoundError("item", it.ID)
	}
	return nil
}

func (r *catalogRepository) Delete(ctx context.Context, id int64) error {
	query := `UPDATE items SET deleted_on = $1 WHERE id = $2 AND deleted_on IS NULL`
	res, err := r.db.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NewNotFoundError("item", id)
	}
	return nil
}

func (r *catalogRepository) query(ctx context.Context, query string, args ...any) ([]domain.CatalogItem, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.CatalogItem
	for rows.Next() {
		var it domain.CatalogItem
		var createdOn time.Time
		if err := rows.Scan(&it.ID, &it.OwnerID, &it.Name, &it.Description, &it.Category, &it.PricePerDayCents, &it.Available, &it.Rating, &it.Owner, &it.Location, &createdOn); err != nil {
			return nil, err
		}
		it.CreatedOn = createdOn.Format("2006-01-02")
		items = append(items, it)
	}
	return items, rows.Err()
}
