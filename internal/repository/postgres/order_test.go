package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"equishare-storefront/internal/domain"
)

var orderColumns = []string{"id", "actor_id", "total_cents", "duration_days", "delivery_address", "phone", "notes", "status", "created_at", "updated_at"}
var lineColumns = []string{"item_id", "name", "category", "price_per_day_cents", "quantity", "days"}

func sampleOrder() *domain.OrderRecord {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	return &domain.OrderRecord{
		ID:              1709283600000,
		ActorID:         1,
		TotalCents:      90000,
		DurationDays:    3,
		DeliveryAddress: "12 MG Road, Mumbai",
		Phone:           "+91 98765 43210",
		Status:          domain.OrderStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
		Lines: []domain.OrderLine{
			{ItemID: 1, Name: "Professional Power Drill", Category: domain.CategoryPowerTools, PricePerDayCents: 15000, Quantity: 2, Days: 3},
		},
	}
}

func TestOrderRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewOrderRepository(db)
	o := sampleOrder()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO orders").
			WithArgs(o.ID, sqlmock.AnyArg(), o.TotalCents, o.DurationDays, o.DeliveryAddress, o.Phone, o.Notes, "pending", o.CreatedAt, o.UpdatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO order_lines").
			WithArgs(o.ID, 1, int64(1), "Professional Power Drill", "Power Tools", int64(15000), 2, 3).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		assert.NoError(t, repo.Create(context.Background(), o))
	})

	t.Run("LineFailureRollsBack", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO orders").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO order_lines").WillReturnError(assert.AnError)
		mock.ExpectRollback()

		err := repo.Create(context.Background(), o)
		assert.ErrorIs(t, err, assert.AnError)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewOrderRepository(db)
	o := sampleOrder()

	mock.ExpectQuery("SELECT (.+) FROM orders WHERE id = \\$1").
		WithArgs(o.ID).
		WillReturnRows(sqlmock.NewRows(orderColumns).
			AddRow(o.ID, 1, o.TotalCents, 3, o.DeliveryAddress, o.Phone, "", "pending", o.CreatedAt, o.UpdatedAt))
	mock.ExpectQuery("SELECT (.+) FROM order_lines WHERE order_id = \\$1").
		WithArgs(o.ID).
		WillReturnRows(sqlmock.NewRows(lineColumns).AddRow(1, "Professional Power Drill", "Power Tools", 15000, 2, 3))

	got, err := repo.GetByID(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, o, got)

	mock.ExpectQuery("SELECT (.+) FROM orders WHERE id = \\$1").
		WithArgs(int64(5)).
		WillReturnError(sql.ErrNoRows)
	_, err = repo.GetByID(context.Background(), 5)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_ListByActor(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewOrderRepository(db)
	o := sampleOrder()

	mock.ExpectQuery("SELECT (.+) FROM orders WHERE actor_id = \\$1").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(orderColumns).
			AddRow(o.ID, 1, o.TotalCents, 3, o.DeliveryAddress, o.Phone, "", "active", o.CreatedAt, o.UpdatedAt))
	mock.ExpectQuery("SELECT (.+) FROM order_lines WHERE order_id = \\$1").
		WithArgs(o.ID).
		WillReturnRows(sqlmock.NewRows(lineColumns).AddRow(1, "Professional Power Drill", "Power Tools", 15000, 2, 3))

	orders, err := repo.ListByActor(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, domain.OrderStatusActive, orders[0].Status)
	assert.Len(t, orders[0].Lines, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewOrderRepository(db)
	at := time.Now()

	mock.ExpectExec("UPDATE orders SET status").
		WithArgs("completed", at, int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.UpdateStatus(context.Background(), 10, domain.OrderStatusCompleted, at))

	mock.ExpectExec("UPDATE orders SET status").
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.UpdateStatus(context.Background(), 11, domain.OrderStatusCompleted, at), domain.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
