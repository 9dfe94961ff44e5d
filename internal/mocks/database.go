package mocks

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"github.com/wilkadeals/locauto/internal/repository"
)

// MockDatabase hands out real transactions from a sqlmock connection so
// handlers that wrap repository calls in BeginTx/Commit can be exercised
// without a running database. Handlers receive their repositories
// directly, so the accessor methods are never called in tests.
type MockDatabase struct {
	Conn *sqlx.DB
	Mock sqlmock.Sqlmock
}

func NewMockDatabase(t *testing.T) *MockDatabase {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("opening stub database connection: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return &MockDatabase{
		Conn: sqlx.NewDb(db, "sqlmock"),
		Mock: mock,
	}
}

func (d *MockDatabase) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error) {
	return d.Conn.BeginTxx(ctx, opts)
}

func (d *MockDatabase) Close() error { return d.Conn.Close() }

func (d *MockDatabase) User() repository.UserRepository                 { return nil }
func (d *MockDatabase) Activity() repository.ActivityRepository         { return nil }
func (d *MockDatabase) Vehicle() repository.VehicleRepository           { return nil }
func (d *MockDatabase) Location() repository.LocationRepository         { return nil }
func (d *MockDatabase) Promotion() repository.PromotionRepository       { return nil }
func (d *MockDatabase) Reservation() repository.ReservationRepository   { return nil }
func (d *MockDatabase) Document() repository.DocumentRepository         { return nil }
func (d *MockDatabase) Notification() repository.NotificationRepository { return nil }
func (d *MockDatabase) Payment() repository.PaymentRepository           { return nil }
