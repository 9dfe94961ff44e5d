package repository

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"github.com/wilkadeals/locauto/assets"

	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/lib/pq"
)

const defaultTimeout = 3 * time.Second

// Database interface defines available repositories
type Database interface {
	User() UserRepository
	Activity() ActivityRepository
	Vehicle() VehicleRepository
	Location() LocationRepository
	Promotion() PromotionRepository
	Reservation() ReservationRepository
	Document() DocumentRepository
	Notification() NotificationRepository
	Payment() PaymentRepository

	Close() error
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
}

// DatabaseImpl implements the Database interface
type DatabaseImpl struct {
	db               *sqlx.DB
	userRepo         UserRepository
	activityRepo     ActivityRepository
	vehicleRepo      VehicleRepository
	locationRepo     LocationRepository
	promotionRepo    PromotionRepository
	reservationRepo  ReservationRepository
	documentRepo     DocumentRepository
	notificationRepo NotificationRepository
	paymentRepo      PaymentRepository

	mu sync.Mutex
}

// New initializes a database connection and runs migrations if enabled
func New(dsn string, automigrate bool) (Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	db, err := sqlx.ConnectContext(ctx, "postgres", "postgres://"+dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(2 * time.Hour)

	// Run migrations if enabled
	if automigrate {
		iofsDriver, err := iofs.New(assets.EmbeddedFiles, "migrations")
		if err != nil {
			return nil, err
		}

		migrator, err := migrate.NewWithSourceInstance("iofs", iofsDriver, "postgres://"+dsn)
		if err != nil {
			return nil, err
		}

		if err := migrator.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return nil, err
		}
	}

	return &DatabaseImpl{db: db}, nil
}

func (d *DatabaseImpl) Close() error {
	return d.db.Close()
}

func (d *DatabaseImpl) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error) {
	tx, err := d.db.BeginTxx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return tx, nil
}

func (d *DatabaseImpl) User() UserRepository {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.userRepo == nil {
		d.userRepo = NewUserRepository(d.db)
	}
	return d.userRepo
}

func (d *DatabaseImpl) Activity() ActivityRepository {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.activityRepo == nil {
		d.activityRepo = NewActivityRepository(d.db)
	}
	return d.activityRepo
}

func (d *DatabaseImpl) Vehicle() VehicleRepository {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.vehicleRepo == nil {
		d.vehicleRepo = NewVehicleRepository(d.db)
	}
	return d.vehicleRepo
}

func (d *DatabaseImpl) Location() LocationRepository {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.locationRepo == nil {
		d.locationRepo = NewLocationRepository(d.db)
	}
	return d.locationRepo
}

func (d *DatabaseImpl) Promotion() PromotionRepository {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.promotionRepo == nil {
		d.promotionRepo = NewPromotionRepository(d.db)
	}
	return d.promotionRepo
}

func (d *DatabaseImpl) Reservation() ReservationRepository {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.reservationRepo == nil {
		d.reservationRepo = NewReservationRepository(d.db)
	}
	return d.reservationRepo
}

func (d *DatabaseImpl) Document() DocumentRepository {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.documentRepo == nil {
		d.documentRepo = NewDocumentRepository(d.db)
	}
	return d.documentRepo
}

func (d *DatabaseImpl) Notification() NotificationRepository {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.notificationRepo == nil {
		d.notificationRepo = NewNotificationRepository(d.db)
	}
	return d.notificationRepo
}

func (d *DatabaseImpl) Payment() PaymentRepository {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.paymentRepo == nil {
		d.paymentRepo = NewPaymentRepository(d.db)
	}
	return d.paymentRepo
}
