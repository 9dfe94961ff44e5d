package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/wilkadeals/locauto/internal/models"
)

// ErrAlreadyReceived is returned when a receipt is attached to a
// reservation whose deposit has already been reconciled.
var ErrAlreadyReceived = errors.New("deposit has already been marked as received")

type ReservationRepository interface {
	Insert(reservation *models.Reservation, tx *sqlx.Tx) (string, error)
	GetOne(id string) (*models.Reservation, bool, error)
	GetAllForUser(userID string) ([]models.Reservation, error)
	GetAll() ([]models.Reservation, error)
	AttachReceipt(id string, receiptURL string, tx *sqlx.Tx) error
}

type ReservationRepositoryImpl struct {
	db *sqlx.DB
}

func NewReservationRepository(db *sqlx.DB) ReservationRepository {
	return &ReservationRepositoryImpl{db: db}
}

func (repo *ReservationRepositoryImpl) Insert(reservation *models.Reservation, tx *sqlx.Tx) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var id string
	query := `
		INSERT INTO reservations
			(user_id, vehicle_id, start_date, end_date, delivery_location_id,
			 with_driver, driver_fee, total_price, deposit_amount, deposit_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`

	args := []any{
		reservation.UserID,
		reservation.VehicleID,
		reservation.StartDate,
		reservation.EndDate,
		reservation.DeliveryLocationID,
		reservation.WithDriver,
		reservation.DriverFee,
		reservation.TotalPrice,
		reservation.DepositAmount,
		reservation.DepositStatus,
	}

	if tx != nil {
		err := tx.QueryRowContext(ctx, query, args...).Scan(&id)
		if err != nil {
			return "", err
		}
	} else {
		err := repo.db.GetContext(ctx, &id, query, args...)
		if err != nil {
			return "", err
		}
	}

	return id, nil
}

func (repo *ReservationRepositoryImpl) GetOne(id string) (*models.Reservation, bool, error) {
	reservations, err := repo.list(`WHERE r.id = $1`, id)
	if err != nil {
		return nil, false, err
	}
	if len(reservations) == 0 {
		return nil, false, nil
	}

	return &reservations[0], true, nil
}

func (repo *ReservationRepositoryImpl) GetAllForUser(userID string) ([]models.Reservation, error) {
	return repo.list(`WHERE r.user_id = $1`, userID)
}

func (repo *ReservationRepositoryImpl) GetAll() ([]models.Reservation, error) {
	return repo.list(``)
}

// list joins vehicle, owner and delivery location so callers get the
// expanded rows the storefront showed, newest first.
func (repo *ReservationRepositoryImpl) list(where string, args ...any) ([]models.Reservation, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	query := `
		SELECT
			r.id, r.user_id, r.vehicle_id, r.start_date, r.end_date,
			r.delivery_location_id, r.with_driver, r.driver_fee,
			r.total_price, r.deposit_amount, r.deposit_status, r.receipt_url, r.created_at,
			v.name, v.model, v.image_url,
			u.full_name, u.email, u.phone_number,
			l.name, l.price
		FROM reservations r
		JOIN vehicles v ON v.id = r.vehicle_id
		JOIN users u ON u.id = r.user_id
		LEFT JOIN delivery_locations l ON l.id = r.delivery_location_id
		` + where + `
		ORDER BY r.created_at DESC`

	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reservations []models.Reservation

	for rows.Next() {
		var (
			r             models.Reservation
			vehicle       models.Vehicle
			user          models.User
			locationName  sql.NullString
			locationPrice sql.NullInt64
		)

		if err := rows.Scan(
			&r.ID, &r.UserID, &r.VehicleID, &r.StartDate, &r.EndDate,
			&r.DeliveryLocationID, &r.WithDriver, &r.DriverFee,
			&r.TotalPrice, &r.DepositAmount, &r.DepositStatus, &r.ReceiptURL, &r.CreatedAt,
			&vehicle.Name, &vehicle.Model, &vehicle.ImageURL,
			&user.FullName, &user.Email, &user.PhoneNumber,
			&locationName, &locationPrice,
		); err != nil {
			return nil, err
		}

		vehicle.ID = r.VehicleID
		user.ID = r.UserID
		r.Vehicle = &vehicle
		r.User = &user

		if r.DeliveryLocationID.Valid {
			r.DeliveryLocation = &models.DeliveryLocation{
				ID:    r.DeliveryLocationID.String,
				Name:  locationName.String,
				Price: locationPrice.Int64,
			}
		}

		reservations = append(reservations, r)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return reservations, nil
}

// AttachReceipt performs the single legal deposit transition,
// pending -> received. Attaching to an already-received deposit is an
// error rather than a silent overwrite.
func (repo *ReservationRepositoryImpl) AttachReceipt(id string, receiptURL string, tx *sqlx.Tx) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	query := `
		UPDATE reservations
		SET deposit_status = $1, receipt_url = $2
		WHERE id = $3 AND deposit_status = $4`

	var result sql.Result
	var err error

	if tx != nil {
		result, err = tx.ExecContext(ctx, query, models.DepositReceived, receiptURL, id, models.DepositPending)
	} else {
		result, err = repo.db.ExecContext(ctx, query, models.DepositReceived, receiptURL, id, models.DepositPending)
	}
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrAlreadyReceived
	}

	return nil
}
