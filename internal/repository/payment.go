package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/wilkadeals/locauto/internal/models"
)

type PaymentRepository interface {
	Insert(payment *models.Payment, tx *sqlx.Tx) (string, error)
	GetAllForReservation(reservationID string) ([]models.Payment, error)
}

type PaymentRepositoryImpl struct {
	db *sqlx.DB
}

func NewPaymentRepository(db *sqlx.DB) PaymentRepository {
	return &PaymentRepositoryImpl{db: db}
}

func (repo *PaymentRepositoryImpl) Insert(payment *models.Payment, tx *sqlx.Tx) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var id string
	query := `
		INSERT INTO payments (reservation_id, amount, receipt_url)
		VALUES ($1, $2, $3)
		RETURNING id`

	if tx != nil {
		err := tx.QueryRowContext(ctx, query, payment.ReservationID, payment.Amount, payment.ReceiptURL).Scan(&id)
		if err != nil {
			return "", err
		}
	} else {
		err := repo.db.GetContext(ctx, &id, query, payment.ReservationID, payment.Amount, payment.ReceiptURL)
		if err != nil {
			return "", err
		}
	}

	return id, nil
}

func (repo *PaymentRepositoryImpl) GetAllForReservation(reservationID string) ([]models.Payment, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var payments []models.Payment

	query := `SELECT * FROM payments WHERE reservation_id = $1 ORDER BY created_at DESC`

	err := repo.db.SelectContext(ctx, &payments, query, reservationID)
	if err != nil {
		return nil, err
	}

	return payments, nil
}
