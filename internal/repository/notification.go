package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/wilkadeals/locauto/internal/models"
)

type NotificationRepository interface {
	Insert(notification *models.Notification, tx *sqlx.Tx) (string, error)
	GetAllForUser(userID string) ([]models.Notification, error)
	MarkAllRead(userID string) error
	CountUnread(userID string) (int, error)
}

type NotificationRepositoryImpl struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) NotificationRepository {
	return &NotificationRepositoryImpl{db: db}
}

func (repo *NotificationRepositoryImpl) Insert(notification *models.Notification, tx *sqlx.Tx) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var id string
	query := `
		INSERT INTO notifications (user_id, title, message, type)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	if tx != nil {
		err := tx.QueryRowContext(ctx, query,
			notification.UserID,
			notification.Title,
			notification.Message,
			notification.Type,
		).Scan(&id)
		if err != nil {
			return "", err
		}
	} else {
		err := repo.db.GetContext(ctx, &id, query,
			notification.UserID,
			notification.Title,
			notification.Message,
			notification.Type,
		)
		if err != nil {
			return "", err
		}
	}

	return id, nil
}

func (repo *NotificationRepositoryImpl) GetAllForUser(userID string) ([]models.Notification, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var notifications []models.Notification

	query := `SELECT * FROM notifications WHERE user_id = $1 ORDER BY created_at DESC`

	err := repo.db.SelectContext(ctx, &notifications, query, userID)
	if err != nil {
		return nil, err
	}

	return notifications, nil
}

func (repo *NotificationRepositoryImpl) MarkAllRead(userID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	query := `UPDATE notifications SET read = true WHERE user_id = $1 AND read = false`

	_, err := repo.db.ExecContext(ctx, query, userID)
	return err
}

func (repo *NotificationRepositoryImpl) CountUnread(userID string) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var count int

	query := `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND read = false`

	err := repo.db.GetContext(ctx, &count, query, userID)
	if err != nil {
		return 0, err
	}

	return count, nil
}
