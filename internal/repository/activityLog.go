package repository

import (
	"context"
	"log"

	"github.com/jmoiron/sqlx"

	"github.com/wilkadeals/locauto/internal/models"
)

const (
	ActivityLogUserEntity        = "user"
	ActivityLogReservationEntity = "reservation"
)

type ActivityRepository interface {
	Insert(entry *models.ActivityLog) (*models.ActivityLog, error)
	CountConsecutiveFailedLoginAttempts(userID, description string) int
}

type ActivityRepositoryImpl struct {
	db *sqlx.DB
}

func NewActivityRepository(db *sqlx.DB) ActivityRepository {
	return &ActivityRepositoryImpl{db: db}
}

func (repo *ActivityRepositoryImpl) Insert(entry *models.ActivityLog) (*models.ActivityLog, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	query := `
		INSERT INTO activity_logs (user_id, entity, entity_id, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := repo.db.QueryRowContext(ctx, query,
		entry.UserID,
		entry.Entity,
		entry.EntityId,
		entry.Description,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return nil, err
	}

	return entry, nil
}

// CountConsecutiveFailedLoginAttempts counts failed-login entries since
// the user's last successful login. Used to lock the account after
// repeated failures.
func (repo *ActivityRepositoryImpl) CountConsecutiveFailedLoginAttempts(userID, description string) int {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var count int

	query := `
		SELECT COUNT(*) FROM activity_logs
		WHERE user_id = $1
		  AND description = $2
		  AND created_at > COALESCE(
			(SELECT MAX(created_at) FROM activity_logs
			 WHERE user_id = $1 AND description <> $2 AND entity = $3),
			'epoch'::timestamptz
		  )`

	err := repo.db.QueryRowContext(ctx, query, userID, description, ActivityLogUserEntity).Scan(&count)
	if err != nil {
		log.Printf("Error counting failed login attempts: %v", err)
		return 0
	}

	return count
}
