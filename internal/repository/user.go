package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/wilkadeals/locauto/internal/models"
)

type UserRepository interface {
	Insert(user *models.User, tx *sqlx.Tx) (string, error)
	GetOne(id string) (*models.User, bool, error)
	GetByEmail(email string) (*models.User, bool, error)
	CheckIfPhoneNumberExist(phoneNumber string) (bool, error)
	SetStatus(id string, status models.AccountStatus, tx *sqlx.Tx) error
	ListWithDocuments(status models.AccountStatus) ([]models.User, error)
	Lock(id string) error
}

type UserRepositoryImpl struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &UserRepositoryImpl{db: db}
}

func (repo *UserRepositoryImpl) Insert(user *models.User, tx *sqlx.Tx) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var id string
	query := `
		INSERT INTO users (full_name, phone_number, email, role, status, hashed_password)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	if tx != nil {
		err := tx.QueryRowContext(ctx, query,
			user.FullName,
			user.PhoneNumber,
			user.Email,
			user.Role,
			user.Status,
			user.HashedPassword,
		).Scan(&id)
		if err != nil {
			return "", err
		}
	} else {
		err := repo.db.GetContext(ctx, &id, query,
			user.FullName,
			user.PhoneNumber,
			user.Email,
			user.Role,
			user.Status,
			user.HashedPassword,
		)
		if err != nil {
			return "", err
		}
	}

	return id, nil
}

func (repo *UserRepositoryImpl) GetOne(id string) (*models.User, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var user models.User

	query := `SELECT * FROM users WHERE id = $1`

	err := repo.db.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}

	return &user, true, err
}

func (repo *UserRepositoryImpl) GetByEmail(email string) (*models.User, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var user models.User

	query := `SELECT * FROM users WHERE email = $1`

	err := repo.db.GetContext(ctx, &user, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}

	return &user, true, err
}

func (repo *UserRepositoryImpl) CheckIfPhoneNumberExist(phoneNumber string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var exists bool

	query := `SELECT EXISTS(SELECT 1 FROM users WHERE phone_number = $1)`

	err := repo.db.GetContext(ctx, &exists, query, phoneNumber)
	if err != nil {
		return false, err
	}

	return exists, nil
}

// SetStatus moves an account through the verification lifecycle.
// Approval and rejection stamp reviewed_at; the pending -> submitted
// flip leaves it untouched.
func (repo *UserRepositoryImpl) SetStatus(id string, status models.AccountStatus, tx *sqlx.Tx) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	query := `UPDATE users SET status = $1 WHERE id = $2`
	args := []any{status, id}

	if status == models.AccountApproved || status == models.AccountRejected {
		query = `UPDATE users SET status = $1, reviewed_at = $3 WHERE id = $2`
		args = append(args, time.Now())
	}

	if tx != nil {
		_, err := tx.ExecContext(ctx, query, args...)
		return err
	}

	_, err := repo.db.ExecContext(ctx, query, args...)
	return err
}

// ListWithDocuments returns users joined with their uploaded documents,
// optionally filtered by account status. This backs the admin review
// screen, so admin accounts themselves are excluded.
func (repo *UserRepositoryImpl) ListWithDocuments(status models.AccountStatus) ([]models.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	query := `
		SELECT
			u.id, u.full_name, u.phone_number, u.email, u.role, u.status, u.created_at,
			d.id, d.type, d.file_url, d.status, d.updated_at
		FROM users u
		LEFT JOIN documents d ON d.user_id = u.id
		WHERE u.role = $1 AND ($2 = '' OR u.status = $2)
		ORDER BY u.created_at DESC, d.type`

	rows, err := repo.db.QueryContext(ctx, query, models.RoleClient, string(status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	userMap := make(map[string]*models.User)
	var ordered []*models.User

	for rows.Next() {
		var (
			u         models.User
			docID     sql.NullString
			docType   sql.NullString
			docURL    sql.NullString
			docStatus sql.NullString
			docTime   sql.NullTime
		)

		if err := rows.Scan(
			&u.ID, &u.FullName, &u.PhoneNumber, &u.Email, &u.Role, &u.Status, &u.CreatedAt,
			&docID, &docType, &docURL, &docStatus, &docTime,
		); err != nil {
			return nil, err
		}

		user, exists := userMap[u.ID]
		if !exists {
			user = &u
			userMap[u.ID] = user
			ordered = append(ordered, user)
		}

		if docID.Valid {
			user.Documents = append(user.Documents, models.Document{
				ID:        docID.String,
				UserID:    user.ID,
				Type:      models.DocumentType(docType.String),
				FileURL:   docURL.String,
				Status:    models.DocumentStatus(docStatus.String),
				UpdatedAt: docTime.Time,
			})
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	users := make([]models.User, len(ordered))
	for i, u := range ordered {
		users[i] = *u
	}

	return users, nil
}

func (repo *UserRepositoryImpl) Lock(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	query := `UPDATE users SET locked = true WHERE id = $1`

	_, err := repo.db.ExecContext(ctx, query, id)
	return err
}
