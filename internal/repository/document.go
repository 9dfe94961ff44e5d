package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/wilkadeals/locauto/internal/models"
)

type DocumentRepository interface {
	GetAllForUser(userID string) ([]models.Document, error)
	GetByType(userID string, docType models.DocumentType) (*models.Document, bool, error)
	Upsert(doc *models.Document, tx *sqlx.Tx) (string, error)
	CountDistinctTypes(userID string, tx *sqlx.Tx) (int, error)
	SetStatusForUser(userID string, status models.DocumentStatus, tx *sqlx.Tx) error
}

type DocumentRepositoryImpl struct {
	db *sqlx.DB
}

func NewDocumentRepository(db *sqlx.DB) DocumentRepository {
	return &DocumentRepositoryImpl{db: db}
}

func (repo *DocumentRepositoryImpl) GetAllForUser(userID string) ([]models.Document, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var documents []models.Document

	query := `SELECT * FROM documents WHERE user_id = $1 ORDER BY type`

	err := repo.db.SelectContext(ctx, &documents, query, userID)
	if err != nil {
		return nil, err
	}

	return documents, nil
}

func (repo *DocumentRepositoryImpl) GetByType(userID string, docType models.DocumentType) (*models.Document, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var document models.Document

	query := `SELECT * FROM documents WHERE user_id = $1 AND type = $2`

	err := repo.db.GetContext(ctx, &document, query, userID, docType)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}

	return &document, true, err
}

// Upsert stores a document keyed on (user_id, type). A re-upload
// replaces the file reference and resets the review status to pending
// without creating a second row.
func (repo *DocumentRepositoryImpl) Upsert(doc *models.Document, tx *sqlx.Tx) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var id string
	query := `
		INSERT INTO documents (user_id, type, file_url, status)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, type)
		DO UPDATE SET file_url = EXCLUDED.file_url, status = EXCLUDED.status, updated_at = now()
		RETURNING id`

	if tx != nil {
		err := tx.QueryRowContext(ctx, query, doc.UserID, doc.Type, doc.FileURL, models.DocumentPending).Scan(&id)
		if err != nil {
			return "", err
		}
	} else {
		err := repo.db.GetContext(ctx, &id, query, doc.UserID, doc.Type, doc.FileURL, models.DocumentPending)
		if err != nil {
			return "", err
		}
	}

	return id, nil
}

func (repo *DocumentRepositoryImpl) CountDistinctTypes(userID string, tx *sqlx.Tx) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var count int

	query := `SELECT COUNT(DISTINCT type) FROM documents WHERE user_id = $1`

	if tx != nil {
		err := tx.QueryRowContext(ctx, query, userID).Scan(&count)
		if err != nil {
			return 0, err
		}
		return count, nil
	}

	err := repo.db.GetContext(ctx, &count, query, userID)
	if err != nil {
		return 0, err
	}

	return count, nil
}

// SetStatusForUser moves every document of an account to the given
// status. Used by the coarse account-level approve/reject action.
func (repo *DocumentRepositoryImpl) SetStatusForUser(userID string, status models.DocumentStatus, tx *sqlx.Tx) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	query := `UPDATE documents SET status = $1, updated_at = now() WHERE user_id = $2`

	if tx != nil {
		_, err := tx.ExecContext(ctx, query, status, userID)
		return err
	}

	_, err := repo.db.ExecContext(ctx, query, status, userID)
	return err
}
