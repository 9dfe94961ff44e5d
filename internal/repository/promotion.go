package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/wilkadeals/locauto/internal/models"
)

type PromotionRepository interface {
	GetAll() ([]models.Promotion, error)
	GetOne(id string) (*models.Promotion, bool, error)
	Insert(promotion *models.Promotion) (string, error)
	Update(promotion *models.Promotion) error
	Delete(id string) error
}

type PromotionRepositoryImpl struct {
	db *sqlx.DB
}

func NewPromotionRepository(db *sqlx.DB) PromotionRepository {
	return &PromotionRepositoryImpl{db: db}
}

// GetAll returns tiers ordered by duration_weeks ascending. The pricing
// calculator relies on this ordering for its first-match tier lookup,
// so it must not change.
func (repo *PromotionRepositoryImpl) GetAll() ([]models.Promotion, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var promotions []models.Promotion

	query := `SELECT * FROM promotions ORDER BY duration_weeks`

	err := repo.db.SelectContext(ctx, &promotions, query)
	if err != nil {
		return nil, err
	}

	return promotions, nil
}

func (repo *PromotionRepositoryImpl) GetOne(id string) (*models.Promotion, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var promotion models.Promotion

	query := `SELECT * FROM promotions WHERE id = $1`

	err := repo.db.GetContext(ctx, &promotion, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}

	return &promotion, true, err
}

func (repo *PromotionRepositoryImpl) Insert(promotion *models.Promotion) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var id string
	query := `
		INSERT INTO promotions (duration_weeks, discount)
		VALUES ($1, $2)
		RETURNING id`

	err := repo.db.GetContext(ctx, &id, query, promotion.DurationWeeks, promotion.Discount)
	if err != nil {
		return "", err
	}

	return id, nil
}

func (repo *PromotionRepositoryImpl) Update(promotion *models.Promotion) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	query := `UPDATE promotions SET duration_weeks = $1, discount = $2 WHERE id = $3`

	_, err := repo.db.ExecContext(ctx, query, promotion.DurationWeeks, promotion.Discount, promotion.ID)
	return err
}

func (repo *PromotionRepositoryImpl) Delete(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	query := `DELETE FROM promotions WHERE id = $1`

	_, err := repo.db.ExecContext(ctx, query, id)
	return err
}
