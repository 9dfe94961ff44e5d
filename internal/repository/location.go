package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/wilkadeals/locauto/internal/models"
)

type LocationRepository interface {
	GetAll() ([]models.DeliveryLocation, error)
	GetOne(id string) (*models.DeliveryLocation, bool, error)
	Insert(location *models.DeliveryLocation) (string, error)
	Update(location *models.DeliveryLocation) error
	Delete(id string) error
}

type LocationRepositoryImpl struct {
	db *sqlx.DB
}

func NewLocationRepository(db *sqlx.DB) LocationRepository {
	return &LocationRepositoryImpl{db: db}
}

func (repo *LocationRepositoryImpl) GetAll() ([]models.DeliveryLocation, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var locations []models.DeliveryLocation

	query := `SELECT * FROM delivery_locations ORDER BY name`

	err := repo.db.SelectContext(ctx, &locations, query)
	if err != nil {
		return nil, err
	}

	return locations, nil
}

func (repo *LocationRepositoryImpl) GetOne(id string) (*models.DeliveryLocation, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var location models.DeliveryLocation

	query := `SELECT * FROM delivery_locations WHERE id = $1`

	err := repo.db.GetContext(ctx, &location, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}

	return &location, true, err
}

func (repo *LocationRepositoryImpl) Insert(location *models.DeliveryLocation) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var id string
	query := `
		INSERT INTO delivery_locations (name, price)
		VALUES ($1, $2)
		RETURNING id`

	err := repo.db.GetContext(ctx, &id, query, location.Name, location.Price)
	if err != nil {
		return "", err
	}

	return id, nil
}

func (repo *LocationRepositoryImpl) Update(location *models.DeliveryLocation) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	query := `UPDATE delivery_locations SET name = $1, price = $2 WHERE id = $3`

	_, err := repo.db.ExecContext(ctx, query, location.Name, location.Price, location.ID)
	return err
}

func (repo *LocationRepositoryImpl) Delete(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	query := `DELETE FROM delivery_locations WHERE id = $1`

	_, err := repo.db.ExecContext(ctx, query, id)
	return err
}
