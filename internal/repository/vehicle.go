package repository

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"github.com/jmoiron/sqlx"

	"github.com/wilkadeals/locauto/internal/models"
)

func placeholderFor(n int) string {
	return "$" + strconv.Itoa(n)
}

// VehicleFilter narrows the public catalog listing. PriceBand mirrors
// the storefront's filter chips: low <= 150,000, medium <= 200,000,
// high above that.
type VehicleFilter struct {
	OnlyAvailable bool
	OnlyPopular   bool
	Search        string
	PriceBand     string
}

const (
	PriceBandLow    = "low"
	PriceBandMedium = "medium"
	PriceBandHigh   = "high"

	priceBandLowCeiling    = 150_000
	priceBandMediumCeiling = 200_000
)

type VehicleRepository interface {
	GetAll(filter VehicleFilter) ([]models.Vehicle, error)
	GetOne(id string) (*models.Vehicle, bool, error)
	Insert(vehicle *models.Vehicle) (string, error)
	Update(vehicle *models.Vehicle) error
	Delete(id string) error
}

type VehicleRepositoryImpl struct {
	db *sqlx.DB
}

func NewVehicleRepository(db *sqlx.DB) VehicleRepository {
	return &VehicleRepositoryImpl{db: db}
}

func (repo *VehicleRepositoryImpl) GetAll(filter VehicleFilter) ([]models.Vehicle, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	query := `SELECT * FROM vehicles WHERE 1=1`
	var args []any

	if filter.OnlyAvailable {
		query += ` AND available = true`
	}
	if filter.OnlyPopular {
		query += ` AND is_popular = true`
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		placeholder := placeholderFor(len(args))
		query += ` AND (name ILIKE ` + placeholder + ` OR model ILIKE ` + placeholder + `)`
	}

	switch filter.PriceBand {
	case PriceBandLow:
		args = append(args, priceBandLowCeiling)
		query += ` AND price_per_day <= ` + placeholderFor(len(args))
	case PriceBandMedium:
		args = append(args, priceBandMediumCeiling)
		query += ` AND price_per_day <= ` + placeholderFor(len(args))
	case PriceBandHigh:
		args = append(args, priceBandMediumCeiling)
		query += ` AND price_per_day > ` + placeholderFor(len(args))
	}

	query += ` ORDER BY name`

	var vehicles []models.Vehicle
	err := repo.db.SelectContext(ctx, &vehicles, query, args...)
	if err != nil {
		return nil, err
	}

	return vehicles, nil
}

func (repo *VehicleRepositoryImpl) GetOne(id string) (*models.Vehicle, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var vehicle models.Vehicle

	query := `SELECT * FROM vehicles WHERE id = $1`

	err := repo.db.GetContext(ctx, &vehicle, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}

	return &vehicle, true, err
}

func (repo *VehicleRepositoryImpl) Insert(vehicle *models.Vehicle) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var id string
	query := `
		INSERT INTO vehicles (name, model, price_per_day, image_url, available, is_popular)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	err := repo.db.GetContext(ctx, &id, query,
		vehicle.Name,
		vehicle.Model,
		vehicle.PricePerDay,
		vehicle.ImageURL,
		vehicle.Available,
		vehicle.IsPopular,
	)
	if err != nil {
		return "", err
	}

	return id, nil
}

func (repo *VehicleRepositoryImpl) Update(vehicle *models.Vehicle) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	query := `
		UPDATE vehicles
		SET name = $1, model = $2, price_per_day = $3, image_url = $4, available = $5, is_popular = $6
		WHERE id = $7`

	_, err := repo.db.ExecContext(ctx, query,
		vehicle.Name,
		vehicle.Model,
		vehicle.PricePerDay,
		vehicle.ImageURL,
		vehicle.Available,
		vehicle.IsPopular,
		vehicle.ID,
	)
	return err
}

func (repo *VehicleRepositoryImpl) Delete(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	query := `DELETE FROM vehicles WHERE id = $1`

	_, err := repo.db.ExecContext(ctx, query, id)
	return err
}
