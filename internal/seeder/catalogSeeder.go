package seeders

import (
	"context"
	"database/sql"
	"log"
)

// seedCatalog seeds the vehicles, delivery locations and promotion
// tiers the storefront launches with.
func (seeder *Seeder) seedCatalog() {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	tx, err := seeder.DB.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		log.Fatalf("Failed to start transaction: %v", err)
	}

	// vehicles have no natural key, so only seed an empty catalog
	var vehicleCount int
	err = tx.QueryRowContext(ctx, `SELECT count(*) FROM vehicles;`).Scan(&vehicleCount)
	if err != nil {
		tx.Rollback()
		log.Fatalf("Failed to count vehicles: %v", err)
	}

	vehicles := []struct {
		Name        string
		Model       string
		PricePerDay int64
		IsPopular   bool
	}{
		{Name: "Toyota Corolla", Model: "2021", PricePerDay: 35_000, IsPopular: true},
		{Name: "Hyundai Tucson", Model: "2022", PricePerDay: 55_000, IsPopular: true},
		{Name: "Toyota RAV4", Model: "2023", PricePerDay: 75_000, IsPopular: false},
		{Name: "Mercedes Classe C", Model: "2022", PricePerDay: 120_000, IsPopular: true},
		{Name: "Toyota Land Cruiser Prado", Model: "2023", PricePerDay: 180_000, IsPopular: false},
		{Name: "Range Rover Sport", Model: "2023", PricePerDay: 250_000, IsPopular: false},
	}

	if vehicleCount == 0 {
		for _, vehicle := range vehicles {
			_, err = tx.ExecContext(ctx, `
				INSERT INTO vehicles (name, model, price_per_day, available, is_popular)
				VALUES ($1, $2, $3, true, $4);`,
				vehicle.Name, vehicle.Model, vehicle.PricePerDay, vehicle.IsPopular,
			)
			if err != nil {
				tx.Rollback()
				log.Fatalf("Failed to insert vehicle '%s': %v", vehicle.Name, err)
			}
		}
	}

	locations := []struct {
		Name  string
		Price int64
	}{
		{Name: "Cocody", Price: 10_000},
		{Name: "Plateau", Price: 10_000},
		{Name: "Marcory", Price: 15_000},
		{Name: "Yopougon", Price: 15_000},
		{Name: "Aéroport FHB", Price: 20_000},
	}

	for _, location := range locations {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO delivery_locations (name, price)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING;`,
			location.Name, location.Price,
		)
		if err != nil {
			tx.Rollback()
			log.Fatalf("Failed to insert delivery location '%s': %v", location.Name, err)
		}
	}

	promotions := []struct {
		DurationWeeks int
		Discount      int64
	}{
		{DurationWeeks: 1, Discount: 5_000},
		{DurationWeeks: 3, Discount: 10_000},
	}

	for _, promotion := range promotions {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO promotions (duration_weeks, discount)
			VALUES ($1, $2)
			ON CONFLICT (duration_weeks) DO NOTHING;`,
			promotion.DurationWeeks, promotion.Discount,
		)
		if err != nil {
			tx.Rollback()
			log.Fatalf("Failed to insert promotion tier: %v", err)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Fatalf("Failed to commit catalog seeding: %v", err)
	}

	log.Println("Catalog seeded successfully")
}
