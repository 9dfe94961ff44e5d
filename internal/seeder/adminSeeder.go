package seeders

import (
	"context"
	"database/sql"
	"log"
	"os"

	"github.com/cradoe/gopass"
)

// seedAdminUser creates the back-office account if it does not exist.
// Credentials come from the environment so nothing sensitive lives in
// the codebase.
func (seeder *Seeder) seedAdminUser() {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("ADMIN_EMAIL or ADMIN_PASSWORD not set, skipping admin seeding")
		return
	}

	hashedPassword, err := gopass.Hash(password)
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}

	tx, err := seeder.DB.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		log.Fatalf("Failed to start transaction: %v", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO users (full_name, phone_number, email, role, status, hashed_password)
		VALUES ($1, $2, $3, 'admin', 'approved', $4)
		ON CONFLICT (email) DO NOTHING;`,
		"WilkaDeals Admin", os.Getenv("ADMIN_PHONE_NUMBER"), email, hashedPassword,
	)
	if err != nil {
		tx.Rollback()
		log.Fatalf("Failed to insert admin user: %v", err)
	}

	if err := tx.Commit(); err != nil {
		log.Fatalf("Failed to commit admin seeding: %v", err)
	}

	log.Println("Admin user seeded successfully")
}
