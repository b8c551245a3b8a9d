package db

import (
	"log"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mongodb"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// RunMigrations applies the index migrations under db/migrations against the
// configured MongoDB instance. The docket number unique index lives here.
func RunMigrations(mongoURL string) {
	if mongoURL == "" {
		log.Fatal("MONGO_URL not set in environment")
	}

	m, err := migrate.New("file://db/migrations", mongoURL)
	if err != nil {
		log.Fatalf("migration failed to start: %v", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		log.Fatalf("could not run up migrations: %v", err)
	}

	log.Println("✅ Migrations applied successfully!")
}
