package main

import (
	"flag"
	"os"

	"hotel-rooms-be/internal/config"
	"hotel-rooms-be/internal/model"
	"hotel-rooms-be/pkg/database"

	"github.com/fatih/color"
)

func main() {
	seed := flag.Bool("seed", false, "insert a demo hotel with a few rooms after migrating")
	flag.Parse()

	info := color.New(color.FgCyan)
	ok := color.New(color.FgGreen, color.Bold)
	warn := color.New(color.FgYellow)
	fail := color.New(color.FgRed, color.Bold)

	// 1. Load Environment Variables
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		fail.Println("Error: DATABASE_URL is not set")
		os.Exit(1)
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDB(database.Options{
		DSN:     cfg.Database.Connection,
		SSLMode: cfg.Database.SSLMode,
	})
	if err != nil {
		fail.Printf("Error: Failed to connect to database: %v\n", err)
		os.Exit(1)
	}

	// 3. AutoMigrate, parents before children so foreign keys resolve
	models := []interface{}{
		&model.User{},
		&model.Hotel{},
		&model.AdminHotel{},
		&model.Room{},
		&model.Reservation{},
	}
	info.Printf("Step 1: Running AutoMigrate for %d tables...\n", len(models))

	if err := db.AutoMigrate(models...); err != nil {
		fail.Printf("Error: AutoMigrate failed: %v\n", err)
		os.Exit(1)
	}

	// 4. Indexes GORM tags do not express
	info.Println("Step 2: Creating indexes...")
	postMigrationSQL := []string{
		`CREATE INDEX IF NOT EXISTS idx_rooms_status ON rooms (status);`,
		`CREATE INDEX IF NOT EXISTS idx_rooms_name_lower ON rooms (lower(name));`,
	}
	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			warn.Printf("Warn: Failed to execute post-migration SQL: %v\n", err)
		}
	}

	if *seed {
		info.Println("Step 3: Seeding demo data...")
		if err := seedDemo(db); err != nil {
			fail.Printf("Error: Seeding failed: %v\n", err)
			os.Exit(1)
		}
	}

	ok.Println("Success: Database migration completed.")
}
