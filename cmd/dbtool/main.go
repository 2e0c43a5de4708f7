package main

import (
	"context"
	"database/sql"
	"flag"
	"geo-match-service/internal/adapters/repositories"
	"geo-match-service/internal/config"
	"geo-match-service/internal/platform/db"
	"log"
)

func main() {
	config.Load()

	seedPath := flag.String("seed", config.Get("SEED_PATH", "data/seeds/reference_points.json"), "JSON file of reference sets to load")
	schemaOnly := flag.Bool("schema-only", false, "create tables without seeding")
	flag.Parse()

	databaseURL, err := config.MustGet("DATABASE_URL")
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	conn, err := db.Open(ctx, databaseURL, db.DefaultOptions())
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	if err := initAndSeed(ctx, conn, *seedPath, *schemaOnly); err != nil {
		log.Fatal(err)
	}
}

func initAndSeed(ctx context.Context, conn *sql.DB, seedPath string, schemaOnly bool) error {
	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(ctx, conn); err != nil {
		return err
	}
	log.Println("Schema ready.")

	if schemaOnly {
		return nil
	}

	log.Printf("Seeding reference points path=%s", seedPath)
	if err := repositories.SeedReferencePoints(ctx, conn, seedPath); err != nil {
		return err
	}
	log.Println("Seeding complete.")

	return nil
}
