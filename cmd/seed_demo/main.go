package main

import (
	"context"
	"fmt"
	"log"

	"github.com/invtally/invtally/internal/config"
	"github.com/invtally/invtally/internal/database"
	"github.com/invtally/invtally/internal/models"
	"github.com/invtally/invtally/internal/store"
)

func main() {
	fmt.Println("🌱 invtally Demo Data Seeder")
	fmt.Println("============================")

	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer db.Close()

	fmt.Println("✅ Connected to database")

	// Run migrations first
	fmt.Println("🔨 Running database migrations...")
	if err := db.AutoMigrate(&models.Product{}); err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}
	fmt.Println("✅ Migrations complete")
	fmt.Println()

	// Check if data already exists
	var productCount int64
	db.Model(&models.Product{}).Count(&productCount)
	if productCount > 0 {
		fmt.Printf("⚠️  Database already has %d products. Clear it first? (y/N): ", productCount)
		var answer string
		fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("❌ Aborted. Database not modified.")
			return
		}

		fmt.Println("🗑️  Clearing existing data...")
		db.Exec("TRUNCATE TABLE products RESTART IDENTITY")
		fmt.Println("✅ Data cleared")
	}

	fmt.Println()
	fmt.Println("📦 Creating demo products...")

	demo := []models.Product{
		{Name: "Wireless Mouse", Code: "WM-1001", Description: "2.4GHz optical mouse", Cost: 8.50, Retail: 19.99, RequiredQty: 40, GoodQty: 38, DamagedQty: 1, Gift: 1},
		{Name: "USB-C Cable 1m", Code: "UC-2001", Description: "Braided charging cable", Cost: 1.20, Retail: 6.99, RequiredQty: 120, GoodQty: 120},
		{Name: "Mechanical Keyboard", Code: "KB-3001", Description: "87-key, brown switches", Cost: 32.00, Retail: 79.99, RequiredQty: 15, GoodQty: 12, DamagedQty: 2},
		{Name: "Laptop Stand", Code: "LS-4001", Description: "Aluminium, foldable", Cost: 11.00, Retail: 29.99, RequiredQty: 25, GoodQty: 25, Note: "pallet B"},
		{Name: "Webcam 1080p", Code: "WC-5001", Description: "", Cost: 18.40, Retail: 44.99, RequiredQty: 10, GoodQty: 7, Gift: 1},
		{Name: "Desk Mat XL", Code: "DM-6001", Description: "900x400mm", Cost: 4.75, Retail: 14.99, RequiredQty: 0, GoodQty: 9},
	}

	s := store.NewGormStore(db.DB)
	ctx := context.Background()
	for i := range demo {
		demo[i].RecomputeTotal()
		if err := s.Create(ctx, &demo[i]); err != nil {
			log.Fatalf("❌ Failed to create %s: %v", demo[i].Code, err)
		}
		fmt.Printf("   • %s (%s) stock=%d\n", demo[i].Name, demo[i].Code, demo[i].TotalQty)
	}

	fmt.Println()
	fmt.Printf("✅ Seeded %d demo products\n", len(demo))
}
