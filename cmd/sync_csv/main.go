package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/invtally/invtally/internal/config"
	"github.com/invtally/invtally/internal/database"
	"github.com/invtally/invtally/internal/models"
	"github.com/invtally/invtally/internal/reconcile"
	"github.com/invtally/invtally/internal/store"
)

// sync_csv runs one reconciliation pass from a CSV batch file against the
// catalog database and prints the per-row outcome table.
func main() {
	file := flag.String("file", "", "path to the CSV batch file")
	modeFlag := flag.String("mode", "copy", "reconciliation mode: copy or full-sync")
	quiet := flag.Bool("quiet", false, "print the summary line only")
	flag.Parse()

	if *file == "" {
		flag.Usage()
		os.Exit(2)
	}

	mode, err := reconcile.ParseMode(*modeFlag)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.AutoMigrate(&models.Product{}); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	reconciler := reconcile.New(store.NewGormStore(db.DB))

	log.Printf("🔄 Reconciling %s (mode=%s)", *file, mode)
	report, err := reconciler.SyncFile(context.Background(), *file, mode)
	if err != nil {
		log.Fatalf("❌ Reconcile failed: %v", err)
	}

	if !*quiet {
		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ROW\tCODE\tSTATUS\tDETAIL")
		for _, o := range report.Outcomes {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", o.IndexLabel(), o.Code, o.Status, o.Detail)
		}
		tw.Flush()
	}

	log.Printf("✅ Run %s: %s", report.RunID, report.Summary())
	if report.Errors > 0 {
		os.Exit(1)
	}
}
