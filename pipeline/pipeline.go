// Package pipeline runs one extraction pass: remote users and carts into the
// local schema, in a fixed order, over a single exclusively-owned connection.
package pipeline

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/bbenammar-07/analyse-magazin-AXONEDATA/config"
	"github.com/bbenammar-07/analyse-magazin-AXONEDATA/dummyjson"
	"github.com/bbenammar-07/analyse-magazin-AXONEDATA/models"
	"github.com/bbenammar-07/analyse-magazin-AXONEDATA/repository"
)

// OpenFunc opens the storage connection. Swappable so tests can run against
// an in-memory database.
type OpenFunc func(dsn string) (*gorm.DB, error)

// Pipeline sequences connect → ensure schema → extract users → save users →
// extract carts → filter and save carts. Every step must succeed before the
// next starts; any failure aborts the rest of the run. The connection is
// released on all exit paths.
type Pipeline struct {
	Config config.Config
	Client *dummyjson.Client
	Open   OpenFunc
}

func New(cfg config.Config) *Pipeline {
	return &Pipeline{
		Config: cfg,
		Client: dummyjson.NewClient(cfg.SourceBaseURL, cfg.PageSize),
		Open:   openPostgres,
	}
}

func openPostgres(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{})
}

// Run executes one full pass. There is no checkpointing: a rerun always
// restarts from the user extraction, and the upserts make that converge.
func (p *Pipeline) Run() (Stats, error) {
	runID := uuid.NewString()
	log.Printf("🚀 Extraction run %s starting", runID)

	var stats Stats

	db, err := p.Open(p.Config.DSN())
	if err != nil {
		return stats, fmt.Errorf("connect to storage: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return stats, fmt.Errorf("connect to storage: %w", err)
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("❌ Failed to close storage connection: %v", cerr)
			return
		}
		log.Printf("✅ Storage connection closed")
	}()
	log.Printf("✅ Connected to storage")

	if err := models.Migrate(db); err != nil {
		return stats, fmt.Errorf("ensure schema: %w", err)
	}
	log.Printf("✅ Schema ready")

	users, err := p.Client.FetchUsers()
	if err != nil {
		return stats, err
	}
	stats.UsersExtracted = len(users)

	saved, err := repository.UpsertUsers(db, users)
	if err != nil {
		return stats, err
	}
	stats.UsersSaved = saved
	log.Printf("✅ Saved %d users", saved)

	carts, err := p.Client.FetchCarts()
	if err != nil {
		return stats, err
	}
	stats.CartsExtracted = len(carts)

	accepted, rejected := PartitionCarts(carts, UserIDSet(users))
	for _, cart := range rejected {
		log.Printf("⚠️ Cart %d skipped: user %d does not exist", cart.ID, cart.UserID)
	}
	stats.CartsRejected = len(rejected)

	cartsSaved, productsSaved, err := repository.UpsertCarts(db, accepted, p.Config.LineItemPolicy)
	if err != nil {
		return stats, err
	}
	stats.CartsSaved = cartsSaved
	stats.ProductsSaved = productsSaved
	log.Printf("✅ Saved %d carts (%d skipped), %d line items", cartsSaved, len(rejected), productsSaved)

	log.Printf("✅ Extraction run %s complete: %s", runID, stats)
	return stats, nil
}
