package main

import (
	"flag"

	"github.com/probuild/sitereport-backend/internal"
	"github.com/probuild/sitereport-backend/internal/config"
	"github.com/probuild/sitereport-backend/internal/utils"

	"github.com/rs/zerolog/log"
)

// Repairs reports whose page orderings are no longer a dense 1..N sequence.
func main() {
	dryRun := flag.Bool("dry-run", false, "Show what would be repaired without making changes")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := internal.InitDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer internal.CloseDB(db)

	if *dryRun {
		log.Info().Msg("running in DRY RUN mode, no changes will be made")
		if err := utils.RepairPageOrdersDryRun(db); err != nil {
			log.Fatal().Err(err).Msg("dry run failed")
		}
	} else {
		log.Info().Msg("repairing page orderings")
		if err := utils.RepairPageOrders(db); err != nil {
			log.Fatal().Err(err).Msg("repair failed")
		}
		log.Info().Msg("repair completed")
	}
}
