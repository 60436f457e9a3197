package app

import (
	"gorm.io/gorm"

	"github.com/beaverchoice/fulfillment-backend/internal/data/repos/ledgerrepo"
	"github.com/beaverchoice/fulfillment-backend/internal/data/repos/quotesrepo"
	"github.com/beaverchoice/fulfillment-backend/internal/data/repos/runsrepo"
	"github.com/beaverchoice/fulfillment-backend/internal/platform/logger"
)

type Repos struct {
	Ledger ledgerrepo.Repo
	Quotes quotesrepo.Repo
	Runs   runsrepo.Repo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Ledger: ledgerrepo.New(db, log),
		Quotes: quotesrepo.New(db, log),
		Runs:   runsrepo.New(db, log),
	}
}
