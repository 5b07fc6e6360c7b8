package database

import (
	"github.com/anglerhub/pondkeeper/internal/database/models"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// Repository provides access to all database models.
type Repository struct {
	account     *models.AccountModel
	vote        *models.VoteModel
	restriction *models.RestrictionModel
	report      *models.ReportModel
}

// NewRepository creates a new repository instance with all models.
func NewRepository(db *bun.DB, logger *zap.Logger) *Repository {
	account := models.NewAccount(db, logger)

	return &Repository{
		account:     account,
		vote:        models.NewVote(db, account, logger),
		restriction: models.NewRestriction(db, logger),
		report:      models.NewReport(db, logger),
	}
}

// Account returns the reputation account model repository.
func (r *Repository) Account() *models.AccountModel {
	return r.account
}

// Vote returns the vote ledger model repository.
func (r *Repository) Vote() *models.VoteModel {
	return r.vote
}

// Restriction returns the restriction model repository.
func (r *Repository) Restriction() *models.RestrictionModel {
	return r.restriction
}

// Report returns the report model repository.
func (r *Repository) Report() *models.ReportModel {
	return r.report
}
