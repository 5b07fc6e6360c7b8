package database

import (
	"github.com/anglerhub/pondkeeper/internal/database/service"
	"github.com/redis/rueidis"
	"go.uber.org/zap"
)

// Service provides access to all business logic services.
type Service struct {
	vote       *service.VoteService
	moderation *service.ModerationService
	admin      *service.AdminService
	report     *service.ReportService
}

// NewService creates a new service instance with all services.
func NewService(repository *Repository, cache rueidis.Client, logger *zap.Logger) *Service {
	voteModel := repository.Vote()
	accountModel := repository.Account()
	restrictionModel := repository.Restriction()
	reportModel := repository.Report()

	moderationService := service.NewModeration(restrictionModel, cache, logger)

	return &Service{
		vote:       service.NewVote(voteModel, accountModel, logger),
		moderation: moderationService,
		admin:      service.NewAdmin(voteModel, moderationService, logger),
		report:     service.NewReport(reportModel, logger),
	}
}

// Vote returns the vote ledger service.
func (s *Service) Vote() *service.VoteService {
	return s.vote
}

// Moderation returns the restriction lifecycle service.
func (s *Service) Moderation() *service.ModerationService {
	return s.moderation
}

// Admin returns the privileged override service.
func (s *Service) Admin() *service.AdminService {
	return s.admin
}

// Report returns the report queue service.
func (s *Service) Report() *service.ReportService {
	return s.report
}
