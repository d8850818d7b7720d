package usecase

import (
	"context"
	"time"

	"wastehub/internal/admin/application/ports/in"
	"wastehub/internal/admin/application/ports/out"
	"wastehub/internal/shared/logger"
)

// GetOverviewService собирает сводные показатели системы
type GetOverviewService struct {
	repo out.AdminRepository
	log  *logger.Logger
}

func NewGetOverviewService(repo out.AdminRepository, log *logger.Logger) *GetOverviewService {
	return &GetOverviewService{repo: repo, log: log}
}

func (s *GetOverviewService) Execute(ctx context.Context, _ in.GetOverviewInput) (*in.GetOverviewOutput, error) {
	overview, err := s.repo.Overview(ctx)
	if err != nil {
		s.log.Error(logger.Entry{
			Action:  "get_overview_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		return nil, err
	}

	return &in.GetOverviewOutput{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Overview:  *overview,
	}, nil
}
