package services

import (
	"github.com/sjperalta/debtbook-api/internal/jobs"
	"github.com/sjperalta/debtbook-api/internal/policy"
)

type JobService struct {
	worker *jobs.Worker
}

func NewJobService(worker *jobs.Worker) *JobService {
	return &JobService{
		worker: worker,
	}
}

// GetStatus reports background worker statistics to administrators
func (s *JobService) GetStatus(principal policy.Principal) (*jobs.WorkerStats, error) {
	if !principal.IsAdmin() {
		return nil, ErrForbidden
	}
	stats := s.worker.GetStats()
	return &stats, nil
}
