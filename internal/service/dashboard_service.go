package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/gikomplain/backend/internal/dto"
	"github.com/gikomplain/backend/internal/model"
	"github.com/gikomplain/backend/internal/repository"
)

const (
	dashboardStatsKey = "dashboard:admin:stats"
	dashboardStatsTTL = time.Minute
)

type DashboardService interface {
	Overview(ctx context.Context, filter repository.ComplaintFilter) (*dto.DashboardResponse, error)
}

type dashboardService struct {
	complaintRepo repository.ComplaintRepository
	deptRepo      repository.DepartmentRepository
	userRepo      repository.UserRepository
	cache         Cache
}

func NewDashboardService(
	complaintRepo repository.ComplaintRepository,
	deptRepo repository.DepartmentRepository,
	userRepo repository.UserRepository,
	cache Cache,
) DashboardService {
	return &dashboardService{
		complaintRepo: complaintRepo,
		deptRepo:      deptRepo,
		userRepo:      userRepo,
		cache:         cache,
	}
}

func (s *dashboardService) Overview(ctx context.Context, filter repository.ComplaintFilter) (*dto.DashboardResponse, error) {
	stats, err := s.stats(ctx)
	if err != nil {
		return nil, err
	}

	complaints, err := s.complaintRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	departments, err := s.deptRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	officers, err := s.userRepo.FindOfficers(ctx)
	if err != nil {
		return nil, err
	}

	officerResponses := make([]dto.UserResponse, 0, len(officers))
	for i := range officers {
		officerResponses = append(officerResponses, dto.NewUserResponse(&officers[i]))
	}

	return &dto.DashboardResponse{
		Stats:       stats,
		Complaints:  complaints,
		Departments: departments,
		Officers:    officerResponses,
	}, nil
}

// stats returns the quick-view counters, served from redis when warm.
// Pending is derived from the other two counts so the three can never
// disagree, whatever the data set.
func (s *dashboardService) stats(ctx context.Context) (dto.DashboardStats, error) {
	if cached, ok := s.cachedStats(ctx); ok {
		return cached, nil
	}

	total, err := s.complaintRepo.Count(ctx)
	if err != nil {
		return dto.DashboardStats{}, err
	}

	resolved, err := s.complaintRepo.CountByStatus(ctx, model.StatusResolved)
	if err != nil {
		return dto.DashboardStats{}, err
	}

	stats := dto.DashboardStats{
		Total:    total,
		Resolved: resolved,
		Pending:  total - resolved,
	}

	s.cacheStats(ctx, stats)

	return stats, nil
}

func (s *dashboardService) cachedStats(ctx context.Context) (dto.DashboardStats, bool) {
	if s.cache == nil {
		return dto.DashboardStats{}, false
	}

	payload, err := s.cache.Get(ctx, dashboardStatsKey)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			log.Printf("failed to read dashboard stats cache: %v", err)
		}
		return dto.DashboardStats{}, false
	}

	var stats dto.DashboardStats
	if err := json.Unmarshal(payload, &stats); err != nil {
		return dto.DashboardStats{}, false
	}

	return stats, true
}

func (s *dashboardService) cacheStats(ctx context.Context, stats dto.DashboardStats) {
	if s.cache == nil {
		return
	}

	payload, err := json.Marshal(stats)
	if err != nil {
		return
	}

	if err := s.cache.Set(ctx, dashboardStatsKey, payload, dashboardStatsTTL); err != nil {
		log.Printf("failed to write dashboard stats cache: %v", err)
	}
}
