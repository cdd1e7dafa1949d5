package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/gikomplain/backend/internal/dto"
	"github.com/gikomplain/backend/internal/model"
	"github.com/gikomplain/backend/internal/repository"
	"github.com/gikomplain/backend/pkg/apperror"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

// AssignmentTarget is the discriminated assignment payload. Exactly one
// concrete kind exists per column, so no other complaint field can ever be
// written through the assignment action.
type AssignmentTarget interface {
	assignmentTarget()
}

type DepartmentTarget struct {
	ID uuid.UUID
}

type OfficerTarget struct {
	ID uuid.UUID
}

func (DepartmentTarget) assignmentTarget() {}
func (OfficerTarget) assignmentTarget()    {}

// ParseAssignmentTarget converts the wire payload into a typed target.
func ParseAssignmentTarget(input dto.AssignComplaintInput) (AssignmentTarget, error) {
	id, err := uuid.Parse(input.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid target id", apperror.ErrBadRequest)
	}

	switch input.Type {
	case "department":
		return DepartmentTarget{ID: id}, nil
	case "officer":
		return OfficerTarget{ID: id}, nil
	default:
		return nil, fmt.Errorf("%w: unknown assignment type %q", apperror.ErrBadRequest, input.Type)
	}
}

type ComplaintService interface {
	Submit(ctx context.Context, complainantID uuid.UUID, input dto.CreateComplaintInput) (*model.Complaint, error)
	MyComplaints(ctx context.Context, complainantID uuid.UUID) ([]model.Complaint, error)
	DepartmentQueue(ctx context.Context, role model.Role, departmentID *uuid.UUID) ([]model.Complaint, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, next model.Status) error
	Assign(ctx context.Context, id uuid.UUID, target AssignmentTarget) error
}

type complaintService struct {
	complaintRepo repository.ComplaintRepository
	userRepo      repository.UserRepository
	cache         Cache
	sanitizer     *bluemonday.Policy
}

func NewComplaintService(
	complaintRepo repository.ComplaintRepository,
	userRepo repository.UserRepository,
	cache Cache,
) ComplaintService {
	return &complaintService{
		complaintRepo: complaintRepo,
		userRepo:      userRepo,
		cache:         cache,
		sanitizer:     bluemonday.StrictPolicy(),
	}
}

func (s *complaintService) Submit(ctx context.Context, complainantID uuid.UUID, input dto.CreateComplaintInput) (*model.Complaint, error) {
	complaint := &model.Complaint{
		Title:         s.sanitizer.Sanitize(input.Title),
		Description:   s.sanitizer.Sanitize(input.Description),
		Category:      s.sanitizer.Sanitize(input.Category),
		Status:        model.StatusSubmitted,
		ComplainantID: complainantID,
	}

	if input.DepartmentID != nil && *input.DepartmentID != "" {
		id, err := uuid.Parse(*input.DepartmentID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid department id", apperror.ErrBadRequest)
		}
		complaint.AssignedDeptID = &id
	}

	if err := s.complaintRepo.Create(ctx, complaint); err != nil {
		return nil, err
	}

	s.invalidateDashboardStats(ctx)

	return complaint, nil
}

func (s *complaintService) MyComplaints(ctx context.Context, complainantID uuid.UUID) ([]model.Complaint, error) {
	return s.complaintRepo.FindByComplainant(ctx, complainantID)
}

// DepartmentQueue returns the complaints routed to the caller's
// department. Admins without a department see everything; an officer
// without a department has an empty queue.
func (s *complaintService) DepartmentQueue(ctx context.Context, role model.Role, departmentID *uuid.UUID) ([]model.Complaint, error) {
	if departmentID == nil {
		if role.IsAdmin() {
			return s.complaintRepo.FindAll(ctx, repository.ComplaintFilter{})
		}
		return []model.Complaint{}, nil
	}

	return s.complaintRepo.FindByDepartment(ctx, *departmentID)
}

func (s *complaintService) UpdateStatus(ctx context.Context, id uuid.UUID, next model.Status) error {
	complaint, err := s.complaintRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}

	if !complaint.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", apperror.ErrInvalidTransition, complaint.Status, next)
	}

	if err := s.complaintRepo.UpdateStatus(ctx, id, next); err != nil {
		return err
	}

	s.invalidateDashboardStats(ctx)

	return nil
}

// Assign updates exactly one of the two assignment columns, leaving every
// other complaint field untouched. Officer targets must exist and hold an
// officer-eligible role; department targets are written as-is.
func (s *complaintService) Assign(ctx context.Context, id uuid.UUID, target AssignmentTarget) error {
	var err error
	switch t := target.(type) {
	case DepartmentTarget:
		err = s.complaintRepo.AssignDepartment(ctx, id, t.ID)
	case OfficerTarget:
		var officer *model.User
		officer, err = s.userRepo.FindByID(ctx, t.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: officer", apperror.ErrNotFound)
			}
			return err
		}
		if !officer.Role.OfficerEligible() {
			return apperror.ErrIneligibleOfficer
		}
		err = s.complaintRepo.AssignOfficer(ctx, id, t.ID)
	default:
		return fmt.Errorf("%w: unsupported assignment target %T", apperror.ErrBadRequest, target)
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: complaint", apperror.ErrNotFound)
		}
		return err
	}

	s.invalidateDashboardStats(ctx)

	return nil
}

// invalidateDashboardStats drops the cached admin counters so the next
// dashboard read reflects the write. Cache trouble is logged, never fatal.
func (s *complaintService) invalidateDashboardStats(ctx context.Context) {
	if s.cache == nil {
		return
	}

	if err := s.cache.Del(ctx, dashboardStatsKey); err != nil {
		log.Printf("failed to invalidate dashboard stats cache: %v", err)
	}
}
