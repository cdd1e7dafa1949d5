package repository

import (
	"context"

	"github.com/gikomplain/backend/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ComplaintFilter narrows listing queries. Nil fields are not applied;
// set fields combine with AND semantics.
type ComplaintFilter struct {
	Status   *model.Status
	Category *string
}

type ComplaintRepository interface {
	Create(ctx context.Context, complaint *model.Complaint) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Complaint, error)
	FindByComplainant(ctx context.Context, complainantID uuid.UUID) ([]model.Complaint, error)
	FindByDepartment(ctx context.Context, departmentID uuid.UUID) ([]model.Complaint, error)
	FindAll(ctx context.Context, filter ComplaintFilter) ([]model.Complaint, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status model.Status) (int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.Status) error
	AssignDepartment(ctx context.Context, id uuid.UUID, departmentID uuid.UUID) error
	AssignOfficer(ctx context.Context, id uuid.UUID, officerID uuid.UUID) error
}

type complaintRepository struct {
	db *gorm.DB
}

func NewComplaintRepository(db *gorm.DB) ComplaintRepository {
	return &complaintRepository{db: db}
}

func (r *complaintRepository) Create(ctx context.Context, complaint *model.Complaint) error {
	return r.db.WithContext(ctx).Create(complaint).Error
}

func (r *complaintRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Complaint, error) {
	var complaint model.Complaint
	if err := r.db.WithContext(ctx).
		Preload("Complainant").
		Preload("AssignedDept").
		Preload("AssignedOfficer").
		Where("id = ?", id).
		First(&complaint).Error; err != nil {
		return nil, err
	}

	return &complaint, nil
}

func (r *complaintRepository) FindByComplainant(ctx context.Context, complainantID uuid.UUID) ([]model.Complaint, error) {
	var complaints []model.Complaint
	if err := r.db.WithContext(ctx).
		Preload("AssignedDept").
		Preload("AssignedOfficer").
		Where("complainant_id = ?", complainantID).
		Order("created_at desc").
		Find(&complaints).Error; err != nil {
		return nil, err
	}

	return complaints, nil
}

func (r *complaintRepository) FindByDepartment(ctx context.Context, departmentID uuid.UUID) ([]model.Complaint, error) {
	var complaints []model.Complaint
	if err := r.db.WithContext(ctx).
		Preload("Complainant").
		Preload("AssignedOfficer").
		Where("assigned_dept_id = ?", departmentID).
		Order("created_at desc").
		Find(&complaints).Error; err != nil {
		return nil, err
	}

	return complaints, nil
}

func (r *complaintRepository) FindAll(ctx context.Context, filter ComplaintFilter) ([]model.Complaint, error) {
	query := r.db.WithContext(ctx).
		Preload("Complainant").
		Preload("AssignedDept").
		Preload("AssignedOfficer")

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}

	var complaints []model.Complaint
	if err := query.Order("created_at desc").Find(&complaints).Error; err != nil {
		return nil, err
	}

	return complaints, nil
}

func (r *complaintRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Complaint{}).Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (r *complaintRepository) CountByStatus(ctx context.Context, status model.Status) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.Complaint{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (r *complaintRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.Status) error {
	return r.updateColumn(ctx, id, "status", status)
}

// AssignDepartment writes assigned_dept_id and nothing else.
func (r *complaintRepository) AssignDepartment(ctx context.Context, id uuid.UUID, departmentID uuid.UUID) error {
	return r.updateColumn(ctx, id, "assigned_dept_id", departmentID)
}

// AssignOfficer writes assigned_officer_id and nothing else.
func (r *complaintRepository) AssignOfficer(ctx context.Context, id uuid.UUID, officerID uuid.UUID) error {
	return r.updateColumn(ctx, id, "assigned_officer_id", officerID)
}

func (r *complaintRepository) updateColumn(ctx context.Context, id uuid.UUID, column string, value interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&model.Complaint{}).
		Where("id = ?", id).
		Update(column, value)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
