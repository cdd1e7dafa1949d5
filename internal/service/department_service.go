package service

import (
	"context"

	"github.com/gikomplain/backend/internal/model"
	"github.com/gikomplain/backend/internal/repository"
)

type DepartmentService interface {
	List(ctx context.Context) ([]model.Department, error)
}

type departmentService struct {
	deptRepo repository.DepartmentRepository
}

func NewDepartmentService(deptRepo repository.DepartmentRepository) DepartmentService {
	return &departmentService{deptRepo: deptRepo}
}

func (s *departmentService) List(ctx context.Context) ([]model.Department, error) {
	return s.deptRepo.FindAll(ctx)
}
