package dto

import "github.com/gikomplain/backend/internal/model"

// DashboardStats are the admin quick-view counters. Pending is derived
// from the other two, never queried independently, so the three always
// agree by construction.
type DashboardStats struct {
	Total    int64 `json:"total"`
	Resolved int64 `json:"resolved"`
	Pending  int64 `json:"pending"`
}

type DashboardResponse struct {
	Stats       DashboardStats     `json:"stats"`
	Complaints  []model.Complaint  `json:"complaints"`
	Departments []model.Department `json:"departments"`
	Officers    []UserResponse     `json:"officers"`
}
