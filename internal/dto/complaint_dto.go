package dto

type CreateComplaintInput struct {
	Title        string  `json:"title" binding:"required,min=3,max=150"`
	Description  string  `json:"description" binding:"required,min=10"`
	Category     string  `json:"category" binding:"required,min=2,max=50"`
	DepartmentID *string `json:"department_id" binding:"omitempty,uuid"`
}

type UpdateStatusInput struct {
	Status string `json:"status" binding:"required,oneof=SUBMITTED IN_PROGRESS ESCALATED RESOLVED"`
}

// AssignComplaintInput is the wire form of the assignment action. The
// service converts it to a typed target so only the two known columns can
// ever be written.
type AssignComplaintInput struct {
	Type string `json:"type" binding:"required,oneof=department officer"`
	ID   string `json:"id" binding:"required,uuid"`
}
