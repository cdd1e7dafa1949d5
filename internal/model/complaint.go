package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status is the complaint lifecycle state.
type Status string

const (
	StatusSubmitted  Status = "SUBMITTED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusEscalated  Status = "ESCALATED"
	StatusResolved   Status = "RESOLVED"
)

func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusSubmitted, StatusInProgress, StatusEscalated, StatusResolved:
		return Status(s), true
	default:
		return "", false
	}
}

func (s Status) Valid() bool {
	_, ok := ParseStatus(string(s))
	return ok
}

// statusTransitions is the allowed lifecycle. RESOLVED is terminal.
var statusTransitions = map[Status][]Status{
	StatusSubmitted:  {StatusInProgress, StatusEscalated, StatusResolved},
	StatusInProgress: {StatusEscalated, StatusResolved},
	StatusEscalated:  {StatusInProgress, StatusResolved},
	StatusResolved:   {},
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Complaint struct {
	ID                uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	Title             string      `gorm:"size:150;not null" json:"title"`
	Description       string      `gorm:"type:text;not null" json:"description"`
	Category          string      `gorm:"size:50;not null" json:"category"`
	Status            Status      `gorm:"size:20;not null;default:SUBMITTED" json:"status"`
	ComplainantID     uuid.UUID   `gorm:"type:uuid;not null;index" json:"complainant_id"`
	Complainant       *User       `gorm:"foreignKey:ComplainantID" json:"complainant,omitempty"`
	AssignedDeptID    *uuid.UUID  `gorm:"type:uuid;index" json:"assigned_dept_id,omitempty"`
	AssignedDept      *Department `gorm:"foreignKey:AssignedDeptID" json:"assigned_dept,omitempty"`
	AssignedOfficerID *uuid.UUID  `gorm:"type:uuid;index" json:"assigned_officer_id,omitempty"`
	AssignedOfficer   *User       `gorm:"foreignKey:AssignedOfficerID" json:"assigned_officer,omitempty"`
	CreatedAt         time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

func (c *Complaint) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Status == "" {
		c.Status = StatusSubmitted
	}
	return nil
}
