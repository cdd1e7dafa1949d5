package service_test

import (
	"context"
	"testing"

	"github.com/gikomplain/backend/internal/dto"
	"github.com/gikomplain/backend/internal/model"
	"github.com/gikomplain/backend/internal/repository"
	"github.com/gikomplain/backend/internal/service"
	"github.com/gikomplain/backend/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func newComplaintService(db *gorm.DB) service.ComplaintService {
	return service.NewComplaintService(
		repository.NewComplaintRepository(db),
		repository.NewUserRepository(db),
		nil, // cache disabled in tests
	)
}

func TestSubmit_SanitizesInput(t *testing.T) {
	db := setupTestDB(t)
	student := seedUser(t, db, "s@giki.edu.pk", model.RoleStudent, true)
	svc := newComplaintService(db)

	complaint, err := svc.Submit(context.Background(), student.ID, dto.CreateComplaintInput{
		Title:       `<script>alert(1)</script>Leaking roof`,
		Description: `Water drips onto desks <img src=x onerror=alert(1)> whenever it rains.`,
		Category:    "Facilities",
	})
	assert.NoError(t, err)
	assert.NotContains(t, complaint.Title, "<script>")
	assert.Contains(t, complaint.Title, "Leaking roof")
	assert.NotContains(t, complaint.Description, "<img")
	assert.Equal(t, model.StatusSubmitted, complaint.Status)
	assert.Equal(t, student.ID, complaint.ComplainantID)
}

func TestSubmit_WithDepartmentRouting(t *testing.T) {
	db := setupTestDB(t)
	student := seedUser(t, db, "s@giki.edu.pk", model.RoleStudent, true)
	dept := seedDepartment(t, db, "Transport")
	svc := newComplaintService(db)

	deptID := dept.ID.String()
	complaint, err := svc.Submit(context.Background(), student.ID, dto.CreateComplaintInput{
		Title:        "Bus route 4 always late",
		Description:  "The morning shuttle has been over 30 minutes late all week.",
		Category:     "Transport",
		DepartmentID: &deptID,
	})
	assert.NoError(t, err)
	if assert.NotNil(t, complaint.AssignedDeptID) {
		assert.Equal(t, dept.ID, *complaint.AssignedDeptID)
	}
}

func TestAssign_DepartmentMutatesOnlyDeptColumn(t *testing.T) {
	db := setupTestDB(t)
	student := seedUser(t, db, "s@giki.edu.pk", model.RoleStudent, true)
	officer := seedUser(t, db, "o@giki.edu.pk", model.RoleDeptOfficer, true)
	dept := seedDepartment(t, db, "Facilities")
	svc := newComplaintService(db)

	complaint := seedComplaint(t, db, student.ID, model.StatusInProgress)
	assert.NoError(t, db.Model(complaint).Update("assigned_officer_id", officer.ID).Error)

	err := svc.Assign(context.Background(), complaint.ID, service.DepartmentTarget{ID: dept.ID})
	assert.NoError(t, err)

	var after model.Complaint
	assert.NoError(t, db.First(&after, "id = ?", complaint.ID).Error)
	if assert.NotNil(t, after.AssignedDeptID) {
		assert.Equal(t, dept.ID, *after.AssignedDeptID)
	}
	if assert.NotNil(t, after.AssignedOfficerID, "officer assignment must survive") {
		assert.Equal(t, officer.ID, *after.AssignedOfficerID)
	}
	assert.Equal(t, model.StatusInProgress, after.Status)
	assert.Equal(t, complaint.Title, after.Title)
}

func TestAssign_OfficerMutatesOnlyOfficerColumn(t *testing.T) {
	db := setupTestDB(t)
	student := seedUser(t, db, "s@giki.edu.pk", model.RoleStudent, true)
	officer := seedUser(t, db, "o@giki.edu.pk", model.RoleFaculty, true)
	dept := seedDepartment(t, db, "Academics")
	svc := newComplaintService(db)

	complaint := seedComplaint(t, db, student.ID, model.StatusEscalated)
	assert.NoError(t, db.Model(complaint).Update("assigned_dept_id", dept.ID).Error)

	err := svc.Assign(context.Background(), complaint.ID, service.OfficerTarget{ID: officer.ID})
	assert.NoError(t, err)

	var after model.Complaint
	assert.NoError(t, db.First(&after, "id = ?", complaint.ID).Error)
	if assert.NotNil(t, after.AssignedOfficerID) {
		assert.Equal(t, officer.ID, *after.AssignedOfficerID)
	}
	if assert.NotNil(t, after.AssignedDeptID, "department assignment must survive") {
		assert.Equal(t, dept.ID, *after.AssignedDeptID)
	}
	assert.Equal(t, model.StatusEscalated, after.Status)
	assert.Equal(t, complaint.Title, after.Title)
}

func TestAssign_IneligibleOfficerRejected(t *testing.T) {
	db := setupTestDB(t)
	student := seedUser(t, db, "s@giki.edu.pk", model.RoleStudent, true)
	other := seedUser(t, db, "other@giki.edu.pk", model.RoleStudent, true)
	svc := newComplaintService(db)

	complaint := seedComplaint(t, db, student.ID, model.StatusSubmitted)

	err := svc.Assign(context.Background(), complaint.ID, service.OfficerTarget{ID: other.ID})
	assert.ErrorIs(t, err, apperror.ErrIneligibleOfficer)

	var after model.Complaint
	assert.NoError(t, db.First(&after, "id = ?", complaint.ID).Error)
	assert.Nil(t, after.AssignedOfficerID)
}

func TestAssign_UnknownTargetsAndComplaints(t *testing.T) {
	db := setupTestDB(t)
	student := seedUser(t, db, "s@giki.edu.pk", model.RoleStudent, true)
	officer := seedUser(t, db, "o@giki.edu.pk", model.RoleStaff, true)
	dept := seedDepartment(t, db, "Finance")
	svc := newComplaintService(db)

	complaint := seedComplaint(t, db, student.ID, model.StatusSubmitted)

	err := svc.Assign(context.Background(), uuid.New(), service.DepartmentTarget{ID: dept.ID})
	assert.ErrorIs(t, err, apperror.ErrNotFound, "unknown complaint")

	err = svc.Assign(context.Background(), complaint.ID, service.OfficerTarget{ID: uuid.New()})
	assert.ErrorIs(t, err, apperror.ErrNotFound, "unknown officer")

	err = svc.Assign(context.Background(), uuid.New(), service.OfficerTarget{ID: officer.ID})
	assert.ErrorIs(t, err, apperror.ErrNotFound, "unknown complaint, officer target")
}

func TestParseAssignmentTarget(t *testing.T) {
	id := uuid.New()

	target, err := service.ParseAssignmentTarget(dto.AssignComplaintInput{Type: "department", ID: id.String()})
	assert.NoError(t, err)
	assert.Equal(t, service.DepartmentTarget{ID: id}, target)

	target, err = service.ParseAssignmentTarget(dto.AssignComplaintInput{Type: "officer", ID: id.String()})
	assert.NoError(t, err)
	assert.Equal(t, service.OfficerTarget{ID: id}, target)

	_, err = service.ParseAssignmentTarget(dto.AssignComplaintInput{Type: "status", ID: id.String()})
	assert.ErrorIs(t, err, apperror.ErrBadRequest, "no third field can be addressed")

	_, err = service.ParseAssignmentTarget(dto.AssignComplaintInput{Type: "department", ID: "not-a-uuid"})
	assert.ErrorIs(t, err, apperror.ErrBadRequest)
}

func TestUpdateStatus_Transitions(t *testing.T) {
	db := setupTestDB(t)
	student := seedUser(t, db, "s@giki.edu.pk", model.RoleStudent, true)
	svc := newComplaintService(db)

	complaint := seedComplaint(t, db, student.ID, model.StatusSubmitted)

	assert.NoError(t, svc.UpdateStatus(context.Background(), complaint.ID, model.StatusInProgress))
	assert.NoError(t, svc.UpdateStatus(context.Background(), complaint.ID, model.StatusResolved))

	// RESOLVED is terminal.
	err := svc.UpdateStatus(context.Background(), complaint.ID, model.StatusInProgress)
	assert.ErrorIs(t, err, apperror.ErrInvalidTransition)

	err = svc.UpdateStatus(context.Background(), uuid.New(), model.StatusInProgress)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

// Every write path shares one invariant: the cached dashboard counters are
// dropped so the next admin read recounts.
func TestWrites_DropCachedDashboardStats(t *testing.T) {
	db := setupTestDB(t)
	student := seedUser(t, db, "s@giki.edu.pk", model.RoleStudent, true)
	dept := seedDepartment(t, db, "IT Services")
	cache := newFakeCache()

	complaintSvc := service.NewComplaintService(
		repository.NewComplaintRepository(db),
		repository.NewUserRepository(db),
		cache,
	)
	dashboardSvc := service.NewDashboardService(
		repository.NewComplaintRepository(db),
		repository.NewDepartmentRepository(db),
		repository.NewUserRepository(db),
		cache,
	)

	complaint := seedComplaint(t, db, student.ID, model.StatusSubmitted)

	warm := func() {
		t.Helper()
		_, err := dashboardSvc.Overview(context.Background(), repository.ComplaintFilter{})
		assert.NoError(t, err)
		assert.NotEmpty(t, cache.entries)
	}

	warm()
	_, err := complaintSvc.Submit(context.Background(), student.ID, dto.CreateComplaintInput{
		Title:       "Reading room lights flicker",
		Description: "The lights in the main reading room flicker constantly.",
		Category:    "Facilities",
	})
	assert.NoError(t, err)
	assert.Empty(t, cache.entries, "submit must drop the cached counters")

	// The next overview recounts and sees the new complaint.
	overview, err := dashboardSvc.Overview(context.Background(), repository.ComplaintFilter{})
	assert.NoError(t, err)
	assert.EqualValues(t, 2, overview.Stats.Total)

	warm()
	assert.NoError(t, complaintSvc.UpdateStatus(context.Background(), complaint.ID, model.StatusResolved))
	assert.Empty(t, cache.entries, "status change must drop the cached counters")

	overview, err = dashboardSvc.Overview(context.Background(), repository.ComplaintFilter{})
	assert.NoError(t, err)
	assert.EqualValues(t, 1, overview.Stats.Resolved)

	warm()
	assert.NoError(t, complaintSvc.Assign(context.Background(), complaint.ID, service.DepartmentTarget{ID: dept.ID}))
	assert.Empty(t, cache.entries, "assignment must drop the cached counters")
	assert.Equal(t, 3, cache.deletes)
}

func TestMyComplaints_OwnershipAndOrder(t *testing.T) {
	db := setupTestDB(t)
	alice := seedUser(t, db, "alice@giki.edu.pk", model.RoleStudent, true)
	bob := seedUser(t, db, "bob@giki.edu.pk", model.RoleStudent, true)
	svc := newComplaintService(db)

	seedComplaint(t, db, alice.ID, model.StatusSubmitted)
	seedComplaint(t, db, alice.ID, model.StatusResolved)
	seedComplaint(t, db, bob.ID, model.StatusSubmitted)

	mine, err := svc.MyComplaints(context.Background(), alice.ID)
	assert.NoError(t, err)
	assert.Len(t, mine, 2)
	for _, complaint := range mine {
		assert.Equal(t, alice.ID, complaint.ComplainantID)
	}
}

func TestDepartmentQueue(t *testing.T) {
	db := setupTestDB(t)
	student := seedUser(t, db, "s@giki.edu.pk", model.RoleStudent, true)
	it := seedDepartment(t, db, "IT Services")
	transport := seedDepartment(t, db, "Transport")
	svc := newComplaintService(db)

	inIT := seedComplaint(t, db, student.ID, model.StatusSubmitted)
	assert.NoError(t, db.Model(inIT).Update("assigned_dept_id", it.ID).Error)
	inTransport := seedComplaint(t, db, student.ID, model.StatusSubmitted)
	assert.NoError(t, db.Model(inTransport).Update("assigned_dept_id", transport.ID).Error)
	seedComplaint(t, db, student.ID, model.StatusSubmitted) // unrouted

	queue, err := svc.DepartmentQueue(context.Background(), model.RoleDeptOfficer, &it.ID)
	assert.NoError(t, err)
	if assert.Len(t, queue, 1) {
		assert.Equal(t, inIT.ID, queue[0].ID)
	}

	// Officer without a department has an empty queue.
	queue, err = svc.DepartmentQueue(context.Background(), model.RoleDeptOfficer, nil)
	assert.NoError(t, err)
	assert.Empty(t, queue)

	// Admin without a department oversees everything.
	queue, err = svc.DepartmentQueue(context.Background(), model.RoleAdmin, nil)
	assert.NoError(t, err)
	assert.Len(t, queue, 3)
}
