package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/gikomplain/backend/internal/model"
	"github.com/gikomplain/backend/internal/service"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Unique in-memory database per test to avoid cross-test collisions.
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&model.Department{}, &model.User{}, &model.Complaint{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string, role model.Role, verified bool) *model.User {
	t.Helper()
	user := &model.User{
		Email:        email,
		PasswordHash: "x",
		Name:         "Seed User",
		Role:         role,
	}
	if verified {
		now := time.Now()
		user.EmailVerifiedAt = &now
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user %s: %v", email, err)
	}
	return user
}

func seedDepartment(t *testing.T, db *gorm.DB, name string) *model.Department {
	t.Helper()
	department := &model.Department{Name: name}
	if err := db.Create(department).Error; err != nil {
		t.Fatalf("seed department %s: %v", name, err)
	}
	return department
}

func seedComplaint(t *testing.T, db *gorm.DB, complainantID uuid.UUID, status model.Status) *model.Complaint {
	t.Helper()
	complaint := &model.Complaint{
		Title:         "Projector not working",
		Description:   "The projector in lecture hall 3 does not turn on.",
		Category:      "Facilities",
		Status:        status,
		ComplainantID: complainantID,
	}
	if err := db.Create(complaint).Error; err != nil {
		t.Fatalf("seed complaint: %v", err)
	}
	return complaint
}

// recordingMailer captures outgoing verification mails instead of logging.
type recordingMailer struct {
	recipients []string
	links      []string
}

func (m *recordingMailer) SendVerification(ctx context.Context, to, link string) error {
	m.recipients = append(m.recipients, to)
	m.links = append(m.links, link)
	return nil
}

// fakeCache is a map-backed service.Cache for exercising the stats cache.
type fakeCache struct {
	entries map[string][]byte
	deletes int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]byte{}}
}

func (c *fakeCache) Get(ctx context.Context, key string) ([]byte, error) {
	payload, ok := c.entries[key]
	if !ok {
		return nil, service.ErrCacheMiss
	}
	return payload, nil
}

func (c *fakeCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.entries[key] = value
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	delete(c.entries, key)
	c.deletes++
	return nil
}
