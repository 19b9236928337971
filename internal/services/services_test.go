package services

import (
	"errors"
	"testing"
	"time"

	"github.com/eylulkaya/lostfound/internal/authctx"
	"github.com/eylulkaya/lostfound/internal/config"
	"github.com/eylulkaya/lostfound/internal/database"
	"github.com/eylulkaya/lostfound/internal/dto"
	"github.com/eylulkaya/lostfound/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fakeMailer struct {
	sent []string
	fail bool
}

func (m *fakeMailer) Send(to, subject, body string) error {
	if m.fail {
		return errors.New("smtp unreachable")
	}
	m.sent = append(m.sent, body)
	return nil
}

type testEnv struct {
	db     *gorm.DB
	cfg    *config.Config
	mailer *fakeMailer
	auth   *AuthService
	items  *ItemService
	claims *ClaimService
	notifs *NotificationService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := database.NewTestDB(t)
	cfg := &config.Config{
		JWTSecret:     "test-secret",
		JWTExpiry:     24 * time.Hour,
		ResetTokenTTL: 10 * time.Minute,
	}
	mailer := &fakeMailer{}
	notifs := NewNotificationService(db)
	activity := NewActivityService(db)
	return &testEnv{
		db:     db,
		cfg:    cfg,
		mailer: mailer,
		auth:   NewAuthService(db, cfg, mailer),
		items:  NewItemService(db, cfg, notifs, activity),
		claims: NewClaimService(db, notifs, activity),
		notifs: notifs,
	}
}

func (e *testEnv) createUser(t *testing.T, name, email, role string) *models.User {
	t.Helper()
	user := &models.User{
		ID:       uuid.New(),
		Name:     name,
		Email:    email,
		Password: "$2a$10$fakefakefakefakefakefake",
		Role:     role,
	}
	if err := e.db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func (e *testEnv) createCategory(t *testing.T, name string) *models.Category {
	t.Helper()
	cat := &models.Category{ID: uuid.New(), Name: name}
	if err := e.db.Create(cat).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}
	return cat
}

func (e *testEnv) createFoundItem(t *testing.T, poster *models.User, approval string) *models.FoundItem {
	t.Helper()
	cat := e.createCategory(t, "cat-"+uuid.NewString())
	item := &models.FoundItem{
		ID:             uuid.New(),
		Name:           "Black umbrella",
		CategoryID:     cat.ID,
		FoundLocation:  "Library entrance",
		DateFound:      time.Now(),
		PostedBy:       poster.ID,
		Status:         models.FoundStatusPending,
		ApprovalStatus: approval,
		ClaimStatus:    models.ClaimLatchNone,
	}
	if err := e.db.Create(item).Error; err != nil {
		t.Fatalf("create found item: %v", err)
	}
	return item
}

func staffIdentity(u *models.User) authctx.Identity {
	return authctx.Identity{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

func (e *testEnv) notificationsFor(t *testing.T, userID uuid.UUID) []models.Notification {
	t.Helper()
	notifications, err := e.notifs.ListForUser(userID)
	if err != nil {
		t.Fatalf("list notifications: %v", err)
	}
	return notifications
}

func submitReq(itemID uuid.UUID, proof string) *dto.SubmitClaimRequest {
	return &dto.SubmitClaimRequest{FoundItem: itemID.String(), ProofDescription: proof}
}
