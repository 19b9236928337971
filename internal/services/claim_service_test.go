package services

import (
	"strings"
	"sync"
	"testing"

	"github.com/eylulkaya/lostfound/internal/apperr"
	"github.com/eylulkaya/lostfound/internal/models"
	"github.com/google/uuid"
)

func TestSubmitClaim(t *testing.T) {
	env := newTestEnv(t)
	poster := env.createUser(t, "Bob", "bob@campus.edu", models.RoleUser)
	claimant := env.createUser(t, "Alice", "alice@campus.edu", models.RoleUser)
	item := env.createFoundItem(t, poster, models.ApprovalApproved)

	claim, err := env.claims.Submit(submitReq(item.ID, "blue case, dent on corner"), claimant.ID)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if claim.Status != models.ClaimPending {
		t.Errorf("expected pending claim, got %q", claim.Status)
	}
	if claim.ClaimantID != claimant.ID {
		t.Error("claimant not recorded")
	}

	var stored models.FoundItem
	env.db.First(&stored, "id = ?", item.ID)
	if stored.ClaimStatus != models.ClaimLatchClaimed {
		t.Errorf("expected latch claimed, got %q", stored.ClaimStatus)
	}
	if stored.Status != models.FoundStatusClaimed {
		t.Errorf("expected item status claimed, got %q", stored.Status)
	}
}

func TestSubmitClaimUnapprovedItem(t *testing.T) {
	env := newTestEnv(t)
	poster := env.createUser(t, "Bob", "bob@campus.edu", models.RoleUser)
	claimant := env.createUser(t, "Alice", "alice@campus.edu", models.RoleUser)
	item := env.createFoundItem(t, poster, models.ApprovalPending)

	_, err := env.claims.Submit(submitReq(item.ID, "it is mine"), claimant.ID)
	if !apperr.Is(err, apperr.KindInvalidState) {
		t.Fatalf("expected invalid_state, got %v", err)
	}

	// Failure path must not mutate the item or create claims.
	var stored models.FoundItem
	env.db.First(&stored, "id = ?", item.ID)
	if stored.ClaimStatus != models.ClaimLatchNone {
		t.Errorf("latch mutated on failed submit: %q", stored.ClaimStatus)
	}
	var count int64
	env.db.Model(&models.Claim{}).Count(&count)
	if count != 0 {
		t.Errorf("expected no claim rows, got %d", count)
	}
}

func TestSubmitClaimUnknownItem(t *testing.T) {
	env := newTestEnv(t)
	claimant := env.createUser(t, "Alice", "alice@campus.edu", models.RoleUser)

	_, err := env.claims.Submit(submitReq(uuid.New(), "mine"), claimant.ID)
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestDoubleClaimSequential(t *testing.T) {
	env := newTestEnv(t)
	poster := env.createUser(t, "Bob", "bob@campus.edu", models.RoleUser)
	first := env.createUser(t, "Alice", "alice@campus.edu", models.RoleUser)
	second := env.createUser(t, "Carol", "carol@campus.edu", models.RoleUser)
	item := env.createFoundItem(t, poster, models.ApprovalApproved)

	if _, err := env.claims.Submit(submitReq(item.ID, "mine"), first.ID); err != nil {
		t.Fatalf("first Submit: %v", err)
	}

	_, err := env.claims.Submit(submitReq(item.ID, "no, mine"), second.ID)
	if !apperr.Is(err, apperr.KindInvalidState) {
		t.Fatalf("expected invalid_state on second claim, got %v", err)
	}

	var count int64
	env.db.Model(&models.Claim{}).Where("found_item_id = ?", item.ID).Count(&count)
	if count != 1 {
		t.Errorf("expected exactly 1 claim row, got %d", count)
	}
}

func TestDoubleClaimConcurrent(t *testing.T) {
	env := newTestEnv(t)
	poster := env.createUser(t, "Bob", "bob@campus.edu", models.RoleUser)
	item := env.createFoundItem(t, poster, models.ApprovalApproved)

	const claimants = 8
	users := make([]*models.User, claimants)
	for i := range users {
		users[i] = env.createUser(t, "User", uuid.NewString()+"@campus.edu", models.RoleUser)
	}

	var wg sync.WaitGroup
	results := make(chan error, claimants)
	for i := 0; i < claimants; i++ {
		wg.Add(1)
		go func(claimantID uuid.UUID) {
			defer wg.Done()
			_, err := env.claims.Submit(submitReq(item.ID, "simultaneous"), claimantID)
			results <- err
		}(users[i].ID)
	}
	wg.Wait()
	close(results)

	successes := 0
	for err := range results {
		if err == nil {
			successes++
		} else if !apperr.Is(err, apperr.KindInvalidState) {
			t.Errorf("unexpected error kind: %v", err)
		}
	}
	if successes != 1 {
		t.Fatalf("expected exactly 1 winning claim, got %d", successes)
	}

	var count int64
	env.db.Model(&models.Claim{}).Where("found_item_id = ?", item.ID).Count(&count)
	if count != 1 {
		t.Errorf("expected exactly 1 claim row, got %d", count)
	}
}

func TestVerifyClaimWithoutClaim(t *testing.T) {
	env := newTestEnv(t)
	poster := env.createUser(t, "Bob", "bob@campus.edu", models.RoleUser)
	staff := env.createUser(t, "Sam", "sam@campus.edu", models.RoleStaff)
	item := env.createFoundItem(t, poster, models.ApprovalApproved)

	err := env.claims.Verify(item.ID, staffIdentity(staff))
	if !apperr.Is(err, apperr.KindInvalidState) {
		t.Fatalf("expected invalid_state, got %v", err)
	}

	var count int64
	env.db.Model(&models.Claim{}).Where("status = ?", models.ClaimVerified).Count(&count)
	if count != 0 {
		t.Error("verify on unclaimed item must not create verified state")
	}
}

func TestVerifyClaimUnknownItem(t *testing.T) {
	env := newTestEnv(t)
	staff := env.createUser(t, "Sam", "sam@campus.edu", models.RoleStaff)

	if err := env.claims.Verify(uuid.New(), staffIdentity(staff)); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestRejectClaimMakesItemReclaimable(t *testing.T) {
	env := newTestEnv(t)
	poster := env.createUser(t, "Bob", "bob@campus.edu", models.RoleUser)
	first := env.createUser(t, "Alice", "alice@campus.edu", models.RoleUser)
	second := env.createUser(t, "Carol", "carol@campus.edu", models.RoleUser)
	staff := env.createUser(t, "Sam", "sam@campus.edu", models.RoleStaff)
	item := env.createFoundItem(t, poster, models.ApprovalApproved)

	if _, err := env.claims.Submit(submitReq(item.ID, "mine"), first.ID); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if err := env.claims.Reject(item.ID, "proof insufficient", staffIdentity(staff)); err != nil {
		t.Fatalf("Reject: %v", err)
	}

	var stored models.FoundItem
	env.db.First(&stored, "id = ?", item.ID)
	if stored.ClaimStatus != models.ClaimLatchNone {
		t.Errorf("expected latch released, got %q", stored.ClaimStatus)
	}

	var rejected models.Claim
	env.db.Where("found_item_id = ? AND status = ?", item.ID, models.ClaimRejected).First(&rejected)
	if rejected.RejectionReason != "proof insufficient" {
		t.Errorf("expected reason stored, got %q", rejected.RejectionReason)
	}

	// The claimant hears about the rejection, reason included.
	notifications := env.notificationsFor(t, first.ID)
	if len(notifications) != 1 || notifications[0].Type != models.NotifClaimUpdate {
		t.Fatalf("expected 1 claim_update notification, got %v", notifications)
	}
	if !strings.Contains(notifications[0].Message, "proof insufficient") {
		t.Errorf("notification must contain the reason, got %q", notifications[0].Message)
	}

	// A different user can now claim the same item.
	if _, err := env.claims.Submit(submitReq(item.ID, "serial number matches"), second.ID); err != nil {
		t.Fatalf("re-claim after rejection: %v", err)
	}
}

func TestClaimLifecycleScenario(t *testing.T) {
	env := newTestEnv(t)
	poster := env.createUser(t, "UserA", "a@campus.edu", models.RoleUser)
	claimant := env.createUser(t, "UserB", "b@campus.edu", models.RoleUser)
	staff := env.createUser(t, "Sam", "sam@campus.edu", models.RoleStaff)

	// User A submits a found item; staff approve it.
	item := env.createFoundItem(t, poster, models.ApprovalPending)
	if err := env.items.Approve(item.ID, ItemTypeFound, staffIdentity(staff)); err != nil {
		t.Fatalf("Approve: %v", err)
	}

	// User B claims with proof.
	if _, err := env.claims.Submit(submitReq(item.ID, "blue case, dent on corner"), claimant.ID); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	pending, err := env.claims.ListPending()
	if err != nil {
		t.Fatalf("ListPending: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected 1 pending claim, got %d", len(pending))
	}
	if pending[0].Claimant.ID != claimant.ID || pending[0].FoundItem.ID != item.ID {
		t.Error("pending claim associations not expanded")
	}

	// Staff verifies: claim verified, item returned, queue empty.
	if err := env.claims.Verify(item.ID, staffIdentity(staff)); err != nil {
		t.Fatalf("Verify: %v", err)
	}

	var storedClaim models.Claim
	env.db.Where("found_item_id = ?", item.ID).First(&storedClaim)
	if storedClaim.Status != models.ClaimVerified {
		t.Errorf("expected verified claim, got %q", storedClaim.Status)
	}
	if storedClaim.ReviewedBy == nil || *storedClaim.ReviewedBy != staff.ID {
		t.Error("claim reviewer not stamped")
	}

	var storedItem models.FoundItem
	env.db.First(&storedItem, "id = ?", item.ID)
	if storedItem.Status != models.FoundStatusReturned {
		t.Errorf("expected returned item, got %q", storedItem.Status)
	}

	pending, _ = env.claims.ListPending()
	if len(pending) != 0 {
		t.Errorf("verified claim must leave the pending queue, got %d", len(pending))
	}

	// Verifying again is an invalid transition.
	if err := env.claims.Verify(item.ID, staffIdentity(staff)); !apperr.Is(err, apperr.KindInvalidState) {
		t.Errorf("expected invalid_state on double verify, got %v", err)
	}
}
