package models

import (
	"errors"
	"sync"
	"testing"

	"server/db"
)

func createPendingInvitation(t *testing.T, email string) Invitation {
	t.Helper()
	company := Company{Name: "Acme Productions"}
	if err := db.Instance.Create(&company).Error; err != nil {
		t.Fatalf("create company: %v", err)
	}
	inv, err := NewInvitation(nil, company.ID, email, RoleMember)
	if err != nil {
		t.Fatalf("create invitation: %v", err)
	}
	return inv
}

func countRows(t *testing.T, model interface{}) int64 {
	t.Helper()
	var n int64
	if err := db.Instance.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func TestAcceptInvitation(t *testing.T) {
	setupTestDB(t)
	inv := createPendingInvitation(t, "Talent@Example.com")

	user, err := AcceptInvitation(inv.Token, "Jane Doe", "password123")
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if user.Email != "talent@example.com" {
		t.Errorf("email not normalized: %q", user.Email)
	}
	if _, ok := UserLogin("talent@example.com", "password123"); !ok {
		t.Error("new account cannot log in")
	}

	var talent Talent
	if err = db.Instance.Where("user_id = ?", user.ID).First(&talent).Error; err != nil {
		t.Fatalf("talent profile missing: %v", err)
	}
	if talent.Email != "talent@example.com" || talent.CompanyID != inv.CompanyID {
		t.Errorf("talent profile wrong: %+v", talent)
	}
	var grant Grant
	if err = db.Instance.Where("user_id = ?", user.ID).First(&grant).Error; err != nil {
		t.Fatalf("grant missing: %v", err)
	}
	if grant.Role != RoleMember || grant.CompanyID != inv.CompanyID {
		t.Errorf("grant wrong: %+v", grant)
	}

	var after Invitation
	db.Instance.First(&after, inv.ID)
	if !after.Accepted() {
		t.Error("invitation not marked accepted")
	}
}

func TestAcceptInvitationTwice(t *testing.T) {
	setupTestDB(t)
	inv := createPendingInvitation(t, "talent@example.com")

	if _, err := AcceptInvitation(inv.Token, "", "password123"); err != nil {
		t.Fatalf("first accept: %v", err)
	}
	_, err := AcceptInvitation(inv.Token, "", "password123")
	if !errors.Is(err, ErrInviteAccepted) {
		t.Fatalf("expected ErrInviteAccepted, got %v", err)
	}
	if n := countRows(t, &User{}); n != 1 {
		t.Errorf("users: got %d, want 1", n)
	}
	if n := countRows(t, &Talent{}); n != 1 {
		t.Errorf("talents: got %d, want 1", n)
	}
	if n := countRows(t, &Grant{}); n != 1 {
		t.Errorf("grants: got %d, want 1", n)
	}
}

func TestAcceptInvitationUnknownToken(t *testing.T) {
	setupTestDB(t)
	createPendingInvitation(t, "talent@example.com")

	_, err := AcceptInvitation("no-such-token", "", "password123")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAcceptInvitationWeakPassword(t *testing.T) {
	setupTestDB(t)
	inv := createPendingInvitation(t, "talent@example.com")

	_, err := AcceptInvitation(inv.Token, "", "short")
	if !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
	if n := countRows(t, &User{}); n != 0 {
		t.Errorf("users created on weak password: %d", n)
	}
	var after Invitation
	db.Instance.First(&after, inv.ID)
	if after.Accepted() {
		t.Error("invitation consumed on weak password")
	}
}

func TestAcceptInvitationEmailTaken(t *testing.T) {
	setupTestDB(t)
	inv := createPendingInvitation(t, "talent@example.com")
	if _, err := UserCreate("Existing", "talent@example.com", "password123"); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	_, err := AcceptInvitation(inv.Token, "", "password123")
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	// Everything rolled back, including the accepted_at claim
	var after Invitation
	db.Instance.First(&after, inv.ID)
	if after.Accepted() {
		t.Error("invitation consumed despite rollback")
	}
	if n := countRows(t, &Talent{}); n != 0 {
		t.Errorf("talents created despite rollback: %d", n)
	}
	if n := countRows(t, &Grant{}); n != 0 {
		t.Errorf("grants created despite rollback: %d", n)
	}
}

func TestAcceptInvitationRollbackOnGrantFailure(t *testing.T) {
	setupTestDB(t)
	inv := createPendingInvitation(t, "talent@example.com")

	// Simulate a constraint failure on the last step
	if err := db.Instance.Migrator().DropTable(&Grant{}); err != nil {
		t.Fatalf("drop grants: %v", err)
	}
	_, err := AcceptInvitation(inv.Token, "", "password123")
	if err == nil {
		t.Fatal("expected accept to fail")
	}
	if n := countRows(t, &User{}); n != 0 {
		t.Errorf("users survived rollback: %d", n)
	}
	if n := countRows(t, &Talent{}); n != 0 {
		t.Errorf("talents survived rollback: %d", n)
	}
	var after Invitation
	db.Instance.First(&after, inv.ID)
	if after.Accepted() {
		t.Error("invitation consumed despite rollback")
	}
}

func TestAcceptInvitationConcurrent(t *testing.T) {
	setupTestDB(t)
	inv := createPendingInvitation(t, "talent@example.com")

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = AcceptInvitation(inv.Token, "", "password123")
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range results {
		if err == nil {
			successes++
		}
	}
	if successes != 1 {
		t.Fatalf("got %d successes, want exactly 1 (results: %v)", successes, results)
	}
	if n := countRows(t, &User{}); n != 1 {
		t.Errorf("users: got %d, want 1", n)
	}
	// A later retry by the loser must see the consumed token
	_, err := AcceptInvitation(inv.Token, "", "password123")
	if !errors.Is(err, ErrInviteAccepted) {
		t.Fatalf("expected ErrInviteAccepted on retry, got %v", err)
	}
}
