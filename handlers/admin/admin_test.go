package admin_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/jtompuri/writing-contest-web-app-sub000/database"
	"github.com/jtompuri/writing-contest-web-app-sub000/models"
	"github.com/jtompuri/writing-contest-web-app-sub000/testutil"
)

func superSession(t *testing.T) *testutil.Session {
	t.Helper()
	admin := testutil.CreateUser(t, "Admin", "admin@example.com", "password1", true)
	session := testutil.Login(t, admin)
	return &session
}

func contestBody(classID uint) map[string]interface{} {
	return map[string]interface{}{
		"title":          "Admin contest",
		"class_id":       classID,
		"collection_end": "2026-03-10",
		"review_end":     "2026-03-20",
		"public_results": true,
	}
}

func TestAdminRequiresSuper(t *testing.T) {
	testutil.SetupTestDB(t)
	r := testutil.Router()

	w := testutil.Request(t, r, http.MethodGet, "/api/v1/admin/contests", nil, nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Anonymous: status = %d, want 401", w.Code)
	}

	user := testutil.CreateUser(t, "Alice", "alice@example.com", "password1", false)
	session := testutil.Login(t, user)
	w = testutil.Request(t, r, http.MethodGet, "/api/v1/admin/contests", nil, &session)
	if w.Code != http.StatusForbidden {
		t.Errorf("Ordinary user: status = %d, want 403", w.Code)
	}
}

func TestAdminCreateContest(t *testing.T) {
	testutil.SetupTestDB(t)
	r := testutil.Router()
	class := testutil.CreateClass(t, "Prose")
	session := superSession(t)

	w := testutil.Request(t, r, http.MethodPost, "/api/v1/admin/contests", contestBody(class.ID), session)
	if w.Code != http.StatusCreated {
		t.Fatalf("Status = %d, want 201: %s", w.Code, w.Body.String())
	}

	var stored models.Contest
	if err := database.DB.Where("title = ?", "Admin contest").First(&stored).Error; err != nil {
		t.Fatalf("Contest was not stored: %v", err)
	}
	if stored.PrivateKey == "" {
		t.Error("Created contest has no private key")
	}
	if !stored.CollectionEnd.Equal(testutil.Date(2026, time.March, 10)) {
		t.Errorf("CollectionEnd = %v, want 2026-03-10", stored.CollectionEnd)
	}
}

func TestAdminCreateContestValidation(t *testing.T) {
	testutil.SetupTestDB(t)
	r := testutil.Router()
	class := testutil.CreateClass(t, "Prose")
	session := superSession(t)

	tests := []struct {
		name   string
		mutate func(body map[string]interface{})
	}{
		{"dates incoherent", func(b map[string]interface{}) {
			b["collection_end"] = "2026-03-20"
			b["review_end"] = "2026-03-10"
		}},
		{"malformed date", func(b map[string]interface{}) {
			b["collection_end"] = "10.3.2026"
		}},
		{"unknown class", func(b map[string]interface{}) {
			b["class_id"] = 9999
		}},
		{"title too long", func(b map[string]interface{}) {
			b["title"] = strings.Repeat("a", 101)
		}},
		{"title too long in multibyte characters", func(b map[string]interface{}) {
			b["title"] = strings.Repeat("ä", 101)
		}},
		{"short description too long", func(b map[string]interface{}) {
			b["short_description"] = strings.Repeat("a", 256)
		}},
		{"long description too long", func(b map[string]interface{}) {
			b["long_description"] = strings.Repeat("a", 2001)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := contestBody(class.ID)
			tt.mutate(body)
			w := testutil.Request(t, r, http.MethodPost, "/api/v1/admin/contests", body, session)
			if w.Code != http.StatusBadRequest {
				t.Errorf("Status = %d, want 400: %s", w.Code, w.Body.String())
			}
		})
	}

	// The maximum lengths themselves are accepted, counted in characters
	// rather than bytes, and equal end dates make a contest without a
	// review window.
	body := contestBody(class.ID)
	body["title"] = strings.Repeat("a", 100)
	body["short_description"] = strings.Repeat("ä", 255)
	body["long_description"] = strings.Repeat("a", 2000)
	body["review_end"] = "2026-03-10"
	w := testutil.Request(t, r, http.MethodPost, "/api/v1/admin/contests", body, session)
	if w.Code != http.StatusCreated {
		t.Errorf("Boundary values: status = %d, want 201: %s", w.Code, w.Body.String())
	}
}

func TestAdminUpdateContestKeepsPrivateKey(t *testing.T) {
	testutil.SetupTestDB(t)
	r := testutil.Router()
	class := testutil.CreateClass(t, "Prose")
	session := superSession(t)
	contest := testutil.CreateContest(t, testutil.ContestOpts{
		Title:         "Before",
		ClassID:       class.ID,
		CollectionEnd: testutil.Date(2026, time.March, 10),
		ReviewEnd:     testutil.Date(2026, time.March, 20),
	})
	originalKey := contest.PrivateKey

	body := contestBody(class.ID)
	body["title"] = "After"
	body["review_end"] = "2026-04-20"
	path := fmt.Sprintf("/api/v1/admin/contests/%d", contest.ID)
	w := testutil.Request(t, r, http.MethodPut, path, body, session)
	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var stored models.Contest
	database.DB.First(&stored, contest.ID)
	if stored.Title != "After" {
		t.Errorf("Title = %q, want %q", stored.Title, "After")
	}
	if !stored.ReviewEnd.Equal(testutil.Date(2026, time.April, 20)) {
		t.Errorf("ReviewEnd = %v, want 2026-04-20", stored.ReviewEnd)
	}
	if stored.PrivateKey != originalKey {
		t.Error("Update must not rotate the private key")
	}
}

func TestAdminDeleteContestCascades(t *testing.T) {
	testutil.SetupTestDB(t)
	r := testutil.Router()
	class := testutil.CreateClass(t, "Prose")
	session := superSession(t)
	contest := testutil.CreateContest(t, testutil.ContestOpts{
		Title:         "Doomed",
		ClassID:       class.ID,
		CollectionEnd: testutil.Date(2026, time.March, 10),
		ReviewEnd:     testutil.Date(2026, time.March, 20),
	})
	alice := testutil.CreateUser(t, "Alice", "alice@example.com", "password1", false)
	bob := testutil.CreateUser(t, "Bob", "bob@example.com", "password1", false)
	aliceEntry := testutil.CreateEntry(t, contest.ID, alice.ID, "Alice's story")
	testutil.CreateEntry(t, contest.ID, bob.ID, "Bob's story")
	review := &models.Review{EntryID: aliceEntry.ID, UserID: bob.ID, Points: 4}
	if err := database.DB.Create(review).Error; err != nil {
		t.Fatalf("Failed to create review: %v", err)
	}

	path := fmt.Sprintf("/api/v1/admin/contests/%d", contest.ID)
	w := testutil.Request(t, r, http.MethodDelete, path, nil, session)
	if w.Code != http.StatusNoContent {
		t.Fatalf("Status = %d, want 204: %s", w.Code, w.Body.String())
	}

	var contestCount, entryCount, reviewCount int64
	database.DB.Model(&models.Contest{}).Count(&contestCount)
	database.DB.Model(&models.Entry{}).Count(&entryCount)
	database.DB.Model(&models.Review{}).Count(&reviewCount)
	if contestCount != 0 || entryCount != 0 || reviewCount != 0 {
		t.Errorf("Counts after delete = (%d, %d, %d), want all zero", contestCount, entryCount, reviewCount)
	}
}

func TestAdminUserManagement(t *testing.T) {
	testutil.SetupTestDB(t)
	r := testutil.Router()
	session := superSession(t)

	w := testutil.Request(t, r, http.MethodPost, "/api/v1/admin/users", map[string]interface{}{
		"name":     "Carol",
		"username": "carol@example.com",
		"password": "password1",
	}, session)
	if w.Code != http.StatusCreated {
		t.Fatalf("Create: status = %d, want 201: %s", w.Code, w.Body.String())
	}

	w = testutil.Request(t, r, http.MethodPost, "/api/v1/admin/users", map[string]interface{}{
		"name":     "Carol again",
		"username": "carol@example.com",
		"password": "password1",
	}, session)
	if w.Code != http.StatusConflict {
		t.Errorf("Duplicate username: status = %d, want 409: %s", w.Code, w.Body.String())
	}

	w = testutil.Request(t, r, http.MethodPost, "/api/v1/admin/users", map[string]interface{}{
		"name":     "Dave",
		"username": "dave@example.com",
		"password": "short",
	}, session)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Short password: status = %d, want 400: %s", w.Code, w.Body.String())
	}

	var carol models.User
	if err := database.DB.Where("username = ?", "carol@example.com").First(&carol).Error; err != nil {
		t.Fatalf("Carol was not stored: %v", err)
	}

	// Promote, then demote while another super still exists.
	superTrue, superFalse := true, false
	path := fmt.Sprintf("/api/v1/admin/users/%d", carol.ID)
	w = testutil.Request(t, r, http.MethodPut, path, map[string]interface{}{
		"name":     "Carol",
		"username": "carol@example.com",
		"super":    superTrue,
	}, session)
	if w.Code != http.StatusOK {
		t.Fatalf("Promote: status = %d, want 200: %s", w.Code, w.Body.String())
	}
	w = testutil.Request(t, r, http.MethodPut, path, map[string]interface{}{
		"name":     "Carol",
		"username": "carol@example.com",
		"super":    superFalse,
	}, session)
	if w.Code != http.StatusOK {
		t.Errorf("Demote with another super present: status = %d, want 200: %s", w.Code, w.Body.String())
	}
}

func TestAdminCannotDemoteLastSuper(t *testing.T) {
	testutil.SetupTestDB(t)
	r := testutil.Router()
	admin := testutil.CreateUser(t, "Admin", "admin@example.com", "password1", true)
	session := testutil.Login(t, admin)

	demote := false
	path := fmt.Sprintf("/api/v1/admin/users/%d", admin.ID)
	w := testutil.Request(t, r, http.MethodPut, path, map[string]interface{}{
		"name":     "Admin",
		"username": "admin@example.com",
		"super":    demote,
	}, &session)
	if w.Code != http.StatusConflict {
		t.Errorf("Status = %d, want 409: %s", w.Code, w.Body.String())
	}

	var stored models.User
	database.DB.First(&stored, admin.ID)
	if !stored.Super {
		t.Error("The last super must keep the role")
	}
}

func TestAdminDeleteUserGuards(t *testing.T) {
	testutil.SetupTestDB(t)
	r := testutil.Router()
	admin := testutil.CreateUser(t, "Admin", "admin@example.com", "password1", true)
	otherSuper := testutil.CreateUser(t, "Other", "other@example.com", "password1", true)
	session := testutil.Login(t, admin)

	w := testutil.Request(t, r, http.MethodDelete, fmt.Sprintf("/api/v1/admin/users/%d", admin.ID), nil, &session)
	if w.Code != http.StatusForbidden {
		t.Errorf("Self delete: status = %d, want 403: %s", w.Code, w.Body.String())
	}

	w = testutil.Request(t, r, http.MethodDelete, fmt.Sprintf("/api/v1/admin/users/%d", otherSuper.ID), nil, &session)
	if w.Code != http.StatusForbidden {
		t.Errorf("Super delete: status = %d, want 403: %s", w.Code, w.Body.String())
	}

	w = testutil.Request(t, r, http.MethodDelete, "/api/v1/admin/users/99999", nil, &session)
	if w.Code != http.StatusNotFound {
		t.Errorf("Unknown user: status = %d, want 404", w.Code)
	}
}

func TestAdminDeleteUserCascades(t *testing.T) {
	testutil.SetupTestDB(t)
	r := testutil.Router()
	class := testutil.CreateClass(t, "Prose")
	session := superSession(t)
	contest := testutil.CreateContest(t, testutil.ContestOpts{
		Title:         "Contest",
		ClassID:       class.ID,
		CollectionEnd: testutil.Date(2026, time.March, 10),
		ReviewEnd:     testutil.Date(2026, time.March, 20),
	})
	alice := testutil.CreateUser(t, "Alice", "alice@example.com", "password1", false)
	bob := testutil.CreateUser(t, "Bob", "bob@example.com", "password1", false)
	aliceEntry := testutil.CreateEntry(t, contest.ID, alice.ID, "Alice's story")
	bobEntry := testutil.CreateEntry(t, contest.ID, bob.ID, "Bob's story")

	// Alice reviewed Bob's entry, Bob reviewed Alice's.
	for _, review := range []models.Review{
		{EntryID: bobEntry.ID, UserID: alice.ID, Points: 3},
		{EntryID: aliceEntry.ID, UserID: bob.ID, Points: 4},
	} {
		if err := database.DB.Create(&review).Error; err != nil {
			t.Fatalf("Failed to create review: %v", err)
		}
	}

	w := testutil.Request(t, r, http.MethodDelete, fmt.Sprintf("/api/v1/admin/users/%d", alice.ID), nil, session)
	if w.Code != http.StatusNoContent {
		t.Fatalf("Status = %d, want 204: %s", w.Code, w.Body.String())
	}

	// Alice's entry, her review, and the review on her entry are all gone;
	// Bob's entry survives.
	var entryCount, reviewCount int64
	database.DB.Model(&models.Entry{}).Count(&entryCount)
	database.DB.Model(&models.Review{}).Count(&reviewCount)
	if entryCount != 1 || reviewCount != 0 {
		t.Errorf("Counts after delete = (%d entries, %d reviews), want (1, 0)", entryCount, reviewCount)
	}
}

func TestAdminEntryManagement(t *testing.T) {
	testutil.SetupTestDB(t)
	r := testutil.Router()
	class := testutil.CreateClass(t, "Prose")
	session := superSession(t)
	contest := testutil.CreateContest(t, testutil.ContestOpts{
		Title:         "Closed contest",
		ClassID:       class.ID,
		CollectionEnd: testutil.Date(2026, time.March, 10),
		ReviewEnd:     testutil.Date(2026, time.March, 20),
	})
	alice := testutil.CreateUser(t, "Alice", "alice@example.com", "password1", false)

	// Admins bypass the phase gate: the collection window is long gone.
	testutil.SetToday(t, testutil.Date(2026, time.April, 1))
	w := testutil.Request(t, r, http.MethodPost, "/api/v1/admin/entries", map[string]interface{}{
		"contest_id": contest.ID,
		"user_id":    alice.ID,
		"text":       "Late but allowed.",
	}, session)
	if w.Code != http.StatusCreated {
		t.Fatalf("Status = %d, want 201: %s", w.Code, w.Body.String())
	}

	// The one-entry-per-author rule still binds.
	w = testutil.Request(t, r, http.MethodPost, "/api/v1/admin/entries", map[string]interface{}{
		"contest_id": contest.ID,
		"user_id":    alice.ID,
		"text":       "A second one.",
	}, session)
	if w.Code != http.StatusConflict {
		t.Errorf("Duplicate: status = %d, want 409: %s", w.Code, w.Body.String())
	}

	var entry models.Entry
	if err := database.DB.Where("contest_id = ?", contest.ID).First(&entry).Error; err != nil {
		t.Fatalf("Entry was not stored: %v", err)
	}

	path := fmt.Sprintf("/api/v1/admin/entries/%d", entry.ID)
	w = testutil.Request(t, r, http.MethodPut, path, map[string]interface{}{
		"contest_id": contest.ID,
		"user_id":    alice.ID,
		"text":       "Edited by admin.",
	}, session)
	if w.Code != http.StatusOK {
		t.Fatalf("Update: status = %d, want 200: %s", w.Code, w.Body.String())
	}

	w = testutil.Request(t, r, http.MethodDelete, path, nil, session)
	if w.Code != http.StatusNoContent {
		t.Fatalf("Delete: status = %d, want 204: %s", w.Code, w.Body.String())
	}
	var count int64
	database.DB.Model(&models.Entry{}).Count(&count)
	if count != 0 {
		t.Errorf("Entry count after delete = %d, want 0", count)
	}
}

func TestAdminListContestsIncludesKey(t *testing.T) {
	testutil.SetupTestDB(t)
	r := testutil.Router()
	class := testutil.CreateClass(t, "Prose")
	session := superSession(t)
	contest := testutil.CreateContest(t, testutil.ContestOpts{
		Title:         "Keyed",
		ClassID:       class.ID,
		CollectionEnd: testutil.Date(2026, time.March, 10),
		ReviewEnd:     testutil.Date(2026, time.March, 20),
	})

	w := testutil.Request(t, r, http.MethodGet, "/api/v1/admin/contests", nil, session)
	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), contest.PrivateKey) {
		t.Error("Admin listing should expose the private key")
	}
}
