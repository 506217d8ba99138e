package contests_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/jtompuri/writing-contest-web-app-sub000/database"
	"github.com/jtompuri/writing-contest-web-app-sub000/handlers/contests"
	"github.com/jtompuri/writing-contest-web-app-sub000/models"
	"github.com/jtompuri/writing-contest-web-app-sub000/testutil"
)

func TestGetContests(t *testing.T) {
	testutil.SetupTestDB(t)
	r := testutil.Router()
	class := testutil.CreateClass(t, "Prose")

	for i := 0; i < 7; i++ {
		testutil.CreateContest(t, testutil.ContestOpts{
			Title:         fmt.Sprintf("Contest %d", i),
			ClassID:       class.ID,
			CollectionEnd: testutil.Date(2026, time.March, 1+i),
			ReviewEnd:     testutil.Date(2026, time.April, 1+i),
		})
	}
	testutil.SetToday(t, testutil.Date(2026, time.March, 1))

	w := testutil.Request(t, r, http.MethodGet, "/api/v1/contests/", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var page struct {
		Items    []contests.ContestResponse `json:"items"`
		Page     int                        `json:"page"`
		PageSize int                        `json:"page_size"`
		Total    int64                      `json:"total"`
	}
	testutil.Decode(t, w, &page)
	if page.Total != 7 {
		t.Errorf("Total = %d, want 7", page.Total)
	}
	if len(page.Items) != 5 {
		t.Fatalf("First page has %d items, want the page size of 5", len(page.Items))
	}
	// Newest collection window first.
	if page.Items[0].Title != "Contest 6" {
		t.Errorf("First item = %q, want %q", page.Items[0].Title, "Contest 6")
	}
	if page.Items[0].Flags.Phase != "collection" {
		t.Errorf("Phase = %q, want %q", page.Items[0].Flags.Phase, "collection")
	}

	w = testutil.Request(t, r, http.MethodGet, "/api/v1/contests/?page=2", nil, nil)
	testutil.Decode(t, w, &page)
	if len(page.Items) != 2 || page.Page != 2 {
		t.Errorf("Second page has %d items (page %d), want 2 items on page 2", len(page.Items), page.Page)
	}
}

func TestGetContest(t *testing.T) {
	testutil.SetupTestDB(t)
	r := testutil.Router()
	class := testutil.CreateClass(t, "Poetry")
	contest := testutil.CreateContest(t, testutil.ContestOpts{
		Title:         "Single contest",
		ClassID:       class.ID,
		CollectionEnd: testutil.Date(2026, time.March, 10),
		ReviewEnd:     testutil.Date(2026, time.March, 20),
	})
	alice := testutil.CreateUser(t, "Alice", "alice@example.com", "password1", false)
	testutil.CreateEntry(t, contest.ID, alice.ID, "A poem")
	testutil.SetToday(t, testutil.Date(2026, time.March, 15))

	w := testutil.Request(t, r, http.MethodGet, fmt.Sprintf("/api/v1/contests/%d", contest.ID), nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var resp contests.ContestResponse
	testutil.Decode(t, w, &resp)
	if resp.Title != "Single contest" || resp.EntryCount != 1 {
		t.Errorf("Response = %+v, want the contest with 1 entry", resp)
	}
	if resp.Flags.Phase != "review" {
		t.Errorf("Phase = %q, want %q", resp.Flags.Phase, "review")
	}

	// The private key must never leak through the public read.
	if strings.Contains(w.Body.String(), contest.PrivateKey) {
		t.Error("Response body leaks the contest's private key")
	}

	w = testutil.Request(t, r, http.MethodGet, "/api/v1/contests/99999", nil, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Unknown contest: status = %d, want 404", w.Code)
	}
}

func TestGetClasses(t *testing.T) {
	testutil.SetupTestDB(t)
	r := testutil.Router()
	testutil.CreateClass(t, "Prose")
	testutil.CreateClass(t, "Poetry")

	w := testutil.Request(t, r, http.MethodGet, "/api/v1/classes", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var classes []models.Class
	testutil.Decode(t, w, &classes)
	if len(classes) != 2 || classes[0].Name != "Prose" {
		t.Errorf("Classes = %+v, want Prose then Poetry", classes)
	}
}

func TestGetLanding(t *testing.T) {
	testutil.SetupTestDB(t)
	r := testutil.Router()
	class := testutil.CreateClass(t, "Prose")

	testutil.CreateContest(t, testutil.ContestOpts{
		Title:         "Collecting now",
		ClassID:       class.ID,
		CollectionEnd: testutil.Date(2026, time.April, 10),
		ReviewEnd:     testutil.Date(2026, time.April, 20),
	})
	testutil.CreateContest(t, testutil.ContestOpts{
		Title:         "Reviewing now",
		ClassID:       class.ID,
		CollectionEnd: testutil.Date(2026, time.March, 1),
		ReviewEnd:     testutil.Date(2026, time.March, 25),
	})
	finished := testutil.CreateContest(t, testutil.ContestOpts{
		Title:         "Finished public",
		ClassID:       class.ID,
		CollectionEnd: testutil.Date(2026, time.February, 1),
		ReviewEnd:     testutil.Date(2026, time.February, 20),
		PublicResults: true,
	})

	alice := testutil.CreateUser(t, "Alice", "alice@example.com", "password1", false)
	bob := testutil.CreateUser(t, "Bob", "bob@example.com", "password1", false)
	aliceEntry := testutil.CreateEntry(t, finished.ID, alice.ID, "Winner")
	testutil.CreateEntry(t, finished.ID, bob.ID, "Second")
	review := &models.Review{EntryID: aliceEntry.ID, UserID: bob.ID, Points: 5}
	if err := database.DB.Create(review).Error; err != nil {
		t.Fatalf("Failed to create review: %v", err)
	}

	testutil.SetToday(t, testutil.Date(2026, time.March, 15))
	w := testutil.Request(t, r, http.MethodGet, "/api/v1/landing", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var landing contests.LandingResponse
	testutil.Decode(t, w, &landing)
	if len(landing.Collecting) != 1 || landing.Collecting[0].Title != "Collecting now" {
		t.Errorf("Collecting = %+v, want the collecting contest", landing.Collecting)
	}
	if len(landing.Reviewing) != 1 || landing.Reviewing[0].Title != "Reviewing now" {
		t.Errorf("Reviewing = %+v, want the reviewing contest", landing.Reviewing)
	}
	if len(landing.Finished) != 1 || landing.Finished[0].Title != "Finished public" {
		t.Errorf("Finished = %+v, want the finished contest", landing.Finished)
	}
	if len(landing.TopThree) != 2 {
		t.Fatalf("TopThree has %d rows, want 2", len(landing.TopThree))
	}
	if landing.TopThree[0].AuthorName != "Alice" || landing.TopThree[0].TotalPoints != 5 {
		t.Errorf("TopThree[0] = %+v, want Alice with 5 points", landing.TopThree[0])
	}
}

func TestGetLandingSkipsPrivateResults(t *testing.T) {
	testutil.SetupTestDB(t)
	r := testutil.Router()
	class := testutil.CreateClass(t, "Prose")

	private := testutil.CreateContest(t, testutil.ContestOpts{
		Title:         "Finished private",
		ClassID:       class.ID,
		CollectionEnd: testutil.Date(2026, time.February, 1),
		ReviewEnd:     testutil.Date(2026, time.February, 20),
		PublicResults: false,
	})
	alice := testutil.CreateUser(t, "Alice", "alice@example.com", "password1", false)
	testutil.CreateEntry(t, private.ID, alice.ID, "Hidden winner")

	testutil.SetToday(t, testutil.Date(2026, time.March, 15))
	w := testutil.Request(t, r, http.MethodGet, "/api/v1/landing", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var landing contests.LandingResponse
	testutil.Decode(t, w, &landing)
	// The private contest appears in the finished list but its ranking does
	// not seed the top three.
	if len(landing.Finished) != 1 {
		t.Errorf("Finished = %+v, want the private contest listed", landing.Finished)
	}
	if len(landing.TopThree) != 0 {
		t.Errorf("TopThree = %+v, want empty", landing.TopThree)
	}
}
