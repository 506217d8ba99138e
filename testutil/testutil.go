// Package testutil provides the shared fixtures for handler and service
// tests: an in-memory database, a routed gin engine, a controllable clock
// and authenticated request helpers.
package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jtompuri/writing-contest-web-app-sub000/config"
	"github.com/jtompuri/writing-contest-web-app-sub000/database"
	"github.com/jtompuri/writing-contest-web-app-sub000/models"
	"github.com/jtompuri/writing-contest-web-app-sub000/phase"
	"github.com/jtompuri/writing-contest-web-app-sub000/utils"
	v1 "github.com/jtompuri/writing-contest-web-app-sub000/routes/v1"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

var dbCounter atomic.Int64

// SetupTestDB opens a fresh in-memory database, migrates the full schema and
// installs it as the global connection. Each call gets its own database.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	config.LoadConfig()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", dbCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Class{},
		&models.Contest{},
		&models.Entry{},
		&models.Review{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	database.DB = db
	database.RDB = nil

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// Router builds the full v1 API on a test-mode gin engine
func Router() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	v1.Register(r)
	return r
}

// SetToday pins the contest clock to a fixed date for the duration of the
// test
func SetToday(t *testing.T, today time.Time) {
	t.Helper()
	orig := phase.Now
	phase.Now = func() time.Time { return today }
	t.Cleanup(func() { phase.Now = orig })
}

// Date builds a UTC calendar day
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// CreateUser inserts a user with a hashed password
func CreateUser(t *testing.T, name, username, password string, super bool) *models.User {
	t.Helper()
	hashed, err := utils.HashPassword(password)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	user := &models.User{Name: name, Username: username, Password: hashed, Super: super}
	if err := database.DB.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

// CreateClass inserts a genre class
func CreateClass(t *testing.T, name string) *models.Class {
	t.Helper()
	class := &models.Class{Name: name, Value: name}
	if err := database.DB.Create(class).Error; err != nil {
		t.Fatalf("Failed to create test class: %v", err)
	}
	return class
}

// ContestOpts controls the CreateContest fixture
type ContestOpts struct {
	Title         string
	ClassID       uint
	CollectionEnd time.Time
	ReviewEnd     time.Time
	Anonymity     bool
	PublicReviews bool
	PublicResults bool
	PrivateKey    string
}

// CreateContest inserts a contest. An empty private key gets a random one.
func CreateContest(t *testing.T, opts ContestOpts) *models.Contest {
	t.Helper()
	if opts.PrivateKey == "" {
		key, err := utils.GenerateKey(32)
		if err != nil {
			t.Fatalf("Failed to generate private key: %v", err)
		}
		opts.PrivateKey = key
	}
	contest := &models.Contest{
		Title:         opts.Title,
		ClassID:       opts.ClassID,
		CollectionEnd: opts.CollectionEnd,
		ReviewEnd:     opts.ReviewEnd,
		Anonymity:     opts.Anonymity,
		PublicReviews: opts.PublicReviews,
		PublicResults: opts.PublicResults,
		PrivateKey:    opts.PrivateKey,
	}
	if err := database.DB.Create(contest).Error; err != nil {
		t.Fatalf("Failed to create test contest: %v", err)
	}
	return contest
}

// CreateEntry inserts an entry
func CreateEntry(t *testing.T, contestID, userID uint, text string) *models.Entry {
	t.Helper()
	entry := &models.Entry{ContestID: contestID, UserID: userID, Text: text}
	if err := database.DB.Create(entry).Error; err != nil {
		t.Fatalf("Failed to create test entry: %v", err)
	}
	return entry
}

// Session is an authenticated caller: the signed token plus the anti-forgery
// token mutating requests must echo
type Session struct {
	Token string
	Csrf  string
}

// Login mints a session for the user without going through the login handler
func Login(t *testing.T, user *models.User) Session {
	t.Helper()
	token, csrf, err := utils.GenerateToken(user, false)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}
	return Session{Token: token, Csrf: csrf}
}

// Request performs an HTTP request against the engine. A nil session sends
// an anonymous request; a non-nil body is JSON-encoded.
func Request(t *testing.T, r *gin.Engine, method, path string, body interface{}, session *Session) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if session != nil {
		req.AddCookie(&http.Cookie{Name: "auth_token", Value: session.Token})
		req.Header.Set("X-Csrf-Token", session.Csrf)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// Decode unmarshals a response body into out
func Decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("Failed to decode response %q: %v", w.Body.String(), err)
	}
}
