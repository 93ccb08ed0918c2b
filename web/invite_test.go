package web

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"server/db"
	"server/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dsn := "file:" + filepath.Join(t.TempDir(), "test.db") + "?_busy_timeout=5000"
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	db.Instance = database
	models.Init()

	router := gin.New()
	router.LoadHTMLGlob("../templates/*.tmpl")
	store := cookie.NewStore([]byte("test key"))
	router.Use(sessions.Sessions("token", store))
	router.GET("/join/:token", InvitationAcceptView)
	router.POST("/join/:token", InvitationAcceptSubmit)
	return router
}

func seedInvitation(t *testing.T) models.Invitation {
	t.Helper()
	company := models.Company{Name: "Acme Productions"}
	if err := db.Instance.Create(&company).Error; err != nil {
		t.Fatalf("create company: %v", err)
	}
	inv, err := models.NewInvitation(nil, company.ID, "talent@example.com", models.RoleMember)
	if err != nil {
		t.Fatalf("create invitation: %v", err)
	}
	return inv
}

func postForm(router *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(w, req)
	return w
}

func TestInvitationAcceptView(t *testing.T) {
	router := setupRouter(t)
	inv := seedInvitation(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/join/"+inv.Token, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Join Acme Productions") {
		t.Error("body missing company name")
	}
	if !strings.Contains(body, "talent@example.com") {
		t.Error("body missing invitee email")
	}
}

func TestInvitationAcceptViewUnknownToken(t *testing.T) {
	router := setupRouter(t)
	seedInvitation(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/join/not-a-token", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("status: got %d, want 404", w.Code)
	}
}

func TestInvitationAcceptViewAlreadyAccepted(t *testing.T) {
	router := setupRouter(t)
	inv := seedInvitation(t)
	now := time.Now().Unix()
	db.Instance.Model(&models.Invitation{}).Where("id = ?", inv.ID).Update("accepted_at", now)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/join/"+inv.Token, nil))
	if w.Code != http.StatusGone {
		t.Fatalf("status: got %d, want 410", w.Code)
	}
	if !strings.Contains(w.Body.String(), "already") {
		t.Error("body missing already-accepted notice")
	}
}

func TestInvitationAcceptSubmit(t *testing.T) {
	router := setupRouter(t)
	inv := seedInvitation(t)

	w := postForm(router, "/join/"+inv.Token, url.Values{
		"name":     {"Jane Doe"},
		"password": {"password123"},
	})
	if w.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d, want 303 (body: %s)", w.Code, w.Body.String())
	}
	if loc := w.Header().Get("Location"); loc != "/manage/" {
		t.Errorf("redirect location: %q", loc)
	}
	sessionSet := false
	for _, c := range w.Result().Cookies() {
		if c.Name == "token" && c.Value != "" {
			sessionSet = true
		}
	}
	if !sessionSet {
		t.Error("no session cookie set")
	}

	user, ok := models.UserLogin("talent@example.com", "password123")
	if !ok {
		t.Fatal("new account cannot log in")
	}
	if !user.HasCompanyRole(inv.CompanyID, models.RoleMember) {
		t.Error("baseline role grant missing")
	}
	var talent models.Talent
	if err := db.Instance.Where("user_id = ?", user.ID).First(&talent).Error; err != nil {
		t.Fatalf("talent profile missing: %v", err)
	}
	var after models.Invitation
	db.Instance.First(&after, inv.ID)
	if !after.Accepted() {
		t.Error("invitation not consumed")
	}
}

func TestInvitationAcceptSubmitWeakPassword(t *testing.T) {
	router := setupRouter(t)
	inv := seedInvitation(t)

	w := postForm(router, "/join/"+inv.Token, url.Values{"password": {"short"}})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status: got %d, want 422", w.Code)
	}
	if !strings.Contains(w.Body.String(), "at least 8 characters") {
		t.Error("body missing field error")
	}
	var after models.Invitation
	db.Instance.First(&after, inv.ID)
	if after.Accepted() {
		t.Error("invitation consumed on validation failure")
	}
}

func TestInvitationAcceptSubmitTwice(t *testing.T) {
	router := setupRouter(t)
	inv := seedInvitation(t)

	first := postForm(router, "/join/"+inv.Token, url.Values{"password": {"password123"}})
	if first.Code != http.StatusSeeOther {
		t.Fatalf("first accept status: %d", first.Code)
	}
	second := postForm(router, "/join/"+inv.Token, url.Values{"password": {"password123"}})
	if second.Code != http.StatusGone {
		t.Fatalf("second accept status: got %d, want 410", second.Code)
	}
	var users int64
	db.Instance.Model(&models.User{}).Count(&users)
	if users != 1 {
		t.Errorf("users: got %d, want 1", users)
	}
}
