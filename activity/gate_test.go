package activity

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"server/db"
	"server/models"
	"server/tasks"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupGate(t *testing.T) {
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
	tasks.Init()
	Init()
}

func performTouch(t *testing.T, userID uint64, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)
	if cookie != nil {
		c.Request.AddCookie(cookie)
	}
	Touch(c, userID)
	return w
}

func markerCookie(t *testing.T, marker Marker) *http.Cookie {
	t.Helper()
	value, err := encodeMarker(marker)
	if err != nil {
		t.Fatalf("encode marker: %v", err)
	}
	return &http.Cookie{Name: CookieName, Value: value}
}

func taskCount(t *testing.T) int64 {
	t.Helper()
	var n int64
	if err := db.Instance.Model(&tasks.Task{}).Count(&n).Error; err != nil {
		t.Fatalf("count tasks: %v", err)
	}
	return n
}

func issuedCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == CookieName {
			return cookie
		}
	}
	return nil
}

func TestTouchWithoutMarker(t *testing.T) {
	setupGate(t)
	w := performTouch(t, 1, nil)
	if n := taskCount(t); n != 1 {
		t.Errorf("tasks enqueued: got %d, want 1", n)
	}
	cookie := issuedCookie(w)
	if cookie == nil {
		t.Fatal("no marker cookie issued")
	}
	if !cookie.HttpOnly {
		t.Error("marker cookie must be HttpOnly")
	}
	if cookie.MaxAge != int(Interval().Seconds()) {
		t.Errorf("marker cookie MaxAge: got %d, want %d", cookie.MaxAge, int(Interval().Seconds()))
	}
}

func TestTouchWithFreshMarker(t *testing.T) {
	setupGate(t)
	cookie := markerCookie(t, Marker{UserID: 1, IssuedAt: time.Now().Unix() - 60})
	w := performTouch(t, 1, cookie)
	if n := taskCount(t); n != 0 {
		t.Errorf("tasks enqueued: got %d, want 0", n)
	}
	if issuedCookie(w) != nil {
		t.Error("marker cookie reissued on the no-op branch")
	}
}

func TestTouchWithStaleMarker(t *testing.T) {
	setupGate(t)
	stale := time.Now().Add(-Interval() - time.Minute).Unix()
	cookie := markerCookie(t, Marker{UserID: 1, IssuedAt: stale})
	w := performTouch(t, 1, cookie)
	if n := taskCount(t); n != 1 {
		t.Errorf("tasks enqueued: got %d, want 1", n)
	}
	if issuedCookie(w) == nil {
		t.Error("marker cookie not replaced")
	}
}

func TestTouchWithTamperedMarker(t *testing.T) {
	setupGate(t)
	cookie := markerCookie(t, Marker{UserID: 1, IssuedAt: time.Now().Unix()})
	cookie.Value = "A" + cookie.Value
	w := performTouch(t, 1, cookie)
	// Fail open: tampering means re-track, never block
	if n := taskCount(t); n != 1 {
		t.Errorf("tasks enqueued: got %d, want 1", n)
	}
	if issuedCookie(w) == nil {
		t.Error("marker cookie not replaced after tampering")
	}
}

func TestTouchWithOtherUsersMarker(t *testing.T) {
	setupGate(t)
	cookie := markerCookie(t, Marker{UserID: 2, IssuedAt: time.Now().Unix()})
	performTouch(t, 1, cookie)
	if n := taskCount(t); n != 1 {
		t.Errorf("tasks enqueued: got %d, want 1", n)
	}
}

func TestTouchAnonymous(t *testing.T) {
	setupGate(t)
	w := performTouch(t, 0, nil)
	if n := taskCount(t); n != 0 {
		t.Errorf("tasks enqueued for anonymous request: %d", n)
	}
	if issuedCookie(w) != nil {
		t.Error("marker issued for anonymous request")
	}
}

func TestMarkerRoundTrip(t *testing.T) {
	setupGate(t)
	in := Marker{UserID: 42, IssuedAt: time.Now().Unix()}
	value, err := encodeMarker(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := decodeMarker(value)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out != in {
		t.Errorf("round trip: got %+v, want %+v", out, in)
	}
	if _, err = decodeMarker("garbage"); err == nil {
		t.Error("garbage value decoded without error")
	}
}
