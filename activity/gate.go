package activity

import (
	"log"
	"time"

	"server/tasks"

	"github.com/gin-gonic/gin"
)

// Touch decides whether a "user is active" signal should be recorded for
// the authenticated user of the current request. At most one user.touch
// task is enqueued per interval; the signed marker cookie makes the
// decision without a database read.
//
// Concurrent requests from the same user can race past each other and
// both enqueue - that is fine, the downstream write is last-write-wins.
func Touch(c *gin.Context, userID uint64) {
	if userID == 0 {
		return
	}
	now := time.Now()
	if value, err := c.Cookie(CookieName); err == nil {
		marker, err := decodeMarker(value)
		if err == nil && marker.UserID == userID && now.Unix()-marker.IssuedAt < int64(Interval().Seconds()) {
			return
		}
		if err != nil {
			// Tampered, corrupted or stale-key marker: re-track
			log.Printf("activity: dropping bad marker: %v", err)
		}
	}
	value, err := encodeMarker(Marker{UserID: userID, IssuedAt: now.Unix()})
	if err != nil {
		log.Printf("activity: marker encode error: %v", err)
		return
	}
	c.SetCookie(CookieName, value, int(Interval().Seconds()), "/", "", false, true)
	if err = tasks.Enqueue(tasks.KindUserTouch, userID); err != nil {
		log.Printf("activity: enqueue error: %v", err)
	}
}
