package tasks

import (
	"time"

	"server/db"
	"server/models"
)

const KindUserTouch = "user.touch"

// touchUser writes the authoritative last-seen timestamp. The update is
// conditional so a late or duplicate task never moves the value backwards
// (last write wins), which makes re-delivery harmless.
func touchUser(userID uint64) error {
	now := time.Now().Unix()
	return db.Instance.Model(&models.User{}).
		Where("id = ? AND last_seen_at < ?", userID, now).
		Update("last_seen_at", now).Error
}
