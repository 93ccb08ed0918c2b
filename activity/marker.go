package activity

import (
	"time"

	"server/config"

	"github.com/gorilla/securecookie"
)

const CookieName = "activity"

// Marker is the signed, client-held value used to throttle activity
// tracking. It is advisory only - the authoritative last-seen time lives
// on the User row and is written by the user.touch background task.
type Marker struct {
	UserID   uint64
	IssuedAt int64
}

var codec *securecookie.SecureCookie

func Init() {
	codec = securecookie.New([]byte(config.ACTIVITY_KEY), nil)
	codec.MaxAge(int(Interval().Seconds()))
}

func Interval() time.Duration {
	return time.Duration(config.ACTIVITY_INTERVAL) * time.Minute
}

func encodeMarker(marker Marker) (string, error) {
	return codec.Encode(CookieName, marker)
}

// decodeMarker rejects tampered or expired values. Callers treat any
// error as "no marker" - fail open toward re-tracking.
func decodeMarker(value string) (marker Marker, err error) {
	err = codec.Decode(CookieName, value, &marker)
	return
}
