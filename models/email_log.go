package models

const (
	EmailStatusSent    = "sent"
	EmailStatusFailed  = "failed"
	EmailStatusSkipped = "skipped" // no mail relay configured
)

// EmailLog records every email handed to the mail relay
type EmailLog struct {
	ID        uint64 `gorm:"primaryKey"`
	CreatedAt int64  `gorm:"index"`
	CompanyID *uint64
	Recipient string `gorm:"type:varchar(150);index"`
	Subject   string `gorm:"type:varchar(300)"`
	Status    string `gorm:"type:varchar(20)"`
	Error     string `gorm:"type:varchar(300)"`
}
