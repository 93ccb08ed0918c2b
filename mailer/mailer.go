package mailer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"server/config"
	"server/db"
	"server/models"
)

var httpClient = http.Client{Timeout: 10 * time.Second}

type Email struct {
	To        string  `json:"to"`
	Subject   string  `json:"subject"`
	Body      string  `json:"body"`
	CompanyID *uint64 `json:"-"`
}

// Send hands the email to the configured HTTP mail relay and records the
// outcome in the email log. With no relay configured the email is logged
// as skipped - useful for local setups.
func (email *Email) Send() error {
	if config.MAIL_RELAY == "" {
		log.Printf("Mail relay not configured, skipping email to %s", email.To)
		email.logStatus(models.EmailStatusSkipped, "")
		return nil
	}
	buf := bytes.Buffer{}
	json.NewEncoder(&buf).Encode(*email)
	resp, err := httpClient.Post(config.MAIL_RELAY+"/send", "application/json", &buf)
	if err != nil {
		log.Printf("Email send error: %v", err)
		email.logStatus(models.EmailStatusFailed, err.Error())
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		buf.Reset()
		io.Copy(&buf, resp.Body)
		log.Printf("Email send error, status: %d, %s", resp.StatusCode, buf.String())
		err = fmt.Errorf("status: %d", resp.StatusCode)
		email.logStatus(models.EmailStatusFailed, err.Error())
		return err
	}
	email.logStatus(models.EmailStatusSent, "")
	return nil
}

func (email *Email) logStatus(status, errorMessage string) {
	entry := models.EmailLog{
		CompanyID: email.CompanyID,
		Recipient: email.To,
		Subject:   email.Subject,
		Status:    status,
		Error:     errorMessage,
	}
	if err := db.Instance.Create(&entry).Error; err != nil {
		log.Printf("Email log error: %v", err)
	}
}

// SendInvitation emails the accept link for a pending invitation
func SendInvitation(inv *models.Invitation, companyName string) error {
	email := Email{
		To:        inv.Email,
		Subject:   "Join " + companyName,
		Body:      fmt.Sprintf("You have been invited to join %s.\n\nAccept here: %s/join/%s\n", companyName, config.BASE_URL, inv.Token),
		CompanyID: &inv.CompanyID,
	}
	return email.Send()
}
