package config

import (
	"os"
	"strconv"
	"strings"
)

var (
	TLS_DOMAINS        = ""                      // e.g. "example.com,example2.com"
	BASE_URL           = "http://localhost:8080" // Used to build invitation links in emails
	MAIL_RELAY         = ""                      // HTTP mail relay, e.g. "https://mail.example.com". Emails are skipped if empty
	MYSQL_DSN          = ""                      // MySQL will be used if this is set
	SQLITE_FILE        = ""                      // SQLite will be used if MYSQL_DSN is not configured and this is set
	BIND_ADDRESS       = "0.0.0.0:8080"
	TMP_DIR            = "/tmp" // Used for temporary headshot handling (in case of S3 bucket)
	DEFAULT_BUCKET_DIR = ""     // Used for creating initial headshot bucket
	DEBUG_MODE         = true
	SESSION_KEY        = "this is a long key" // TODO: require this to be set in production
	ACTIVITY_KEY       = ""                   // Signing key for the activity marker cookie. Defaults to SESSION_KEY
	ACTIVITY_INTERVAL  = 15                   // Minutes between "user is active" task enqueues
	TASK_POLL_SECONDS  = 10                   // Task queue poll interval
	TASK_MAX_ATTEMPTS  = 5
)

func init() {
	readEnvString("TLS_DOMAINS", &TLS_DOMAINS)
	readEnvString("BASE_URL", &BASE_URL)
	readEnvString("MAIL_RELAY", &MAIL_RELAY)
	readEnvString("MYSQL_DSN", &MYSQL_DSN)
	readEnvString("SQLITE_FILE", &SQLITE_FILE)
	readEnvString("BIND_ADDRESS", &BIND_ADDRESS)
	readEnvString("TMP_DIR", &TMP_DIR)
	readEnvString("DEFAULT_BUCKET_DIR", &DEFAULT_BUCKET_DIR)
	readEnvBool("DEBUG_MODE", &DEBUG_MODE)
	readEnvString("SESSION_KEY", &SESSION_KEY)
	readEnvString("ACTIVITY_KEY", &ACTIVITY_KEY)
	readEnvInt("ACTIVITY_INTERVAL", &ACTIVITY_INTERVAL)
	readEnvInt("TASK_POLL_SECONDS", &TASK_POLL_SECONDS)
	readEnvInt("TASK_MAX_ATTEMPTS", &TASK_MAX_ATTEMPTS)
	if ACTIVITY_KEY == "" {
		ACTIVITY_KEY = SESSION_KEY
	}
}

func readEnvString(name string, value *string) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	*value = v
}

func readEnvBool(name string, value *bool) {
	v := strings.ToLower(os.Getenv(name))
	if v == "true" || v == "1" || v == "yes" || v == "on" {
		*value = true
	} else if v == "false" || v == "0" || v == "no" || v == "off" {
		*value = false
	}
}

func readEnvInt(name string, value *int) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	f, err := strconv.Atoi(v)
	if err != nil {
		return
	}
	*value = f
}
