package tasks

import (
	"log"
	"time"

	"server/config"
	"server/db"

	"github.com/google/uuid"
	cmap "github.com/orcaman/concurrent-map/v2"
)

// Task is a durable unit of background work. Execution is at-least-once:
// a task that fails is retried with backoff until TASK_MAX_ATTEMPTS, so
// handlers must be idempotent.
type Task struct {
	ID        string `gorm:"primaryKey;type:varchar(36)"`
	CreatedAt int64  `gorm:"index"`
	Kind      string `gorm:"type:varchar(50)"`
	Subject   uint64
	Attempts  int
	RunAfter  int64  `gorm:"index"`
	DoneAt    *int64 `gorm:"index"`
	LastError string `gorm:"type:varchar(300)"`
}

type taskHandler func(subject uint64) error

var (
	handlers = map[string]taskHandler{}
	// Tasks currently executing, shared between worker goroutines so the
	// same row is never picked up twice
	inflight = cmap.New[bool]()
)

func registerHandler(kind string, handler taskHandler) {
	handlers[kind] = handler
}

func Init() {
	if err := db.Instance.AutoMigrate(&Task{}); err != nil {
		log.Printf("Auto-migrate error: %v", err)
	}
	registerHandler(KindUserTouch, touchUser)
}

// Enqueue records a task for the background workers. It never blocks on
// the task's execution - the caller only pays for one insert.
func Enqueue(kind string, subject uint64) error {
	task := Task{
		ID:       uuid.NewString(),
		Kind:     kind,
		Subject:  subject,
		RunAfter: time.Now().Unix(),
	}
	return db.Instance.Create(&task).Error
}

const workerCount = 2

func StartWorkers() {
	for i := 0; i < workerCount; i++ {
		go run()
	}
}

func run() {
	for {
		if runPending() == 0 {
			time.Sleep(time.Duration(config.TASK_POLL_SECONDS) * time.Second)
		}
	}
}

// runPending executes a batch of due tasks and returns how many it picked up
func runPending() int {
	var pending []Task
	err := db.Instance.
		Where("done_at IS NULL AND run_after <= ? AND attempts < ?", time.Now().Unix(), config.TASK_MAX_ATTEMPTS).
		Order("created_at").
		Limit(20).
		Find(&pending).Error
	if err != nil {
		log.Printf("runPending error: %v", err)
		return 0
	}
	picked := 0
	for i := range pending {
		task := &pending[i]
		if !inflight.SetIfAbsent(task.ID, true) {
			continue
		}
		picked++
		runOne(task)
		inflight.Remove(task.ID)
	}
	return picked
}

func runOne(task *Task) {
	handler, ok := handlers[task.Kind]
	if !ok {
		log.Printf("Task %s has unknown kind %q", task.ID, task.Kind)
		markFailed(task, "unknown kind")
		return
	}
	start := time.Now()
	err := handler(task.Subject)
	log.Printf("Task %s, kind: %s, subject: %d, err: %v, time: %v", task.ID, task.Kind, task.Subject, err, time.Since(start).Milliseconds())
	if err != nil {
		markFailed(task, err.Error())
		return
	}
	now := time.Now().Unix()
	task.DoneAt = &now
	if err = db.Instance.Save(task).Error; err != nil {
		log.Printf("Task %s save error: %v", task.ID, err)
	}
}

func markFailed(task *Task, message string) {
	task.Attempts++
	if len(message) > 300 {
		message = message[:300]
	}
	task.LastError = message
	// Linear backoff is enough here; the work is tiny and non-urgent
	task.RunAfter = time.Now().Unix() + int64(task.Attempts*60)
	if err := db.Instance.Save(task).Error; err != nil {
		log.Printf("Task %s save error: %v", task.ID, err)
	}
}
