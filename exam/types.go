package exam

import "time"

const (
	LevelBasic    = "basic"
	LevelAdvanced = "advanced"
)

// ExamModule is one ordered section of an exam, referencing catalog
// tasks by id only.
type ExamModule struct {
	Name            string // listening|speaking|reading|writing
	DurationMinutes int
	BufferMinutes   int
	TaskIDs         []string
}

type Exam struct {
	ID         string
	Title      string
	Level      string
	Modules    []ExamModule
	TotalMarks int
	IsActive   bool
	CreatedBy  string
	CreatedAt  time.Time
}
