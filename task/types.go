package task

import "time"

// Exam modules. Listening and reading are auto-graded, speaking and
// writing always go through manual review.
const (
	ModuleListening = "listening"
	ModuleSpeaking  = "speaking"
	ModuleReading   = "reading"
	ModuleWriting   = "writing"
)

func ValidModule(module string) bool {
	switch module {
	case ModuleListening, ModuleSpeaking, ModuleReading, ModuleWriting:
		return true
	}
	return false
}

// SubjectiveModule reports whether the module requires human judgement
// regardless of question content.
func SubjectiveModule(module string) bool {
	return module == ModuleSpeaking || module == ModuleWriting
}

const (
	TaskTypeMultipleChoice  = "multiple_choice"
	TaskTypeWrittenResponse = "written_response"
	TaskTypeAudioResponse   = "audio_response"
	TaskTypeVideoResponse   = "video_response"
	TaskTypeFileUpload      = "file_upload"
)

func validTaskType(taskType string) bool {
	switch taskType {
	case TaskTypeMultipleChoice, TaskTypeWrittenResponse,
		TaskTypeAudioResponse, TaskTypeVideoResponse, TaskTypeFileUpload:
		return true
	}
	return false
}

const (
	QuestionKindMultipleChoice = "multiple_choice"
	QuestionKindTextInput      = "text_input"
	QuestionKindFileUpload     = "file_upload"
)

func validQuestionKind(kind string) bool {
	switch kind {
	case QuestionKindMultipleChoice, QuestionKindTextInput, QuestionKindFileUpload:
		return true
	}
	return false
}

const (
	DefaultTaskPoints     = 10
	DefaultQuestionPoints = 5
)

type Option struct {
	ID   string
	Text string
}

type Question struct {
	ID            string
	Prompt        string
	Options       []Option
	CorrectAnswer *string // nil means not auto-gradable
	Points        int
	Kind          string
}

type Task struct {
	ID          string
	Title       string
	Module      string // immutable after creation, grading depends on it
	Type        string
	Instruction string
	Content     string
	Questions   []Question
	MediaURL    *string
	ImageURL    *string

	DurationMinutes int
	Points          int // task-level points, used when the task has no sub-questions
	MaxFiles        int
	MaxFileSizeMB   int

	CreatedBy string
	IsActive  bool
	CreatedAt time.Time
}

// FindQuestion returns the question with the given id, or nil.
func (t *Task) FindQuestion(questionID string) *Question {
	for i := range t.Questions {
		if t.Questions[i].ID == questionID {
			return &t.Questions[i]
		}
	}
	return nil
}

// MaxPoints returns the task-level point value, falling back to the
// default when unset.
func (t *Task) MaxPoints() int {
	if t.Points <= 0 {
		return DefaultTaskPoints
	}
	return t.Points
}

// MaxPoints returns the question's point value, falling back to the
// default when unset.
func (q *Question) MaxPoints() int {
	if q.Points <= 0 {
		return DefaultQuestionPoints
	}
	return q.Points
}
