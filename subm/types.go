package subm

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

const (
	StatusSubmitted = "submitted" // awaiting manual review
	StatusEvaluated = "evaluated" // fully graded
)

// Feedback texts set by the auto-grader. Reviewers overwrite them
// freely.
const (
	FeedbackTaskNotFound     = "Task not found"
	FeedbackQuestionNotFound = "Question not found"
	FeedbackPendingReview    = "Pending manual review"
	FeedbackCorrect          = "Correct"
	FeedbackIncorrect        = "Incorrect"
)

// Response is one graded answer embedded in a submission. MaxScore is
// captured from the catalog at grading time and frozen; later catalog
// edits never alter historical scores.
type Response struct {
	TaskID     string
	QuestionID *string // nil for whole-task modules like speaking/writing
	Answer     string
	Score      int
	MaxScore   int
	Feedback   string
}

type Submission struct {
	ID         string
	StudentID  string
	ExamID     string
	Module     string
	Responses  []Response
	MediaURLs  []string
	TotalScore int
	Status     string
	ReviewedBy *string
	ReviewedAt *time.Time
	CreatedAt  time.Time
}

// AnswerValue tolerates the mixed scalar answers clients send: option
// ids as strings, numeric answers, booleans. Everything is kept as its
// string form for comparison against the catalog's correct answer.
type AnswerValue string

func (a *AnswerValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = AnswerValue(s)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*a = AnswerValue(strconv.FormatFloat(n, 'f', -1, 64))
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*a = AnswerValue(strconv.FormatBool(b))
		return nil
	}
	if string(data) == "null" {
		*a = ""
		return nil
	}
	return fmt.Errorf("cannot decode answer value %s", string(data))
}

func (a AnswerValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(a))
}

// RawResponse is one undecoded answer from the client.
type RawResponse struct {
	TaskID     string      `json:"taskId"`
	QuestionID *string     `json:"questionId,omitempty"`
	Answer     AnswerValue `json:"answer"`
}

// DecodeRawResponses accepts either a JSON array of responses or a JSON
// string containing one (multipart forms serialize the array). A
// missing payload decodes to an empty list.
func DecodeRawResponses(raw json.RawMessage) ([]RawResponse, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return []RawResponse{}, nil
	}

	var serialized string
	if err := json.Unmarshal(raw, &serialized); err == nil {
		raw = json.RawMessage(serialized)
	}

	var responses []RawResponse
	if err := json.Unmarshal(raw, &responses); err != nil {
		return nil, newErrMalformedResponses().SetDebug(err)
	}
	if responses == nil {
		responses = []RawResponse{}
	}
	return responses, nil
}
