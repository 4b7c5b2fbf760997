package http

import (
	"time"

	"github.com/aeiou-exam/backend/subm"
)

type ResponseView struct {
	TaskID     string  `json:"taskId"`
	QuestionID *string `json:"questionId,omitempty"`
	Answer     string  `json:"answer"`
	Score      int     `json:"score"`
	MaxScore   int     `json:"maxScore"`
	Feedback   string  `json:"feedback"`
}

type SubmissionResponse struct {
	ID         string         `json:"id"`
	StudentID  string         `json:"studentId"`
	ExamID     string         `json:"examId"`
	Module     string         `json:"module"`
	Responses  []ResponseView `json:"responses"`
	MediaURLs  []string       `json:"mediaUrls"`
	TotalScore int            `json:"totalScore"`
	Status     string         `json:"status"`
	ReviewedBy *string        `json:"reviewedBy,omitempty"`
	ReviewedAt *time.Time     `json:"reviewedAt,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
}

func mapSubm(s *subm.Submission) SubmissionResponse {
	responses := make([]ResponseView, 0, len(s.Responses))
	for _, resp := range s.Responses {
		responses = append(responses, ResponseView{
			TaskID:     resp.TaskID,
			QuestionID: resp.QuestionID,
			Answer:     resp.Answer,
			Score:      resp.Score,
			MaxScore:   resp.MaxScore,
			Feedback:   resp.Feedback,
		})
	}
	mediaURLs := s.MediaURLs
	if mediaURLs == nil {
		mediaURLs = []string{}
	}
	return SubmissionResponse{
		ID:         s.ID,
		StudentID:  s.StudentID,
		ExamID:     s.ExamID,
		Module:     s.Module,
		Responses:  responses,
		MediaURLs:  mediaURLs,
		TotalScore: s.TotalScore,
		Status:     s.Status,
		ReviewedBy: s.ReviewedBy,
		ReviewedAt: s.ReviewedAt,
		CreatedAt:  s.CreatedAt,
	}
}

func mapSubms(subms []*subm.Submission) []SubmissionResponse {
	response := make([]SubmissionResponse, 0, len(subms))
	for _, s := range subms {
		response = append(response, mapSubm(s))
	}
	return response
}
