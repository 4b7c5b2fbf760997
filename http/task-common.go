package http

import (
	"time"

	"github.com/aeiou-exam/backend/task"
)

type OptionResponse struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type QuestionResponse struct {
	ID            string           `json:"id"`
	Prompt        string           `json:"prompt"`
	Options       []OptionResponse `json:"options"`
	CorrectAnswer *string          `json:"correctAnswer,omitempty"`
	Points        int              `json:"points"`
	Kind          string           `json:"kind"`
}

type TaskResponse struct {
	ID              string             `json:"id"`
	Title           string             `json:"title"`
	Module          string             `json:"module"`
	Type            string             `json:"type"`
	Instruction     string             `json:"instruction"`
	Content         string             `json:"content,omitempty"`
	Questions       []QuestionResponse `json:"questions"`
	MediaURL        *string            `json:"mediaUrl,omitempty"`
	ImageURL        *string            `json:"imageUrl,omitempty"`
	DurationMinutes int                `json:"durationMinutes"`
	Points          int                `json:"points"`
	MaxFiles        int                `json:"maxFiles"`
	MaxFileSizeMB   int                `json:"maxFileSizeMb"`
	IsActive        bool               `json:"isActive"`
	CreatedAt       time.Time          `json:"createdAt"`
}

// mapTask converts a catalog task for responses. Correct answers are
// included only for teachers and admins; students never see them.
func mapTask(t *task.Task, includeAnswers bool) TaskResponse {
	questions := make([]QuestionResponse, 0, len(t.Questions))
	for _, q := range t.Questions {
		options := make([]OptionResponse, 0, len(q.Options))
		for _, o := range q.Options {
			options = append(options, OptionResponse{ID: o.ID, Text: o.Text})
		}
		qr := QuestionResponse{
			ID:      q.ID,
			Prompt:  q.Prompt,
			Options: options,
			Points:  q.Points,
			Kind:    q.Kind,
		}
		if includeAnswers {
			qr.CorrectAnswer = q.CorrectAnswer
		}
		questions = append(questions, qr)
	}
	return TaskResponse{
		ID:              t.ID,
		Title:           t.Title,
		Module:          t.Module,
		Type:            t.Type,
		Instruction:     t.Instruction,
		Content:         t.Content,
		Questions:       questions,
		MediaURL:        t.MediaURL,
		ImageURL:        t.ImageURL,
		DurationMinutes: t.DurationMinutes,
		Points:          t.Points,
		MaxFiles:        t.MaxFiles,
		MaxFileSizeMB:   t.MaxFileSizeMB,
		IsActive:        t.IsActive,
		CreatedAt:       t.CreatedAt,
	}
}

type questionRequest struct {
	Prompt        string           `json:"prompt"`
	Options       []OptionResponse `json:"options"`
	CorrectAnswer *string          `json:"correctAnswer"`
	Points        int              `json:"points"`
	Kind          string           `json:"kind"`
}

func mapQuestionParams(questions []questionRequest) []task.QuestionParams {
	if questions == nil {
		return nil
	}
	params := make([]task.QuestionParams, 0, len(questions))
	for _, q := range questions {
		options := make([]task.Option, 0, len(q.Options))
		for _, o := range q.Options {
			options = append(options, task.Option{ID: o.ID, Text: o.Text})
		}
		params = append(params, task.QuestionParams{
			Prompt:        q.Prompt,
			Options:       options,
			CorrectAnswer: q.CorrectAnswer,
			Points:        q.Points,
			Kind:          q.Kind,
		})
	}
	return params
}
