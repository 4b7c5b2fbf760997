package subm

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/aeiou-exam/backend/srvcerror"
	"github.com/aeiou-exam/backend/task"
	"github.com/google/uuid"
)

type GradeSubmissionParams struct {
	StudentID string
	ExamID    string
	Module    string

	// RawResponses is either a JSON array of responses or a JSON string
	// containing one.
	RawResponses json.RawMessage

	// MediaURLs are produced by the upload collaborator before grading
	// runs; they are stored verbatim.
	MediaURLs []string
}

// GradeSubmission resolves every submitted answer against the catalog,
// scores it, and persists the resulting submission. Missing tasks or
// questions degrade the single affected response instead of failing the
// request.
func (s *SubmissionSrvc) GradeSubmission(ctx context.Context, p GradeSubmissionParams) (*Submission, error) {
	if p.ExamID == "" || p.Module == "" {
		return nil, newErrMissingField()
	}
	if !task.ValidModule(p.Module) {
		return nil, newErrInvalidModule()
	}

	raw, err := DecodeRawResponses(p.RawResponses)
	if err != nil {
		return nil, err
	}

	ex, err := s.exams.FindActiveExam(ctx, p.ExamID)
	if err != nil {
		return nil, srvcerror.ErrInternalSE().SetDebug(err)
	}
	if ex == nil {
		return nil, newErrExamNotFound()
	}

	// Catalog lookups are independent reads, so they run concurrently.
	// Each goroutine writes only its own index; the total is summed
	// after all of them finish.
	responses := make([]Response, len(raw))
	var wg sync.WaitGroup
	for i := range raw {
		wg.Add(1)
		go func(i int, rr RawResponse) {
			defer wg.Done()

			t, err := s.catalog.FindTask(ctx, rr.TaskID)
			if err != nil {
				// a failed lookup degrades like a missing task
				t = nil
			}

			outcome := resolveAnswer(t, rr.QuestionID, string(rr.Answer))
			responses[i] = Response{
				TaskID:     rr.TaskID,
				QuestionID: rr.QuestionID,
				Answer:     string(rr.Answer),
				Score:      outcome.Score,
				MaxScore:   outcome.MaxScore,
				Feedback:   outcome.Feedback,
			}
		}(i, raw[i])
	}
	wg.Wait()

	total := 0
	for i := range responses {
		total += responses[i].Score
	}

	// Subjective modules wait for a reviewer, objective ones are done.
	status := StatusEvaluated
	if task.SubjectiveModule(p.Module) {
		status = StatusSubmitted
	}

	submission := &Submission{
		ID:         uuid.New().String(),
		StudentID:  p.StudentID,
		ExamID:     p.ExamID,
		Module:     p.Module,
		Responses:  responses,
		MediaURLs:  p.MediaURLs,
		TotalScore: total,
		Status:     status,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, submission); err != nil {
		return nil, srvcerror.ErrInternalSE().SetDebug(err)
	}

	return submission, nil
}
