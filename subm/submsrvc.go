package subm

import (
	"context"

	"github.com/aeiou-exam/backend/exam"
	"github.com/aeiou-exam/backend/task"
)

// TaskProvider is the catalog lookup the grading engine depends on. A
// missing task is reported as nil without error.
type TaskProvider interface {
	FindTask(ctx context.Context, id string) (*task.Task, error)
}

// ExamProvider resolves an exam id against the currently active exams.
type ExamProvider interface {
	FindActiveExam(ctx context.Context, id string) (*exam.Exam, error)
}

// Repo is the persistence boundary for submissions. The grading and
// review engines are its only writers.
type Repo interface {
	Create(ctx context.Context, s *Submission) error
	Get(ctx context.Context, id string) (*Submission, error) // nil, nil when absent
	Save(ctx context.Context, s *Submission) error
	List(ctx context.Context) ([]*Submission, error)
}

type SubmissionSrvc struct {
	catalog TaskProvider
	exams   ExamProvider
	repo    Repo
}

func NewSubmissionSrvc(catalog TaskProvider, exams ExamProvider, repo Repo) *SubmissionSrvc {
	return &SubmissionSrvc{
		catalog: catalog,
		exams:   exams,
		repo:    repo,
	}
}
