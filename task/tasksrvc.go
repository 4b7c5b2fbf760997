package task

import (
	"context"
	"time"

	"github.com/aeiou-exam/backend/srvcerror"
	"github.com/google/uuid"
)

// Repo is the persistence boundary of the task catalog.
type Repo interface {
	Store(ctx context.Context, t *Task) error
	Get(ctx context.Context, id string) (*Task, error) // nil, nil when absent
	List(ctx context.Context) ([]*Task, error)
}

type TaskSrvc struct {
	repo Repo
}

func NewTaskSrvc(repo Repo) *TaskSrvc {
	return &TaskSrvc{repo: repo}
}

type QuestionParams struct {
	Prompt        string
	Options       []Option
	CorrectAnswer *string
	Points        int
	Kind          string
}

type CreateTaskParams struct {
	Title       string
	Module      string
	Type        string
	Instruction string
	Content     string
	Questions   []QuestionParams
	MediaURL    *string
	ImageURL    *string

	DurationMinutes int
	Points          int
	MaxFiles        int
	MaxFileSizeMB   int

	CreatedBy string
}

func (s *TaskSrvc) CreateTask(ctx context.Context, p CreateTaskParams) (*Task, error) {
	if p.Title == "" {
		return nil, newErrTitleRequired()
	}
	if p.Instruction == "" {
		return nil, newErrInstructionRequired()
	}
	if !ValidModule(p.Module) {
		return nil, newErrInvalidModule(p.Module)
	}
	if !validTaskType(p.Type) {
		return nil, newErrInvalidTaskType(p.Type)
	}
	if p.Points < 0 {
		return nil, newErrNegativePoints()
	}

	questions := make([]Question, 0, len(p.Questions))
	for _, qp := range p.Questions {
		q, err := buildQuestion(qp)
		if err != nil {
			return nil, err
		}
		questions = append(questions, *q)
	}

	t := &Task{
		ID:              uuid.New().String(),
		Title:           p.Title,
		Module:          p.Module,
		Type:            p.Type,
		Instruction:     p.Instruction,
		Content:         p.Content,
		Questions:       questions,
		MediaURL:        p.MediaURL,
		ImageURL:        p.ImageURL,
		DurationMinutes: defaultInt(p.DurationMinutes, 10),
		Points:          defaultInt(p.Points, DefaultTaskPoints),
		MaxFiles:        defaultInt(p.MaxFiles, 1),
		MaxFileSizeMB:   defaultInt(p.MaxFileSizeMB, 100),
		CreatedBy:       p.CreatedBy,
		IsActive:        true,
		CreatedAt:       time.Now().UTC(),
	}

	if err := s.repo.Store(ctx, t); err != nil {
		return nil, srvcerror.ErrInternalSE().SetDebug(err)
	}

	return t, nil
}

func buildQuestion(p QuestionParams) (*Question, error) {
	kind := p.Kind
	if kind == "" {
		kind = QuestionKindMultipleChoice
	}
	if !validQuestionKind(kind) {
		return nil, newErrInvalidQuestionKind(kind)
	}
	if p.Points < 0 {
		return nil, newErrNegativePoints()
	}
	return &Question{
		ID:            uuid.New().String(),
		Prompt:        p.Prompt,
		Options:       p.Options,
		CorrectAnswer: p.CorrectAnswer,
		Points:        defaultInt(p.Points, DefaultQuestionPoints),
		Kind:          kind,
	}, nil
}

type UpdateTaskParams struct {
	ID          string
	Title       *string
	Module      *string // only accepted if equal to the stored module
	Instruction *string
	Content     *string
	Questions   []QuestionParams // replaces the question list when non-nil
	MediaURL    *string
	ImageURL    *string

	DurationMinutes *int
	Points          *int
	IsActive        *bool
}

func (s *TaskSrvc) UpdateTask(ctx context.Context, p UpdateTaskParams) (*Task, error) {
	t, err := s.repo.Get(ctx, p.ID)
	if err != nil {
		return nil, srvcerror.ErrInternalSE().SetDebug(err)
	}
	if t == nil {
		return nil, newErrTaskNotFound()
	}

	// Historical submissions carry scores computed from this task's
	// module, so it must never change.
	if p.Module != nil && *p.Module != t.Module {
		return nil, newErrModuleImmutable()
	}

	if p.Title != nil {
		if *p.Title == "" {
			return nil, newErrTitleRequired()
		}
		t.Title = *p.Title
	}
	if p.Instruction != nil {
		t.Instruction = *p.Instruction
	}
	if p.Content != nil {
		t.Content = *p.Content
	}
	if p.Questions != nil {
		questions := make([]Question, 0, len(p.Questions))
		for _, qp := range p.Questions {
			q, err := buildQuestion(qp)
			if err != nil {
				return nil, err
			}
			questions = append(questions, *q)
		}
		t.Questions = questions
	}
	if p.MediaURL != nil {
		t.MediaURL = p.MediaURL
	}
	if p.ImageURL != nil {
		t.ImageURL = p.ImageURL
	}
	if p.DurationMinutes != nil {
		t.DurationMinutes = *p.DurationMinutes
	}
	if p.Points != nil {
		if *p.Points < 0 {
			return nil, newErrNegativePoints()
		}
		t.Points = *p.Points
	}
	if p.IsActive != nil {
		t.IsActive = *p.IsActive
	}

	if err := s.repo.Store(ctx, t); err != nil {
		return nil, srvcerror.ErrInternalSE().SetDebug(err)
	}

	return t, nil
}

// DeleteTask deactivates the task. Submissions referencing it stay
// valid through the max scores captured at grading time.
func (s *TaskSrvc) DeleteTask(ctx context.Context, id string) error {
	t, err := s.repo.Get(ctx, id)
	if err != nil {
		return srvcerror.ErrInternalSE().SetDebug(err)
	}
	if t == nil {
		return newErrTaskNotFound()
	}
	t.IsActive = false
	if err := s.repo.Store(ctx, t); err != nil {
		return srvcerror.ErrInternalSE().SetDebug(err)
	}
	return nil
}

func (s *TaskSrvc) GetTask(ctx context.Context, id string) (*Task, error) {
	t, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, srvcerror.ErrInternalSE().SetDebug(err)
	}
	if t == nil {
		return nil, newErrTaskNotFound()
	}
	return t, nil
}

// FindTask is the catalog lookup used by the grading engine: a missing
// task is not an error, the caller degrades the single response.
func (s *TaskSrvc) FindTask(ctx context.Context, id string) (*Task, error) {
	return s.repo.Get(ctx, id)
}

// ListTasks returns active tasks, optionally filtered by module.
func (s *TaskSrvc) ListTasks(ctx context.Context, module string) ([]*Task, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, srvcerror.ErrInternalSE().SetDebug(err)
	}
	tasks := make([]*Task, 0, len(all))
	for _, t := range all {
		if !t.IsActive {
			continue
		}
		if module != "" && t.Module != module {
			continue
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func defaultInt(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}
