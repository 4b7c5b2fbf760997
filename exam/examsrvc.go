package exam

import (
	"context"
	"time"

	"github.com/aeiou-exam/backend/srvcerror"
	"github.com/aeiou-exam/backend/task"
	"github.com/google/uuid"
)

// Repo is the persistence boundary of the exam catalog.
type Repo interface {
	Store(ctx context.Context, e *Exam) error
	Get(ctx context.Context, id string) (*Exam, error) // nil, nil when absent
	List(ctx context.Context) ([]*Exam, error)
}

type ExamSrvc struct {
	repo Repo
}

func NewExamSrvc(repo Repo) *ExamSrvc {
	return &ExamSrvc{repo: repo}
}

type ModuleParams struct {
	Name            string
	DurationMinutes int
	BufferMinutes   int
	TaskIDs         []string
}

type CreateExamParams struct {
	Title      string
	Level      string
	Modules    []ModuleParams
	TotalMarks int
	IsActive   bool
	CreatedBy  string
}

func (s *ExamSrvc) CreateExam(ctx context.Context, p CreateExamParams) (*Exam, error) {
	if p.Title == "" {
		return nil, newErrTitleRequired()
	}
	level := p.Level
	if level == "" {
		level = LevelAdvanced
	}
	if level != LevelBasic && level != LevelAdvanced {
		return nil, newErrInvalidLevel(level)
	}

	modules := make([]ExamModule, 0, len(p.Modules))
	for _, mp := range p.Modules {
		if !task.ValidModule(mp.Name) {
			return nil, newErrInvalidModule(mp.Name)
		}
		modules = append(modules, ExamModule{
			Name:            mp.Name,
			DurationMinutes: defaultInt(mp.DurationMinutes, 60),
			BufferMinutes:   defaultInt(mp.BufferMinutes, 10),
			TaskIDs:         mp.TaskIDs,
		})
	}

	totalMarks := p.TotalMarks
	if totalMarks == 0 {
		totalMarks = 100
	}

	e := &Exam{
		ID:         uuid.New().String(),
		Title:      p.Title,
		Level:      level,
		Modules:    modules,
		TotalMarks: totalMarks,
		IsActive:   p.IsActive,
		CreatedBy:  p.CreatedBy,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.repo.Store(ctx, e); err != nil {
		return nil, srvcerror.ErrInternalSE().SetDebug(err)
	}

	return e, nil
}

type UpdateExamParams struct {
	ID         string
	Title      *string
	Level      *string
	Modules    []ModuleParams // replaces the module list when non-nil
	TotalMarks *int
	IsActive   *bool
}

func (s *ExamSrvc) UpdateExam(ctx context.Context, p UpdateExamParams) (*Exam, error) {
	e, err := s.repo.Get(ctx, p.ID)
	if err != nil {
		return nil, srvcerror.ErrInternalSE().SetDebug(err)
	}
	if e == nil {
		return nil, newErrExamNotFound()
	}

	if p.Title != nil {
		if *p.Title == "" {
			return nil, newErrTitleRequired()
		}
		e.Title = *p.Title
	}
	if p.Level != nil {
		if *p.Level != LevelBasic && *p.Level != LevelAdvanced {
			return nil, newErrInvalidLevel(*p.Level)
		}
		e.Level = *p.Level
	}
	if p.Modules != nil {
		modules := make([]ExamModule, 0, len(p.Modules))
		for _, mp := range p.Modules {
			if !task.ValidModule(mp.Name) {
				return nil, newErrInvalidModule(mp.Name)
			}
			modules = append(modules, ExamModule{
				Name:            mp.Name,
				DurationMinutes: defaultInt(mp.DurationMinutes, 60),
				BufferMinutes:   defaultInt(mp.BufferMinutes, 10),
				TaskIDs:         mp.TaskIDs,
			})
		}
		e.Modules = modules
	}
	if p.TotalMarks != nil {
		e.TotalMarks = *p.TotalMarks
	}
	if p.IsActive != nil {
		e.IsActive = *p.IsActive
	}

	if err := s.repo.Store(ctx, e); err != nil {
		return nil, srvcerror.ErrInternalSE().SetDebug(err)
	}

	return e, nil
}

func (s *ExamSrvc) GetExam(ctx context.Context, id string) (*Exam, error) {
	e, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, srvcerror.ErrInternalSE().SetDebug(err)
	}
	if e == nil {
		return nil, newErrExamNotFound()
	}
	return e, nil
}

// FindActiveExam is the lookup used by the grading engine: it returns
// nil without error when no active exam has the given id.
func (s *ExamSrvc) FindActiveExam(ctx context.Context, id string) (*Exam, error) {
	e, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil || !e.IsActive {
		return nil, nil
	}
	return e, nil
}

// ListActiveExams returns all currently active exams. The intended use
// is a single active exam at a time, but that is not enforced.
func (s *ExamSrvc) ListActiveExams(ctx context.Context) ([]*Exam, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, srvcerror.ErrInternalSE().SetDebug(err)
	}
	exams := make([]*Exam, 0, len(all))
	for _, e := range all {
		if e.IsActive {
			exams = append(exams, e)
		}
	}
	return exams, nil
}

func defaultInt(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}
