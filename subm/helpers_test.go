package subm_test

import (
	"context"
	"testing"

	"github.com/aeiou-exam/backend/exam"
	"github.com/aeiou-exam/backend/subm"
	"github.com/aeiou-exam/backend/task"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	taskSrvc *task.TaskSrvc
	examSrvc *exam.ExamSrvc
	submSrvc *subm.SubmissionSrvc
}

func setupSubmSrvc(t *testing.T) *fixture {
	t.Helper()
	taskSrvc := task.NewTaskSrvc(task.NewInMemRepo())
	examSrvc := exam.NewExamSrvc(exam.NewInMemRepo())
	submSrvc := subm.NewSubmissionSrvc(taskSrvc, examSrvc, subm.NewInMemRepo())
	return &fixture{
		taskSrvc: taskSrvc,
		examSrvc: examSrvc,
		submSrvc: submSrvc,
	}
}

// createTask inserts a catalog task and returns it.
func (f *fixture) createTask(t *testing.T, p task.CreateTaskParams) *task.Task {
	t.Helper()
	if p.Title == "" {
		p.Title = "Test task"
	}
	if p.Instruction == "" {
		p.Instruction = "Answer the question"
	}
	if p.CreatedBy == "" {
		p.CreatedBy = "teacher-1"
	}
	created, err := f.taskSrvc.CreateTask(context.Background(), p)
	require.NoError(t, err)
	return created
}

// createActiveExam inserts an active exam referencing the given tasks.
func (f *fixture) createActiveExam(t *testing.T, module string, taskIDs ...string) *exam.Exam {
	t.Helper()
	created, err := f.examSrvc.CreateExam(context.Background(), exam.CreateExamParams{
		Title: "Test exam",
		Modules: []exam.ModuleParams{
			{Name: module, TaskIDs: taskIDs},
		},
		IsActive:  true,
		CreatedBy: "admin-1",
	})
	require.NoError(t, err)
	return created
}

func examCreateInactive() exam.CreateExamParams {
	return exam.CreateExamParams{
		Title:     "Inactive exam",
		IsActive:  false,
		CreatedBy: "admin-1",
	}
}

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }
