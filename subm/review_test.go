package subm_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aeiou-exam/backend/subm"
	"github.com/aeiou-exam/backend/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gradeWritingSubmission sets up a writing task worth 10 points and a
// graded submission pending review.
func gradeWritingSubmission(t *testing.T, f *fixture) *subm.Submission {
	t.Helper()
	created := f.createTask(t, task.CreateTaskParams{
		Module: task.ModuleWriting,
		Type:   task.TaskTypeWrittenResponse,
		Points: 10,
	})
	ex := f.createActiveExam(t, task.ModuleWriting, created.ID)

	raw, _ := json.Marshal([]map[string]any{
		{"taskId": created.ID, "answer": "essay text"},
	})
	submission, err := f.submSrvc.GradeSubmission(context.Background(), subm.GradeSubmissionParams{
		StudentID:    "student-1",
		ExamID:       ex.ID,
		Module:       task.ModuleWriting,
		RawResponses: raw,
	})
	require.NoError(t, err)
	require.Equal(t, subm.StatusSubmitted, submission.Status)
	return submission
}

func TestReviewScoresAndEvaluatesSubmission(t *testing.T) {
	f := setupSubmSrvc(t)
	graded := gradeWritingSubmission(t, f)

	reviewed, err := f.submSrvc.ApplyReview(context.Background(), subm.ApplyReviewParams{
		SubmissionID: graded.ID,
		ReviewerID:   "teacher-1",
		Entries: []subm.ReviewEntry{
			{TaskID: graded.Responses[0].TaskID, Score: intPtr(8), Feedback: "Good structure"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 8, reviewed.Responses[0].Score)
	assert.Equal(t, "Good structure", reviewed.Responses[0].Feedback)
	assert.Equal(t, 8, reviewed.TotalScore)
	assert.Equal(t, subm.StatusEvaluated, reviewed.Status)
	require.NotNil(t, reviewed.ReviewedBy)
	assert.Equal(t, "teacher-1", *reviewed.ReviewedBy)
	assert.NotNil(t, reviewed.ReviewedAt)
}

func TestReviewClampsScoreToCapturedMax(t *testing.T) {
	f := setupSubmSrvc(t)
	graded := gradeWritingSubmission(t, f)

	// the captured max is 10; a reviewer cannot award 15
	reviewed, err := f.submSrvc.ApplyReview(context.Background(), subm.ApplyReviewParams{
		SubmissionID: graded.ID,
		ReviewerID:   "teacher-1",
		Entries: []subm.ReviewEntry{
			{TaskID: graded.Responses[0].TaskID, Score: intPtr(15)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 10, reviewed.Responses[0].Score)
	assert.Equal(t, 10, reviewed.TotalScore)
	assert.Equal(t, subm.StatusEvaluated, reviewed.Status)

	// nor negative points
	reviewed, err = f.submSrvc.ApplyReview(context.Background(), subm.ApplyReviewParams{
		SubmissionID: graded.ID,
		ReviewerID:   "teacher-1",
		Entries: []subm.ReviewEntry{
			{TaskID: graded.Responses[0].TaskID, Score: intPtr(-3)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, reviewed.Responses[0].Score)
}

func TestReviewMatchesOnTaskAndQuestionPair(t *testing.T) {
	f := setupSubmSrvc(t)

	created := f.createTask(t, task.CreateTaskParams{
		Module: task.ModuleReading,
		Type:   task.TaskTypeMultipleChoice,
		Questions: []task.QuestionParams{
			{Prompt: "Q1", Kind: task.QuestionKindTextInput, Points: 5},
			{Prompt: "Q2", Kind: task.QuestionKindTextInput, Points: 5},
		},
	})
	ex := f.createActiveExam(t, task.ModuleReading, created.ID)

	q1 := created.Questions[0].ID
	q2 := created.Questions[1].ID
	raw, _ := json.Marshal([]map[string]any{
		{"taskId": created.ID, "questionId": q1, "answer": "first"},
		{"taskId": created.ID, "questionId": q2, "answer": "second"},
	})
	graded, err := f.submSrvc.GradeSubmission(context.Background(), subm.GradeSubmissionParams{
		StudentID:    "student-1",
		ExamID:       ex.ID,
		Module:       task.ModuleReading,
		RawResponses: raw,
	})
	require.NoError(t, err)

	// feedback for q1 must not leak onto q2
	reviewed, err := f.submSrvc.ApplyReview(context.Background(), subm.ApplyReviewParams{
		SubmissionID: graded.ID,
		ReviewerID:   "teacher-1",
		Entries: []subm.ReviewEntry{
			{TaskID: created.ID, QuestionID: &q1, Score: intPtr(4), Feedback: "Nice"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 4, reviewed.Responses[0].Score)
	assert.Equal(t, "Nice", reviewed.Responses[0].Feedback)
	assert.Equal(t, 0, reviewed.Responses[1].Score)
	assert.Equal(t, subm.FeedbackPendingReview, reviewed.Responses[1].Feedback)
	assert.Equal(t, 4, reviewed.TotalScore)
}

func TestReviewWholeTaskFeedbackDoesNotMatchQuestionResponses(t *testing.T) {
	f := setupSubmSrvc(t)

	created := f.createTask(t, task.CreateTaskParams{
		Module: task.ModuleReading,
		Type:   task.TaskTypeMultipleChoice,
		Questions: []task.QuestionParams{
			{Prompt: "Q1", Kind: task.QuestionKindTextInput, Points: 5},
		},
	})
	ex := f.createActiveExam(t, task.ModuleReading, created.ID)

	raw, _ := json.Marshal([]map[string]any{
		{"taskId": created.ID, "questionId": created.Questions[0].ID, "answer": "text"},
	})
	graded, err := f.submSrvc.GradeSubmission(context.Background(), subm.GradeSubmissionParams{
		StudentID:    "student-1",
		ExamID:       ex.ID,
		Module:       task.ModuleReading,
		RawResponses: raw,
	})
	require.NoError(t, err)

	// whole-task feedback (nil question id) must not touch the
	// per-question response
	reviewed, err := f.submSrvc.ApplyReview(context.Background(), subm.ApplyReviewParams{
		SubmissionID: graded.ID,
		ReviewerID:   "teacher-1",
		Entries: []subm.ReviewEntry{
			{TaskID: created.ID, Score: intPtr(5)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, reviewed.Responses[0].Score)
	assert.Equal(t, 0, reviewed.TotalScore)
}

func TestReviewPartialKeepsAutoGradedScores(t *testing.T) {
	f := setupSubmSrvc(t)

	created := f.createTask(t, task.CreateTaskParams{
		Module: task.ModuleReading,
		Type:   task.TaskTypeMultipleChoice,
		Questions: []task.QuestionParams{
			{Prompt: "Q1", CorrectAnswer: strPtr("a"), Points: 5},
			{Prompt: "Q2", Kind: task.QuestionKindTextInput, Points: 5},
		},
	})
	ex := f.createActiveExam(t, task.ModuleReading, created.ID)

	q2 := created.Questions[1].ID
	raw, _ := json.Marshal([]map[string]any{
		{"taskId": created.ID, "questionId": created.Questions[0].ID, "answer": "a"},
		{"taskId": created.ID, "questionId": q2, "answer": "short answer"},
	})
	graded, err := f.submSrvc.GradeSubmission(context.Background(), subm.GradeSubmissionParams{
		StudentID:    "student-1",
		ExamID:       ex.ID,
		Module:       task.ModuleReading,
		RawResponses: raw,
	})
	require.NoError(t, err)
	require.Equal(t, 5, graded.TotalScore)

	// reviewing only the second response must not zero out the first
	reviewed, err := f.submSrvc.ApplyReview(context.Background(), subm.ApplyReviewParams{
		SubmissionID: graded.ID,
		ReviewerID:   "teacher-1",
		Entries: []subm.ReviewEntry{
			{TaskID: created.ID, QuestionID: &q2, Score: intPtr(3)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 5, reviewed.Responses[0].Score)
	assert.Equal(t, 3, reviewed.Responses[1].Score)
	assert.Equal(t, 8, reviewed.TotalScore)
}

func TestReviewIgnoresUnmatchedEntries(t *testing.T) {
	f := setupSubmSrvc(t)
	graded := gradeWritingSubmission(t, f)

	reviewed, err := f.submSrvc.ApplyReview(context.Background(), subm.ApplyReviewParams{
		SubmissionID: graded.ID,
		ReviewerID:   "teacher-1",
		Entries: []subm.ReviewEntry{
			{TaskID: "no-such-task", Score: intPtr(9)},
		},
	})
	require.NoError(t, err, "unmatched feedback entries are not an error")
	assert.Equal(t, 0, reviewed.Responses[0].Score)
	assert.Equal(t, subm.StatusEvaluated, reviewed.Status,
		"status transitions even when nothing matched")
}

func TestReviewIsIdempotent(t *testing.T) {
	f := setupSubmSrvc(t)
	graded := gradeWritingSubmission(t, f)

	entries := []subm.ReviewEntry{
		{TaskID: graded.Responses[0].TaskID, Score: intPtr(7), Feedback: "Solid"},
	}

	first, err := f.submSrvc.ApplyReview(context.Background(), subm.ApplyReviewParams{
		SubmissionID: graded.ID,
		ReviewerID:   "teacher-1",
		Entries:      entries,
	})
	require.NoError(t, err)

	second, err := f.submSrvc.ApplyReview(context.Background(), subm.ApplyReviewParams{
		SubmissionID: graded.ID,
		ReviewerID:   "teacher-2",
		Entries:      entries,
	})
	require.NoError(t, err)

	assert.Equal(t, first.TotalScore, second.TotalScore)
	for i := range first.Responses {
		assert.Equal(t, first.Responses[i].Score, second.Responses[i].Score)
		assert.Equal(t, first.Responses[i].Feedback, second.Responses[i].Feedback)
	}
	// reviewer always reflects the latest call
	assert.Equal(t, "teacher-2", *second.ReviewedBy)
}

func TestReviewSubmissionNotFound(t *testing.T) {
	f := setupSubmSrvc(t)

	_, err := f.submSrvc.ApplyReview(context.Background(), subm.ApplyReviewParams{
		SubmissionID: "no-such-submission",
		ReviewerID:   "teacher-1",
	})
	assertErrCode(t, err, subm.ErrCodeSubmissionNotFound)
}

func TestReviewMaxScoreSurvivesCatalogChanges(t *testing.T) {
	f := setupSubmSrvc(t)
	graded := gradeWritingSubmission(t, f)

	// deactivate the task after grading; the captured max still rules
	err := f.taskSrvc.DeleteTask(context.Background(), graded.Responses[0].TaskID)
	require.NoError(t, err)

	reviewed, err := f.submSrvc.ApplyReview(context.Background(), subm.ApplyReviewParams{
		SubmissionID: graded.ID,
		ReviewerID:   "teacher-1",
		Entries: []subm.ReviewEntry{
			{TaskID: graded.Responses[0].TaskID, Score: intPtr(99)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 10, reviewed.Responses[0].Score)
	assert.Equal(t, 10, reviewed.TotalScore)
}
