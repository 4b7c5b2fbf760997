package subm_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/aeiou-exam/backend/srvcerror"
	"github.com/aeiou-exam/backend/subm"
	"github.com/aeiou-exam/backend/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGradeReadingResponseCorrect(t *testing.T) {
	f := setupSubmSrvc(t)

	created := f.createTask(t, task.CreateTaskParams{
		Module: task.ModuleReading,
		Type:   task.TaskTypeMultipleChoice,
		Questions: []task.QuestionParams{
			{Prompt: "Pick B", CorrectAnswer: strPtr("b"), Points: 5},
		},
	})
	ex := f.createActiveExam(t, task.ModuleReading, created.ID)

	raw, _ := json.Marshal([]map[string]any{
		{"taskId": created.ID, "questionId": created.Questions[0].ID, "answer": "B"},
	})

	submission, err := f.submSrvc.GradeSubmission(context.Background(), subm.GradeSubmissionParams{
		StudentID:    "student-1",
		ExamID:       ex.ID,
		Module:       task.ModuleReading,
		RawResponses: raw,
	})
	require.NoError(t, err)

	require.Len(t, submission.Responses, 1)
	assert.Equal(t, 5, submission.Responses[0].Score)
	assert.Equal(t, 5, submission.Responses[0].MaxScore)
	assert.Equal(t, subm.FeedbackCorrect, submission.Responses[0].Feedback)
	assert.Equal(t, subm.StatusEvaluated, submission.Status)
	assert.Equal(t, 5, submission.TotalScore)
}

func TestGradeMatchingIsCaseAndTrimInsensitive(t *testing.T) {
	f := setupSubmSrvc(t)

	created := f.createTask(t, task.CreateTaskParams{
		Module: task.ModuleReading,
		Type:   task.TaskTypeMultipleChoice,
		Questions: []task.QuestionParams{
			{Prompt: "Capital of France", CorrectAnswer: strPtr("paris"), Points: 5},
		},
	})
	ex := f.createActiveExam(t, task.ModuleReading, created.ID)

	raw, _ := json.Marshal([]map[string]any{
		{"taskId": created.ID, "questionId": created.Questions[0].ID, "answer": " Paris "},
	})

	submission, err := f.submSrvc.GradeSubmission(context.Background(), subm.GradeSubmissionParams{
		StudentID:    "student-1",
		ExamID:       ex.ID,
		Module:       task.ModuleReading,
		RawResponses: raw,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, submission.Responses[0].Score)
	assert.Equal(t, subm.FeedbackCorrect, submission.Responses[0].Feedback)
}

func TestGradeIncorrectAnswerScoresZero(t *testing.T) {
	f := setupSubmSrvc(t)

	created := f.createTask(t, task.CreateTaskParams{
		Module: task.ModuleListening,
		Type:   task.TaskTypeMultipleChoice,
		Questions: []task.QuestionParams{
			{Prompt: "Pick A", CorrectAnswer: strPtr("a"), Points: 3},
		},
	})
	ex := f.createActiveExam(t, task.ModuleListening, created.ID)

	raw, _ := json.Marshal([]map[string]any{
		{"taskId": created.ID, "questionId": created.Questions[0].ID, "answer": "c"},
	})

	submission, err := f.submSrvc.GradeSubmission(context.Background(), subm.GradeSubmissionParams{
		StudentID:    "student-1",
		ExamID:       ex.ID,
		Module:       task.ModuleListening,
		RawResponses: raw,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, submission.Responses[0].Score)
	assert.Equal(t, 3, submission.Responses[0].MaxScore)
	assert.Equal(t, subm.FeedbackIncorrect, submission.Responses[0].Feedback)
	assert.Equal(t, 0, submission.TotalScore)
}

func TestGradeWritingAlwaysPendsManualReview(t *testing.T) {
	f := setupSubmSrvc(t)

	created := f.createTask(t, task.CreateTaskParams{
		Module: task.ModuleWriting,
		Type:   task.TaskTypeWrittenResponse,
		Points: 10,
	})
	ex := f.createActiveExam(t, task.ModuleWriting, created.ID)

	raw, _ := json.Marshal([]map[string]any{
		{"taskId": created.ID, "answer": "A long and brilliant essay."},
	})

	submission, err := f.submSrvc.GradeSubmission(context.Background(), subm.GradeSubmissionParams{
		StudentID:    "student-1",
		ExamID:       ex.ID,
		Module:       task.ModuleWriting,
		RawResponses: raw,
	})
	require.NoError(t, err)

	require.Len(t, submission.Responses, 1)
	assert.Equal(t, 0, submission.Responses[0].Score)
	assert.Equal(t, 10, submission.Responses[0].MaxScore)
	assert.Equal(t, subm.FeedbackPendingReview, submission.Responses[0].Feedback)
	assert.Equal(t, subm.StatusSubmitted, submission.Status)
	assert.Equal(t, 0, submission.TotalScore)
}

func TestGradeSpeakingIgnoresQuestionContent(t *testing.T) {
	f := setupSubmSrvc(t)

	// even with a correct answer defined, speaking is never auto-graded
	created := f.createTask(t, task.CreateTaskParams{
		Module: task.ModuleSpeaking,
		Type:   task.TaskTypeAudioResponse,
		Questions: []task.QuestionParams{
			{Prompt: "Say hello", CorrectAnswer: strPtr("hello"), Points: 5},
		},
	})
	ex := f.createActiveExam(t, task.ModuleSpeaking, created.ID)

	raw, _ := json.Marshal([]map[string]any{
		{"taskId": created.ID, "questionId": created.Questions[0].ID, "answer": "hello"},
	})

	submission, err := f.submSrvc.GradeSubmission(context.Background(), subm.GradeSubmissionParams{
		StudentID:    "student-1",
		ExamID:       ex.ID,
		Module:       task.ModuleSpeaking,
		RawResponses: raw,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, submission.Responses[0].Score)
	assert.Equal(t, subm.FeedbackPendingReview, submission.Responses[0].Feedback)
	assert.Equal(t, subm.StatusSubmitted, submission.Status)
}

func TestGradeMissingTaskDegradesResponse(t *testing.T) {
	f := setupSubmSrvc(t)
	ex := f.createActiveExam(t, task.ModuleReading)

	raw, _ := json.Marshal([]map[string]any{
		{"taskId": "no-such-task", "answer": "B"},
	})

	submission, err := f.submSrvc.GradeSubmission(context.Background(), subm.GradeSubmissionParams{
		StudentID:    "student-1",
		ExamID:       ex.ID,
		Module:       task.ModuleReading,
		RawResponses: raw,
	})
	require.NoError(t, err, "a missing task must not fail the submission")

	require.Len(t, submission.Responses, 1)
	assert.Equal(t, 0, submission.Responses[0].Score)
	assert.Equal(t, 0, submission.Responses[0].MaxScore)
	assert.Equal(t, subm.FeedbackTaskNotFound, submission.Responses[0].Feedback)
}

func TestGradeMissingQuestionDegradesResponse(t *testing.T) {
	f := setupSubmSrvc(t)

	created := f.createTask(t, task.CreateTaskParams{
		Module: task.ModuleReading,
		Type:   task.TaskTypeMultipleChoice,
		Questions: []task.QuestionParams{
			{Prompt: "Q1", CorrectAnswer: strPtr("a"), Points: 5},
		},
	})
	ex := f.createActiveExam(t, task.ModuleReading, created.ID)

	raw, _ := json.Marshal([]map[string]any{
		{"taskId": created.ID, "questionId": "no-such-question", "answer": "a"},
	})

	submission, err := f.submSrvc.GradeSubmission(context.Background(), subm.GradeSubmissionParams{
		StudentID:    "student-1",
		ExamID:       ex.ID,
		Module:       task.ModuleReading,
		RawResponses: raw,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, submission.Responses[0].MaxScore)
	assert.Equal(t, subm.FeedbackQuestionNotFound, submission.Responses[0].Feedback)
}

func TestGradeQuestionWithoutCorrectAnswerPendsReview(t *testing.T) {
	f := setupSubmSrvc(t)

	created := f.createTask(t, task.CreateTaskParams{
		Module: task.ModuleReading,
		Type:   task.TaskTypeMultipleChoice,
		Questions: []task.QuestionParams{
			{Prompt: "Summarize the text", Kind: task.QuestionKindTextInput, Points: 5},
		},
	})
	ex := f.createActiveExam(t, task.ModuleReading, created.ID)

	raw, _ := json.Marshal([]map[string]any{
		{"taskId": created.ID, "questionId": created.Questions[0].ID, "answer": "my summary"},
	})

	submission, err := f.submSrvc.GradeSubmission(context.Background(), subm.GradeSubmissionParams{
		StudentID:    "student-1",
		ExamID:       ex.ID,
		Module:       task.ModuleReading,
		RawResponses: raw,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, submission.Responses[0].Score)
	assert.Equal(t, 5, submission.Responses[0].MaxScore)
	assert.Equal(t, subm.FeedbackPendingReview, submission.Responses[0].Feedback)
	// the submission itself still counts as auto-graded
	assert.Equal(t, subm.StatusEvaluated, submission.Status)
}

func TestGradeTotalEqualsSumOfScoresAndPreservesOrder(t *testing.T) {
	f := setupSubmSrvc(t)

	questions := make([]task.QuestionParams, 0, 20)
	for i := 0; i < 20; i++ {
		questions = append(questions, task.QuestionParams{
			Prompt:        fmt.Sprintf("Q%d", i),
			CorrectAnswer: strPtr(fmt.Sprintf("ans%d", i)),
			Points:        2,
		})
	}
	created := f.createTask(t, task.CreateTaskParams{
		Module:    task.ModuleListening,
		Type:      task.TaskTypeMultipleChoice,
		Questions: questions,
	})
	ex := f.createActiveExam(t, task.ModuleListening, created.ID)

	// every even question answered correctly, odd ones wrong
	payload := make([]map[string]any, 0, 20)
	for i, q := range created.Questions {
		answer := fmt.Sprintf("ans%d", i)
		if i%2 == 1 {
			answer = "wrong"
		}
		payload = append(payload, map[string]any{
			"taskId": created.ID, "questionId": q.ID, "answer": answer,
		})
	}
	raw, _ := json.Marshal(payload)

	submission, err := f.submSrvc.GradeSubmission(context.Background(), subm.GradeSubmissionParams{
		StudentID:    "student-1",
		ExamID:       ex.ID,
		Module:       task.ModuleListening,
		RawResponses: raw,
	})
	require.NoError(t, err)

	require.Len(t, submission.Responses, 20)
	sum := 0
	for i, r := range submission.Responses {
		require.Equal(t, created.Questions[i].ID, *r.QuestionID,
			"output order must preserve input order")
		if i%2 == 0 {
			assert.Equal(t, 2, r.Score)
		} else {
			assert.Equal(t, 0, r.Score)
		}
		sum += r.Score
	}
	assert.Equal(t, sum, submission.TotalScore)
	assert.Equal(t, 20, submission.TotalScore)
}

func TestGradeResponsesAsSerializedString(t *testing.T) {
	f := setupSubmSrvc(t)

	created := f.createTask(t, task.CreateTaskParams{
		Module: task.ModuleReading,
		Type:   task.TaskTypeMultipleChoice,
		Questions: []task.QuestionParams{
			{Prompt: "Q", CorrectAnswer: strPtr("a"), Points: 5},
		},
	})
	ex := f.createActiveExam(t, task.ModuleReading, created.ID)

	// multipart forms send the array as a string field
	inner, _ := json.Marshal([]map[string]any{
		{"taskId": created.ID, "questionId": created.Questions[0].ID, "answer": "a"},
	})
	raw, _ := json.Marshal(string(inner))

	submission, err := f.submSrvc.GradeSubmission(context.Background(), subm.GradeSubmissionParams{
		StudentID:    "student-1",
		ExamID:       ex.ID,
		Module:       task.ModuleReading,
		RawResponses: raw,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, submission.TotalScore)
}

func TestGradeStoresMediaUrlsVerbatim(t *testing.T) {
	f := setupSubmSrvc(t)
	ex := f.createActiveExam(t, task.ModuleSpeaking)

	urls := []string{
		"https://media.example.com/uploads/a.webm",
		"https://media.example.com/uploads/b.webm",
	}
	submission, err := f.submSrvc.GradeSubmission(context.Background(), subm.GradeSubmissionParams{
		StudentID: "student-1",
		ExamID:    ex.ID,
		Module:    task.ModuleSpeaking,
		MediaURLs: urls,
	})
	require.NoError(t, err)
	assert.Equal(t, urls, submission.MediaURLs)
}

func TestGradeRejectsMissingFields(t *testing.T) {
	f := setupSubmSrvc(t)

	_, err := f.submSrvc.GradeSubmission(context.Background(), subm.GradeSubmissionParams{
		StudentID: "student-1",
		Module:    task.ModuleReading,
	})
	assertErrCode(t, err, subm.ErrCodeMissingField)

	_, err = f.submSrvc.GradeSubmission(context.Background(), subm.GradeSubmissionParams{
		StudentID: "student-1",
		ExamID:    "exam-1",
	})
	assertErrCode(t, err, subm.ErrCodeMissingField)
}

func TestGradeRejectsUnknownModule(t *testing.T) {
	f := setupSubmSrvc(t)

	_, err := f.submSrvc.GradeSubmission(context.Background(), subm.GradeSubmissionParams{
		StudentID: "student-1",
		ExamID:    "exam-1",
		Module:    "grammar",
	})
	assertErrCode(t, err, subm.ErrCodeInvalidModule)
}

func TestGradeRejectsInactiveOrUnknownExam(t *testing.T) {
	f := setupSubmSrvc(t)

	inactive, err := f.examSrvc.CreateExam(context.Background(), examCreateInactive())
	require.NoError(t, err)

	_, err = f.submSrvc.GradeSubmission(context.Background(), subm.GradeSubmissionParams{
		StudentID: "student-1",
		ExamID:    inactive.ID,
		Module:    task.ModuleReading,
	})
	assertErrCode(t, err, subm.ErrCodeExamNotFound)

	_, err = f.submSrvc.GradeSubmission(context.Background(), subm.GradeSubmissionParams{
		StudentID: "student-1",
		ExamID:    "no-such-exam",
		Module:    task.ModuleReading,
	})
	assertErrCode(t, err, subm.ErrCodeExamNotFound)
}

func TestGradeRejectsMalformedResponses(t *testing.T) {
	f := setupSubmSrvc(t)
	ex := f.createActiveExam(t, task.ModuleReading)

	_, err := f.submSrvc.GradeSubmission(context.Background(), subm.GradeSubmissionParams{
		StudentID:    "student-1",
		ExamID:       ex.ID,
		Module:       task.ModuleReading,
		RawResponses: json.RawMessage(`"this is not a response list"`),
	})
	assertErrCode(t, err, subm.ErrCodeMalformedResponses)

	_, err = f.submSrvc.GradeSubmission(context.Background(), subm.GradeSubmissionParams{
		StudentID:    "student-1",
		ExamID:       ex.ID,
		Module:       task.ModuleReading,
		RawResponses: json.RawMessage(`{"taskId":"t1"}`),
	})
	assertErrCode(t, err, subm.ErrCodeMalformedResponses)
}

func assertErrCode(t *testing.T, err error, expectedCode string) {
	t.Helper()
	require.Error(t, err)
	srvcErr := &srvcerror.Error{}
	require.ErrorAs(t, err, &srvcErr)
	assert.Equal(t, expectedCode, srvcErr.ErrorCode())
}
