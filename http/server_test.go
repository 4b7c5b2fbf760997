package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aeiou-exam/backend/auth"
	"github.com/aeiou-exam/backend/exam"
	httpserver "github.com/aeiou-exam/backend/http"
	"github.com/aeiou-exam/backend/subm"
	"github.com/aeiou-exam/backend/task"
	"github.com/aeiou-exam/backend/user"
	"github.com/aeiou-exam/backend/userdetail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testJwtKey = []byte("test-signing-key")

type fixture struct {
	server   *httpserver.HttpServer
	userSrvc *user.UserSrvc
	taskSrvc *task.TaskSrvc
	examSrvc *exam.ExamSrvc
	submSrvc *subm.SubmissionSrvc
	sender   *recorderEmailSender
}

type recorderEmailSender struct {
	lastCode string
}

func (r *recorderEmailSender) SendOtpEmail(_ context.Context, _ string, _ string, code string) error {
	r.lastCode = code
	return nil
}

// stubMediaStore returns predictable URLs without touching S3.
type stubMediaStore struct {
	uploads int
}

func (s *stubMediaStore) StoreMedia(_ context.Context, _ []byte) (string, error) {
	s.uploads++
	return fmt.Sprintf("https://media.example.com/%d", s.uploads), nil
}

func setupServer(t *testing.T) *fixture {
	t.Helper()

	sender := &recorderEmailSender{}
	userSrvc := user.NewUserSrvc(user.NewInMemRepo(), user.NewInMemOtpRepo(), sender)
	detailSrvc := userdetail.NewDetailSrvc(userdetail.NewInMemRepo())
	taskSrvc := task.NewTaskSrvc(task.NewInMemRepo())
	examSrvc := exam.NewExamSrvc(exam.NewInMemRepo())
	submSrvc := subm.NewSubmissionSrvc(taskSrvc, examSrvc, subm.NewInMemRepo())

	server := httpserver.NewHttpServer(httpserver.Services{
		Users:   userSrvc,
		Details: detailSrvc,
		Tasks:   taskSrvc,
		Exams:   examSrvc,
		Subms:   submSrvc,
		Media:   &stubMediaStore{},
	}, testJwtKey, []string{"http://localhost:3000"})

	return &fixture{
		server:   server,
		userSrvc: userSrvc,
		taskSrvc: taskSrvc,
		examSrvc: examSrvc,
		submSrvc: submSrvc,
		sender:   sender,
	}
}

func (f *fixture) tokenFor(t *testing.T, subject, role string) string {
	t.Helper()
	token, err := auth.GenerateJWT(subject, "Test User", subject+"@example.com", role, testJwtKey)
	require.NoError(t, err)
	return token
}

type envelope struct {
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data"`
	Code    string          `json:"code"`
	Message string          `json:"message"`
}

func (f *fixture) doJson(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	f.server.Handler().ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w, env
}

func TestHealthEndpoint(t *testing.T) {
	f := setupServer(t)

	w, env := f.doJson(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "success", env.Status)
}

func TestRegisterVerifyLoginFlow(t *testing.T) {
	f := setupServer(t)

	w, env := f.doJson(t, http.MethodPost, "/auth/register", "", map[string]string{
		"name":     "Asha",
		"email":    "asha@example.com",
		"password": "s3cret-pass",
	})
	require.Equal(t, http.StatusCreated, w.Code, env.Message)
	require.NotEmpty(t, f.sender.lastCode)

	w, env = f.doJson(t, http.MethodPost, "/auth/verify-email", "", map[string]string{
		"email": "asha@example.com",
		"otp":   f.sender.lastCode,
	})
	require.Equal(t, http.StatusOK, w.Code, env.Message)

	var verifyData struct {
		Token string `json:"token"`
		User  struct {
			Role string `json:"role"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &verifyData))
	assert.NotEmpty(t, verifyData.Token)
	assert.Equal(t, auth.RoleStudent, verifyData.User.Role)

	w, env = f.doJson(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "asha@example.com",
		"password": "s3cret-pass",
	})
	require.Equal(t, http.StatusOK, w.Code, env.Message)
}

func TestLoginBeforeVerificationIsForbidden(t *testing.T) {
	f := setupServer(t)

	w, _ := f.doJson(t, http.MethodPost, "/auth/register", "", map[string]string{
		"name":     "Asha",
		"email":    "asha@example.com",
		"password": "s3cret-pass",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w, env := f.doJson(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "asha@example.com",
		"password": "s3cret-pass",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, user.ErrCodeEmailNotVerified, env.Code)
}

func TestTeacherRoutesRequireRole(t *testing.T) {
	f := setupServer(t)

	// no token
	w, env := f.doJson(t, http.MethodGet, "/teacher/submissions", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "unauthorized", env.Code)

	// student token
	studentToken := f.tokenFor(t, "student-1", auth.RoleStudent)
	w, env = f.doJson(t, http.MethodGet, "/teacher/submissions", studentToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "forbidden", env.Code)

	// teacher token
	teacherToken := f.tokenFor(t, "teacher-1", auth.RoleTeacher)
	w, _ = f.doJson(t, http.MethodGet, "/teacher/submissions", teacherToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func seedReadingExam(t *testing.T, f *fixture) (*task.Task, *exam.Exam) {
	t.Helper()

	created, err := f.taskSrvc.CreateTask(context.Background(), task.CreateTaskParams{
		Title:       "Reading passage",
		Module:      task.ModuleReading,
		Type:        task.TaskTypeMultipleChoice,
		Instruction: "Answer the questions",
		Questions: []task.QuestionParams{
			{Prompt: "Pick A", CorrectAnswer: strPtr("A"), Points: 5},
		},
	})
	require.NoError(t, err)

	ex, err := f.examSrvc.CreateExam(context.Background(), exam.CreateExamParams{
		Title:    "Placement",
		IsActive: true,
		Modules: []exam.ModuleParams{
			{Name: task.ModuleReading, TaskIDs: []string{created.ID}},
		},
	})
	require.NoError(t, err)
	return created, ex
}

func strPtr(s string) *string { return &s }

func TestExamAnswersStrippedForStudents(t *testing.T) {
	f := setupServer(t)
	_, ex := seedReadingExam(t, f)

	type examView struct {
		Modules []struct {
			Tasks []struct {
				Questions []struct {
					CorrectAnswer *string `json:"correctAnswer"`
				} `json:"questions"`
			} `json:"tasks"`
		} `json:"modules"`
	}

	studentToken := f.tokenFor(t, "student-1", auth.RoleStudent)
	w, env := f.doJson(t, http.MethodGet, "/exams/"+ex.ID, studentToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var forStudent examView
	require.NoError(t, json.Unmarshal(env.Data, &forStudent))
	require.Len(t, forStudent.Modules, 1)
	require.Len(t, forStudent.Modules[0].Tasks, 1)
	assert.Nil(t, forStudent.Modules[0].Tasks[0].Questions[0].CorrectAnswer)

	teacherToken := f.tokenFor(t, "teacher-1", auth.RoleTeacher)
	w, env = f.doJson(t, http.MethodGet, "/exams/"+ex.ID, teacherToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var forTeacher examView
	require.NoError(t, json.Unmarshal(env.Data, &forTeacher))
	require.NotNil(t, forTeacher.Modules[0].Tasks[0].Questions[0].CorrectAnswer)
	assert.Equal(t, "A", *forTeacher.Modules[0].Tasks[0].Questions[0].CorrectAnswer)
}

func TestCreateAndReviewSubmissionOverHttp(t *testing.T) {
	f := setupServer(t)
	created, ex := seedReadingExam(t, f)

	studentToken := f.tokenFor(t, "student-1", auth.RoleStudent)
	w, env := f.doJson(t, http.MethodPost, "/submissions", studentToken, map[string]any{
		"examId": ex.ID,
		"module": task.ModuleReading,
		"responses": []map[string]any{
			{"taskId": created.ID, "questionId": created.Questions[0].ID, "answer": "A"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, env.Message)

	var submView struct {
		ID         string `json:"id"`
		TotalScore int    `json:"totalScore"`
		Status     string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &submView))
	assert.Equal(t, 5, submView.TotalScore)
	assert.Equal(t, subm.StatusEvaluated, submView.Status)

	// student sees it under /submissions/me
	w, env = f.doJson(t, http.MethodGet, "/submissions/me", studentToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var mine []json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &mine))
	assert.Len(t, mine, 1)

	// teacher re-reviews with an override
	teacherToken := f.tokenFor(t, "teacher-1", auth.RoleTeacher)
	w, env = f.doJson(t, http.MethodPost, "/teacher/submissions/"+submView.ID+"/review", teacherToken, map[string]any{
		"feedback": []map[string]any{
			{"taskId": created.ID, "questionId": created.Questions[0].ID, "score": 3, "feedback": "Partially right"},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, env.Message)

	var reviewed struct {
		TotalScore int    `json:"totalScore"`
		Status     string `json:"status"`
		Responses  []struct {
			Score    int    `json:"score"`
			Feedback string `json:"feedback"`
		} `json:"responses"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &reviewed))
	assert.Equal(t, 3, reviewed.TotalScore)
	assert.Equal(t, subm.StatusEvaluated, reviewed.Status)
	assert.Equal(t, "Partially right", reviewed.Responses[0].Feedback)
}

func TestAdminDashboardAndUsers(t *testing.T) {
	f := setupServer(t)

	_, err := f.userSrvc.CreateTeacher(context.Background(), user.CreateTeacherParams{
		Name:     "Prof",
		Email:    "prof@example.com",
		Password: "teach-pass",
	})
	require.NoError(t, err)

	adminToken := f.tokenFor(t, "admin-1", auth.RoleAdmin)

	w, env := f.doJson(t, http.MethodGet, "/admin/dashboard", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var dashboard struct {
		Teachers    int `json:"teachers"`
		Submissions int `json:"submissions"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &dashboard))
	assert.Equal(t, 1, dashboard.Teachers)
	assert.Equal(t, 0, dashboard.Submissions)

	w, env = f.doJson(t, http.MethodGet, "/admin/users", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var users []struct {
		Email    string            `json:"email"`
		Progress map[string]string `json:"progress"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &users))
	require.Len(t, users, 1)
	assert.Equal(t, "prof@example.com", users[0].Email)
	assert.Nil(t, users[0].Progress, "teachers carry no module progress")
}

func TestProfileDetailEndpoints(t *testing.T) {
	f := setupServer(t)
	studentToken := f.tokenFor(t, "student-1", auth.RoleStudent)

	body := map[string]any{
		"fullname":             "Asha Rao",
		"age":                  24,
		"gender":               "female",
		"motherTongue":         []string{"Kannada"},
		"languagesKnown":       []string{"Kannada", "English"},
		"highestQualification": "B.Sc.",
		"residence":            "Bengaluru",
	}

	w, env := f.doJson(t, http.MethodPost, "/profile/details", studentToken, body)
	require.Equal(t, http.StatusCreated, w.Code, env.Message)

	w, env = f.doJson(t, http.MethodGet, "/profile/details", studentToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var detail struct {
		Fullname  string `json:"fullname"`
		Residence string `json:"residence"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &detail))
	assert.Equal(t, "Asha Rao", detail.Fullname)

	body["residence"] = "Mysuru"
	w, env = f.doJson(t, http.MethodPut, "/profile/details", studentToken, body)
	require.Equal(t, http.StatusOK, w.Code, env.Message)
	require.NoError(t, json.Unmarshal(env.Data, &detail))
	assert.Equal(t, "Mysuru", detail.Residence)
}
