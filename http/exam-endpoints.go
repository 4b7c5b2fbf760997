package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/aeiou-exam/backend/auth"
	"github.com/aeiou-exam/backend/exam"
	"github.com/aeiou-exam/backend/httpjson"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog/v2"
)

type ExamModuleResponse struct {
	Name            string         `json:"name"`
	DurationMinutes int            `json:"durationMinutes"`
	BufferMinutes   int            `json:"bufferMinutes"`
	TaskIDs         []string       `json:"taskIds"`
	Tasks           []TaskResponse `json:"tasks,omitempty"`
}

type ExamResponse struct {
	ID         string               `json:"id"`
	Title      string               `json:"title"`
	Level      string               `json:"level"`
	Modules    []ExamModuleResponse `json:"modules"`
	TotalMarks int                  `json:"totalMarks"`
	IsActive   bool                 `json:"isActive"`
	CreatedAt  time.Time            `json:"createdAt"`
}

func mapExam(e *exam.Exam) ExamResponse {
	modules := make([]ExamModuleResponse, 0, len(e.Modules))
	for _, m := range e.Modules {
		modules = append(modules, ExamModuleResponse{
			Name:            m.Name,
			DurationMinutes: m.DurationMinutes,
			BufferMinutes:   m.BufferMinutes,
			TaskIDs:         m.TaskIDs,
		})
	}
	return ExamResponse{
		ID:         e.ID,
		Title:      e.Title,
		Level:      e.Level,
		Modules:    modules,
		TotalMarks: e.TotalMarks,
		IsActive:   e.IsActive,
		CreatedAt:  e.CreatedAt,
	}
}

func (httpserver *HttpServer) listExams(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	exams, err := httpserver.examSrvc.ListActiveExams(r.Context())
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	response := make([]ExamResponse, 0, len(exams))
	for _, e := range exams {
		response = append(response, mapExam(e))
	}
	httpjson.WriteSuccessJson(w, response)
}

// getExam returns the exam with its tasks embedded per module. Correct
// answers appear only for teacher and admin tokens.
func (httpserver *HttpServer) getExam(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	e, err := httpserver.examSrvc.GetExam(r.Context(), chi.URLParam(r, "examId"))
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	includeAnswers := false
	if claims := auth.ClaimsFromContext(r.Context()); claims != nil {
		includeAnswers = claims.Role == auth.RoleTeacher || claims.Role == auth.RoleAdmin
	}

	response := mapExam(e)
	for i, m := range e.Modules {
		tasks := make([]TaskResponse, 0, len(m.TaskIDs))
		for _, taskID := range m.TaskIDs {
			t, err := httpserver.taskSrvc.FindTask(r.Context(), taskID)
			if err != nil || t == nil {
				// stale catalog references are skipped, not fatal
				continue
			}
			tasks = append(tasks, mapTask(t, includeAnswers))
		}
		response.Modules[i].Tasks = tasks
	}

	httpjson.WriteSuccessJson(w, response)
}

type examModuleRequest struct {
	Name            string   `json:"name"`
	DurationMinutes int      `json:"durationMinutes"`
	BufferMinutes   int      `json:"bufferMinutes"`
	TaskIDs         []string `json:"taskIds"`
}

func mapModuleParams(modules []examModuleRequest) []exam.ModuleParams {
	if modules == nil {
		return nil
	}
	params := make([]exam.ModuleParams, 0, len(modules))
	for _, m := range modules {
		params = append(params, exam.ModuleParams{
			Name:            m.Name,
			DurationMinutes: m.DurationMinutes,
			BufferMinutes:   m.BufferMinutes,
			TaskIDs:         m.TaskIDs,
		})
	}
	return params
}

func (httpserver *HttpServer) createExam(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	type createExamRequest struct {
		Title      string              `json:"title" validate:"required"`
		Level      string              `json:"level"`
		Modules    []examModuleRequest `json:"modules"`
		TotalMarks int                 `json:"totalMarks"`
		IsActive   bool                `json:"isActive"`
	}

	var request createExamRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		httpjson.WriteErrorJson(w, "invalid request body", http.StatusBadRequest, "bad_request")
		return
	}
	if err := httpserver.validate.Struct(request); err != nil {
		httpjson.WriteErrorJson(w, err.Error(), http.StatusBadRequest, "validation_failed")
		return
	}

	claims := auth.ClaimsFromContext(r.Context())

	created, err := httpserver.examSrvc.CreateExam(r.Context(), exam.CreateExamParams{
		Title:      request.Title,
		Level:      request.Level,
		Modules:    mapModuleParams(request.Modules),
		TotalMarks: request.TotalMarks,
		IsActive:   request.IsActive,
		CreatedBy:  claims.Subject,
	})
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	httpjson.WriteCreatedJson(w, mapExam(created))
}

func (httpserver *HttpServer) updateExam(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	type updateExamRequest struct {
		Title      *string             `json:"title"`
		Level      *string             `json:"level"`
		Modules    []examModuleRequest `json:"modules"`
		TotalMarks *int                `json:"totalMarks"`
		IsActive   *bool               `json:"isActive"`
	}

	var request updateExamRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		httpjson.WriteErrorJson(w, "invalid request body", http.StatusBadRequest, "bad_request")
		return
	}

	updated, err := httpserver.examSrvc.UpdateExam(r.Context(), exam.UpdateExamParams{
		ID:         chi.URLParam(r, "examId"),
		Title:      request.Title,
		Level:      request.Level,
		Modules:    mapModuleParams(request.Modules),
		TotalMarks: request.TotalMarks,
		IsActive:   request.IsActive,
	})
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, mapExam(updated))
}
