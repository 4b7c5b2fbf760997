package http

import (
	"encoding/json"
	"net/http"

	"github.com/aeiou-exam/backend/auth"
	"github.com/aeiou-exam/backend/httpjson"
	"github.com/aeiou-exam/backend/task"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog/v2"
)

func (httpserver *HttpServer) createTask(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	type createTaskRequest struct {
		Title           string            `json:"title" validate:"required"`
		Module          string            `json:"module" validate:"required"`
		Type            string            `json:"type" validate:"required"`
		Instruction     string            `json:"instruction" validate:"required"`
		Content         string            `json:"content"`
		Questions       []questionRequest `json:"questions"`
		MediaURL        *string           `json:"mediaUrl"`
		ImageURL        *string           `json:"imageUrl"`
		DurationMinutes int               `json:"durationMinutes"`
		Points          int               `json:"points"`
		MaxFiles        int               `json:"maxFiles"`
		MaxFileSizeMB   int               `json:"maxFileSizeMb"`
	}

	var request createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		httpjson.WriteErrorJson(w, "invalid request body", http.StatusBadRequest, "bad_request")
		return
	}
	if err := httpserver.validate.Struct(request); err != nil {
		httpjson.WriteErrorJson(w, err.Error(), http.StatusBadRequest, "validation_failed")
		return
	}

	claims := auth.ClaimsFromContext(r.Context())

	created, err := httpserver.taskSrvc.CreateTask(r.Context(), task.CreateTaskParams{
		Title:           request.Title,
		Module:          request.Module,
		Type:            request.Type,
		Instruction:     request.Instruction,
		Content:         request.Content,
		Questions:       mapQuestionParams(request.Questions),
		MediaURL:        request.MediaURL,
		ImageURL:        request.ImageURL,
		DurationMinutes: request.DurationMinutes,
		Points:          request.Points,
		MaxFiles:        request.MaxFiles,
		MaxFileSizeMB:   request.MaxFileSizeMB,
		CreatedBy:       claims.Subject,
	})
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	httpjson.WriteCreatedJson(w, mapTask(created, true))
}

func (httpserver *HttpServer) listTasks(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	tasks, err := httpserver.taskSrvc.ListTasks(r.Context(), r.URL.Query().Get("module"))
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	response := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		response = append(response, mapTask(t, true))
	}
	httpjson.WriteSuccessJson(w, response)
}

func (httpserver *HttpServer) getTask(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	t, err := httpserver.taskSrvc.GetTask(r.Context(), chi.URLParam(r, "taskId"))
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, mapTask(t, true))
}

func (httpserver *HttpServer) updateTask(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	type updateTaskRequest struct {
		Title           *string           `json:"title"`
		Module          *string           `json:"module"`
		Instruction     *string           `json:"instruction"`
		Content         *string           `json:"content"`
		Questions       []questionRequest `json:"questions"`
		MediaURL        *string           `json:"mediaUrl"`
		ImageURL        *string           `json:"imageUrl"`
		DurationMinutes *int              `json:"durationMinutes"`
		Points          *int              `json:"points"`
		IsActive        *bool             `json:"isActive"`
	}

	var request updateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		httpjson.WriteErrorJson(w, "invalid request body", http.StatusBadRequest, "bad_request")
		return
	}

	updated, err := httpserver.taskSrvc.UpdateTask(r.Context(), task.UpdateTaskParams{
		ID:              chi.URLParam(r, "taskId"),
		Title:           request.Title,
		Module:          request.Module,
		Instruction:     request.Instruction,
		Content:         request.Content,
		Questions:       mapQuestionParams(request.Questions),
		MediaURL:        request.MediaURL,
		ImageURL:        request.ImageURL,
		DurationMinutes: request.DurationMinutes,
		Points:          request.Points,
		IsActive:        request.IsActive,
	})
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, mapTask(updated, true))
}

func (httpserver *HttpServer) deleteTask(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	if err := httpserver.taskSrvc.DeleteTask(r.Context(), chi.URLParam(r, "taskId")); err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, map[string]string{"message": "task deactivated"})
}
