package http

import (
	"encoding/json"
	"net/http"

	"github.com/aeiou-exam/backend/auth"
	"github.com/aeiou-exam/backend/httpjson"
	"github.com/aeiou-exam/backend/user"
	"github.com/go-chi/httplog/v2"
)

func (httpserver *HttpServer) createTeacher(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	type createTeacherRequest struct {
		Name     string `json:"name" validate:"required"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
	}

	var request createTeacherRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		httpjson.WriteErrorJson(w, "invalid request body", http.StatusBadRequest, "bad_request")
		return
	}
	if err := httpserver.validate.Struct(request); err != nil {
		httpjson.WriteErrorJson(w, err.Error(), http.StatusBadRequest, "validation_failed")
		return
	}

	teacher, err := httpserver.userSrvc.CreateTeacher(r.Context(), user.CreateTeacherParams{
		Name:     request.Name,
		Email:    request.Email,
		Password: request.Password,
	})
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	httpjson.WriteCreatedJson(w, map[string]any{
		"id":    teacher.ID,
		"name":  teacher.Name,
		"email": teacher.Email,
		"role":  teacher.Role,
	})
}

// adminDashboard aggregates headline counts for the admin landing page.
func (httpserver *HttpServer) adminDashboard(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	counts, err := httpserver.userSrvc.CountByRole(r.Context())
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	submCount, err := httpserver.submSrvc.CountSubmissions(r.Context())
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	exams, err := httpserver.examSrvc.ListActiveExams(r.Context())
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, map[string]any{
		"students":    counts[auth.RoleStudent],
		"teachers":    counts[auth.RoleTeacher],
		"admins":      counts[auth.RoleAdmin],
		"submissions": submCount,
		"activeExams": len(exams),
	})
}

// adminListUsers lists accounts together with per-module progress for
// students.
func (httpserver *HttpServer) adminListUsers(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	users, err := httpserver.userSrvc.ListUsers(r.Context(), r.URL.Query().Get("role"))
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	type userView struct {
		ID         string            `json:"id"`
		Name       string            `json:"name"`
		Email      string            `json:"email"`
		Role       string            `json:"role"`
		IsVerified bool              `json:"isVerified"`
		Progress   map[string]string `json:"progress,omitempty"`
	}

	response := make([]userView, 0, len(users))
	for _, u := range users {
		view := userView{
			ID:         u.ID,
			Name:       u.Name,
			Email:      u.Email,
			Role:       u.Role,
			IsVerified: u.IsVerified,
		}
		if u.Role == auth.RoleStudent {
			progress, err := httpserver.submSrvc.ModuleProgress(r.Context(), u.ID)
			if err != nil {
				httpjson.HandleError(logger, w, err)
				return
			}
			view.Progress = progress
		}
		response = append(response, view)
	}

	httpjson.WriteSuccessJson(w, response)
}
