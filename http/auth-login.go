package http

import (
	"encoding/json"
	"net/http"

	"github.com/aeiou-exam/backend/auth"
	"github.com/aeiou-exam/backend/httpjson"
	"github.com/aeiou-exam/backend/user"
	"github.com/go-chi/httplog/v2"
)

func (httpserver *HttpServer) issueToken(u *user.User) (string, error) {
	return auth.GenerateJWT(u.ID, u.Name, u.Email, u.Role, httpserver.jwtKey)
}

func loginResponse(u *user.User, token string) map[string]any {
	return map[string]any{
		"token": token,
		"user": map[string]any{
			"id":    u.ID,
			"name":  u.Name,
			"email": u.Email,
			"role":  u.Role,
		},
	}
}

func (httpserver *HttpServer) authLogin(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	type loginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	var request loginRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		httpjson.WriteErrorJson(w, "invalid request body", http.StatusBadRequest, "bad_request")
		return
	}
	if err := httpserver.validate.Struct(request); err != nil {
		httpjson.WriteErrorJson(w, err.Error(), http.StatusBadRequest, "validation_failed")
		return
	}

	logger.Info("received login request", "email", request.Email)

	u, err := httpserver.userSrvc.Login(r.Context(), user.LoginParams{
		Email:    request.Email,
		Password: request.Password,
	})
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	token, err := httpserver.issueToken(u)
	if err != nil {
		logger.Error("failed to generate JWT", "error", err)
		httpjson.WriteErrorJson(w,
			http.StatusText(http.StatusInternalServerError),
			http.StatusInternalServerError,
			"internal_server_error")
		return
	}

	httpjson.WriteSuccessJson(w, loginResponse(u, token))
}

// authGoogle accepts an identity the frontend obtained from Google
// sign-in and resolves it to a local account.
func (httpserver *HttpServer) authGoogle(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	type googleRequest struct {
		Name  string `json:"name"`
		Email string `json:"email" validate:"required,email"`
	}

	var request googleRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		httpjson.WriteErrorJson(w, "invalid request body", http.StatusBadRequest, "bad_request")
		return
	}
	if err := httpserver.validate.Struct(request); err != nil {
		httpjson.WriteErrorJson(w, err.Error(), http.StatusBadRequest, "validation_failed")
		return
	}

	u, err := httpserver.userSrvc.GoogleLogin(r.Context(), user.GoogleLoginParams{
		Name:  request.Name,
		Email: request.Email,
	})
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	token, err := httpserver.issueToken(u)
	if err != nil {
		logger.Error("failed to generate JWT", "error", err)
		httpjson.WriteErrorJson(w,
			http.StatusText(http.StatusInternalServerError),
			http.StatusInternalServerError,
			"internal_server_error")
		return
	}

	httpjson.WriteSuccessJson(w, loginResponse(u, token))
}
