package http

import (
	"encoding/json"
	"net/http"

	"github.com/aeiou-exam/backend/httpjson"
	"github.com/aeiou-exam/backend/user"
	"github.com/go-chi/httplog/v2"
)

func (httpserver *HttpServer) authRegister(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	type registerRequest struct {
		Name     string `json:"name" validate:"required"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
	}

	var request registerRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		httpjson.WriteErrorJson(w, "invalid request body", http.StatusBadRequest, "bad_request")
		return
	}
	if err := httpserver.validate.Struct(request); err != nil {
		httpjson.WriteErrorJson(w, err.Error(), http.StatusBadRequest, "validation_failed")
		return
	}

	logger.Info("received registration request", "email", request.Email)

	u, err := httpserver.userSrvc.Register(r.Context(), user.RegisterParams{
		Name:     request.Name,
		Email:    request.Email,
		Password: request.Password,
	})
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	httpjson.WriteCreatedJson(w, map[string]any{
		"id":    u.ID,
		"email": u.Email,
	})
}

func (httpserver *HttpServer) authVerifyEmail(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	type verifyRequest struct {
		Email string `json:"email" validate:"required,email"`
		Code  string `json:"otp" validate:"required"`
	}

	var request verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		httpjson.WriteErrorJson(w, "invalid request body", http.StatusBadRequest, "bad_request")
		return
	}
	if err := httpserver.validate.Struct(request); err != nil {
		httpjson.WriteErrorJson(w, err.Error(), http.StatusBadRequest, "validation_failed")
		return
	}

	u, err := httpserver.userSrvc.VerifyEmail(r.Context(), user.VerifyEmailParams{
		Email: request.Email,
		Code:  request.Code,
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

func (httpserver *HttpServer) authResendOtp(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	type resendRequest struct {
		Email string `json:"email" validate:"required,email"`
	}

	var request resendRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		httpjson.WriteErrorJson(w, "invalid request body", http.StatusBadRequest, "bad_request")
		return
	}
	if err := httpserver.validate.Struct(request); err != nil {
		httpjson.WriteErrorJson(w, err.Error(), http.StatusBadRequest, "validation_failed")
		return
	}

	if err := httpserver.userSrvc.ResendOtp(r.Context(), request.Email); err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, map[string]string{"message": "verification code sent"})
}
