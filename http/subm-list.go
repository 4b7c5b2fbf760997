package http

import (
	"net/http"

	"github.com/aeiou-exam/backend/auth"
	"github.com/aeiou-exam/backend/httpjson"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog/v2"
)

func (httpserver *HttpServer) mySubmissions(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())
	claims := auth.ClaimsFromContext(r.Context())

	subms, err := httpserver.submSrvc.MySubmissions(r.Context(), claims.Subject)
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, mapSubms(subms))
}

func (httpserver *HttpServer) listSubmissions(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	subms, err := httpserver.submSrvc.ListSubmissions(r.Context(),
		r.URL.Query().Get("examId"),
		r.URL.Query().Get("module"))
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, mapSubms(subms))
}

func (httpserver *HttpServer) getSubmission(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	submission, err := httpserver.submSrvc.GetSubmission(r.Context(), chi.URLParam(r, "submId"))
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, mapSubm(submission))
}
