package http

import (
	"encoding/json"
	"net/http"

	"github.com/aeiou-exam/backend/auth"
	"github.com/aeiou-exam/backend/httpjson"
	"github.com/aeiou-exam/backend/subm"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog/v2"
)

// reviewSubmission applies a teacher's scores and feedback to a
// submission and marks it evaluated.
func (httpserver *HttpServer) reviewSubmission(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())
	claims := auth.ClaimsFromContext(r.Context())

	type reviewEntryRequest struct {
		TaskID     string  `json:"taskId"`
		QuestionID *string `json:"questionId"`
		Score      *int    `json:"score"`
		Feedback   string  `json:"feedback"`
	}
	type reviewRequest struct {
		Feedback []reviewEntryRequest `json:"feedback"`
	}

	var request reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		httpjson.WriteErrorJson(w, "invalid request body", http.StatusBadRequest, "bad_request")
		return
	}

	entries := make([]subm.ReviewEntry, 0, len(request.Feedback))
	for _, e := range request.Feedback {
		entries = append(entries, subm.ReviewEntry{
			TaskID:     e.TaskID,
			QuestionID: e.QuestionID,
			Score:      e.Score,
			Feedback:   e.Feedback,
		})
	}

	reviewed, err := httpserver.submSrvc.ApplyReview(r.Context(), subm.ApplyReviewParams{
		SubmissionID: chi.URLParam(r, "submId"),
		ReviewerID:   claims.Subject,
		Entries:      entries,
	})
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, mapSubm(reviewed))
}
