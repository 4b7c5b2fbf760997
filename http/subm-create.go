package http

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/aeiou-exam/backend/auth"
	"github.com/aeiou-exam/backend/httpjson"
	"github.com/aeiou-exam/backend/subm"
	"github.com/go-chi/httplog/v2"
)

// multipart uploads are capped at 256 MiB in memory plus disk spill
const maxMultipartMemory = 256 << 20

// createSubmission accepts either a JSON body or a multipart form with
// file parts. Files go to object storage first; their URLs are stored
// on the submission, then grading runs synchronously.
func (httpserver *HttpServer) createSubmission(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())
	claims := auth.ClaimsFromContext(r.Context())

	var examID, module string
	var rawResponses json.RawMessage
	var mediaURLs []string

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			httpjson.WriteErrorJson(w, "invalid multipart form", http.StatusBadRequest, "bad_request")
			return
		}

		examID = r.FormValue("examId")
		module = r.FormValue("module")
		if v := r.FormValue("responses"); v != "" {
			rawResponses = json.RawMessage(v)
		}

		for _, headers := range r.MultipartForm.File {
			for _, header := range headers {
				file, err := header.Open()
				if err != nil {
					httpjson.WriteErrorJson(w, "failed to read uploaded file", http.StatusBadRequest, "bad_request")
					return
				}
				content, err := io.ReadAll(file)
				file.Close()
				if err != nil {
					httpjson.WriteErrorJson(w, "failed to read uploaded file", http.StatusBadRequest, "bad_request")
					return
				}

				url, err := httpserver.media.StoreMedia(r.Context(), content)
				if err != nil {
					logger.Error("failed to store uploaded media", "filename", header.Filename, "error", err)
					httpjson.WriteErrorJson(w, "failed to store uploaded file", http.StatusBadRequest, "media_upload_failed")
					return
				}
				mediaURLs = append(mediaURLs, url)
			}
		}
	} else {
		type createSubmissionRequest struct {
			ExamID    string          `json:"examId"`
			Module    string          `json:"module"`
			Responses json.RawMessage `json:"responses"`
			MediaURLs []string        `json:"mediaUrls"`
		}

		var request createSubmissionRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			httpjson.WriteErrorJson(w, "invalid request body", http.StatusBadRequest, "bad_request")
			return
		}
		examID = request.ExamID
		module = request.Module
		rawResponses = request.Responses
		mediaURLs = request.MediaURLs
	}

	submission, err := httpserver.submSrvc.GradeSubmission(r.Context(), subm.GradeSubmissionParams{
		StudentID:    claims.Subject,
		ExamID:       examID,
		Module:       module,
		RawResponses: rawResponses,
		MediaURLs:    mediaURLs,
	})
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	httpjson.WriteCreatedJson(w, mapSubm(submission))
}
