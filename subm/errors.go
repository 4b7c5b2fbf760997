package subm

import (
	"net/http"

	"github.com/aeiou-exam/backend/srvcerror"
)

const ErrCodeMissingField = "missing_field"

func newErrMissingField() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeMissingField,
		"examId and module are required",
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeInvalidModule = "invalid_module"

func newErrInvalidModule() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeInvalidModule,
		"module must be one of listening, speaking, reading, writing",
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeMalformedResponses = "malformed_responses"

func newErrMalformedResponses() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeMalformedResponses,
		"invalid responses format",
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeExamNotFound = "exam_not_found"

func newErrExamNotFound() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeExamNotFound,
		"no active exam with that id was found",
	).SetHttpStatusCode(http.StatusNotFound)
}

const ErrCodeSubmissionNotFound = "submission_not_found"

func newErrSubmissionNotFound() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeSubmissionNotFound,
		"submission was not found",
	).SetHttpStatusCode(http.StatusNotFound)
}
