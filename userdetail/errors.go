package userdetail

import (
	"net/http"

	"github.com/aeiou-exam/backend/srvcerror"
)

const ErrCodeDetailNotFound = "detail_not_found"

func newErrDetailNotFound() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeDetailNotFound,
		"profile details were not found",
	).SetHttpStatusCode(http.StatusNotFound)
}

const ErrCodeDetailExists = "detail_exists"

func newErrDetailExists() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeDetailExists,
		"profile details already exist, use update instead",
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeMissingField = "missing_field"

func newErrMissingField() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeMissingField,
		"a required field is missing",
	).SetHttpStatusCode(http.StatusBadRequest)
}
