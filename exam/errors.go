package exam

import (
	"fmt"
	"net/http"

	"github.com/aeiou-exam/backend/srvcerror"
)

const ErrCodeExamNotFound = "exam_not_found"

func newErrExamNotFound() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeExamNotFound,
		"exam was not found",
	).SetHttpStatusCode(http.StatusNotFound)
}

const ErrCodeTitleRequired = "exam_title_required"

func newErrTitleRequired() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeTitleRequired,
		"exam title is required",
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeInvalidLevel = "invalid_exam_level"

func newErrInvalidLevel(level string) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeInvalidLevel,
		fmt.Sprintf("exam level %q is not one of basic, advanced", level),
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeInvalidModule = "invalid_module"

func newErrInvalidModule(module string) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeInvalidModule,
		fmt.Sprintf("module %q is not one of listening, speaking, reading, writing", module),
	).SetHttpStatusCode(http.StatusBadRequest)
}
