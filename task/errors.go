package task

import (
	"fmt"
	"net/http"

	"github.com/aeiou-exam/backend/srvcerror"
)

const ErrCodeTaskNotFound = "task_not_found"

func newErrTaskNotFound() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeTaskNotFound,
		"task was not found",
	).SetHttpStatusCode(http.StatusNotFound)
}

const ErrCodeTitleRequired = "task_title_required"

func newErrTitleRequired() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeTitleRequired,
		"task title is required",
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeInstructionRequired = "task_instruction_required"

func newErrInstructionRequired() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeInstructionRequired,
		"task instruction is required",
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeInvalidModule = "invalid_module"

func newErrInvalidModule(module string) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeInvalidModule,
		fmt.Sprintf("module %q is not one of listening, speaking, reading, writing", module),
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeInvalidTaskType = "invalid_task_type"

func newErrInvalidTaskType(taskType string) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeInvalidTaskType,
		fmt.Sprintf("task type %q is not recognized", taskType),
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeInvalidQuestionKind = "invalid_question_kind"

func newErrInvalidQuestionKind(kind string) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeInvalidQuestionKind,
		fmt.Sprintf("question kind %q is not recognized", kind),
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeNegativePoints = "negative_points"

func newErrNegativePoints() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeNegativePoints,
		"point values must not be negative",
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeModuleImmutable = "module_immutable"

func newErrModuleImmutable() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeModuleImmutable,
		"the module of a task cannot be changed after creation",
	).SetHttpStatusCode(http.StatusBadRequest)
}
