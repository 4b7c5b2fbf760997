package user

import (
	"fmt"
	"net/http"

	"github.com/aeiou-exam/backend/srvcerror"
)

const ErrCodeMissingField = "missing_field"

func newErrMissingField() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeMissingField,
		"a required field is missing",
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeEmailExists = "email_exists"

func newErrEmailExists() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeEmailExists,
		"email is already registered",
	).SetHttpStatusCode(http.StatusConflict)
}

const ErrCodeInvalidCredentials = "invalid_credentials"

func newErrInvalidCredentials() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeInvalidCredentials,
		"email or password is incorrect",
	).SetHttpStatusCode(http.StatusUnauthorized)
}

const ErrCodeEmailNotVerified = "email_not_verified"

func newErrEmailNotVerified() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeEmailNotVerified,
		"email not verified, please verify your email before logging in",
	).SetHttpStatusCode(http.StatusForbidden)
}

const ErrCodeGoogleAccount = "google_account"

func newErrGoogleAccount() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeGoogleAccount,
		"this account uses Google login, please sign in with Google",
	).SetHttpStatusCode(http.StatusUnauthorized)
}

const ErrCodeOtpInvalid = "otp_invalid"

func newErrOtpInvalid(remainingAttempts int) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeOtpInvalid,
		fmt.Sprintf("invalid OTP, %d attempts remaining", remainingAttempts),
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeOtpExpired = "otp_expired"

func newErrOtpExpired() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeOtpExpired,
		"OTP expired or invalid",
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeOtpAttemptsExceeded = "otp_attempts_exceeded"

func newErrOtpAttemptsExceeded() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeOtpAttemptsExceeded,
		"OTP expired or maximum attempts reached",
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeUserNotFound = "user_not_found"

func newErrUserNotFound() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeUserNotFound,
		"user was not found",
	).SetHttpStatusCode(http.StatusNotFound)
}

const ErrCodeNoPendingRegistration = "no_pending_registration"

func newErrNoPendingRegistration() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeNoPendingRegistration,
		"no pending registration found for this email",
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeAlreadyVerified = "already_verified"

func newErrAlreadyVerified() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeAlreadyVerified,
		"email is already verified",
	).SetHttpStatusCode(http.StatusBadRequest)
}
