package user

import "time"

const (
	LoginMethodEmail  = "email"
	LoginMethodGoogle = "google"
)

type User struct {
	ID          string
	Name        string
	Email       string
	BcryptPwd   []byte // empty for google accounts
	Role        string // student|teacher|admin
	LoginMethod string
	IsVerified  bool
	CreatedAt   time.Time
}

const (
	OtpPurposeEmailVerification = "email_verification"

	otpTTL         = 10 * time.Minute
	otpMaxAttempts = 5
)

// OTP is a one-time code mailed to the user during registration.
type OTP struct {
	Email       string
	Code        string
	Purpose     string
	ExpiresAt   time.Time
	Attempts    int
	MaxAttempts int
	CreatedAt   time.Time
}

// Usable reports whether the code can still be checked: not expired and
// attempts remaining.
func (o *OTP) Usable() bool {
	return o.Attempts < o.MaxAttempts && time.Now().Before(o.ExpiresAt)
}
