package user

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"sort"
	"strings"
	"time"

	"github.com/aeiou-exam/backend/auth"
	"github.com/aeiou-exam/backend/srvcerror"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const listUsersLimit = 2000

type Repo interface {
	Store(ctx context.Context, u *User) error
	Get(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]*User, error)
}

type OtpRepo interface {
	Store(ctx context.Context, otp *OTP) error
	// Latest returns the newest usable OTP for the email+purpose pair,
	// or nil when none exists.
	Latest(ctx context.Context, email string, purpose string) (*OTP, error)
	DeleteAll(ctx context.Context, email string, purpose string) error
}

// EmailSender delivers OTP codes. Implementations live in the email
// package; tests use an in-memory recorder.
type EmailSender interface {
	SendOtpEmail(ctx context.Context, toEmail string, toName string, code string) error
}

type UserSrvc struct {
	repo  Repo
	otps  OtpRepo
	email EmailSender
}

func NewUserSrvc(repo Repo, otps OtpRepo, email EmailSender) *UserSrvc {
	return &UserSrvc{repo: repo, otps: otps, email: email}
}

type RegisterParams struct {
	Name     string
	Email    string
	Password string
}

// Register creates (or refreshes) an unverified student account and
// mails a fresh OTP. Re-registering an unverified email replaces the
// stored credentials so the user can correct a typo in the password.
func (s *UserSrvc) Register(ctx context.Context, params RegisterParams) (*User, error) {
	if params.Name == "" || params.Email == "" || params.Password == "" {
		return nil, newErrMissingField()
	}
	email := normalizeEmail(params.Email)

	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, srvcerror.ErrInternalSE().SetDebug(err)
	}
	if existing != nil && existing.IsVerified {
		return nil, newErrEmailExists()
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, srvcerror.ErrInternalSE().SetDebug(err)
	}

	u := &User{
		ID:          uuid.New().String(),
		Name:        params.Name,
		Email:       email,
		BcryptPwd:   hashed,
		Role:        auth.RoleStudent,
		LoginMethod: LoginMethodEmail,
		IsVerified:  false,
		CreatedAt:   time.Now(),
	}
	if existing != nil {
		u.ID = existing.ID
		u.CreatedAt = existing.CreatedAt
	}
	if err := s.repo.Store(ctx, u); err != nil {
		return nil, srvcerror.ErrInternalSE().SetDebug(err)
	}

	if err := s.issueOtp(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

type VerifyEmailParams struct {
	Email string
	Code  string
}

// VerifyEmail checks the OTP and marks the account verified. A wrong
// code burns an attempt; after maxAttempts the code is dead.
func (s *UserSrvc) VerifyEmail(ctx context.Context, params VerifyEmailParams) (*User, error) {
	if params.Email == "" || params.Code == "" {
		return nil, newErrMissingField()
	}
	email := normalizeEmail(params.Email)

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, srvcerror.ErrInternalSE().SetDebug(err)
	}
	if u == nil {
		return nil, newErrNoPendingRegistration()
	}
	if u.IsVerified {
		return nil, newErrAlreadyVerified()
	}

	otp, err := s.otps.Latest(ctx, email, OtpPurposeEmailVerification)
	if err != nil {
		return nil, srvcerror.ErrInternalSE().SetDebug(err)
	}
	if otp == nil || time.Now().After(otp.ExpiresAt) {
		return nil, newErrOtpExpired()
	}
	if otp.Attempts >= otp.MaxAttempts {
		return nil, newErrOtpAttemptsExceeded()
	}

	if otp.Code != strings.TrimSpace(params.Code) {
		otp.Attempts++
		if err := s.otps.Store(ctx, otp); err != nil {
			return nil, srvcerror.ErrInternalSE().SetDebug(err)
		}
		remaining := otp.MaxAttempts - otp.Attempts
		if remaining <= 0 {
			return nil, newErrOtpAttemptsExceeded()
		}
		return nil, newErrOtpInvalid(remaining)
	}

	u.IsVerified = true
	if err := s.repo.Store(ctx, u); err != nil {
		return nil, srvcerror.ErrInternalSE().SetDebug(err)
	}
	if err := s.otps.DeleteAll(ctx, email, OtpPurposeEmailVerification); err != nil {
		return nil, srvcerror.ErrInternalSE().SetDebug(err)
	}
	return u, nil
}

// ResendOtp replaces any pending codes with a fresh one.
func (s *UserSrvc) ResendOtp(ctx context.Context, email string) error {
	if email == "" {
		return newErrMissingField()
	}
	email = normalizeEmail(email)

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return srvcerror.ErrInternalSE().SetDebug(err)
	}
	if u == nil {
		return newErrNoPendingRegistration()
	}
	if u.IsVerified {
		return newErrAlreadyVerified()
	}
	return s.issueOtp(ctx, u)
}

type LoginParams struct {
	Email    string
	Password string
}

// Login authenticates an email+password account.
func (s *UserSrvc) Login(ctx context.Context, params LoginParams) (*User, error) {
	if params.Email == "" || params.Password == "" {
		return nil, newErrMissingField()
	}

	u, err := s.repo.GetByEmail(ctx, normalizeEmail(params.Email))
	if err != nil {
		return nil, srvcerror.ErrInternalSE().SetDebug(err)
	}
	if u == nil {
		return nil, newErrInvalidCredentials()
	}
	if u.LoginMethod == LoginMethodGoogle {
		return nil, newErrGoogleAccount()
	}
	if err := bcrypt.CompareHashAndPassword(u.BcryptPwd, []byte(params.Password)); err != nil {
		return nil, newErrInvalidCredentials()
	}
	if !u.IsVerified {
		return nil, newErrEmailNotVerified()
	}
	return u, nil
}

type GoogleLoginParams struct {
	Name  string
	Email string
}

// GoogleLogin finds or creates a verified student account for a
// Google-authenticated identity.
func (s *UserSrvc) GoogleLogin(ctx context.Context, params GoogleLoginParams) (*User, error) {
	if params.Email == "" {
		return nil, newErrMissingField()
	}
	email := normalizeEmail(params.Email)

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, srvcerror.ErrInternalSE().SetDebug(err)
	}
	if u != nil {
		// an email-registered account that completed verification
		// can also log in via Google
		if !u.IsVerified {
			u.IsVerified = true
			if err := s.repo.Store(ctx, u); err != nil {
				return nil, srvcerror.ErrInternalSE().SetDebug(err)
			}
		}
		return u, nil
	}

	u = &User{
		ID:          uuid.New().String(),
		Name:        params.Name,
		Email:       email,
		Role:        auth.RoleStudent,
		LoginMethod: LoginMethodGoogle,
		IsVerified:  true,
		CreatedAt:   time.Now(),
	}
	if err := s.repo.Store(ctx, u); err != nil {
		return nil, srvcerror.ErrInternalSE().SetDebug(err)
	}
	return u, nil
}

type CreateTeacherParams struct {
	Name     string
	Email    string
	Password string
}

// CreateTeacher provisions a verified teacher account. Admin only; the
// HTTP layer enforces the role.
func (s *UserSrvc) CreateTeacher(ctx context.Context, params CreateTeacherParams) (*User, error) {
	if params.Name == "" || params.Email == "" || params.Password == "" {
		return nil, newErrMissingField()
	}
	email := normalizeEmail(params.Email)

	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, srvcerror.ErrInternalSE().SetDebug(err)
	}
	if existing != nil {
		return nil, newErrEmailExists()
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, srvcerror.ErrInternalSE().SetDebug(err)
	}

	u := &User{
		ID:          uuid.New().String(),
		Name:        params.Name,
		Email:       email,
		BcryptPwd:   hashed,
		Role:        auth.RoleTeacher,
		LoginMethod: LoginMethodEmail,
		IsVerified:  true,
		CreatedAt:   time.Now(),
	}
	if err := s.repo.Store(ctx, u); err != nil {
		return nil, srvcerror.ErrInternalSE().SetDebug(err)
	}
	return u, nil
}

func (s *UserSrvc) GetUser(ctx context.Context, id string) (*User, error) {
	u, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, srvcerror.ErrInternalSE().SetDebug(err)
	}
	if u == nil {
		return nil, newErrUserNotFound()
	}
	return u, nil
}

// ListUsers returns users, optionally filtered by role, newest first.
func (s *UserSrvc) ListUsers(ctx context.Context, role string) ([]*User, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, srvcerror.ErrInternalSE().SetDebug(err)
	}

	users := make([]*User, 0, len(all))
	for _, u := range all {
		if role != "" && u.Role != role {
			continue
		}
		users = append(users, u)
	}
	sort.SliceStable(users, func(i, j int) bool {
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})
	if len(users) > listUsersLimit {
		users = users[:listUsersLimit]
	}
	return users, nil
}

// CountByRole tallies users per role for the admin dashboard.
func (s *UserSrvc) CountByRole(ctx context.Context) (map[string]int, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, srvcerror.ErrInternalSE().SetDebug(err)
	}
	counts := map[string]int{}
	for _, u := range all {
		counts[u.Role]++
	}
	return counts, nil
}

func (s *UserSrvc) issueOtp(ctx context.Context, u *User) error {
	if err := s.otps.DeleteAll(ctx, u.Email, OtpPurposeEmailVerification); err != nil {
		return srvcerror.ErrInternalSE().SetDebug(err)
	}

	code, err := generateOtpCode()
	if err != nil {
		return srvcerror.ErrInternalSE().SetDebug(err)
	}
	otp := &OTP{
		Email:       u.Email,
		Code:        code,
		Purpose:     OtpPurposeEmailVerification,
		ExpiresAt:   time.Now().Add(otpTTL),
		MaxAttempts: otpMaxAttempts,
		CreatedAt:   time.Now(),
	}
	if err := s.otps.Store(ctx, otp); err != nil {
		return srvcerror.ErrInternalSE().SetDebug(err)
	}

	if err := s.email.SendOtpEmail(ctx, u.Email, u.Name, code); err != nil {
		return srvcerror.ErrInternalSE().SetDebug(err)
	}
	return nil
}

// generateOtpCode draws six digits from crypto/rand.
func generateOtpCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
