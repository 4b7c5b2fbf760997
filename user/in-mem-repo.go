package user

import (
	"context"
	"sync"
)

// InMemRepo is an in-memory user store used in tests.
type InMemRepo struct {
	mu    sync.RWMutex
	users map[string]User
}

func NewInMemRepo() *InMemRepo {
	return &InMemRepo{users: make(map[string]User)}
}

func (r *InMemRepo) Store(_ context.Context, u *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = *u
	return nil
}

func (r *InMemRepo) Get(_ context.Context, id string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *InMemRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

func (r *InMemRepo) List(_ context.Context) ([]*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	users := make([]*User, 0, len(r.users))
	for _, u := range r.users {
		found := u
		users = append(users, &found)
	}
	return users, nil
}

// InMemOtpRepo is an in-memory OTP store used in tests.
type InMemOtpRepo struct {
	mu   sync.RWMutex
	otps []OTP
}

func NewInMemOtpRepo() *InMemOtpRepo {
	return &InMemOtpRepo{}
}

func (r *InMemOtpRepo) Store(_ context.Context, otp *OTP) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.otps {
		if r.otps[i].Email == otp.Email && r.otps[i].CreatedAt.Equal(otp.CreatedAt) {
			r.otps[i] = *otp
			return nil
		}
	}
	r.otps = append(r.otps, *otp)
	return nil
}

func (r *InMemOtpRepo) Latest(_ context.Context, email string, purpose string) (*OTP, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var latest *OTP
	for i := range r.otps {
		otp := r.otps[i]
		if otp.Email != email || otp.Purpose != purpose {
			continue
		}
		if latest == nil || otp.CreatedAt.After(latest.CreatedAt) {
			found := otp
			latest = &found
		}
	}
	return latest, nil
}

func (r *InMemOtpRepo) DeleteAll(_ context.Context, email string, purpose string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.otps[:0]
	for _, otp := range r.otps {
		if otp.Email == email && otp.Purpose == purpose {
			continue
		}
		kept = append(kept, otp)
	}
	r.otps = kept
	return nil
}
