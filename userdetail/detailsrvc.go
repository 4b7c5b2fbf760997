package userdetail

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/aeiou-exam/backend/srvcerror"
)

type Repo interface {
	Store(ctx context.Context, d *Detail) error
	// Get returns nil when no details exist for the user.
	Get(ctx context.Context, userID string) (*Detail, error)
	Delete(ctx context.Context, userID string) error
	List(ctx context.Context) ([]*Detail, error)
}

type DetailSrvc struct {
	repo Repo
}

func NewDetailSrvc(repo Repo) *DetailSrvc {
	return &DetailSrvc{repo: repo}
}

type DetailParams struct {
	Fullname             string
	Age                  int
	Gender               string
	MotherTongue         []string
	LanguagesKnown       []string
	HighestQualification string
	Section              string
	Residence            string
}

// CreateDetail stores a new profile for the user. At most one profile
// per user; use UpdateDetail to change an existing one.
func (s *DetailSrvc) CreateDetail(ctx context.Context, userID string, params DetailParams) (*Detail, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}

	existing, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, srvcerror.ErrInternalSE().SetDebug(err)
	}
	if existing != nil {
		return nil, newErrDetailExists()
	}

	now := time.Now()
	d := &Detail{
		UserID:               userID,
		Fullname:             params.Fullname,
		Age:                  params.Age,
		Gender:               params.Gender,
		MotherTongue:         orEmpty(params.MotherTongue),
		LanguagesKnown:       orEmpty(params.LanguagesKnown),
		HighestQualification: params.HighestQualification,
		Section:              params.Section,
		Residence:            params.Residence,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := s.repo.Store(ctx, d); err != nil {
		return nil, srvcerror.ErrInternalSE().SetDebug(err)
	}
	return d, nil
}

// UpdateDetail replaces the user's profile fields.
func (s *DetailSrvc) UpdateDetail(ctx context.Context, userID string, params DetailParams) (*Detail, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}

	existing, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, srvcerror.ErrInternalSE().SetDebug(err)
	}
	if existing == nil {
		return nil, newErrDetailNotFound()
	}

	existing.Fullname = params.Fullname
	existing.Age = params.Age
	existing.Gender = params.Gender
	existing.MotherTongue = orEmpty(params.MotherTongue)
	existing.LanguagesKnown = orEmpty(params.LanguagesKnown)
	existing.HighestQualification = params.HighestQualification
	existing.Section = params.Section
	existing.Residence = params.Residence
	existing.UpdatedAt = time.Now()

	if err := s.repo.Store(ctx, existing); err != nil {
		return nil, srvcerror.ErrInternalSE().SetDebug(err)
	}
	return existing, nil
}

func (s *DetailSrvc) GetDetail(ctx context.Context, userID string) (*Detail, error) {
	d, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, srvcerror.ErrInternalSE().SetDebug(err)
	}
	if d == nil {
		return nil, newErrDetailNotFound()
	}
	return d, nil
}

// FindDetail is like GetDetail but absence is not an error.
func (s *DetailSrvc) FindDetail(ctx context.Context, userID string) (*Detail, error) {
	d, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, srvcerror.ErrInternalSE().SetDebug(err)
	}
	return d, nil
}

func (s *DetailSrvc) DeleteDetail(ctx context.Context, userID string) error {
	existing, err := s.repo.Get(ctx, userID)
	if err != nil {
		return srvcerror.ErrInternalSE().SetDebug(err)
	}
	if existing == nil {
		return newErrDetailNotFound()
	}
	if err := s.repo.Delete(ctx, userID); err != nil {
		return srvcerror.ErrInternalSE().SetDebug(err)
	}
	return nil
}

// ListDetails returns profiles newest first, optionally filtered by a
// case-insensitive search over fullname, residence and qualification.
func (s *DetailSrvc) ListDetails(ctx context.Context, search string) ([]*Detail, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, srvcerror.ErrInternalSE().SetDebug(err)
	}

	details := make([]*Detail, 0, len(all))
	for _, d := range all {
		if search != "" && !matchesSearch(d, search) {
			continue
		}
		details = append(details, d)
	}
	sort.SliceStable(details, func(i, j int) bool {
		return details[i].CreatedAt.After(details[j].CreatedAt)
	})
	return details, nil
}

func matchesSearch(d *Detail, search string) bool {
	search = strings.ToLower(search)
	return strings.Contains(strings.ToLower(d.Fullname), search) ||
		strings.Contains(strings.ToLower(d.Residence), search) ||
		strings.Contains(strings.ToLower(d.HighestQualification), search)
}

func validateParams(params DetailParams) error {
	if params.Fullname == "" || params.Gender == "" ||
		params.HighestQualification == "" || params.Residence == "" ||
		params.Age <= 0 {
		return newErrMissingField()
	}
	return nil
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
