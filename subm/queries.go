package subm

import (
	"context"
	"sort"

	"github.com/aeiou-exam/backend/srvcerror"
)

const (
	mySubmissionsLimit   = 100
	listSubmissionsLimit = 500
)

// MySubmissions returns the student's submissions, newest first.
func (s *SubmissionSrvc) MySubmissions(ctx context.Context, studentID string) ([]*Submission, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, srvcerror.ErrInternalSE().SetDebug(err)
	}

	subms := make([]*Submission, 0)
	for _, submission := range all {
		if submission.StudentID == studentID {
			subms = append(subms, submission)
		}
	}
	sortNewestFirst(subms)
	if len(subms) > mySubmissionsLimit {
		subms = subms[:mySubmissionsLimit]
	}
	return subms, nil
}

// ListSubmissions returns submissions for reviewers, optionally
// filtered by exam and module, newest first.
func (s *SubmissionSrvc) ListSubmissions(ctx context.Context, examID, module string) ([]*Submission, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, srvcerror.ErrInternalSE().SetDebug(err)
	}

	subms := make([]*Submission, 0)
	for _, submission := range all {
		if examID != "" && submission.ExamID != examID {
			continue
		}
		if module != "" && submission.Module != module {
			continue
		}
		subms = append(subms, submission)
	}
	sortNewestFirst(subms)
	if len(subms) > listSubmissionsLimit {
		subms = subms[:listSubmissionsLimit]
	}
	return subms, nil
}

func (s *SubmissionSrvc) GetSubmission(ctx context.Context, id string) (*Submission, error) {
	submission, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, srvcerror.ErrInternalSE().SetDebug(err)
	}
	if submission == nil {
		return nil, newErrSubmissionNotFound()
	}
	return submission, nil
}

func sortNewestFirst(subms []*Submission) {
	sort.SliceStable(subms, func(i, j int) bool {
		return subms[i].CreatedAt.After(subms[j].CreatedAt)
	})
}
