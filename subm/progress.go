package subm

import (
	"context"

	"github.com/aeiou-exam/backend/srvcerror"
	"github.com/aeiou-exam/backend/task"
)

// ProgressNotStarted marks modules the student has not submitted yet.
const ProgressNotStarted = "not_started"

// ModuleProgress reports the status of the student's latest submission
// per module, used by the admin user listing.
func (s *SubmissionSrvc) ModuleProgress(ctx context.Context, studentID string) (map[string]string, error) {
	subms, err := s.MySubmissions(ctx, studentID)
	if err != nil {
		return nil, err
	}

	progress := map[string]string{
		task.ModuleListening: ProgressNotStarted,
		task.ModuleSpeaking:  ProgressNotStarted,
		task.ModuleReading:   ProgressNotStarted,
		task.ModuleWriting:   ProgressNotStarted,
	}
	// MySubmissions is ordered newest first, so the first hit per
	// module is the latest one.
	seen := map[string]bool{}
	for _, submission := range subms {
		if seen[submission.Module] {
			continue
		}
		seen[submission.Module] = true
		progress[submission.Module] = submission.Status
	}
	return progress, nil
}

// CountSubmissions returns the total number of stored submissions.
func (s *SubmissionSrvc) CountSubmissions(ctx context.Context) (int, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return 0, srvcerror.ErrInternalSE().SetDebug(err)
	}
	return len(all), nil
}
