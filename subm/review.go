package subm

import (
	"context"
	"time"

	"github.com/aeiou-exam/backend/srvcerror"
)

// ReviewEntry is one piece of reviewer feedback targeting a response by
// its (taskId, questionId) pair. A nil question id targets whole-task
// responses only.
type ReviewEntry struct {
	TaskID     string
	QuestionID *string
	Score      *int // clamped to [0, response max score] when present
	Feedback   string
}

type ApplyReviewParams struct {
	SubmissionID string
	ReviewerID   string
	Entries      []ReviewEntry
}

// ApplyReview merges reviewer feedback into a graded submission,
// recomputes the total and marks the submission evaluated. Re-applying
// the same entries is idempotent aside from reviewer identity and
// timestamp.
func (s *SubmissionSrvc) ApplyReview(ctx context.Context, p ApplyReviewParams) (*Submission, error) {
	submission, err := s.repo.Get(ctx, p.SubmissionID)
	if err != nil {
		return nil, srvcerror.ErrInternalSE().SetDebug(err)
	}
	if submission == nil {
		return nil, newErrSubmissionNotFound()
	}

	for _, entry := range p.Entries {
		// entries with no matching response are ignored: reviewers may
		// submit feedback from stale client state
		r := matchResponse(submission.Responses, entry)
		if r == nil {
			continue
		}
		if entry.Score != nil {
			r.Score = clampScore(*entry.Score, r.MaxScore)
		}
		if entry.Feedback != "" {
			r.Feedback = entry.Feedback
		}
	}

	// The total is always recomputed from scratch so a partial review
	// never zeroes out previously auto-graded responses.
	total := 0
	for i := range submission.Responses {
		total += submission.Responses[i].Score
	}
	submission.TotalScore = total

	submission.Status = StatusEvaluated
	now := time.Now().UTC()
	submission.ReviewedBy = &p.ReviewerID
	submission.ReviewedAt = &now

	if err := s.repo.Save(ctx, submission); err != nil {
		return nil, srvcerror.ErrInternalSE().SetDebug(err)
	}

	return submission, nil
}

// matchResponse finds the first response whose task id matches and
// whose question id matches under nil == nil. Matching on the full pair
// keeps feedback for one question from overwriting another question's
// score.
func matchResponse(responses []Response, entry ReviewEntry) *Response {
	for i := range responses {
		r := &responses[i]
		if r.TaskID != entry.TaskID {
			continue
		}
		if !questionIDsEqual(r.QuestionID, entry.QuestionID) {
			continue
		}
		return r
	}
	return nil
}

func questionIDsEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func clampScore(score, maxScore int) int {
	if score < 0 {
		return 0
	}
	if score > maxScore {
		return maxScore
	}
	return score
}
