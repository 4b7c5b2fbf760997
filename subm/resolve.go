package subm

import (
	"strings"

	"github.com/aeiou-exam/backend/task"
)

// gradeOutcome is the result of resolving one answer against the
// catalog. Exactly one variant applies per answer.
type outcomeKind int

const (
	// referenced task does not exist (or is no longer resolvable)
	outcomeNotFoundTask outcomeKind = iota
	// referenced question does not exist within the task
	outcomeNotFoundQuestion
	// speaking/writing: human judgement required regardless of content
	outcomeSubjectivePending
	// objective module but nothing to compare against automatically
	outcomeUngradedObjective
	// compared against the question's correct answer
	outcomeObjectiveGraded
)

type gradeOutcome struct {
	Kind     outcomeKind
	Score    int
	MaxScore int
	Feedback string
}

// resolveAnswer maps (task|absent, question id|absent, answer) to a
// grade outcome. It is pure: all catalog lookups happen before the
// call, and the returned max score is frozen into the response.
func resolveAnswer(t *task.Task, questionID *string, answer string) gradeOutcome {
	if t == nil {
		return gradeOutcome{
			Kind:     outcomeNotFoundTask,
			Feedback: FeedbackTaskNotFound,
		}
	}

	if task.SubjectiveModule(t.Module) {
		return gradeOutcome{
			Kind:     outcomeSubjectivePending,
			MaxScore: t.MaxPoints(),
			Feedback: FeedbackPendingReview,
		}
	}

	if questionID == nil {
		// objective module answered at task level
		return gradeOutcome{
			Kind:     outcomeUngradedObjective,
			MaxScore: t.MaxPoints(),
			Feedback: FeedbackPendingReview,
		}
	}

	q := t.FindQuestion(*questionID)
	if q == nil {
		return gradeOutcome{
			Kind:     outcomeNotFoundQuestion,
			Feedback: FeedbackQuestionNotFound,
		}
	}

	if q.CorrectAnswer == nil {
		// objective-looking questions can still be manually gradable,
		// e.g. short answers
		return gradeOutcome{
			Kind:     outcomeUngradedObjective,
			MaxScore: q.MaxPoints(),
			Feedback: FeedbackPendingReview,
		}
	}

	if answersMatch(answer, *q.CorrectAnswer) {
		return gradeOutcome{
			Kind:     outcomeObjectiveGraded,
			Score:    q.MaxPoints(),
			MaxScore: q.MaxPoints(),
			Feedback: FeedbackCorrect,
		}
	}
	return gradeOutcome{
		Kind:     outcomeObjectiveGraded,
		MaxScore: q.MaxPoints(),
		Feedback: FeedbackIncorrect,
	}
}

// answersMatch compares a submitted answer to the correct one using
// case-insensitive, whitespace-trimmed exact equality.
func answersMatch(submitted, correct string) bool {
	return strings.EqualFold(
		strings.TrimSpace(submitted),
		strings.TrimSpace(correct),
	)
}
