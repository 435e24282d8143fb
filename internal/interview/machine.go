package interview

import "time"

// Guards and transitions of the session state machine. The functions here
// operate on a record already held under the store's per-id lock.

// checkOwner rejects callers that do not own the session.
func checkOwner(rec *Record, owner string) error {
	if rec.OwnerID != owner {
		return guardErr(ErrForbidden, rec)
	}
	return nil
}

// checkSubmit runs the SubmitAnswer guards in order: ownership, terminal
// state, time limit, question index. A time limit breach marks the record
// completed, so commit is true alongside the error in that case only.
func checkSubmit(rec *Record, owner string, index int, now time.Time) (commit bool, err error) {
	if err := checkOwner(rec, owner); err != nil {
		return false, err
	}
	if rec.Completed {
		return false, guardErr(ErrAlreadyCompleted, rec)
	}
	if rec.Expired(now) {
		rec.Completed = true
		return true, guardErr(ErrTimeLimitExceeded, rec)
	}
	if index != rec.Cursor || index >= len(rec.Questions) {
		return false, guardErr(ErrInvalidQuestionIndex, rec)
	}
	return false, nil
}

// applyAnswer appends the answer and its score and advances the cursor.
// It reports whether the session reached its last question.
func applyAnswer(rec *Record, ans Answer, score Score) bool {
	rec.Answers = append(rec.Answers, ans)
	rec.Scores = append(rec.Scores, score)
	rec.Cursor++
	if rec.Cursor == len(rec.Questions) {
		rec.Completed = true
	}
	return rec.Completed
}

// nextIndex returns the index of the next question, or nil when none remain.
func nextIndex(rec *Record) *int {
	if rec.Completed || rec.Cursor >= len(rec.Questions) {
		return nil
	}
	i := rec.Cursor
	return &i
}
