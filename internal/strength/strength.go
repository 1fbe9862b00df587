// Package strength scores passwords for interactive feedback while a
// user types. It is a pure function of the password string: no I/O, no
// policy lookups, no error conditions.
package strength

import (
	"unicode"
	"unicode/utf8"
)

// Level classifies a score into the bucket shown to the user.
type Level string

const (
	LevelWeak   Level = "weak"
	LevelMedium Level = "medium"
	LevelStrong Level = "strong"
)

// Requirement messages, in the order they are reported.
const (
	FeedbackLength    = "At least 8 characters"
	FeedbackUppercase = "One uppercase letter"
	FeedbackLowercase = "One lowercase letter"
	FeedbackNumber    = "One number or special character"
)

// MinLength is the character count below which the length check fails.
const MinLength = 8

// Result is the outcome of evaluating a single password.
type Result struct {
	// Score is a multiple of 25 in [0, 100]; each satisfied check
	// contributes 25 points.
	Score int
	// Level is derived from Score: strong at 75 and above, medium at
	// 50 and above, weak otherwise.
	Level Level
	// Feedback lists the unmet requirements in a fixed order: length,
	// uppercase, lowercase, number/special. Empty when Score is 100.
	Feedback []string
}

// Evaluate scores a password against four independent checks: minimum
// length, an uppercase letter, a lowercase letter, and a digit or
// non-word character. It is total: any string, including the empty
// string, produces a well-formed Result.
func Evaluate(password string) Result {
	var hasUpper, hasLower, hasNumberOrSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r) || isNonWord(r):
			hasNumberOrSpecial = true
		}
	}
	longEnough := utf8.RuneCountInString(password) >= MinLength

	res := Result{}
	if longEnough {
		res.Score += 25
	} else {
		res.Feedback = append(res.Feedback, FeedbackLength)
	}
	if hasUpper {
		res.Score += 25
	} else {
		res.Feedback = append(res.Feedback, FeedbackUppercase)
	}
	if hasLower {
		res.Score += 25
	} else {
		res.Feedback = append(res.Feedback, FeedbackLowercase)
	}
	if hasNumberOrSpecial {
		res.Score += 25
	} else {
		res.Feedback = append(res.Feedback, FeedbackNumber)
	}

	res.Level = levelFor(res.Score)
	return res
}

func levelFor(score int) Level {
	switch {
	case score >= 75:
		return LevelStrong
	case score >= 50:
		return LevelMedium
	default:
		return LevelWeak
	}
}

// isNonWord reports whether r falls outside the word-character class of
// letters, digits and underscore.
func isNonWord(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
}
