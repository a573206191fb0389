package validators

import (
	"strings"

	"github.com/nbutton23/zxcvbn-go"
)

// minPasswordScore is the minimum acceptable zxcvbn score (0..4).
const minPasswordScore = 3

const minPasswordLength = 8

// Password validates password strength. Two gates are applied in order:
//
//  1. Shape: at least 8 characters with an uppercase letter, a lowercase
//     letter, a digit and a symbol, and no whitespace.
//  2. Strength: a zxcvbn score of at least 3, computed with userInputs as
//     extra dictionary words so that passwords derived from the user's own
//     name or email score poorly.
//
// A rejected password yields a *WeakPasswordError carrying the warning and
// ranked suggestions shown to the user.
func Password(password string, userInputs []string) error {
	if feedback := checkShape(password); feedback != nil {
		return feedback
	}

	strength := zxcvbn.PasswordStrength(password, userInputs)
	if strength.Score < minPasswordScore {
		return &WeakPasswordError{
			Warning:     "this password could be guessed too quickly",
			Suggestions: suggestionsFor(password, userInputs),
		}
	}

	return nil
}

func checkShape(password string) *WeakPasswordError {
	var hasUpper, hasLower, hasDigit, hasSymbol, hasSpace bool
	for _, r := range password {
		switch {
		case r == ' ' || r == '\t' || r == '\n':
			hasSpace = true
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		default:
			hasSymbol = true
		}
	}

	if len(password) < minPasswordLength || hasSpace || !hasUpper || !hasLower || !hasDigit || !hasSymbol {
		return &WeakPasswordError{
			Warning: "password must be at least 8 characters and include an uppercase letter, " +
				"a lowercase letter, a digit and a symbol, with no spaces",
			Suggestions: []string{
				"use a longer passphrase of unrelated words",
				"mix in digits and symbols away from the ends",
			},
		}
	}

	return nil
}

// suggestionsFor produces ranked suggestions for a password that passed the
// shape gate but scored poorly, most relevant first.
func suggestionsFor(password string, userInputs []string) []string {
	suggestions := make([]string, 0, 3)

	lower := strings.ToLower(password)
	for _, input := range userInputs {
		if input == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(input)) {
			suggestions = append(suggestions, "avoid your own name, email or username in the password")
			break
		}
	}

	suggestions = append(suggestions,
		"add another word or two; uncommon words are better",
		"avoid predictable substitutions like '@' for 'a'",
	)

	return suggestions
}
