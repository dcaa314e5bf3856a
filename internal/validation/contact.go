package validation

import (
	"html"
	"strings"
	"unicode/utf8"
)

const (
	nameMinLen    = 2
	nameMaxLen    = 50
	subjectMinLen = 10
	subjectMaxLen = 500
)

// Markup fragments that mark a field as an injection attempt. Matched
// case-insensitively against the raw (trimmed) input.
var suspiciousPatterns = []string{"<script", "javascript:", "onclick", "onerror"}

// Sanitize trims the input, escapes HTML entities and strips any remaining
// angle brackets and quotes. Applied to every field regardless of validation
// outcome; callers only use the result when validation passed.
func Sanitize(text string) string {
	if text == "" {
		return ""
	}
	text = html.EscapeString(strings.TrimSpace(text))
	return strings.Map(func(r rune) rune {
		switch r {
		case '<', '>', '"', '\'':
			return -1
		}
		return r
	}, text)
}

// ValidateContact checks the contact-form fields and returns the collected
// error messages together with sanitized copies of each field. A non-empty
// error list means the sanitized values must not be delivered.
func ValidateContact(firstname, lastname, subject string) (errs []string, cleanFirst, cleanLast, cleanSubject string) {
	firstname = strings.TrimSpace(firstname)
	lastname = strings.TrimSpace(lastname)
	subject = strings.TrimSpace(subject)

	// Bounds are in characters, not bytes, so multi-byte names count fairly.
	if firstname == "" {
		errs = append(errs, "First name is required")
	} else if n := utf8.RuneCountInString(firstname); n < nameMinLen || n > nameMaxLen {
		errs = append(errs, "First name must be 2-50 characters")
	}

	if lastname == "" {
		errs = append(errs, "Last name is required")
	} else if n := utf8.RuneCountInString(lastname); n < nameMinLen || n > nameMaxLen {
		errs = append(errs, "Last name must be 2-50 characters")
	}

	if subject == "" {
		errs = append(errs, "Subject is required")
	} else if n := utf8.RuneCountInString(subject); n < subjectMinLen || n > subjectMaxLen {
		errs = append(errs, "Subject must be 10-500 characters")
	}

	for _, field := range []string{firstname, lastname, subject} {
		lower := strings.ToLower(field)
		for _, pattern := range suspiciousPatterns {
			if strings.Contains(lower, pattern) {
				errs = append(errs, "Invalid characters detected")
				break
			}
		}
	}

	return errs, Sanitize(firstname), Sanitize(lastname), Sanitize(subject)
}
