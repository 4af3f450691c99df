// Package validate holds the pure, stateless field checks for incoming
// identity fields. Handlers collect the per-field messages and join them
// into the response envelope.
package validate

import (
	"regexp"
	"strings"
)

const (
	UsernameMinLen = 2
	UsernameMaxLen = 20
	PasswordMinLen = 6
	CodeMinLen     = 5
	CodeMaxLen     = 6
	ContentMinLen  = 10
	ContentMaxLen  = 300
)

var (
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	codeRe     = regexp.MustCompile(`^[0-9]+$`)
)

// FieldErrors collects validation messages in field order.
type FieldErrors []string

func (e FieldErrors) OK() bool { return len(e) == 0 }

// Message joins the individual field messages for the response envelope.
func (e FieldErrors) Message() string { return strings.Join(e, ", ") }

// Username checks the 2-20 character alphanumeric/underscore shape.
func Username(username string) FieldErrors {
	var errs FieldErrors
	if len(username) < UsernameMinLen {
		errs = append(errs, "Username must be at least 2 characters")
	}
	if len(username) > UsernameMaxLen {
		errs = append(errs, "Username must be no more than 20 characters")
	}
	if username != "" && !usernameRe.MatchString(username) {
		errs = append(errs, "Username must not contain special characters")
	}
	return errs
}

// Email checks basic address shape. Real ownership is proven by the
// verification code, so this only rejects obvious garbage.
func Email(email string) FieldErrors {
	if !emailRe.MatchString(email) {
		return FieldErrors{"Invalid email address"}
	}
	return nil
}

// Password checks the minimum length.
func Password(password string) FieldErrors {
	if len(password) < PasswordMinLen {
		return FieldErrors{"Password must be at least 6 characters"}
	}
	return nil
}

// Code checks the 5-6 digit numeric verification code shape.
func Code(code string) FieldErrors {
	if len(code) < CodeMinLen || len(code) > CodeMaxLen || !codeRe.MatchString(code) {
		return FieldErrors{"Verification code must be a 5-6 digit number"}
	}
	return nil
}

// Content checks the anonymous message length bounds. Runs against the
// sanitized text, so stripped markup does not count toward the limits.
func Content(content string) FieldErrors {
	var errs FieldErrors
	if len(content) < ContentMinLen {
		errs = append(errs, "Content must be at least 10 characters")
	}
	if len(content) > ContentMaxLen {
		errs = append(errs, "Content must be no longer than 300 characters")
	}
	return errs
}

// SignUp validates the full registration tuple.
func SignUp(username, email, password string) FieldErrors {
	var errs FieldErrors
	errs = append(errs, Username(username)...)
	errs = append(errs, Email(email)...)
	errs = append(errs, Password(password)...)
	return errs
}
