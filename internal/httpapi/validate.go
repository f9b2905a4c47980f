package httpapi

import (
	"net/mail"
	"regexp"
	"unicode/utf8"
)

// validationError marks request-shape failures that map to 400.
type validationError string

func (v validationError) Error() string { return string(v) }

var (
	passwordLetter  = regexp.MustCompile(`[A-Za-z]`)
	passwordDigit   = regexp.MustCompile(`[0-9]`)
	passwordSpecial = regexp.MustCompile(`[!@#$%^&*()_\-+={}\[\]|:;"'<>,.?/]`)
)

// Validation runs as an ordered set of predicate checks before the handler
// body; the first failing predicate decides the error message.

func validateEmail(email string) error {
	if email == "" {
		return validationError("email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return validationError("email is invalid")
	}
	return nil
}

func validateName(name string) error {
	n := utf8.RuneCountInString(name)
	if n < 2 || n > 60 {
		return validationError("name must be 2-60 characters")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 || len(password) > 128 {
		return validationError("password must be 8-128 characters")
	}
	if !passwordLetter.MatchString(password) ||
		!passwordDigit.MatchString(password) ||
		!passwordSpecial.MatchString(password) {
		return validationError("password must contain a letter, a digit, and a special character")
	}
	return nil
}

func validateRegister(req registerRequest) error {
	if err := validateEmail(req.Email); err != nil {
		return err
	}
	if err := validateName(req.Name); err != nil {
		return err
	}
	return validatePassword(req.Password)
}

func validateLogin(req loginRequest) error {
	if err := validateEmail(req.Email); err != nil {
		return err
	}
	if req.Password == "" {
		return validationError("password is required")
	}
	return nil
}

func validatePostTitle(title string) error {
	n := utf8.RuneCountInString(title)
	if n < 3 || n > 120 {
		return validationError("title must be 3-120 characters")
	}
	return nil
}

func validatePostContent(content string) error {
	if content == "" {
		return validationError("content is required")
	}
	return nil
}

func validateCreatePost(req createPostRequest) error {
	if err := validatePostTitle(req.Title); err != nil {
		return err
	}
	return validatePostContent(req.Content)
}

func validateUpdatePost(req updatePostRequest) error {
	if req.Title == nil && req.Content == nil && req.Published == nil {
		return validationError("no fields to update")
	}
	if req.Title != nil {
		if err := validatePostTitle(*req.Title); err != nil {
			return err
		}
	}
	if req.Content != nil {
		if err := validatePostContent(*req.Content); err != nil {
			return err
		}
	}
	return nil
}
