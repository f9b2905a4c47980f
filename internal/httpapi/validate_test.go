package httpapi

import (
	"strings"
	"testing"
)

func TestValidateRegister(t *testing.T) {
	valid := registerRequest{Email: "alice@example.com", Name: "Alice", Password: "hunter2!X"}

	cases := []struct {
		name    string
		mutate  func(*registerRequest)
		wantErr bool
	}{
		{"valid", func(*registerRequest) {}, false},
		{"empty email", func(r *registerRequest) { r.Email = "" }, true},
		{"bad email", func(r *registerRequest) { r.Email = "not-an-email" }, true},
		{"name too short", func(r *registerRequest) { r.Name = "A" }, true},
		{"name too long", func(r *registerRequest) { r.Name = strings.Repeat("a", 61) }, true},
		{"password too short", func(r *registerRequest) { r.Password = "a1!" }, true},
		{"password too long", func(r *registerRequest) { r.Password = strings.Repeat("a1!", 50) }, true},
		{"password no digit", func(r *registerRequest) { r.Password = "password!" }, true},
		{"password no special", func(r *registerRequest) { r.Password = "password1" }, true},
		{"password no letter", func(r *registerRequest) { r.Password = "12345678!" }, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := valid
			tc.mutate(&req)
			err := validateRegister(req)
			if (err != nil) != tc.wantErr {
				t.Fatalf("err = %v, wantErr = %v", err, tc.wantErr)
			}
			if err != nil {
				var verr validationError
				if !asValidation(err, &verr) {
					t.Fatalf("error %v is not a validationError", err)
				}
			}
		})
	}
}

func asValidation(err error, target *validationError) bool {
	v, ok := err.(validationError)
	if ok {
		*target = v
	}
	return ok
}

func TestValidateLogin(t *testing.T) {
	if err := validateLogin(loginRequest{Email: "a@b.com", Password: "x"}); err != nil {
		t.Fatalf("valid login rejected: %v", err)
	}
	if err := validateLogin(loginRequest{Email: "", Password: "x"}); err == nil {
		t.Fatal("missing email accepted")
	}
	if err := validateLogin(loginRequest{Email: "a@b.com", Password: ""}); err == nil {
		t.Fatal("missing password accepted")
	}
}

func TestValidateCreatePost(t *testing.T) {
	if err := validateCreatePost(createPostRequest{Title: "Hello", Content: "body"}); err != nil {
		t.Fatalf("valid post rejected: %v", err)
	}
	if err := validateCreatePost(createPostRequest{Title: "ab", Content: "body"}); err == nil {
		t.Fatal("short title accepted")
	}
	if err := validateCreatePost(createPostRequest{Title: strings.Repeat("t", 121), Content: "body"}); err == nil {
		t.Fatal("long title accepted")
	}
	if err := validateCreatePost(createPostRequest{Title: "Hello", Content: ""}); err == nil {
		t.Fatal("empty content accepted")
	}
}

func TestValidateUpdatePost(t *testing.T) {
	title := "New title"
	empty := ""

	if err := validateUpdatePost(updatePostRequest{}); err == nil {
		t.Fatal("empty update accepted")
	}
	if err := validateUpdatePost(updatePostRequest{Title: &title}); err != nil {
		t.Fatalf("title-only update rejected: %v", err)
	}
	if err := validateUpdatePost(updatePostRequest{Content: &empty}); err == nil {
		t.Fatal("empty content accepted")
	}
	published := true
	if err := validateUpdatePost(updatePostRequest{Published: &published}); err != nil {
		t.Fatalf("publish-only update rejected: %v", err)
	}
}
