// Package validator wires custom validation rules into the global
// validator instance used by gin binding.
package validator

import (
	"regexp"
	"sync"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Custom validation tags
const (
	TagUsername     = "username"  // alphanumeric + underscore, 3-32 chars
	TagPassword     = "password"  // min 8 chars, at least 1 letter and 1 number
	TagEmployeeCode = "empcode"   // employee code, e.g. EMP-1024
	TagPageToken    = "pagetoken" // permission page token
)

var (
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]{3,32}$`)
	empCodeRe  = regexp.MustCompile(`^[A-Z]{2,5}-\d{1,8}$`)
	pageRe     = regexp.MustCompile(`^[a-z][a-z0-9_]{0,63}$`)

	registerOnce sync.Once
)

// Init registers the custom rules on gin's binding validator. Safe to
// call more than once.
func Init() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation(TagUsername, validateUsername)
		_ = v.RegisterValidation(TagPassword, validatePassword)
		_ = v.RegisterValidation(TagEmployeeCode, validateEmployeeCode)
		_ = v.RegisterValidation(TagPageToken, validatePageToken)
	})
}

func validateUsername(fl validator.FieldLevel) bool {
	return usernameRe.MatchString(fl.Field().String())
}

func validatePassword(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if len(s) < 8 {
		return false
	}
	var hasLetter, hasDigit bool
	for _, r := range s {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

func validateEmployeeCode(fl validator.FieldLevel) bool {
	return empCodeRe.MatchString(fl.Field().String())
}

func validatePageToken(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "*" || s == "any" {
		return true
	}
	return pageRe.MatchString(s)
}
