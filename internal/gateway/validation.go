package gateway

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/nikitosikvn1/intelligent-image-analyzer/internal/apperrors"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Register custom validators
	validate.RegisterValidation("password_strength", validatePasswordStrength)
	validate.RegisterValidation("alpha_name", validateAlphaName)
}

// validatePasswordStrength is a custom validator that checks if password has:
// - At least one uppercase letter
// - At least one lowercase letter
// - At least one number
// - At least one special character
func validatePasswordStrength(fl validator.FieldLevel) bool {
	password := fl.Field().String()

	hasUpper := false
	hasLower := false
	hasNumber := false
	hasSpecial := false

	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsNumber(char):
			hasNumber = true
		case unicode.IsPunct(char) || unicode.IsSymbol(char):
			hasSpecial = true
		}

		if hasUpper && hasLower && hasNumber && hasSpecial {
			return true
		}
	}

	return hasUpper && hasLower && hasNumber && hasSpecial
}

// validateAlphaName checks if a name contains only letters, hyphens and
// apostrophes.
func validateAlphaName(fl validator.FieldLevel) bool {
	name := fl.Field().String()

	if len(name) == 0 {
		return false
	}

	for _, char := range name {
		if !unicode.IsLetter(char) && char != '-' && char != '\'' {
			return false
		}
	}

	return true
}

// validateRequest validates a request DTO and returns formatted error
func validateRequest(req interface{}) *apperrors.AppError {
	if err := validate.Struct(req); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

// formatValidationErrors formats validator errors into user-friendly messages
func formatValidationErrors(err error) *apperrors.AppError {
	var messages []string

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			messages = append(messages, formatFieldError(fieldError))
		}
	} else {
		return apperrors.NewValidation(err.Error())
	}

	return apperrors.NewValidation(strings.Join(messages, "; "))
}

// formatFieldError formats a single field validation error
func formatFieldError(fe validator.FieldError) string {
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "password_strength":
		return fmt.Sprintf("%s must contain at least one uppercase letter, one lowercase letter, one number, and one special character", field)
	case "alpha_name":
		return fmt.Sprintf("%s can only contain letters, hyphens, and apostrophes", field)
	case "uuid4":
		return fmt.Sprintf("%s must be a valid verification key", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// sanitizeInput trims whitespace and removes control characters.
// maxLength: maximum length in runes (0 = no limit)
// preserveSpecialChars: if true, preserves special characters (for passwords)
func sanitizeInput(input string, maxLength int, preserveSpecialChars bool) string {
	input = strings.TrimSpace(input)
	input = strings.ReplaceAll(input, "\x00", "")

	// Passwords keep their special characters; only trim and limit length.
	if preserveSpecialChars {
		if maxLength > 0 && utf8.RuneCountInString(input) > maxLength {
			runes := []rune(input)
			input = string(runes[:maxLength])
		}
		return input
	}

	var builder strings.Builder
	for _, r := range input {
		if unicode.IsPrint(r) {
			builder.WriteRune(r)
		}
	}
	input = builder.String()

	if maxLength > 0 && utf8.RuneCountInString(input) > maxLength {
		runes := []rune(input)
		input = string(runes[:maxLength])
	}

	return input
}

// sanitizeEmail trims and length-caps email input. Case is preserved: email
// is the identity key, and folding "Ada@Example.com" into "ada@example.com"
// would merge two distinct accounts.
func sanitizeEmail(email string, maxLength int) string {
	return sanitizeInput(email, maxLength, false)
}
