package comment

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Guyuepp/threaded-blog/domain"
)

type contentInput struct {
	Content string `json:"content" validate:"required,notblank,max=5000"`
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// validateContent checks the raw content and returns its sanitized form.
// Markup-only input that sanitizes to blank is a validation error as well.
func (s *Service) validateContent(content string) (string, error) {
	if err := s.validate.Struct(contentInput{Content: content}); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return "", err
		}
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fieldMessage(fe)
		}
		return "", domain.NewValidationError(fields)
	}

	clean := s.sanitizer.Sanitize(content)
	if strings.TrimSpace(clean) == "" {
		return "", blankAfterSanitize()
	}
	return clean, nil
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "must not be empty"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	default:
		return "is invalid"
	}
}

func blankAfterSanitize() error {
	return domain.NewValidationError(map[string]string{
		"content": "must contain text after removing disallowed markup",
	})
}
