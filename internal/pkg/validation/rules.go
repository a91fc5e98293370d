package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/yigit/uniportal/internal/app/models"
	"github.com/yigit/uniportal/internal/domain"
)

// Validation rule patterns
var (
	// Email validation pattern, lower-cased input
	EmailPattern = `^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`

	// Course code pattern, e.g. INF101
	CourseCodePattern = `^[A-Z]{2,6}\d{3}$`

	// Course code prefix pattern used by the generator
	CodePrefixPattern = `^[A-Za-z]{2,6}$`

	NameMinLength = 2
	NameMaxLength = 100
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Email      *regexp.Regexp
	CourseCode *regexp.Regexp
	CodePrefix *regexp.Regexp
}{
	Email:      regexp.MustCompile(EmailPattern),
	CourseCode: regexp.MustCompile(CourseCodePattern),
	CodePrefix: regexp.MustCompile(CodePrefixPattern),
}

// Register installs the custom tags used by the request DTOs:
// academicyear, level, seriestype, coursestatus, paymentstatus, role, codeprefix.
func Register(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"academicyear": func(fl validator.FieldLevel) bool {
			return domain.IsAcademicYear(fl.Field().String())
		},
		"level": func(fl validator.FieldLevel) bool {
			return models.Level(fl.Field().String()).IsValid()
		},
		"seriestype": func(fl validator.FieldLevel) bool {
			_, ok := models.ParseSeriesType(fl.Field().String())
			return ok
		},
		"coursestatus": func(fl validator.FieldLevel) bool {
			return models.CourseStatus(fl.Field().String()).IsValid()
		},
		"paymentstatus": func(fl validator.FieldLevel) bool {
			return models.PaymentStatus(fl.Field().String()).IsValid()
		},
		"role": func(fl validator.FieldLevel) bool {
			return models.Role(fl.Field().String()).IsValid()
		},
		"codeprefix": func(fl validator.FieldLevel) bool {
			return CompiledPatterns.CodePrefix.MatchString(fl.Field().String())
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

// IsValidEmail checks an already lower-cased email address
func IsValidEmail(email string) bool {
	return CompiledPatterns.Email.MatchString(email)
}
