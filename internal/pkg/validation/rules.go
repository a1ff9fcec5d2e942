package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Validation rule patterns
var (
	// Mobile numbers as typed into the form: digits with optional +, spaces, dashes and brackets
	MobilePattern = `^\+?[0-9][0-9\s\-()]{6,19}$`
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Mobile *regexp.Regexp
}{
	Mobile: regexp.MustCompile(MobilePattern),
}

// IsMobile reports whether s looks like a phone number
func IsMobile(s string) bool {
	return CompiledPatterns.Mobile.MatchString(strings.TrimSpace(s))
}

var (
	registerOnce sync.Once
	registerErr  error
)

// RegisterCustomValidators installs the custom tags on gin's validator and makes
// validation errors report form/json field names. Safe to call more than once.
func RegisterCustomValidators() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}

		v.RegisterTagNameFunc(fieldName)

		if err := v.RegisterValidation("mobile", func(fl validator.FieldLevel) bool {
			return IsMobile(fl.Field().String())
		}); err != nil {
			registerErr = fmt.Errorf("register mobile validator: %w", err)
		}
	})
	return registerErr
}

func fieldName(fld reflect.StructField) string {
	for _, tag := range []string{"form", "json"} {
		name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}
