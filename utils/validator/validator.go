package validatorx

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	gpvalidator "github.com/go-playground/validator/v10"
)

var (
	v   *gpvalidator.Validate
	mut sync.Mutex
)

// Init initializes the validator singleton (idempotent)
func Init() {
	mut.Lock()
	defer mut.Unlock()
	if v != nil {
		return
	}
	nv := gpvalidator.New()
	nv.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	_ = nv.RegisterValidation("notblank", notBlank)
	_ = nv.RegisterValidation("digits", digits)
	_ = nv.RegisterValidation("mmyy", monthYear)
	_ = nv.RegisterValidation("mintrim", minTrimmed)
	v = nv
}

// ValidateStruct validates a struct using go-playground/validator
func ValidateStruct(s interface{}) error {
	if v == nil {
		Init()
	}
	return v.Struct(s)
}

// FieldErrors turns a validation error into field -> message, keyed by json name.
// A nil map means err carried no field information.
func FieldErrors(err error) map[string]string {
	var verrs gpvalidator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		out[fe.Field()] = message(fe)
	}
	return out
}

func message(fe gpvalidator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s is required", fe.Field())
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters", fe.Field(), fe.Param())
	case "digits":
		return fmt.Sprintf("%s must contain digits only", fe.Field())
	case "mmyy":
		return fmt.Sprintf("%s must be in MM/YY format", fe.Field())
	case "mintrim":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}

func notBlank(fl gpvalidator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func digits(fl gpvalidator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// monthYear accepts MM/YY with a month between 01 and 12.
func monthYear(fl gpvalidator.FieldLevel) bool {
	s := fl.Field().String()
	if len(s) != 5 || s[2] != '/' {
		return false
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	month, _ := strconv.Atoi(s[:2])
	return month >= 1 && month <= 12
}

func minTrimmed(fl gpvalidator.FieldLevel) bool {
	min, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return utf8.RuneCountInString(strings.TrimSpace(fl.Field().String())) >= min
}
