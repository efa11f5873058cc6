package httputil

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	validate        = newValidator()
	usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)
)

func newValidator() *validator.Validate {
	v := validator.New()

	// Report errors with the field names clients use
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		if name := jsonName(field); name != "" {
			return name
		}
		return "-"
	})

	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})

	rules := map[string]validator.Func{
		"decimal_gte":      decimalGTE,
		"decimal_places":   decimalPlaces,
		"max_digits":       maxDigits,
		"max_whole_digits": maxWholeDigits,
		"username":         username,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("registering validation %s: %v", tag, err))
		}
	}

	return v
}

// Validate checks target against the rules in its "validate" struct tags.
// Violations are returned as FieldErrors.
func Validate(target any) error {
	err := validate.Struct(target)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	errs := FieldErrors{}
	for _, e := range validationErrors {
		errs.Add(e.Field(), ValidationErrorToText(e))
	}
	return errs
}

// ValidationErrorToText returns a message for a failed validation
// that can be shown to the client.
func ValidationErrorToText(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required."
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", e.Param())
	case "min":
		return fmt.Sprintf("Ensure this field has at least %s characters.", e.Param())
	case "decimal_gte":
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", e.Param())
	case "decimal_places":
		return fmt.Sprintf("Ensure that there are no more than %s decimal places.", e.Param())
	case "max_digits":
		return fmt.Sprintf("Ensure that there are no more than %s digits in total.", e.Param())
	case "max_whole_digits":
		return fmt.Sprintf("Ensure that there are no more than %s digits before the decimal point.", e.Param())
	case "username":
		return "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."
	}

	return fmt.Sprintf("Failed on the '%s' rule.", e.Tag())
}

// decimalValue lets the validator see decimals as their string
// representation so that the rules for them are applied like for any
// other field.
func decimalValue(field reflect.Value) any {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.String()
	}
	return nil
}

// fieldDecimal returns the decimal value of a validated field.
// ok is false for nil pointers and non-decimal fields.
func fieldDecimal(fl validator.FieldLevel) (d decimal.Decimal, ok bool) {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return decimal.Zero, false
	}

	d, err := decimal.NewFromString(field.String())
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// places returns the number of decimal places needed to represent d exactly.
func places(d decimal.Decimal) int32 {
	var n int32
	for !d.Equal(d.Truncate(n)) {
		n++
	}
	return n
}

func decimalGTE(fl validator.FieldLevel) bool {
	d, ok := fieldDecimal(fl)
	if !ok {
		return true
	}

	min, err := decimal.NewFromString(fl.Param())
	if err != nil {
		panic(fmt.Sprintf("invalid decimal_gte parameter %q", fl.Param()))
	}

	return d.GreaterThanOrEqual(min)
}

func decimalPlaces(fl validator.FieldLevel) bool {
	d, ok := fieldDecimal(fl)
	if !ok {
		return true
	}

	max, err := strconv.ParseInt(fl.Param(), 10, 32)
	if err != nil {
		panic(fmt.Sprintf("invalid decimal_places parameter %q", fl.Param()))
	}

	return places(d) <= int32(max)
}

func maxDigits(fl validator.FieldLevel) bool {
	d, ok := fieldDecimal(fl)
	if !ok {
		return true
	}

	max, err := strconv.Atoi(fl.Param())
	if err != nil {
		panic(fmt.Sprintf("invalid max_digits parameter %q", fl.Param()))
	}

	return wholeDigits(d)+int(places(d)) <= max
}

func maxWholeDigits(fl validator.FieldLevel) bool {
	d, ok := fieldDecimal(fl)
	if !ok {
		return true
	}

	max, err := strconv.Atoi(fl.Param())
	if err != nil {
		panic(fmt.Sprintf("invalid max_whole_digits parameter %q", fl.Param()))
	}

	return wholeDigits(d) <= max
}

// wholeDigits returns the number of digits before the decimal point of d.
func wholeDigits(d decimal.Decimal) int {
	return len(strings.TrimLeft(d.Abs().Truncate(0).String(), "0"))
}

func username(fl validator.FieldLevel) bool {
	return usernamePattern.MatchString(fl.Field().String())
}
