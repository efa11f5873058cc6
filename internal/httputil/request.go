package httputil

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// DecodeFields decodes the JSON object in the request body into target,
// which must be a pointer to a struct.
//
// Only fields that are present in the body are written. This allows to
// pre-fill target with the current values of a resource and apply an
// update on top of it. After decoding, target is validated with the
// rules in its "validate" struct tags.
//
// The returned error is ErrRequestBodyEmpty, ErrInvalidBody or FieldErrors.
func DecodeFields(c *gin.Context, target any) error {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		log.Error().Str("request-method", c.Request.Method).Str("request-path", c.Request.URL.Path).Msg("Could not read request body")
		return ErrInvalidBody
	}

	// Reset the body so that it can be read again by other handlers
	c.Request.Body = io.NopCloser(bytes.NewBuffer(body))

	if len(bytes.TrimSpace(body)) == 0 {
		return ErrRequestBodyEmpty
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		log.Debug().Str("request-method", c.Request.Method).Str("request-path", c.Request.URL.Path).Str("error", err.Error()).Msg("Invalid request body")
		return ErrInvalidBody
	}

	errs := FieldErrors{}
	value := reflect.ValueOf(target).Elem()
	for i := 0; i < value.NumField(); i++ {
		field := value.Type().Field(i)
		name := jsonName(field)
		if name == "" {
			continue
		}

		raw, ok := fields[name]
		if !ok {
			continue
		}

		if string(bytes.TrimSpace(raw)) == "null" {
			if isRequired(field) {
				errs.Add(name, "This field may not be null.")
				continue
			}

			value.Field(i).Set(reflect.Zero(field.Type))
			continue
		}

		decoded := reflect.New(field.Type)
		if err := json.Unmarshal(raw, decoded.Interface()); err != nil || !decimalInRange(decoded.Elem()) {
			errs.Add(name, typeError(field.Type))
			continue
		}
		value.Field(i).Set(decoded.Elem())
	}

	// Fields that could not be decoded keep their type error,
	// all others are still checked against their rules
	err = Validate(target)
	if err == nil {
		if len(errs) > 0 {
			return errs
		}
		return nil
	}

	var ruleErrs FieldErrors
	if !errors.As(err, &ruleErrs) {
		return err
	}

	for name, messages := range ruleErrs {
		if _, ok := errs[name]; !ok {
			errs[name] = messages
		}
	}
	return errs
}

// maxExponent bounds the exponent of decoded decimals. Values like 1e-20000
// are valid JSON numbers, but formatting them allocates one digit per unit
// of exponent.
const maxExponent = 32

// decimalInRange reports whether v is not a decimal or a decimal
// with an exponent inside [-maxExponent, maxExponent].
func decimalInRange(v reflect.Value) bool {
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return true
		}
		v = v.Elem()
	}

	d, ok := v.Interface().(decimal.Decimal)
	if !ok {
		return true
	}

	exp := d.Exponent()
	return exp >= -maxExponent && exp <= maxExponent
}

// jsonName returns the name of the field in JSON documents, or an empty
// string if the field is not decoded from JSON.
func jsonName(field reflect.StructField) string {
	if !field.IsExported() {
		return ""
	}

	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}

	if name == "" {
		return field.Name
	}

	return name
}

func isRequired(field reflect.StructField) bool {
	for _, rule := range strings.Split(field.Tag.Get("validate"), ",") {
		if rule == "required" {
			return true
		}
	}
	return false
}

var (
	decimalType = reflect.TypeOf(decimal.Decimal{})
	uuidType    = reflect.TypeOf(uuid.UUID{})
	timeType    = reflect.TypeOf(time.Time{})
)

// typeError returns the message for a value that cannot be decoded into t.
func typeError(t reflect.Type) string {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	switch t {
	case decimalType:
		return "A valid number is required."
	case uuidType:
		return "Must be a valid UUID."
	case timeType:
		return "Datetime has wrong format. Use RFC 3339, e.g. 2006-01-02T15:04:05Z."
	}

	switch t.Kind() {
	case reflect.String:
		return "Not a valid string."
	case reflect.Bool:
		return "Must be a valid boolean."
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "A valid integer is required."
	}

	return "Invalid value."
}
