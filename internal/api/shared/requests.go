package shared

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/todos-api/internal/domain"
)

// Global validator instance for reuse. Field errors report JSON names.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// DecodeJSON decodes a request body into v. A blank body decodes as an
// empty object so that missing fields surface as validation errors.
func DecodeJSON(body string, v any) error {
	if strings.TrimSpace(body) == "" {
		body = "{}"
	}
	dec := json.NewDecoder(strings.NewReader(body))
	if err := dec.Decode(v); err != nil {
		return domain.NewValidationError("body", "is not valid JSON: "+err.Error())
	}
	if dec.More() {
		return domain.NewValidationError("body", "is not valid JSON: unexpected trailing data")
	}
	return nil
}

// ValidateRequest validates v with its struct tags and returns a
// *domain.ValidationError naming the first failing field.
func ValidateRequest(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return domain.NewValidationError(fe.Field(), reasonForTag(fe.Tag()))
	}
	return domain.NewValidationError("body", err.Error())
}

func reasonForTag(tag string) string {
	switch tag {
	case "required":
		return "is required"
	default:
		return "failed " + tag + " validation"
	}
}
