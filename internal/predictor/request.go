package predictor

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Request is a prediction request. The binding tags are enforced both by
// Gin at the HTTP edge and by the façade itself for non-HTTP callers.
type Request struct {
	RuntimeMinutes      float64  `json:"runtimeMinutes" binding:"required,gt=0,lte=180"`
	Budget              float64  `json:"budget" binding:"required,gte=100"`
	Genres              []string `json:"genres" binding:"required,min=1"`
	ProductionCompanies []string `json:"production_companies"`
	Languages           []string `json:"languages" binding:"required,min=1"`
	Countries           []string `json:"countries"`
	Rating              string   `json:"rating"`
	Location            string   `json:"loc"`
}

// FieldViolation is one violated validation rule.
type FieldViolation struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationError carries every rule a request violated. The request was
// rejected before any encoding or classification work.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.Message
	}
	return "invalid prediction request: " + strings.Join(msgs, "; ")
}

// AsValidationError normalizes the two validation failure shapes (our own
// and validator.ValidationErrors coming out of Gin's binding) into a
// *ValidationError. ok is false for unrelated errors.
func AsValidationError(err error) (*ValidationError, bool) {
	if ve, ok := err.(*ValidationError); ok {
		return ve, true
	}
	if ve, ok := err.(validator.ValidationErrors); ok {
		out := &ValidationError{}
		for _, fe := range ve {
			field := jsonFieldName(fe.StructField())
			out.Violations = append(out.Violations, FieldViolation{
				Field:   field,
				Rule:    fe.Tag(),
				Message: violationMessage(field, fe.Tag(), fe.Param()),
			})
		}
		return out, true
	}
	return nil, false
}

func violationMessage(field, rule, param string) string {
	switch rule {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, param)
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, param)
	case "min":
		return fmt.Sprintf("%s must contain at least %s entries", field, param)
	default:
		return fmt.Sprintf("%s failed rule %s", field, rule)
	}
}

// jsonNames maps Request struct field names to their wire names so
// violations reference the fields clients actually sent.
var jsonNames = func() map[string]string {
	names := map[string]string{}
	t := reflect.TypeOf(Request{})
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag := strings.Split(f.Tag.Get("json"), ",")[0]
		if tag == "" {
			tag = f.Name
		}
		names[f.Name] = tag
	}
	return names
}()

func jsonFieldName(structField string) string {
	if name, ok := jsonNames[structField]; ok {
		return name
	}
	return structField
}
