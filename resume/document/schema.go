package document

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema.json
var schemaJSON string

var schemaLoader = gojsonschema.NewStringLoader(schemaJSON)

// ValidationError lists the fields that do not match the resume schema.
type ValidationError struct {
	Errors []FieldError
}

// FieldError is a single schema violation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("resume content invalid:")
	for _, fe := range ve.Errors {
		sb.WriteString(fmt.Sprintf(" %s: %s;", fe.Field, fe.Message))
	}
	return sb.String()
}

// ValidateContent checks serialized resume content against the resume schema.
// Content that is not a JSON object at all is reported as a single root error.
func ValidateContent(content string) error {
	// The schema loader decodes only the first value, so trailing text is checked here.
	if !json.Valid([]byte(content)) {
		return &ValidationError{Errors: []FieldError{{Field: "(root)", Message: "content is not a single JSON document"}}}
	}
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewStringLoader(content))
	if err != nil {
		return &ValidationError{Errors: []FieldError{{Field: "(root)", Message: err.Error()}}}
	}
	if result.Valid() {
		return nil
	}
	verr := &ValidationError{Errors: make([]FieldError, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		verr.Errors = append(verr.Errors, FieldError{Field: field, Message: desc.Description()})
	}
	return verr
}
