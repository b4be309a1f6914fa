// Package schemas provides JSON Schema validation for payloads crossing the
// boundary to the hosted scraping function.
package schemas

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// scrapeEnvelopeSchema describes the response envelope of the scraping
// function: a success body carries html plus optional status_code, final_url
// and headers; an error body carries message. Presence of html itself is a
// gateway-level decision, so neither branch is required here.
const scrapeEnvelopeSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "html": {"type": "string"},
    "status_code": {"type": "integer"},
    "final_url": {"type": "string"},
    "headers": {
      "type": "object",
      "additionalProperties": {"type": "string"}
    },
    "message": {"type": "string"}
  }
}`

// FieldError is a single validation error at a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError aggregates field-level schema violations.
type ValidationError struct {
	Errors []FieldError
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("envelope validation failed:")
	for _, fe := range ve.Errors {
		sb.WriteString(fmt.Sprintf(" %s: %s;", fe.Field, fe.Message))
	}
	return strings.TrimSuffix(sb.String(), ";")
}

// ValidateScrapeEnvelope checks a raw scraping-function response body against
// the envelope schema. Returns a *ValidationError describing every violation,
// or an error when the body is not valid JSON at all.
func ValidateScrapeEnvelope(body []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(scrapeEnvelopeSchema)
	documentLoader := gojsonschema.NewBytesLoader(body)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("failed to validate envelope: %w", err)
	}

	if result.Valid() {
		return nil
	}

	ve := &ValidationError{}
	for _, desc := range result.Errors() {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   desc.Field(),
			Message: desc.Description(),
		})
	}
	return ve
}
