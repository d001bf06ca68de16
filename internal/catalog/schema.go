package catalog

import (
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// examSchema is the contract an exam document must satisfy before it enters the
// catalog. Weightage history entries are the percentages the priority engine
// reads, so they must be numeric and the list, when present, non-empty.
const examSchema = `{
  "type": "object",
  "required": ["code", "name", "topics"],
  "properties": {
    "code": {"type": "string", "minLength": 1},
    "name": {"type": "string", "minLength": 1},
    "body": {"type": "string"},
    "exam_type": {"type": "string"},
    "exam_dates": {"type": "array", "items": {"type": "string"}},
    "subjects": {"type": "array", "items": {"type": "string"}},
    "score_divisor": {"type": "number", "minimum": 0},
    "topics": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name"],
        "properties": {
          "subject": {"type": "string"},
          "name": {"type": "string", "minLength": 1},
          "weightage_history": {
            "type": "array",
            "minItems": 1,
            "items": {"type": "number"}
          },
          "avg_questions": {"type": "number", "minimum": 0},
          "difficulty_distribution": {
            "type": "object",
            "additionalProperties": {"type": "number"}
          },
          "marks_per_hour": {"type": "number"},
          "correlation_topics": {"type": "array", "items": {"type": "string"}}
        }
      }
    }
  }
}`

var compiledExamSchema = gojsonschema.NewStringLoader(examSchema)

// validateExamDocument checks a decoded YAML document against the exam schema.
// The document is round-tripped through JSON because the schema validator
// operates on JSON values.
func validateExamDocument(doc map[string]any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding exam document: %w", err)
	}

	result, err := gojsonschema.Validate(compiledExamSchema, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("validating exam document: %w", err)
	}
	if !result.Valid() {
		errs := result.Errors()
		if len(errs) > 0 {
			return fmt.Errorf("invalid exam document: %s", errs[0].String())
		}
		return fmt.Errorf("invalid exam document")
	}
	return nil
}
