// internal/api/validate.go
package api

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// checkCompanySchema validates the check-company request payload before
// it reaches the pipeline. Field bounds live here; semantic validation
// (e.g. whitespace-only names) stays with the canonicalizer.
const checkCompanySchema = `{
	"type": "object",
	"properties": {
		"name":     {"type": "string", "minLength": 1, "maxLength": 200},
		"website":  {"type": "string", "maxLength": 500},
		"country":  {"type": "string", "maxLength": 100},
		"category": {"type": "string", "maxLength": 100}
	},
	"required": ["name"],
	"additionalProperties": false
}`

var checkCompanySchemaLoader = gojsonschema.NewStringLoader(checkCompanySchema)

func validateCheckCompanyBody(body []byte) *gojsonschema.Result {
	result, err := gojsonschema.Validate(checkCompanySchemaLoader, gojsonschema.NewBytesLoader(body))
	if err != nil {
		// Unparseable JSON: synthesize an invalid result.
		r, _ := gojsonschema.Validate(checkCompanySchemaLoader, gojsonschema.NewStringLoader(`null`))
		return r
	}
	return result
}

func validationMessage(result *gojsonschema.Result) string {
	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, fmt.Sprintf("%s: %s", e.Field(), e.Description()))
	}
	if len(msgs) == 0 {
		return "invalid request body"
	}
	return "invalid request body: " + strings.Join(msgs, "; ")
}
