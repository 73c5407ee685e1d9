package engine

import (
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	"github.com/c360/sparqlpath/errors"
)

// Results is a decoded SPARQL 1.1 JSON results document.
type Results struct {
	Head    ResultsHead    `json:"head"`
	Boolean *bool          `json:"boolean,omitempty"`
	Results *ResultsDetail `json:"results,omitempty"`
}

// ResultsHead lists the variables projected by the query.
type ResultsHead struct {
	Vars []string `json:"vars"`
}

// ResultsDetail carries the solution sequence of a SELECT query.
type ResultsDetail struct {
	Bindings []Binding `json:"bindings"`
}

// Binding maps variable names to RDF term bindings for one solution.
type Binding map[string]BoundTerm

// BoundTerm is one RDF term in a results binding.
type BoundTerm struct {
	Type     string `json:"type"`
	Value    string `json:"value"`
	Lang     string `json:"xml:lang,omitempty"`
	Datatype string `json:"datatype,omitempty"`
}

// Values extracts the bound values of one variable across all solutions,
// in solution order. Solutions where the variable is unbound are skipped.
func (r *Results) Values(variable string) []string {
	if r.Results == nil {
		return nil
	}
	values := make([]string, 0, len(r.Results.Bindings))
	for _, binding := range r.Results.Bindings {
		if term, ok := binding[variable]; ok {
			values = append(values, term.Value)
		}
	}
	return values
}

// resultsSchema captures the shape of the SPARQL 1.1 Query Results JSON
// Format. Either "boolean" (ASK) or "results.bindings" (SELECT) must be
// present alongside "head".
const resultsSchema = `{
	"type": "object",
	"required": ["head"],
	"properties": {
		"head": {
			"type": "object",
			"properties": {
				"vars": {"type": "array", "items": {"type": "string"}},
				"link": {"type": "array", "items": {"type": "string"}}
			}
		},
		"boolean": {"type": "boolean"},
		"results": {
			"type": "object",
			"required": ["bindings"],
			"properties": {
				"bindings": {
					"type": "array",
					"items": {
						"type": "object",
						"additionalProperties": {
							"type": "object",
							"required": ["type", "value"],
							"properties": {
								"type": {"enum": ["uri", "literal", "bnode", "triple"]},
								"value": {"type": "string"},
								"xml:lang": {"type": "string"},
								"datatype": {"type": "string"}
							}
						}
					}
				}
			}
		}
	},
	"anyOf": [
		{"required": ["results"]},
		{"required": ["boolean"]}
	]
}`

var resultsSchemaLoader = gojsonschema.NewStringLoader(resultsSchema)

// decodeResults validates raw bytes against the results schema and decodes
// them. Validation failures and undecodable payloads are classified invalid.
func decodeResults(data []byte) (*Results, error) {
	validation, err := gojsonschema.Validate(resultsSchemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, errors.WrapInvalid(
			fmt.Errorf("%w: %v", errors.ErrInvalidResults, err),
			"engine", "decodeResults", "response is not valid JSON")
	}
	if !validation.Valid() {
		detail := "schema violation"
		if issues := validation.Errors(); len(issues) > 0 {
			detail = issues[0].String()
		}
		return nil, errors.WrapInvalid(
			fmt.Errorf("%w: %s", errors.ErrInvalidResults, detail),
			"engine", "decodeResults", "response failed schema validation")
	}

	var results Results
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, errors.WrapInvalid(
			fmt.Errorf("%w: %v", errors.ErrInvalidResults, err),
			"engine", "decodeResults", "failed to decode results document")
	}
	return &results, nil
}
