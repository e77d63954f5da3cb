package spec

import (
	"encoding/json"
	"fmt"

	cerrors "github.com/ideaforge/collaborator/internal/errors"
)

// Canonical local URLs for every generated project.
const (
	FrontendURL = "http://localhost:3000"
	BackendURL  = "http://localhost:3001"
)

// requiredFields is the exact required top-level field set, in report order.
var requiredFields = []string{
	"title",
	"description",
	"features",
	"technologies",
	"architecture",
	"implementationPlan",
}

// Validate checks a recovered JSON object against the required field set and
// decodes it into a typed specification. ProjectLinks is unconditionally
// overwritten with the canonical values; whatever the model suggested is
// discarded.
func Validate(data []byte) (*ProjectSpecification, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("specification is not a JSON object: %w", err)
	}

	var missing []string
	for _, f := range requiredFields {
		if _, ok := obj[f]; !ok {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return nil, &cerrors.IncompleteSpecificationError{Missing: missing}
	}

	var s ProjectSpecification
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode specification: %w", err)
	}

	s.ProjectLinks = CanonicalLinks(s.Title)
	return &s, nil
}

// CanonicalLinks computes the only trusted ProjectLinks value for a title.
func CanonicalLinks(title string) ProjectLinks {
	return ProjectLinks{
		Frontend:   FrontendURL,
		Backend:    BackendURL,
		Repository: "generated_projects/" + Slug(title),
	}
}
