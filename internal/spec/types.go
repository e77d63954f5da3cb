// Package spec defines the project specification produced from a
// conversation, plus the extraction and validation that turn a model reply
// into a trusted, typed value.
package spec

import "strings"

// Feature is a single prioritized capability of the proposed product.
type Feature struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

// Technology pairs a stack choice with its justification.
type Technology struct {
	Name    string `json:"name"`
	Purpose string `json:"purpose"`
}

// Component is one architectural building block.
type Component struct {
	Name         string   `json:"name"`
	Purpose      string   `json:"purpose"`
	Interactions []string `json:"interactions"`
}

// Architecture describes the overall shape of the system.
type Architecture struct {
	Type       string      `json:"type"`
	Components []Component `json:"components"`
}

// Task is a unit of work inside an implementation phase.
type Task struct {
	Name     string `json:"name"`
	Duration string `json:"duration"`
}

// Phase is one stage of the implementation plan.
type Phase struct {
	Phase    string `json:"phase"`
	Duration string `json:"duration"`
	Tasks    []Task `json:"tasks"`
}

// ProjectLinks holds the canonical local URLs and repository path. These are
// always recomputed by the validator; model-suggested values are never trusted.
type ProjectLinks struct {
	Frontend   string `json:"frontend"`
	Backend    string `json:"backend"`
	Repository string `json:"repository"`
}

// ProjectSpecification is the structured PRD.
type ProjectSpecification struct {
	Title              string       `json:"title"`
	Description        string       `json:"description"`
	Features           []Feature    `json:"features"`
	Technologies       []Technology `json:"technologies"`
	Architecture       Architecture `json:"architecture"`
	ImplementationPlan []Phase      `json:"implementationPlan"`
	ProjectLinks       ProjectLinks `json:"projectLinks"`
}

// Slug returns the directory/file key for a title: lower-cased, spaces
// replaced with underscores.
func Slug(title string) string {
	return strings.ReplaceAll(strings.ToLower(title), " ", "_")
}
