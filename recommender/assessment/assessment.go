//
// Tencent is pleased to support the open source community by making assessrec available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// assessrec is licensed under the Apache License Version 2.0.
//
//

// Package assessment defines the catalog record type shared across the
// recommendation pipeline.
package assessment

import "strings"

// TestType is a category tag from the fixed catalog vocabulary.
type TestType string

// The catalog's closed vocabulary of test type categories.
const (
	TypeAbilityAptitude     TestType = "Ability & Aptitude"
	TypeBiodataSituational  TestType = "Biodata & Situational Judgement"
	TypeCompetencies        TestType = "Competencies"
	TypeDevelopment360      TestType = "Development & 360"
	TypeAssessmentExercises TestType = "Assessment Exercises"
	TypeKnowledgeSkills     TestType = "Knowledge & Skills"
	TypePersonalityBehavior TestType = "Personality & Behavior"
	TypeSimulations         TestType = "Simulations"
)

// Support markers for the remote/adaptive enums.
const (
	SupportYes = "Yes"
	SupportNo  = "No"
)

// Assessment represents a single catalog product. Records are immutable once
// loaded; the catalog URL doubles as the unique identifier.
type Assessment struct {
	// URL is the unique catalog page URL identifying the assessment.
	URL string `json:"url"`

	// Name is the assessment's display name.
	Name string `json:"name"`

	// Description is the catalog description text.
	Description string `json:"description"`

	// Duration is the assessment length in minutes, 0 when unknown.
	Duration int `json:"duration,omitempty"`

	// RemoteSupport indicates remote testing support ("Yes"/"No").
	RemoteSupport string `json:"remote_support"`

	// AdaptiveSupport indicates adaptive/IRT support ("Yes"/"No").
	AdaptiveSupport string `json:"adaptive_support"`

	// TestTypes contains the category tags drawn from the fixed vocabulary.
	TestTypes []TestType `json:"test_type"`
}

// HasTestType reports whether the assessment carries the given category tag.
func (a *Assessment) HasTestType(t TestType) bool {
	for _, tt := range a.TestTypes {
		if tt == t {
			return true
		}
	}
	return false
}

// EmbeddingText combines the fields relevant for semantic search into the
// text that is embedded: name, category tags, then description.
func (a *Assessment) EmbeddingText() string {
	parts := make([]string, 0, 3)
	if a.Name != "" {
		parts = append(parts, a.Name)
	}
	if len(a.TestTypes) > 0 {
		types := make([]string, len(a.TestTypes))
		for i, t := range a.TestTypes {
			types[i] = string(t)
		}
		parts = append(parts, strings.Join(types, ", "))
	}
	if a.Description != "" {
		parts = append(parts, a.Description)
	}
	return strings.Join(parts, " | ")
}

// Clone creates a deep copy of the assessment.
func (a *Assessment) Clone() *Assessment {
	clone := &Assessment{
		URL:             a.URL,
		Name:            a.Name,
		Description:     a.Description,
		Duration:        a.Duration,
		RemoteSupport:   a.RemoteSupport,
		AdaptiveSupport: a.AdaptiveSupport,
	}
	if a.TestTypes != nil {
		clone.TestTypes = make([]TestType, len(a.TestTypes))
		copy(clone.TestTypes, a.TestTypes)
	}
	return clone
}
