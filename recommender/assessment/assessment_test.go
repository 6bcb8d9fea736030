//
// Tencent is pleased to support the open source community by making assessrec available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// assessrec is licensed under the Apache License Version 2.0.
//
//

package assessment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasTestType(t *testing.T) {
	a := &Assessment{
		URL:       "https://example.com/catalog/java-new",
		Name:      "Java (New)",
		TestTypes: []TestType{TypeKnowledgeSkills},
	}
	assert.True(t, a.HasTestType(TypeKnowledgeSkills))
	assert.False(t, a.HasTestType(TypePersonalityBehavior))
}

func TestEmbeddingText(t *testing.T) {
	a := &Assessment{
		URL:         "https://example.com/catalog/java-new",
		Name:        "Java (New)",
		Description: "Multi-choice test that measures knowledge of Java programming.",
		TestTypes:   []TestType{TypeKnowledgeSkills, TypeAbilityAptitude},
	}
	assert.Equal(t,
		"Java (New) | Knowledge & Skills, Ability & Aptitude | Multi-choice test that measures knowledge of Java programming.",
		a.EmbeddingText())

	// Missing fields are omitted rather than leaving empty separators.
	b := &Assessment{Name: "Verify G+"}
	assert.Equal(t, "Verify G+", b.EmbeddingText())
}

func TestClone(t *testing.T) {
	a := &Assessment{
		URL:             "https://example.com/catalog/java-new",
		Name:            "Java (New)",
		Description:     "Java knowledge test.",
		Duration:        11,
		RemoteSupport:   SupportYes,
		AdaptiveSupport: SupportNo,
		TestTypes:       []TestType{TypeKnowledgeSkills},
	}

	clone := a.Clone()
	assert.Equal(t, a, clone)

	clone.TestTypes[0] = TypeSimulations
	assert.Equal(t, TypeKnowledgeSkills, a.TestTypes[0], "clone must not share the test type slice")
}
