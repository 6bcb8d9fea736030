//
// Tencent is pleased to support the open source community by making assessrec available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// assessrec is licensed under the Apache License Version 2.0.
//
//

package query

import (
	"context"
	"strings"
)

// Rule maps a domain keyword to the related terms appended when the keyword
// appears in a query.
type Rule struct {
	// Keyword is matched by containment against the lowercased query.
	Keyword string

	// Terms are the related terms to append, in order.
	Terms []string
}

// defaultRules is the built-in expansion table. Role and skill keywords map
// to the assessment vocabulary the catalog descriptions use. The slice order
// is the scan order, which keeps enhancement deterministic.
var defaultRules = []Rule{
	// Role keywords.
	{Keyword: "developer", Terms: []string{"programming", "coding", "software", "development"}},
	{Keyword: "data scientist", Terms: []string{"data", "analysis", "statistics", "machine", "learning"}},
	{Keyword: "manager", Terms: []string{"leadership", "team", "management", "communication"}},
	{Keyword: "analyst", Terms: []string{"analysis", "problem", "solving", "critical", "thinking"}},
	{Keyword: "engineer", Terms: []string{"technical", "engineering", "problem", "solving"}},
	{Keyword: "designer", Terms: []string{"design", "creativity", "user", "experience"}},
	{Keyword: "sales", Terms: []string{"communication", "persuasion", "customer", "relationship"}},
	{Keyword: "marketing", Terms: []string{"communication", "strategy", "creative", "content"}},
	// Technical skill keywords.
	{Keyword: "java", Terms: []string{"coding", "programming", "software"}},
	{Keyword: "python", Terms: []string{"coding", "programming", "data"}},
	{Keyword: "javascript", Terms: []string{"coding", "programming", "web"}},
	{Keyword: "sql", Terms: []string{"database", "data", "queries"}},
	// Behavioral keywords.
	{Keyword: "collaborat", Terms: []string{"teamwork", "communication", "interpersonal"}},
	{Keyword: "teamwork", Terms: []string{"collaboration", "communication", "interpersonal"}},
	{Keyword: "team", Terms: []string{"teamwork", "communication", "collaboration"}},
	{Keyword: "leadership", Terms: []string{"management", "influence", "communication"}},
	{Keyword: "stakeholder", Terms: []string{"communication", "relationship", "management"}},
	// Cognitive and personality keywords.
	{Keyword: "analytical", Terms: []string{"reasoning", "problem", "solving"}},
	{Keyword: "cognitive", Terms: []string{"reasoning", "aptitude", "ability"}},
	{Keyword: "personality", Terms: []string{"behavior", "traits", "culture"}},
}

// KeywordEnhancer expands queries using a fixed keyword-to-terms table.
// Appended terms are deduplicated against the query's tokens and against
// terms appended by earlier rules, preserving relative order.
type KeywordEnhancer struct {
	rules []Rule
}

// Option represents a functional option for configuring KeywordEnhancer.
type Option func(*KeywordEnhancer)

// WithRules replaces the built-in expansion table.
func WithRules(rules []Rule) Option {
	return func(ke *KeywordEnhancer) {
		if len(rules) > 0 {
			ke.rules = rules
		}
	}
}

// NewKeywordEnhancer creates a new keyword query enhancer with options.
func NewKeywordEnhancer(opts ...Option) *KeywordEnhancer {
	ke := &KeywordEnhancer{
		rules: defaultRules,
	}
	for _, opt := range opts {
		opt(ke)
	}
	return ke
}

// EnhanceQuery implements the Enhancer interface. It appends the related
// terms of every matched keyword to the end of the query, separated by
// whitespace. A query matching no keyword is returned unchanged.
func (ke *KeywordEnhancer) EnhanceQuery(ctx context.Context, req *Request) (*Enhanced, error) {
	if strings.TrimSpace(req.Query) == "" {
		return nil, ErrInvalidQuery
	}

	lowered := strings.ToLower(req.Query)
	seen := make(map[string]bool)
	for _, token := range strings.Fields(lowered) {
		seen[token] = true
	}

	var added []string
	for _, rule := range ke.rules {
		if !strings.Contains(lowered, rule.Keyword) {
			continue
		}
		for _, term := range rule.Terms {
			if seen[term] {
				continue
			}
			seen[term] = true
			added = append(added, term)
		}
	}

	if len(added) == 0 {
		return &Enhanced{Enhanced: req.Query}, nil
	}
	return &Enhanced{
		Enhanced: req.Query + " " + strings.Join(added, " "),
		Keywords: added,
	}, nil
}
