//
// Tencent is pleased to support the open source community by making assessrec available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// assessrec is licensed under the Apache License Version 2.0.
//
//

// Package inmemory provides an in-memory vector store implementation.
package inmemory

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"

	"trpc.group/trpc-go/assessrec/recommender/assessment"
	"trpc.group/trpc-go/assessrec/recommender/vectorstore"
)

var (
	// errAssessmentCannotBeNil is the error when the assessment is nil.
	errAssessmentCannotBeNil = errors.New("assessment cannot be nil")
	// errURLCannotBeEmpty is the error when the assessment URL is empty.
	errURLCannotBeEmpty = errors.New("assessment URL cannot be empty")
	// errEmbeddingCannotBeEmpty is the error when the embedding is empty.
	errEmbeddingCannotBeEmpty = errors.New("embedding cannot be empty")

	// defaultMaxResults is the default maximum number of search results.
	defaultMaxResults = 30
)

var _ vectorstore.VectorStore = (*VectorStore)(nil)

// VectorStore implements vectorstore.VectorStore using in-memory storage
// with cosine similarity search.
type VectorStore struct {
	assessments map[string]*assessment.Assessment
	embeddings  map[string][]float64
	mutex       sync.RWMutex

	// maxResults caps search results when the query carries no limit.
	maxResults int
}

// Option represents a functional option for configuring VectorStore.
type Option func(*VectorStore)

// WithMaxResults sets the maximum number of search results.
func WithMaxResults(maxResults int) Option {
	return func(vs *VectorStore) {
		if maxResults <= 0 {
			maxResults = defaultMaxResults
		}
		vs.maxResults = maxResults
	}
}

// New creates a new in-memory vector store instance with options.
func New(opts ...Option) *VectorStore {
	vs := &VectorStore{
		assessments: make(map[string]*assessment.Assessment),
		embeddings:  make(map[string][]float64),
		maxResults:  defaultMaxResults,
	}
	for _, opt := range opts {
		opt(vs)
	}
	return vs
}

// Add implements vectorstore.VectorStore interface.
func (vs *VectorStore) Add(ctx context.Context, a *assessment.Assessment, embedding []float64) error {
	if a == nil {
		return errAssessmentCannotBeNil
	}
	if a.URL == "" {
		return errURLCannotBeEmpty
	}
	if len(embedding) == 0 {
		return errEmbeddingCannotBeEmpty
	}

	vs.mutex.Lock()
	defer vs.mutex.Unlock()

	vs.assessments[a.URL] = a.Clone()
	vs.embeddings[a.URL] = make([]float64, len(embedding))
	copy(vs.embeddings[a.URL], embedding)

	return nil
}

// Get implements vectorstore.VectorStore interface.
func (vs *VectorStore) Get(ctx context.Context, url string) (*assessment.Assessment, []float64, error) {
	if url == "" {
		return nil, nil, errURLCannotBeEmpty
	}

	vs.mutex.RLock()
	defer vs.mutex.RUnlock()

	a, exists := vs.assessments[url]
	if !exists {
		return nil, nil, fmt.Errorf("assessment not found: %s", url)
	}
	embedding := vs.embeddings[url]
	embeddingCopy := make([]float64, len(embedding))
	copy(embeddingCopy, embedding)

	return a.Clone(), embeddingCopy, nil
}

// Delete implements vectorstore.VectorStore interface.
func (vs *VectorStore) Delete(ctx context.Context, url string) error {
	if url == "" {
		return errURLCannotBeEmpty
	}

	vs.mutex.Lock()
	defer vs.mutex.Unlock()

	if _, exists := vs.assessments[url]; !exists {
		return fmt.Errorf("assessment not found: %s", url)
	}
	delete(vs.assessments, url)
	delete(vs.embeddings, url)

	return nil
}

// Search implements vectorstore.VectorStore interface.
func (vs *VectorStore) Search(ctx context.Context, query *vectorstore.SearchQuery) (*vectorstore.SearchResult, error) {
	if query == nil {
		return nil, errors.New("query cannot be nil")
	}
	if len(query.Vector) == 0 {
		return nil, fmt.Errorf("query vector cannot be empty")
	}

	vs.mutex.RLock()
	defer vs.mutex.RUnlock()

	var results []*vectorstore.ScoredAssessment
	for url, embedding := range vs.embeddings {
		// Skip if embedding dimensions don't match.
		if len(embedding) != len(query.Vector) {
			continue
		}
		score := cosineSimilarity(query.Vector, embedding)
		if score >= query.MinScore {
			results = append(results, &vectorstore.ScoredAssessment{
				Assessment: vs.assessments[url].Clone(),
				Score:      score,
			})
		}
	}

	sortByScore(results)

	limit := vs.getMaxResult(query.Limit)
	if len(results) > limit {
		results = results[:limit]
	}

	return &vectorstore.SearchResult{
		Results: results,
	}, nil
}

// Count implements vectorstore.VectorStore interface.
func (vs *VectorStore) Count(ctx context.Context) (int, error) {
	vs.mutex.RLock()
	defer vs.mutex.RUnlock()

	return len(vs.assessments), nil
}

// Close implements vectorstore.VectorStore interface.
func (vs *VectorStore) Close() error {
	vs.mutex.Lock()
	defer vs.mutex.Unlock()

	vs.assessments = nil
	vs.embeddings = nil

	return nil
}

// cosineSimilarity calculates the cosine similarity between two vectors.
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0.0
	}

	var dotProduct, normA, normB float64
	for i := 0; i < len(a); i++ {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0.0
	}
	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}

// sortByScore sorts results by score in descending order. Equal scores fall
// back to URL order so that search output does not depend on map iteration.
func sortByScore(results []*vectorstore.ScoredAssessment) {
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Assessment.URL < results[j].Assessment.URL
	})
}

func (vs *VectorStore) getMaxResult(maxResults int) int {
	if maxResults <= 0 {
		return vs.maxResults
	}
	return maxResults
}
