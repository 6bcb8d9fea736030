//
// Tencent is pleased to support the open source community by making assessrec available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// assessrec is licensed under the Apache License Version 2.0.
//
//

package retriever

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"trpc.group/trpc-go/assessrec/recommender/embedder"
	"trpc.group/trpc-go/assessrec/recommender/vectorstore"
)

var tracer = otel.Tracer("trpc.group/trpc-go/assessrec/recommender/retriever")

// DefaultRetriever embeds the query and delegates the nearest-neighbor
// computation to the vector store.
type DefaultRetriever struct {
	embedder    embedder.Embedder
	vectorStore vectorstore.VectorStore
}

// Option represents a functional option for configuring DefaultRetriever.
type Option func(*DefaultRetriever)

// WithEmbedder sets the embedder for the retriever.
func WithEmbedder(e embedder.Embedder) Option {
	return func(dr *DefaultRetriever) {
		dr.embedder = e
	}
}

// WithVectorStore sets the vector store for the retriever.
func WithVectorStore(vs vectorstore.VectorStore) Option {
	return func(dr *DefaultRetriever) {
		dr.vectorStore = vs
	}
}

// New creates a new default retriever with the given options.
func New(opts ...Option) *DefaultRetriever {
	dr := &DefaultRetriever{}
	for _, opt := range opts {
		opt(dr)
	}
	return dr
}

// Retrieve implements the Retriever interface. Any failure of the embedding
// or search call surfaces as ErrUnavailable; an empty result set is returned
// as a valid empty candidate list.
func (dr *DefaultRetriever) Retrieve(ctx context.Context, q *Query) (*Result, error) {
	if dr.embedder == nil || dr.vectorStore == nil {
		return nil, fmt.Errorf("%w: retriever not configured with embedder and vector store", ErrUnavailable)
	}

	ctx, span := tracer.Start(ctx, "retrieve_candidates")
	defer span.End()
	span.SetAttributes(attribute.Int("pool_size", q.Limit))

	embedding, err := dr.embedder.GetEmbedding(ctx, q.Text)
	if err != nil {
		return nil, fmt.Errorf("%w: embed query: %v", ErrUnavailable, err)
	}
	if len(embedding) == 0 {
		return nil, fmt.Errorf("%w: embedder returned an empty vector", ErrUnavailable)
	}

	searchResult, err := dr.vectorStore.Search(ctx, &vectorstore.SearchQuery{
		Vector:   embedding,
		Limit:    q.Limit,
		MinScore: q.MinScore,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: search: %v", ErrUnavailable, err)
	}
	if searchResult == nil {
		return nil, fmt.Errorf("%w: search returned no result", ErrUnavailable)
	}

	candidates := make([]*Candidate, 0, len(searchResult.Results))
	for _, scored := range searchResult.Results {
		if scored == nil || scored.Assessment == nil {
			return nil, fmt.Errorf("%w: search returned a malformed entry", ErrUnavailable)
		}
		candidates = append(candidates, &Candidate{
			Assessment: scored.Assessment,
			Score:      scored.Score,
		})
	}
	span.SetAttributes(attribute.Int("candidates", len(candidates)))

	return &Result{Candidates: candidates}, nil
}

// Close implements the Retriever interface.
func (dr *DefaultRetriever) Close() error {
	return nil
}
