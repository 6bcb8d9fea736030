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
	"errors"
	"testing"

	"trpc.group/trpc-go/assessrec/recommender/assessment"
	"trpc.group/trpc-go/assessrec/recommender/vectorstore/inmemory"
)

// dummyEmbedder returns a constant vector.
type dummyEmbedder struct{}

func (dummyEmbedder) GetEmbedding(ctx context.Context, text string) ([]float64, error) {
	return []float64{1, 0, 0}, nil
}
func (dummyEmbedder) GetEmbeddingWithUsage(ctx context.Context, text string) ([]float64, map[string]any, error) {
	v, _ := dummyEmbedder{}.GetEmbedding(ctx, text)
	return v, map[string]any{"t": 1}, nil
}
func (dummyEmbedder) GetDimensions() int { return 3 }

// failingEmbedder always errors.
type failingEmbedder struct{}

func (failingEmbedder) GetEmbedding(ctx context.Context, text string) ([]float64, error) {
	return nil, errors.New("boom")
}
func (failingEmbedder) GetEmbeddingWithUsage(ctx context.Context, text string) ([]float64, map[string]any, error) {
	return nil, nil, errors.New("boom")
}
func (failingEmbedder) GetDimensions() int { return 3 }

func TestDefaultRetriever(t *testing.T) {
	vs := inmemory.New()
	a := &assessment.Assessment{URL: "https://example.com/a", Name: "A"}
	if err := vs.Add(context.Background(), a, []float64{1, 0, 0}); err != nil {
		t.Fatalf("add assessment: %v", err)
	}

	dr := New(
		WithEmbedder(dummyEmbedder{}),
		WithVectorStore(vs),
	)

	res, err := dr.Retrieve(context.Background(), &Query{Text: "anything", Limit: 5})
	if err != nil {
		t.Fatalf("retrieve err: %v", err)
	}
	if len(res.Candidates) != 1 || res.Candidates[0].Assessment.URL != a.URL {
		t.Fatalf("unexpected candidates: %+v", res.Candidates)
	}
}

func TestDefaultRetrieverEmptyCatalog(t *testing.T) {
	dr := New(
		WithEmbedder(dummyEmbedder{}),
		WithVectorStore(inmemory.New()),
	)

	res, err := dr.Retrieve(context.Background(), &Query{Text: "anything", Limit: 5})
	if err != nil {
		t.Fatalf("empty catalog must not be an error, got %v", err)
	}
	if len(res.Candidates) != 0 {
		t.Fatalf("expected no candidates, got %d", len(res.Candidates))
	}
}

func TestDefaultRetrieverEmbedFailure(t *testing.T) {
	dr := New(
		WithEmbedder(failingEmbedder{}),
		WithVectorStore(inmemory.New()),
	)

	_, err := dr.Retrieve(context.Background(), &Query{Text: "anything", Limit: 5})
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestDefaultRetrieverUnconfigured(t *testing.T) {
	dr := New()
	_, err := dr.Retrieve(context.Background(), &Query{Text: "anything", Limit: 5})
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}
