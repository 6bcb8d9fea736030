//
// Tencent is pleased to support the open source community by making assessrec available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// assessrec is licensed under the Apache License Version 2.0.
//
//

// Package catalog loads the scraped assessment catalog into a vector store.
// Loading happens once at process start; the store is read-only afterwards.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"

	"trpc.group/trpc-go/assessrec/log"
	"trpc.group/trpc-go/assessrec/recommender/assessment"
	"trpc.group/trpc-go/assessrec/recommender/embedder"
	"trpc.group/trpc-go/assessrec/recommender/vectorstore"
)

// Loader embeds catalog records and populates a vector store.
type Loader struct {
	embedder    embedder.Embedder
	vectorStore vectorstore.VectorStore

	// parallelism is the number of records embedded concurrently.
	parallelism int
}

// Option represents a functional option for configuring Loader.
type Option func(*Loader)

// WithEmbedder sets the embedder for catalog records.
func WithEmbedder(e embedder.Embedder) Option {
	return func(l *Loader) {
		l.embedder = e
	}
}

// WithVectorStore sets the vector store to populate.
func WithVectorStore(vs vectorstore.VectorStore) Option {
	return func(l *Loader) {
		l.vectorStore = vs
	}
}

// WithConcurrency configures how many records are embedded in parallel.
// A value of 1 means sequential processing. The default is runtime.NumCPU().
func WithConcurrency(n int) Option {
	return func(l *Loader) {
		if n > 0 {
			l.parallelism = n
		}
	}
}

// New creates a new catalog loader with the given options.
func New(opts ...Option) *Loader {
	l := &Loader{
		parallelism: runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadFile reads a scraped-catalog JSON file (an array of assessment
// records) and loads it into the vector store. Returns the number of
// records loaded.
func (l *Loader) LoadFile(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read catalog file: %w", err)
	}
	var records []*assessment.Assessment
	if err := json.Unmarshal(data, &records); err != nil {
		return 0, fmt.Errorf("parse catalog file %s: %w", path, err)
	}
	log.Infof("Loaded %d assessment record(s) from %s", len(records), path)
	return l.Load(ctx, records)
}

// Load embeds the given records concurrently and adds them to the vector
// store. Records without a URL or name are rejected.
func (l *Loader) Load(ctx context.Context, records []*assessment.Assessment) (int, error) {
	if l.embedder == nil || l.vectorStore == nil {
		return 0, fmt.Errorf("catalog loader requires an embedder and a vector store")
	}
	for i, a := range records {
		if a == nil || a.URL == "" || a.Name == "" {
			return 0, fmt.Errorf("catalog record %d is missing url or name", i)
		}
	}

	pool, err := ants.NewPool(l.parallelism)
	if err != nil {
		return 0, fmt.Errorf("failed to create catalog worker pool: %w", err)
	}
	defer pool.Release()

	var wg sync.WaitGroup
	errCh := make(chan error, len(records))

	for _, a := range records {
		wg.Add(1)
		record := a
		if err := pool.Submit(func() {
			defer wg.Done()
			if err := l.addRecord(ctx, record); err != nil {
				errCh <- err
			}
		}); err != nil {
			wg.Done()
			errCh <- fmt.Errorf("failed to submit catalog task: %w", err)
		}
	}

	wg.Wait()
	close(errCh)

	if err := <-errCh; err != nil {
		return 0, err
	}

	log.Infof("Catalog loaded: %d assessment(s) embedded and stored", len(records))
	return len(records), nil
}

func (l *Loader) addRecord(ctx context.Context, a *assessment.Assessment) error {
	embedding, err := l.embedder.GetEmbedding(ctx, a.EmbeddingText())
	if err != nil {
		return fmt.Errorf("embed assessment %s: %w", a.URL, err)
	}
	if len(embedding) == 0 {
		return fmt.Errorf("embed assessment %s: received empty embedding", a.URL)
	}
	if err := l.vectorStore.Add(ctx, a, embedding); err != nil {
		return fmt.Errorf("store assessment %s: %w", a.URL, err)
	}
	return nil
}
