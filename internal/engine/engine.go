// Package engine orchestrates the classification phases into one
// confidence-scored result per document.
package engine

import (
	"context"
	"log/slog"

	"github.com/markma27/pdfsaver/internal/classify"
	"github.com/markma27/pdfsaver/internal/filename"
	"github.com/markma27/pdfsaver/internal/model"
	"github.com/markma27/pdfsaver/internal/rules"
)

// fieldBonus is added to the aggregate confidence for each populated
// secondary field (issuer, date, account).
const fieldBonus = 10

// Engine runs the classification phases over document text. It is safe for
// concurrent use: the rule store hands out immutable snapshots and the
// result cache is mutex-guarded.
type Engine struct {
	store *rules.Store
	cache *resultCache
}

// Config holds engine construction options.
type Config struct {
	// CacheSize caps the result cache; zero or negative disables caching.
	CacheSize int
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return Config{CacheSize: 100}
}

// New creates an engine with the default configuration.
func New(store *rules.Store) *Engine {
	return NewWithConfig(store, DefaultConfig())
}

// NewWithConfig creates an engine with a custom configuration.
func NewWithConfig(store *rules.Store, config Config) *Engine {
	return &Engine{
		store: store,
		cache: newResultCache(config.CacheSize),
	}
}

// Classify extracts document type, issuer, date, and account identifier
// from the text and aggregates them into a confidence-scored result. It
// never fails: a phase that panics degrades its field to null, and text
// that matches nothing yields the all-null result with confidence 0.
func (e *Engine) Classify(_ context.Context, text string) model.ClassificationResult {
	if cached, ok := e.cache.get(text); ok {
		cached.CacheHit = true
		return cached
	}

	rs := e.store.Get()
	result := e.classify(text, rs)
	e.cache.put(text, result)
	return result
}

func (e *Engine) classify(text string, rs *rules.Compiled) model.ClassificationResult {
	var fields model.DetectedFields
	var typeConfidence int

	runPhase("doc_type", func() string {
		fields.DocType, typeConfidence = classify.ScoreTypes(text, rs)
		return fields.DocType
	})
	runPhase("issuer", func() string {
		fields.Issuer = classify.DetectIssuer(text, rs)
		return fields.Issuer
	})
	runPhase("date", func() string {
		fields.DateISO = classify.ExtractDate(text, fields.DocType, rs)
		return fields.DateISO
	})
	runPhase("account", func() string {
		fields.AccountLast4 = classify.ExtractAccountLast4(text, rs)
		return fields.AccountLast4
	})
	runPhase("asx_code", func() string {
		fields.ASXCode = classify.ExtractASXCode(text)
		return fields.ASXCode
	})

	result := assemble(fields, typeConfidence)

	slog.Info("classified document",
		"doc_type", fields.DocType,
		"issuer", fields.Issuer,
		"date", fields.DateISO,
		"confidence", result.Confidence,
		"needs_review", result.NeedsReview)

	return result
}

// assemble computes the aggregate confidence and the suggested filename
// for a set of detected fields.
func assemble(fields model.DetectedFields, typeConfidence int) model.ClassificationResult {
	confidence := typeConfidence
	if fields.Issuer != "" {
		confidence += fieldBonus
	}
	if fields.DateISO != "" {
		confidence += fieldBonus
	}
	if fields.AccountLast4 != "" {
		confidence += fieldBonus
	}
	if confidence > 100 {
		confidence = 100
	}
	if confidence < 0 {
		confidence = 0
	}

	return model.ClassificationResult{
		Fields:         fields,
		Filename:       filename.Build(fields),
		TypeConfidence: typeConfidence,
		Confidence:     confidence,
		NeedsReview:    confidence < model.ReviewThreshold,
	}
}

// runPhase executes one extraction phase under a panic boundary. A failing
// phase logs a warning and leaves its field at the zero value; it never
// affects other phases or the caller.
func runPhase(name string, fn func() string) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("classification phase failed", "phase", name, "panic", r)
		}
	}()
	slog.Debug("classification phase", "phase", name, "value", fn())
}
