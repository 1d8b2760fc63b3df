package storage

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/markma27/pdfsaver/internal/model"
)

// editHistoryCap bounds the stored edit history; the oldest rows beyond it
// are pruned after each insert.
const editHistoryCap = 1000

// Similarity score weights. Document type agreement dominates; issuer
// agreement and shared sample words refine the ranking.
const (
	scoreSameDocType  = 10
	scoreSameIssuer   = 5
	scoreFuzzyIssuer  = 2
	scorePerWord      = 1
	scoreWordCap      = 5
	maxSimilarDefault = 5
)

// ScoredEdit is an edit with its similarity score against a query.
type ScoredEdit struct {
	Edit  model.Edit
	Score int
}

// RecordEdit stores one filename correction, trimming the text sample and
// pruning history beyond the cap. The edit's ID and CreatedAt are filled
// in on success.
func (s *SQLiteStore) RecordEdit(ctx context.Context, edit *model.Edit) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateEdit(edit); err != nil {
		return err
	}

	sample := edit.TextSample
	if len(sample) > model.MaxEditTextSample {
		sample = sample[:model.MaxEditTextSample]
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO edits (original_filename, edited_filename, doc_type, issuer, date_iso, account_last4, asx_code, text_sample)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		edit.OriginalFilename, edit.EditedFilename,
		edit.Fields.DocType, edit.Fields.Issuer, edit.Fields.DateISO,
		edit.Fields.AccountLast4, edit.Fields.ASXCode, sample)
	if err != nil {
		return fmt.Errorf("failed to record edit: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read edit id: %w", err)
	}
	edit.ID = id
	edit.TextSample = sample

	row := s.db.QueryRowContext(ctx, "SELECT created_at FROM edits WHERE id = ?", id)
	if err := row.Scan(&edit.CreatedAt); err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("failed to read edit timestamp: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, `
		DELETE FROM edits WHERE id NOT IN (
			SELECT id FROM edits ORDER BY id DESC LIMIT ?
		)`, editHistoryCap); err != nil {
		return fmt.Errorf("failed to prune edit history: %w", err)
	}

	return nil
}

// ListEdits returns stored edits, newest first, up to limit (<= 0 for
// all).
func (s *SQLiteStore) ListEdits(ctx context.Context, limit int) ([]model.Edit, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = editHistoryCap
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, original_filename, edited_filename,
		       doc_type, issuer, date_iso, account_last4, asx_code, text_sample
		FROM edits ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list edits: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var edits []model.Edit
	for rows.Next() {
		var e model.Edit
		if err := rows.Scan(&e.ID, &e.CreatedAt, &e.OriginalFilename, &e.EditedFilename,
			&e.Fields.DocType, &e.Fields.Issuer, &e.Fields.DateISO,
			&e.Fields.AccountLast4, &e.Fields.ASXCode, &e.TextSample); err != nil {
			return nil, fmt.Errorf("failed to scan edit: %w", err)
		}
		edits = append(edits, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read edits: %w", err)
	}
	return edits, nil
}

// FindSimilar ranks stored edits by similarity to the given fields and
// text sample and returns the top max (<= 0 for a default of 5). Edits
// scoring zero are excluded.
func (s *SQLiteStore) FindSimilar(ctx context.Context, fields model.DetectedFields, textSample string, max int) ([]ScoredEdit, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if max <= 0 {
		max = maxSimilarDefault
	}

	edits, err := s.ListEdits(ctx, 0)
	if err != nil {
		return nil, err
	}

	queryWords := sampleWords(textSample)

	var scored []ScoredEdit
	for _, edit := range edits {
		score := similarity(fields, queryWords, edit)
		if score > 0 {
			scored = append(scored, ScoredEdit{Edit: edit, Score: score})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > max {
		scored = scored[:max]
	}
	return scored, nil
}

// ClearEdits removes all stored edits.
func (s *SQLiteStore) ClearEdits(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, "DELETE FROM edits"); err != nil {
		return fmt.Errorf("failed to clear edits: %w", err)
	}
	return nil
}

// similarity scores one stored edit against the query fields and sample
// words.
func similarity(fields model.DetectedFields, queryWords map[string]bool, edit model.Edit) int {
	score := 0

	if fields.DocType != "" && strings.EqualFold(fields.DocType, edit.Fields.DocType) {
		score += scoreSameDocType
	}

	if fields.Issuer != "" && edit.Fields.Issuer != "" {
		if strings.EqualFold(fields.Issuer, edit.Fields.Issuer) {
			score += scoreSameIssuer
		} else if fuzzy.MatchNormalizedFold(fields.Issuer, edit.Fields.Issuer) {
			score += scoreFuzzyIssuer
		}
	}

	if len(queryWords) > 0 {
		shared := 0
		for word := range sampleWords(edit.TextSample) {
			if queryWords[word] {
				shared++
			}
		}
		if shared > scoreWordCap {
			shared = scoreWordCap
		}
		score += shared * scorePerWord
	}

	return score
}

// stopwords are too common to signal similarity between text samples.
var stopwords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true,
	"but": true, "in": true, "on": true, "at": true, "to": true,
	"for": true, "of": true, "with": true, "by": true,
}

// sampleWords lowercases a text sample and returns its distinct
// non-stopword words.
func sampleWords(sample string) map[string]bool {
	if sample == "" {
		return nil
	}
	if len(sample) > model.MaxEditTextSample {
		sample = sample[:model.MaxEditTextSample]
	}

	words := make(map[string]bool)
	for _, word := range strings.Fields(strings.ToLower(sample)) {
		word = strings.Trim(word, ".,:;()[]$*")
		if word == "" || stopwords[word] {
			continue
		}
		words[word] = true
	}
	return words
}
