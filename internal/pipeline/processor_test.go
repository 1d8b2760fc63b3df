package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markma27/pdfsaver/internal/common"
	"github.com/markma27/pdfsaver/internal/engine"
	"github.com/markma27/pdfsaver/internal/model"
	"github.com/markma27/pdfsaver/internal/pdftext"
	"github.com/markma27/pdfsaver/internal/rules"
)

func newTestProcessor() *Processor {
	return &Processor{
		Engine:    engine.New(rules.NewStore("")),
		Extractor: pdftext.NewExtractor(pdftext.Config{}),
	}
}

func writeFakePDFs(t *testing.T, dir string, names ...string) []string {
	t.Helper()
	paths := make([]string, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte("not really a pdf"), 0o600))
		paths = append(paths, path)
	}
	return paths
}

func TestProcessRecordsPerFileErrors(t *testing.T) {
	dir := t.TempDir()
	paths := writeFakePDFs(t, dir, "a.pdf", "b.pdf", "c.pdf")

	p := newTestProcessor()

	var mu sync.Mutex
	var progress []int
	results, err := p.Process(context.Background(), paths, Options{
		DryRun: true,
		OnProgress: func(done, total int) {
			mu.Lock()
			defer mu.Unlock()
			progress = append(progress, done)
			assert.Equal(t, 3, total)
		},
	})

	// Unreadable files fail individually without aborting the batch.
	require.NoError(t, err)
	require.Len(t, results, 3)
	for i, r := range results {
		assert.Equal(t, paths[i], r.Path, "results keep input order")
		require.Error(t, r.Err)
		assert.ErrorIs(t, r.Err, common.ErrNotPDF)
	}
	assert.Len(t, progress, 3)
}

func TestProcessEmptyBatch(t *testing.T) {
	p := newTestProcessor()
	results, err := p.Process(context.Background(), nil, Options{})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestProcessCanceledContext(t *testing.T) {
	dir := t.TempDir()
	paths := writeFakePDFs(t, dir, "a.pdf")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := newTestProcessor()
	_, err := p.Process(ctx, paths, Options{DryRun: true})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNameClaims(t *testing.T) {
	dir := t.TempDir()

	// An existing file on disk blocks the plain name.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "2024-05-15_Computershare_DividendStatement.pdf"), nil, 0o600))

	claims := newNameClaims()
	first := claims.claim(dir, "2024-05-15_Computershare_DividendStatement.pdf")
	second := claims.claim(dir, "2024-05-15_Computershare_DividendStatement.pdf")
	other := claims.claim(dir, "2024-06-30_Vanguard_HoldingStatement.pdf")

	assert.Equal(t, filepath.Join(dir, "2024-05-15_Computershare_DividendStatement_2.pdf"), first)
	assert.Equal(t, filepath.Join(dir, "2024-05-15_Computershare_DividendStatement_3.pdf"), second)
	assert.Equal(t, filepath.Join(dir, "2024-06-30_Vanguard_HoldingStatement.pdf"), other)
}

func TestWriteReport(t *testing.T) {
	results := []Result{
		{
			Path:    "/in/dividend.pdf",
			NewName: "2024-05-15_Computershare_DividendStatement.pdf",
			HasText: true,
			Classification: model.ClassificationResult{
				Fields: model.DetectedFields{
					DocType:      "DividendStatement",
					Issuer:       "Computershare",
					DateISO:      "2024-05-15",
					AccountLast4: "6789",
					ASXCode:      "BHP",
				},
				Confidence: 100,
			},
		},
		{
			Path: "/in/broken.pdf",
			Err:  assert.AnError,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, results))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "source,new_name,doc_type,issuer,date,account_last4,asx_code,confidence,needs_review,error", lines[0])
	assert.Contains(t, lines[1], "2024-05-15_Computershare_DividendStatement.pdf")
	assert.Contains(t, lines[1], "BHP")
	assert.Contains(t, lines[2], assert.AnError.Error())
}
