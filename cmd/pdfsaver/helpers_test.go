package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markma27/pdfsaver/internal/model"
)

func TestCollectPDFs(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.Mkdir(sub, 0o750))

	files := []string{
		filepath.Join(dir, "a.pdf"),
		filepath.Join(dir, "b.PDF"),
		filepath.Join(dir, "notes.txt"),
		filepath.Join(sub, "c.pdf"),
	}
	for _, f := range files {
		require.NoError(t, os.WriteFile(f, []byte("x"), 0o640))
	}

	t.Run("explicit file is taken as-is", func(t *testing.T) {
		paths, err := collectPDFs([]string{files[2]}, false)
		require.NoError(t, err)
		assert.Equal(t, []string{files[2]}, paths)
	})

	t.Run("directory picks up pdfs by extension", func(t *testing.T) {
		paths, err := collectPDFs([]string{dir}, false)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{files[0], files[1]}, paths)
	})

	t.Run("recursive descends into subdirectories", func(t *testing.T) {
		paths, err := collectPDFs([]string{dir}, true)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{files[0], files[1], files[3]}, paths)
	})

	t.Run("missing path fails", func(t *testing.T) {
		_, err := collectPDFs([]string{filepath.Join(dir, "missing")}, false)
		assert.Error(t, err)
	})
}

func TestParseFilenameFields(t *testing.T) {
	tests := []struct {
		name string
		arg  string
		want model.DetectedFields
	}{
		{
			name: "full canonical name",
			arg:  "2025-03-15_CommonwealthBank_DividendStatement.pdf",
			want: model.DetectedFields{
				DocType: "DividendStatement",
				Issuer:  "CommonwealthBank",
				DateISO: "2025-03-15",
			},
		},
		{
			name: "display name maps back to the internal type",
			arg:  "2024-06-30_Wilsons_DistributionAndCapitalCallStatement.pdf",
			want: model.DetectedFields{
				DocType: "CallAndDistributionStatement",
				Issuer:  "Wilsons",
				DateISO: "2024-06-30",
			},
		},
		{
			name: "placeholder date and unknown issuer stay empty",
			arg:  "YYYY-MM-DD_Unknown_BankStatement.pdf",
			want: model.DetectedFields{DocType: "BankStatement"},
		},
		{
			name: "collision counter is ignored",
			arg:  "2025-01-02_SomeBank_BankStatement_2.pdf",
			want: model.DetectedFields{
				DocType: "BankStatement",
				Issuer:  "SomeBank",
				DateISO: "2025-01-02",
			},
		},
		{
			name: "directory prefix is stripped",
			arg:  "sorted/2025-01-02_SomeBank_TaxStatement.pdf",
			want: model.DetectedFields{
				DocType: "TaxStatement",
				Issuer:  "SomeBank",
				DateISO: "2025-01-02",
			},
		},
		{
			name: "unrecognized type segment is dropped",
			arg:  "2025-01-02_SomeBank_Mystery.pdf",
			want: model.DetectedFields{
				Issuer:  "SomeBank",
				DateISO: "2025-01-02",
			},
		},
		{
			name: "non-canonical name yields nothing",
			arg:  "scan0001.pdf",
			want: model.DetectedFields{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseFilenameFields(tt.arg))
		})
	}
}

func TestIsPDF(t *testing.T) {
	assert.True(t, isPDF("a.pdf"))
	assert.True(t, isPDF("A.PDF"))
	assert.False(t, isPDF("a.txt"))
	assert.False(t, isPDF("pdf"))
}
