package storage

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markma27/pdfsaver/internal/common"
	"github.com/markma27/pdfsaver/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "pdfsaver.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func TestMigrate(t *testing.T) {
	store := newTestStore(t)

	version, err := store.SchemaVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, version)

	// Migrate is idempotent.
	require.NoError(t, store.Migrate(context.Background()))
}

func TestRecordAndListEdits(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	edit := &model.Edit{
		OriginalFilename: "2024-05-15_Unknown_DividendStatement.pdf",
		EditedFilename:   "2024-05-15_Computershare_DividendStatement.pdf",
		Fields: model.DetectedFields{
			DocType: "DividendStatement",
			Issuer:  "Computershare",
			DateISO: "2024-05-15",
		},
		TextSample: "Dividend Statement Payment Date 15/05/2024",
	}
	require.NoError(t, store.RecordEdit(ctx, edit))
	assert.Positive(t, edit.ID)
	assert.False(t, edit.CreatedAt.IsZero())

	second := &model.Edit{
		OriginalFilename: "a.pdf",
		EditedFilename:   "b.pdf",
	}
	require.NoError(t, store.RecordEdit(ctx, second))

	edits, err := store.ListEdits(ctx, 0)
	require.NoError(t, err)
	require.Len(t, edits, 2)
	assert.Equal(t, "b.pdf", edits[0].EditedFilename, "newest first")
	assert.Equal(t, "Computershare", edits[1].Fields.Issuer)

	limited, err := store.ListEdits(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestRecordEditValidation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.RecordEdit(ctx, nil)
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	err = store.RecordEdit(ctx, &model.Edit{EditedFilename: "b.pdf"})
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	err = store.RecordEdit(ctx, &model.Edit{OriginalFilename: "a.pdf"})
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestRecordEditTrimsSample(t *testing.T) {
	store := newTestStore(t)

	edit := &model.Edit{
		OriginalFilename: "a.pdf",
		EditedFilename:   "b.pdf",
		TextSample:       strings.Repeat("x", model.MaxEditTextSample+200),
	}
	require.NoError(t, store.RecordEdit(context.Background(), edit))
	assert.Len(t, edit.TextSample, model.MaxEditTextSample)

	edits, err := store.ListEdits(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, edits, 1)
	assert.Len(t, edits[0].TextSample, model.MaxEditTextSample)
}

func TestFindSimilar(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	seed := []model.Edit{
		{
			OriginalFilename: "1.pdf", EditedFilename: "1e.pdf",
			Fields:     model.DetectedFields{DocType: "DividendStatement", Issuer: "Computershare"},
			TextSample: "dividend statement payment date franked amount",
		},
		{
			OriginalFilename: "2.pdf", EditedFilename: "2e.pdf",
			Fields:     model.DetectedFields{DocType: "DividendStatement", Issuer: "Vanguard"},
			TextSample: "dividend statement reinvestment plan",
		},
		{
			OriginalFilename: "3.pdf", EditedFilename: "3e.pdf",
			Fields:     model.DetectedFields{DocType: "BankStatement", Issuer: "Some Bank"},
			TextSample: "opening balance closing balance",
		},
	}
	for i := range seed {
		require.NoError(t, store.RecordEdit(ctx, &seed[i]))
	}

	similar, err := store.FindSimilar(ctx,
		model.DetectedFields{DocType: "DividendStatement", Issuer: "Computershare"},
		"dividend statement payment date", 10)
	require.NoError(t, err)
	require.NotEmpty(t, similar)

	// Exact doc type + issuer + shared words ranks first.
	assert.Equal(t, "1e.pdf", similar[0].Edit.EditedFilename)
	assert.GreaterOrEqual(t, similar[0].Score, scoreSameDocType+scoreSameIssuer)

	// The bank statement shares nothing and is excluded.
	for _, s := range similar {
		assert.NotEqual(t, "3e.pdf", s.Edit.EditedFilename)
	}
}

func TestFindSimilarCaps(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 8; i++ {
		require.NoError(t, store.RecordEdit(ctx, &model.Edit{
			OriginalFilename: "x.pdf", EditedFilename: "y.pdf",
			Fields: model.DetectedFields{DocType: "TaxStatement"},
		}))
	}

	similar, err := store.FindSimilar(ctx, model.DetectedFields{DocType: "TaxStatement"}, "", 0)
	require.NoError(t, err)
	assert.Len(t, similar, maxSimilarDefault)
}

func TestClearEdits(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.RecordEdit(ctx, &model.Edit{OriginalFilename: "a.pdf", EditedFilename: "b.pdf"}))
	require.NoError(t, store.ClearEdits(ctx))

	edits, err := store.ListEdits(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, edits)
}

func TestSimilarityScoring(t *testing.T) {
	tests := []struct {
		name   string
		fields model.DetectedFields
		sample string
		edit   model.Edit
		want   int
	}{
		{
			name:   "doc type match",
			fields: model.DetectedFields{DocType: "DividendStatement"},
			edit:   model.Edit{Fields: model.DetectedFields{DocType: "dividendstatement"}},
			want:   scoreSameDocType,
		},
		{
			name:   "issuer exact beats fuzzy",
			fields: model.DetectedFields{Issuer: "Computershare"},
			edit:   model.Edit{Fields: model.DetectedFields{Issuer: "computershare"}},
			want:   scoreSameIssuer,
		},
		{
			name:   "word overlap capped",
			fields: model.DetectedFields{},
			sample: "alpha bravo charlie delta echo foxtrot golf",
			edit:   model.Edit{TextSample: "alpha bravo charlie delta echo foxtrot golf"},
			want:   scoreWordCap,
		},
		{
			name:   "stopwords ignored",
			fields: model.DetectedFields{},
			sample: "the and or of with",
			edit:   model.Edit{TextSample: "the and or of with"},
			want:   0,
		},
		{
			name: "no signal",
			edit: model.Edit{Fields: model.DetectedFields{DocType: "TaxStatement"}},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, similarity(tt.fields, sampleWords(tt.sample), tt.edit))
		})
	}
}
