package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/markma27/pdfsaver/internal/rules"
)

func defaultRules(t *testing.T) *rules.Compiled {
	t.Helper()
	return rules.Compile(rules.DefaultSet())
}

func TestScoreTypes(t *testing.T) {
	rs := defaultRules(t)

	tests := []struct {
		name     string
		text     string
		wantType string
		wantMin  int
	}{
		{
			name:     "dividend statement with hints",
			text:     "Dividend Statement\nRecord Date: 02/05/2024\nPayment Date: 15/05/2024",
			wantType: "DividendStatement",
			wantMin:  80,
		},
		{
			name:     "buy contract note",
			text:     "CONTRACT NOTE BUY CONFIRMATION We have bought 100 units Confirmation Date 02 July 2025",
			wantType: "BuyContract",
			wantMin:  80,
		},
		{
			name:     "periodic statement",
			text:     "Periodic Statement for the quarter\nUnit Balance: 1,200\nRedemption Price: $1.52",
			wantType: "PeriodicStatement",
			wantMin:  80,
		},
		{
			name:     "tax statement",
			text:     "Annual Tax Statement\nTax Year: 2024\nAssessable Income",
			wantType: "TaxStatement",
			wantMin:  80,
		},
		{
			name:     "hints only scores low",
			text:     "Distribution Rate and Holding Balance for your records",
			wantType: "DistributionStatement",
			wantMin:  30,
		},
		{
			name:     "empty text",
			text:     "",
			wantType: "",
		},
		{
			name:     "whitespace only",
			text:     "   \n\t  ",
			wantType: "",
		},
		{
			name:     "no keyword matches",
			text:     "completely unrelated grocery list: apples, flour, sugar",
			wantType: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docType, confidence := ScoreTypes(tt.text, rs)
			assert.Equal(t, tt.wantType, docType)
			if tt.wantType == "" {
				assert.Zero(t, confidence)
			} else {
				assert.GreaterOrEqual(t, confidence, tt.wantMin)
			}
		})
	}
}

func TestScoreTypesExcludeWins(t *testing.T) {
	rs := rules.Compile(rules.Set{
		Types: []rules.TypeRule{
			{
				Type:    "DistributionStatement",
				Must:    []string{"Distribution Statement"},
				Hints:   []string{"Payment Date"},
				Exclude: []string{"CONTRACT NOTE"},
			},
		},
	})

	// Must keywords all present, but the exclude keyword disqualifies the
	// type outright.
	docType, confidence := ScoreTypes("Distribution Statement CONTRACT NOTE Payment Date: 01/02/2025", rs)
	assert.Empty(t, docType)
	assert.Zero(t, confidence)

	docType, confidence = ScoreTypes("Distribution Statement Payment Date: 01/02/2025", rs)
	assert.Equal(t, "DistributionStatement", docType)
	assert.Equal(t, 85, confidence)
}

func TestScoreTypesRequireAny(t *testing.T) {
	rs := rules.Compile(rules.Set{
		Types: []rules.TypeRule{
			{
				Type:       "BuyContract",
				Must:       []string{"CONTRACT NOTE"},
				RequireAny: []string{"BUY", "We have bought"},
			},
		},
	})

	docType, _ := ScoreTypes("CONTRACT NOTE for your sale", rs)
	assert.Empty(t, docType, "requireAny unsatisfied must disqualify")

	docType, confidence := ScoreTypes("CONTRACT NOTE we have bought shares", rs)
	assert.Equal(t, "BuyContract", docType)
	assert.Equal(t, 80, confidence)
}

func TestScoreTypesTieKeepsEarliest(t *testing.T) {
	rs := rules.Compile(rules.Set{
		Types: []rules.TypeRule{
			{Type: "First", Must: []string{"SHARED KEYWORD"}},
			{Type: "Second", Must: []string{"SHARED KEYWORD"}},
		},
	})

	docType, confidence := ScoreTypes("shared keyword appears once", rs)
	assert.Equal(t, "First", docType)
	assert.Equal(t, 80, confidence)
}

func TestScoreTypesTiers(t *testing.T) {
	rs := rules.Compile(rules.Set{
		Types: []rules.TypeRule{
			{
				Type:  "TwoMust",
				Must:  []string{"ALPHA", "BRAVO"},
				Hints: []string{"CHARLIE", "DELTA"},
			},
		},
	})

	tests := []struct {
		name string
		text string
		want int
	}{
		{"all must no hints", "alpha bravo", 80},
		{"all must one hint", "alpha bravo charlie", 85},
		{"partial must", "alpha only", 50},
		{"partial must with hints", "alpha charlie delta", 60},
		{"hints only", "charlie delta", 40},
		{"nothing", "echo foxtrot", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, confidence := ScoreTypes(tt.text, rs)
			assert.Equal(t, tt.want, confidence)
		})
	}
}
