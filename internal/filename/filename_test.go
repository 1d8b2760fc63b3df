package filename

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/markma27/pdfsaver/internal/common"
	"github.com/markma27/pdfsaver/internal/model"
)

func TestParsePolicy(t *testing.T) {
	for input, want := range map[string]Policy{
		"":           PolicyTitleCase,
		"titlecase":  PolicyTitleCase,
		" TitleCase": PolicyTitleCase,
		"slug":       PolicySlug,
		"SLUG":       PolicySlug,
	} {
		got, err := ParsePolicy(input)
		assert.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParsePolicy("kebab")
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name   string
		fields model.DetectedFields
		want   string
	}{
		{
			name:   "all fields null",
			fields: model.DetectedFields{},
			want:   "YYYY-MM-DD_Unknown_Unknown.pdf",
		},
		{
			name: "full dividend statement",
			fields: model.DetectedFields{
				DocType: "DividendStatement",
				Issuer:  "Computershare",
				DateISO: "2024-05-15",
			},
			want: "2024-05-15_Computershare_DividendStatement.pdf",
		},
		{
			name: "issuer suffix stripped",
			fields: model.DetectedFields{
				DocType: "HoldingStatement",
				Issuer:  "Computershare Limited",
				DateISO: "2024-06-30",
			},
			want: "2024-06-30_Computershare_HoldingStatement.pdf",
		},
		{
			name: "multi word issuer collapses",
			fields: model.DetectedFields{
				DocType: "DistributionStatement",
				Issuer:  "Link Market Services",
				DateISO: "2025-01-02",
			},
			want: "2025-01-02_LinkMarketServices_DistributionStatement.pdf",
		},
		{
			name: "call and distribution display name",
			fields: model.DetectedFields{
				DocType: "CallAndDistributionStatement",
				Issuer:  "Anacacia Capital",
				DateISO: "2025-03-31",
			},
			want: "2025-03-31_AnacaciaCapital_DistributionAndCapitalCallStatement.pdf",
		},
		{
			name: "buy contract without issuer",
			fields: model.DetectedFields{
				DocType: "BuyContract",
				DateISO: "2025-07-02",
			},
			want: "2025-07-02_Unknown_BuyContract.pdf",
		},
		{
			name: "missing date uses placeholder",
			fields: model.DetectedFields{
				DocType: "BankStatement",
				Issuer:  "nabtrade",
			},
			want: "YYYY-MM-DD_Nabtrade_BankStatement.pdf",
		},
		{
			name: "unknown type strips suffix and title cases",
			fields: model.DetectedFields{
				DocType: "margin lending Statement",
				DateISO: "2024-01-01",
			},
			want: "2024-01-01_Unknown_MarginLending.pdf",
		},
		{
			name: "account is never part of the name",
			fields: model.DetectedFields{
				DocType:      "DividendStatement",
				Issuer:       "Vanguard",
				DateISO:      "2024-02-03",
				AccountLast4: "1234",
			},
			want: "2024-02-03_Vanguard_DividendStatement.pdf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Build(tt.fields))
		})
	}
}

func TestBuildIdempotent(t *testing.T) {
	fields := model.DetectedFields{
		DocType: "SellContract",
		Issuer:  "CMC Markets",
		DateISO: "2025-04-10",
	}
	assert.Equal(t, Build(fields), Build(fields))
}

func TestBuildSlugPolicy(t *testing.T) {
	b := Builder{Policy: PolicySlug}

	tests := []struct {
		name   string
		fields model.DetectedFields
		want   string
	}{
		{
			name:   "all fields null",
			fields: model.DetectedFields{},
			want:   "YYYY-MM-DD_unknown_unknown.pdf",
		},
		{
			name: "account appended when present",
			fields: model.DetectedFields{
				DocType:      "DistributionStatement",
				Issuer:       "Link Market Services",
				DateISO:      "2025-01-02",
				AccountLast4: "5678",
			},
			want: "2025-01-02_link-market-services_distribution-statement_5678.pdf",
		},
		{
			name: "display name drives the slug",
			fields: model.DetectedFields{
				DocType: "CallAndDistributionStatement",
				DateISO: "2025-03-31",
			},
			want: "2025-03-31_unknown_distribution-and-capital-call-statement.pdf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, b.Build(tt.fields))
		})
	}
}

func TestTitleCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "Unknown"},
		{"Computershare", "Computershare"},
		{"Computershare Limited", "Computershare"},
		{"Anacacia Capital Pty Ltd", "AnacaciaCapital"},
		{"Anacacia Capital Pty. Ltd.", "AnacaciaCapital"},
		{"link market services", "LinkMarketServices"},
		{"bell-potter", "BellPotter"},
		{"J.P. Morgan & Co", "JpMorganCo"},
		{"nabtrade", "Nabtrade"},
		{"Ltd", "Unknown"},
		{"...", "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, TitleCase(tt.in))
		})
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "unknown"},
		{"Computershare Limited", "computershare"},
		{"Link Market Services", "link-market-services"},
		{"Bell  Potter -- Securities", "bell-potter-securities"},
		{"Ltd", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}
