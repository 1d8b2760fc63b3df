package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDocType(t *testing.T) {
	dt, ok := ParseDocType("DividendStatement")
	assert.True(t, ok)
	assert.Equal(t, DocTypeDividendStatement, dt)

	_, ok = ParseDocType("Invoice")
	assert.False(t, ok)
}

func TestDisplayRoundTrip(t *testing.T) {
	for _, dt := range AllDocTypes() {
		got, ok := DocTypeFromDisplay(dt.Display())
		assert.True(t, ok, dt)
		assert.Equal(t, dt, got)
	}

	assert.Equal(t, "DistributionAndCapitalCallStatement", DocTypeCallAndDistributionStatement.Display())
	assert.Empty(t, DocType("Invoice").Display())

	_, ok := DocTypeFromDisplay("Invoice")
	assert.False(t, ok)
}
