// Package model defines the core domain types shared across the engine.
package model

// DocType identifies a supported financial document category.
type DocType string

// Document type constants, in default rule order.
const (
	DocTypeDividendStatement            DocType = "DividendStatement"
	DocTypeDistributionStatement        DocType = "DistributionStatement"
	DocTypeCallAndDistributionStatement DocType = "CallAndDistributionStatement"
	DocTypePeriodicStatement            DocType = "PeriodicStatement"
	DocTypeBankStatement                DocType = "BankStatement"
	DocTypeBuyContract                  DocType = "BuyContract"
	DocTypeSellContract                 DocType = "SellContract"
	DocTypeHoldingStatement             DocType = "HoldingStatement"
	DocTypeTaxStatement                 DocType = "TaxStatement"
	DocTypeNetAssetSummaryStatement     DocType = "NetAssetSummaryStatement"
)

// allDocTypes lists every known type in canonical order.
var allDocTypes = []DocType{
	DocTypeDividendStatement,
	DocTypeDistributionStatement,
	DocTypeCallAndDistributionStatement,
	DocTypePeriodicStatement,
	DocTypeBankStatement,
	DocTypeBuyContract,
	DocTypeSellContract,
	DocTypeHoldingStatement,
	DocTypeTaxStatement,
	DocTypeNetAssetSummaryStatement,
}

// displayNames maps each known type to its filename segment. The call and
// distribution statement renders under its longer conventional name.
var displayNames = map[DocType]string{
	DocTypeDividendStatement:            "DividendStatement",
	DocTypeDistributionStatement:        "DistributionStatement",
	DocTypeCallAndDistributionStatement: "DistributionAndCapitalCallStatement",
	DocTypePeriodicStatement:            "PeriodicStatement",
	DocTypeBankStatement:                "BankStatement",
	DocTypeBuyContract:                  "BuyContract",
	DocTypeSellContract:                 "SellContract",
	DocTypeHoldingStatement:             "HoldingStatement",
	DocTypeTaxStatement:                 "TaxStatement",
	DocTypeNetAssetSummaryStatement:     "NetAssetSummaryStatement",
}

// AllDocTypes returns the known document types in canonical order.
func AllDocTypes() []DocType {
	out := make([]DocType, len(allDocTypes))
	copy(out, allDocTypes)
	return out
}

// ParseDocType converts a string to a known DocType.
func ParseDocType(s string) (DocType, bool) {
	dt := DocType(s)
	if dt.Known() {
		return dt, true
	}
	return "", false
}

// DocTypeFromDisplay resolves a filename segment back to its DocType.
func DocTypeFromDisplay(display string) (DocType, bool) {
	for _, dt := range allDocTypes {
		if displayNames[dt] == display {
			return dt, true
		}
	}
	return "", false
}

// Known reports whether the type is one of the built-in document types.
func (d DocType) Known() bool {
	_, ok := displayNames[d]
	return ok
}

// Display returns the filename segment for a known type, or "" when the
// type is not one of the built-in values. Callers rendering free-form type
// names derive their own segment.
func (d DocType) Display() string {
	return displayNames[d]
}

func (d DocType) String() string {
	return string(d)
}
