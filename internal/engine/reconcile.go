package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/markma27/pdfsaver/internal/classify"
	"github.com/markma27/pdfsaver/internal/model"
)

// ruleOverrideScore is the type-phase score at which rule-derived keyword
// evidence overrides a disagreeing external type guess.
const ruleOverrideScore = 80

// labelPriorityTypes are the document types whose dates come from
// label-priority extraction (Payment Date over Record Date and so on); for
// these the rule-derived date outranks an externally supplied one.
var labelPriorityTypes = map[string]bool{
	string(model.DocTypeDividendStatement):            true,
	string(model.DocTypeDistributionStatement):        true,
	string(model.DocTypeCallAndDistributionStatement): true,
	string(model.DocTypeNetAssetSummaryStatement):     true,
}

// Reconcile merges fields supplied by an external extractor with the
// rule-based phases run over the same text, and rescores the merged result.
// External values generally win, except where keyword evidence is strong
// enough to correct them.
func (e *Engine) Reconcile(ctx context.Context, text string, ext model.DetectedFields) model.ClassificationResult {
	ruled := e.Classify(ctx, text)

	merged := ext
	typeConfidence := 0

	switch {
	case merged.DocType == "":
		merged.DocType = ruled.Fields.DocType
		typeConfidence = ruled.TypeConfidence
	case merged.DocType != ruled.Fields.DocType && ruled.TypeConfidence >= ruleOverrideScore:
		slog.Debug("rule evidence overrides external doc type",
			"external", merged.DocType,
			"ruled", ruled.Fields.DocType,
			"score", ruled.TypeConfidence)
		merged.DocType = ruled.Fields.DocType
		typeConfidence = ruled.TypeConfidence
	case merged.DocType == ruled.Fields.DocType:
		typeConfidence = ruled.TypeConfidence
	default:
		// External type kept; grant it the strong-match tier so a
		// confirmed external classification is not penalized.
		typeConfidence = ruleOverrideScore
	}

	if merged.Issuer == "" {
		merged.Issuer = ruled.Fields.Issuer
	}
	if merged.Issuer == "" && isContractType(merged.DocType) {
		runPhase("security_name", func() string {
			merged.Issuer = classify.ExtractSecurityName(text)
			return merged.Issuer
		})
	}

	if ruled.Fields.DateISO != "" && shouldPreferRuledDate(merged.DocType, merged.DateISO) {
		merged.DateISO = ruled.Fields.DateISO
	}

	if merged.AccountLast4 == "" {
		merged.AccountLast4 = ruled.Fields.AccountLast4
	}
	if merged.ASXCode == "" {
		merged.ASXCode = ruled.Fields.ASXCode
	}

	return assemble(merged, typeConfidence)
}

func isContractType(docType string) bool {
	return docType == string(model.DocTypeBuyContract) || docType == string(model.DocTypeSellContract)
}

// shouldPreferRuledDate reports whether a rule-derived date should replace
// the external one: when the external date is missing or malformed, or the
// document type dates by label priority.
func shouldPreferRuledDate(docType, extDate string) bool {
	if extDate == "" || !validISODate(extDate) {
		return true
	}
	return labelPriorityTypes[docType]
}

func validISODate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}
