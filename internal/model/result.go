package model

// ReviewThreshold is the confidence score below which a classification is
// flagged for manual review.
const ReviewThreshold = 90

// DetectedFields holds the metadata extracted from one document.
// An empty string means the field could not be determined.
type DetectedFields struct {
	DocType      string `json:"doc_type,omitempty"`
	Issuer       string `json:"issuer,omitempty"`
	DateISO      string `json:"date_iso,omitempty"`
	AccountLast4 string `json:"account_last4,omitempty"`
	ASXCode      string `json:"asx_code,omitempty"`
}

// Empty reports whether no field was detected.
func (f DetectedFields) Empty() bool {
	return f.DocType == "" && f.Issuer == "" && f.DateISO == "" &&
		f.AccountLast4 == "" && f.ASXCode == ""
}

// ClassificationResult is the outcome of classifying one document.
type ClassificationResult struct {
	Fields         DetectedFields `json:"fields"`
	Filename       string         `json:"filename"`
	TypeConfidence int            `json:"type_confidence"`
	Confidence     int            `json:"confidence"`
	NeedsReview    bool           `json:"needs_review"`
	CacheHit       bool           `json:"cache_hit,omitempty"`
}
