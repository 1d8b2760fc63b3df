package pipeline

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
)

// reportRow is the flattened CSV form of one processing result.
type reportRow struct {
	Source       string `csv:"source"`
	NewName      string `csv:"new_name"`
	DocType      string `csv:"doc_type"`
	Issuer       string `csv:"issuer"`
	Date         string `csv:"date"`
	AccountLast4 string `csv:"account_last4"`
	ASXCode      string `csv:"asx_code"`
	Confidence   int    `csv:"confidence"`
	NeedsReview  bool   `csv:"needs_review"`
	Error        string `csv:"error"`
}

// WriteReport writes the batch results as CSV, one row per input file in
// batch order.
func WriteReport(w io.Writer, results []Result) error {
	rows := make([]reportRow, 0, len(results))
	for _, r := range results {
		row := reportRow{
			Source:       r.Path,
			NewName:      r.NewName,
			DocType:      r.Classification.Fields.DocType,
			Issuer:       r.Classification.Fields.Issuer,
			Date:         r.Classification.Fields.DateISO,
			AccountLast4: r.Classification.Fields.AccountLast4,
			ASXCode:      r.Classification.Fields.ASXCode,
			Confidence:   r.Classification.Confidence,
			NeedsReview:  r.Classification.NeedsReview,
		}
		if r.Err != nil {
			row.Error = r.Err.Error()
		}
		rows = append(rows, row)
	}

	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
