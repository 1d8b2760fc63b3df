package model

import "time"

// MaxEditTextSample caps the stored document text excerpt per edit.
const MaxEditTextSample = 500

// Edit records a user correction to a suggested filename. Stored edits feed
// similarity lookups so repeated corrections surface as examples.
type Edit struct {
	CreatedAt        time.Time      `json:"created_at"`
	OriginalFilename string         `json:"original_filename"`
	EditedFilename   string         `json:"edited_filename"`
	TextSample       string         `json:"text_sample,omitempty"`
	Fields           DetectedFields `json:"fields"`
	ID               int64          `json:"id"`
}
