package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/markma27/pdfsaver/internal/common"
	"github.com/markma27/pdfsaver/internal/model"
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return fmt.Errorf("%w: nil context", common.ErrInvalidInput)
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s cannot be empty", common.ErrInvalidInput, paramName)
	}
	return nil
}

// validateEdit ensures an edit record is storable.
func validateEdit(edit *model.Edit) error {
	if edit == nil {
		return fmt.Errorf("%w: nil edit", common.ErrInvalidInput)
	}
	if err := validateString(edit.OriginalFilename, "original filename"); err != nil {
		return err
	}
	if err := validateString(edit.EditedFilename, "edited filename"); err != nil {
		return err
	}
	return nil
}
