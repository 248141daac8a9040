package analyses

import (
	"fmt"

	"resume-quality/internal/shared/apperr"
)

var (
	ErrEmptyBatch       = fmt.Errorf("%w: documents are required", apperr.ErrValidation)
	ErrDocumentTooLarge = fmt.Errorf("%w: document text is too large", apperr.ErrValidation)
)
