package paths

import "github.com/TFMV/miniofs/pkg/errors"

// Path-specific error codes
var (
	ErrInvalidPath = errors.MustNewCode("paths.invalid_path")
)
