package config

import "github.com/TFMV/miniofs/pkg/errors"

// Config-specific error codes
var (
	ErrFileReadFailed   = errors.MustNewCode("config.file_read_failed")
	ErrFileParseFailed  = errors.MustNewCode("config.file_parse_failed")
	ErrFileWriteFailed  = errors.MustNewCode("config.file_write_failed")
	ErrValidationFailed = errors.MustNewCode("config.validation_failed")
	ErrLogSetupFailed   = errors.MustNewCode("config.log_setup_failed")
)
