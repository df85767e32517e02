package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter ErrorCode = 100
	ErrCodeInvalidSymbol    ErrorCode = 101
	ErrCodeInvalidTimeframe ErrorCode = 102
	ErrCodeInvalidLimit     ErrorCode = 103

	// Configuration errors (200-299)
	ErrCodeInvalidConfiguration ErrorCode = 200
	ErrCodeConfigReadFailed     ErrorCode = 201
	ErrCodeConfigParseFailed    ErrorCode = 202

	// API errors (300-399)
	ErrCodeRequestFailed      ErrorCode = 300
	ErrCodeUnexpectedStatus   ErrorCode = 301
	ErrCodeResponseDecode     ErrorCode = 302
	ErrCodeSubmissionRejected ErrorCode = 303

	// Strategy errors (400-499)
	ErrCodeStrategyNotConfigured ErrorCode = 400

	// Runner errors (500-599)
	ErrCodeNoBars       ErrorCode = 500
	ErrCodeCycleFailed  ErrorCode = 501
	ErrCodeSubmitFailed ErrorCode = 502
)
