package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInsufficientData     ErrorCode = 102
	ErrCodeInvalidType          ErrorCode = 103
	ErrCodeInvalidPeriod        ErrorCode = 104
	ErrCodeMissingParameter     ErrorCode = 105
	ErrCodeInvalidThreshold     ErrorCode = 106
	ErrCodeInvalidMultiplier    ErrorCode = 107

	// Data/Series errors (200-299)
	ErrCodeDataNotFound    ErrorCode = 200
	ErrCodeEmptySeries     ErrorCode = 201
	ErrCodeUnorderedSeries ErrorCode = 202
	ErrCodeInvalidBar      ErrorCode = 203

	// Indicator errors (300-399)
	ErrCodeIndicatorNotFound      ErrorCode = 300
	ErrCodeIndicatorAlreadyExists ErrorCode = 301
	ErrCodeIndicatorCalculation   ErrorCode = 302

	// Strategy errors (400-499)
	ErrCodeStrategyConfigError  ErrorCode = 400
	ErrCodeStrategyRuntimeError ErrorCode = 401
	ErrCodeUnsupportedStrategy  ErrorCode = 402

	// Market state errors (500-599)
	ErrCodeInvalidMarketState ErrorCode = 500
	ErrCodeCrossedBook        ErrorCode = 501
	ErrCodeStaleSnapshot      ErrorCode = 502

	// Position errors (600-699)
	ErrCodePositionNotFound ErrorCode = 600
	ErrCodeInvalidFill      ErrorCode = 601
)
