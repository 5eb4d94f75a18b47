package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown            ErrorCode = 1
	ErrCodeInvariantViolation ErrorCode = 2

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInsufficientData     ErrorCode = 106
	ErrCodeInvalidType          ErrorCode = 107
	ErrCodeInvalidPeriod        ErrorCode = 108
	ErrCodeMissingParameter     ErrorCode = 109
	ErrCodeInvalidVersion       ErrorCode = 110
	ErrCodeInvalidThreshold     ErrorCode = 112
	ErrCodeInvalidTimeframe     ErrorCode = 120
	ErrCodeInvalidCapital       ErrorCode = 121
	ErrCodeInvalidRange         ErrorCode = 122
	ErrCodeOutOfOrderData       ErrorCode = 123
	ErrCodeSymbolMismatch       ErrorCode = 124
	ErrCodeInvalidTick          ErrorCode = 125

	// Data/Resource errors (200-299)
	ErrCodeDataNotFound          ErrorCode = 200
	ErrCodeDataSourceUnavailable ErrorCode = 201
	ErrCodeQueryFailed           ErrorCode = 202
	ErrCodeNoDataFound           ErrorCode = 204
	ErrCodeWriteFailed           ErrorCode = 205

	// Indicator errors (300-399)
	ErrCodeIndicatorCalculation ErrorCode = 302

	// Strategy errors (400-499)
	ErrCodeStrategyConfigError ErrorCode = 401
	ErrCodeUnsupportedStrategy ErrorCode = 403
	ErrCodeVersionMismatch     ErrorCode = 404

	// Backtest errors (600-699)
	ErrCodeBacktestConfigError ErrorCode = 602
	ErrCodeBacktestCancelled   ErrorCode = 609

	// Sweep errors (650-699)
	ErrCodeSweepCancelled ErrorCode = 650
	ErrCodeSweepNoAxes    ErrorCode = 651

	// Simulator errors (900-999)
	ErrCodeSessionNotFound ErrorCode = 900
)
