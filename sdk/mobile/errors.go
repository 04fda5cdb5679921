package mobile

// ErrorSeverity indicates how critical an error is.
type ErrorSeverity int

const (
	// SeverityDebug is informational, logged in debug mode only.
	SeverityDebug ErrorSeverity = iota
	// SeverityWarning is non-critical, SDK continues operating.
	SeverityWarning
	// SeverityCritical is a serious issue, app should handle.
	SeverityCritical
	// SeverityFatal means the SDK cannot answer until it is reinitialized.
	SeverityFatal
)

// Error codes for categorization.
const (
	ErrCodeNotInitialized = "NOT_INITIALIZED"
	ErrCodeNoPlatform     = "NO_PLATFORM"
	ErrCodeInvalidConfig  = "INVALID_CONFIG"
	ErrCodeInvalidJSON    = "INVALID_JSON"
	ErrCodeEncodeFailed   = "ENCODE_FAILED"
)

// SDKError represents a structured error with severity and code.
type SDKError struct {
	Code     string        `json:"code"`
	Message  string        `json:"message"`
	Severity ErrorSeverity `json:"severity"`
}

// Error implements the error interface.
func (e *SDKError) Error() string {
	return e.Message
}

func newWarningError(code, message string) *SDKError {
	return &SDKError{Code: code, Message: message, Severity: SeverityWarning}
}

func newCriticalError(code, message string) *SDKError {
	return &SDKError{Code: code, Message: message, Severity: SeverityCritical}
}

func newFatalError(code, message string) *SDKError {
	return &SDKError{Code: code, Message: message, Severity: SeverityFatal}
}
