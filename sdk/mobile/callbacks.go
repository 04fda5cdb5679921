package mobile

import (
	"log/slog"
	"strings"
	"sync"
)

// ErrorCallback is invoked when the SDK is misused or given bad input.
// This interface is gomobile-compatible (single method with basic types).
//
// Parameters:
//   - code: Error code (e.g., "NOT_INITIALIZED", "INVALID_JSON")
//   - message: Human-readable error message
//   - severity: 0=debug, 1=warning, 2=critical, 3=fatal
type ErrorCallback interface {
	OnError(code string, message string, severity int)
}

// LogCallback receives formatted SDK log lines. Native wrappers forward them
// to os_log or Logcat.
type LogCallback interface {
	OnLog(line string)
}

var (
	callbacksMu    sync.RWMutex
	errorCallbacks []ErrorCallback
	logCallbacks   []LogCallback
)

// logLevel is raised to debug while debug mode is on.
var logLevel = func() *slog.LevelVar {
	var v slog.LevelVar
	v.Set(slog.LevelWarn)
	return &v
}()

// logger writes through to every registered LogCallback.
var logger = slog.New(slog.NewTextHandler(callbackWriter{}, &slog.HandlerOptions{Level: logLevel}))

// RegisterErrorCallback adds a callback for error notifications.
// Multiple callbacks can be registered; all will be notified.
func RegisterErrorCallback(callback ErrorCallback) {
	if callback == nil {
		return
	}
	callbacksMu.Lock()
	defer callbacksMu.Unlock()
	errorCallbacks = append(errorCallbacks, callback)
}

// RegisterLogCallback adds a sink for SDK log output.
func RegisterLogCallback(callback LogCallback) {
	if callback == nil {
		return
	}
	callbacksMu.Lock()
	defer callbacksMu.Unlock()
	logCallbacks = append(logCallbacks, callback)
}

// UnregisterCallbacks clears all registered error and log callbacks.
func UnregisterCallbacks() {
	callbacksMu.Lock()
	defer callbacksMu.Unlock()
	errorCallbacks = nil
	logCallbacks = nil
}

// notifyErrorCallbacks dispatches err to all registered callbacks.
// Debug severity is never dispatched. Callbacks run on their own goroutine
// so a slow native handler cannot stall a getter.
func notifyErrorCallbacks(err *SDKError) {
	if err == nil || err.Severity < SeverityWarning {
		return
	}

	callbacksMu.RLock()
	callbacks := make([]ErrorCallback, len(errorCallbacks))
	copy(callbacks, errorCallbacks)
	callbacksMu.RUnlock()

	for _, cb := range callbacks {
		go cb.OnError(err.Code, err.Message, int(err.Severity))
	}
}

// reportError logs err and notifies error callbacks.
func reportError(err *SDKError) {
	if err == nil {
		return
	}

	switch err.Severity {
	case SeverityDebug:
		logger.Debug(err.Message, "code", err.Code)
	case SeverityWarning:
		logger.Warn(err.Message, "code", err.Code)
	default:
		logger.Error(err.Message, "code", err.Code)
	}
	notifyErrorCallbacks(err)
}

// callbackWriter is the io.Writer behind logger.
type callbackWriter struct{}

func (callbackWriter) Write(p []byte) (int, error) {
	callbacksMu.RLock()
	callbacks := make([]LogCallback, len(logCallbacks))
	copy(callbacks, logCallbacks)
	callbacksMu.RUnlock()

	line := strings.TrimRight(string(p), "\n")
	for _, cb := range callbacks {
		cb.OnLog(line)
	}
	return len(p), nil
}
