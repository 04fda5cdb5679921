// Package mobile provides the Go core of the devinfo mobile SDK.
//
// This package is designed to be compiled with gomobile bind to produce
// .xcframework (iOS) and .aar (Android) libraries. All exported functions
// use only gomobile-compatible types: string, int, int32, int64, float32,
// float64, bool, and error.
//
// The native wrapper registers a PlatformHost with SetPlatform; every getter
// then queries it. Getters never fail: when the SDK is not initialized or
// the platform cannot answer, they return the same empty or default values
// the collector documents and report the problem through ErrorCallback.
package mobile

import (
	"log/slog"
	"sync"

	"github.com/SebastienMelki/devinfo/internal/device"
)

// SDKVersion is the current version of the mobile SDK.
const SDKVersion = "1.0.0"

// sdkInstance is the package-level singleton.
var (
	sdkMu    sync.RWMutex
	instance *sdk
	platform PlatformHost
)

// sdk holds the initialized SDK state.
type sdk struct {
	config *Config
}

// Init initializes the SDK with a JSON configuration string.
// Returns empty string on success, or an error message on failure.
// Calling Init again replaces the configuration.
//
// Example config JSON:
//
//	{"default_app_version": "0.0.0", "include_store": true}
func Init(configJSON string) string {
	cfg, err := configFromJSON(configJSON)
	if err != nil {
		sdkErr := newFatalError(ErrCodeInvalidConfig, err.Error())
		reportError(sdkErr)
		return sdkErr.Error()
	}

	sdkMu.Lock()
	instance = &sdk{config: cfg}
	sdkMu.Unlock()

	setDebugLevel(cfg.DebugMode)
	logger.Debug("SDK initialized",
		"sdk_version", SDKVersion,
		"default_app_version", cfg.DefaultAppVersion,
		"include_store", cfg.IncludeStore,
	)

	return ""
}

// SetPlatform registers the native platform implementation. Passing nil
// unregisters it.
func SetPlatform(p PlatformHost) {
	sdkMu.Lock()
	platform = p
	sdkMu.Unlock()

	logger.Debug("platform registered", "present", p != nil)
}

// IsInitialized returns true if the SDK has been initialized.
func IsInitialized() bool {
	sdkMu.RLock()
	defer sdkMu.RUnlock()
	return instance != nil
}

// SetDebugMode toggles debug logging at runtime.
func SetDebugMode(enabled bool) {
	sdkMu.Lock()
	if instance != nil {
		instance.config.DebugMode = enabled
	}
	sdkMu.Unlock()

	setDebugLevel(enabled)
}

// GetOS returns the platform family name.
func GetOS() string {
	return device.OSName
}

// GetOSVersion returns the OS release version, or "" if unavailable.
func GetOSVersion() string {
	return collector().OSVersion()
}

// GetDevice returns the hardware model, or "" if unavailable.
func GetDevice() string {
	return collector().Device()
}

// GetResolution returns "WIDTHxHEIGHT" for the default display, or "".
func GetResolution() string {
	return collector().Resolution()
}

// GetDensity returns the display-density label, or "".
func GetDensity() string {
	return collector().Density()
}

// GetCarrier returns the network operator name, or "".
func GetCarrier() string {
	return collector().Carrier()
}

// GetLocale returns the default locale as "language_COUNTRY".
func GetLocale() string {
	return collector().Locale()
}

// GetAppVersion returns the installed app version, or the configured default.
func GetAppVersion() string {
	return collector().AppVersion()
}

// GetStore returns the installer store package name, or "".
func GetStore() string {
	return collector().Store()
}

// GetMetrics returns the percent-encoded JSON metrics string for a beacon.
func GetMetrics() string {
	return collector().Metrics()
}

// GetSnapshotJSON returns a fresh snapshot as plain JSON, for debugging and
// for wrappers that build their own payloads.
func GetSnapshotJSON() string {
	data, err := device.MarshalSnapshot(collector().Snapshot())
	if err != nil {
		reportError(newCriticalError(ErrCodeEncodeFailed, err.Error()))
		return "{}"
	}
	return string(data)
}

// collector returns a DeviceInfo for the current platform and config.
// Before Init or SetPlatform it answers from a host where every service
// is absent.
func collector() *device.DeviceInfo {
	sdkMu.RLock()
	inst, p := instance, platform
	sdkMu.RUnlock()

	var opts []device.Option
	if inst == nil {
		reportError(newFatalError(ErrCodeNotInitialized, "SDK not initialized: call Init() first"))
	} else {
		opts = inst.config.options()
	}

	var host device.Host = absentHost{}
	if p == nil {
		reportError(newCriticalError(ErrCodeNoPlatform, "no platform registered: call SetPlatform() first"))
	} else {
		host = platformHost{p: p}
	}

	return device.New(host, logger, opts...)
}

func setDebugLevel(enabled bool) {
	if enabled {
		logLevel.Set(slog.LevelDebug)
	} else {
		logLevel.Set(slog.LevelWarn)
	}
}

// resetForTesting resets the SDK state for unit tests.
// This is not exported and not available via gomobile.
func resetForTesting() {
	sdkMu.Lock()
	instance = nil
	platform = nil
	sdkMu.Unlock()
	setDebugLevel(false)
}

