package device

import "errors"

// ErrPackageNotFound is returned by a PackageManager when the requested
// package is not installed or not visible to the caller.
var ErrPackageNotFound = errors.New("package not found")

// Host is the host application environment. Native wrappers implement it
// on top of the platform's service locators; nothing here reimplements them.
//
// Lookups that can be absent report it through a bool or an error instead
// of a nil value, so callers never have to guess.
type Host interface {
	// OSVersion is the host-reported release version (e.g., "14").
	OSVersion() string

	// Model is the hardware model identifier (e.g., "Pixel 8").
	Model() string

	// WindowManager returns the window-management service, if available.
	WindowManager() (WindowManager, bool)

	// DisplayDensity is the DPI bucket reported by the resource configuration.
	DisplayDensity() int

	// Telephony returns the telephony service, if available.
	Telephony() (Telephony, bool)

	// Locale is the active default locale.
	Locale() Locale

	// PackageName is the name of the running application package.
	PackageName() string

	// Packages returns the package-info service.
	Packages() PackageManager
}

// WindowManager exposes the displays known to the window-management service.
type WindowManager interface {
	DefaultDisplay() (Display, bool)
}

// Display is a single physical or virtual display.
type Display interface {
	Metrics() DisplayMetrics
}

// DisplayMetrics holds the pixel dimensions of a display.
type DisplayMetrics struct {
	WidthPixels  int
	HeightPixels int
}

// Telephony exposes the telephony service. NetworkOperatorName reports
// false when the platform returned no value at all.
type Telephony interface {
	NetworkOperatorName() (string, bool)
}

// PackageManager resolves metadata about installed packages.
// Implementations return ErrPackageNotFound (possibly wrapped) for unknown packages.
type PackageManager interface {
	VersionName(packageName string) (string, error)
	InstallerPackageName(packageName string) (string, error)
}
