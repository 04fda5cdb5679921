// Package device collects device metadata from the host application
// environment and encodes it for analytics beacons.
//
// The host is reached only through the Host interface. Every accessor is a
// total function: when the host cannot answer, a documented empty or default
// value is substituted and the caller never sees an error.
package device

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"
)

// OSName identifies the platform family.
const OSName = "Android"

// DefaultAppVersion is returned when the installed package cannot be resolved.
const DefaultAppVersion = "1.0"

// Reasons a host query fell back to a default.
var (
	ErrServiceUnavailable = errors.New("host service unavailable")
	ErrNoDefaultDisplay   = errors.New("no default display")
	ErrValueAbsent        = errors.New("host returned no value")
	ErrUnknownDensity     = errors.New("unrecognized density bucket")
)

// Info is the set of device metadata queries.
type Info interface {
	OS() string
	OSVersion() string
	Device() string
	Resolution() string
	Density() string
	Carrier() string
	Locale() string
	AppVersion() string
	Store() string
	Snapshot() Snapshot
	Metrics() string
}

// DeviceInfo answers Info queries against a Host. It holds no mutable state
// and is safe for concurrent use if the Host is.
type DeviceInfo struct {
	host              Host
	logger            *slog.Logger
	recorder          Recorder
	defaultAppVersion string
	includeStore      bool
}

var _ Info = (*DeviceInfo)(nil)

// Option configures a DeviceInfo.
type Option func(*DeviceInfo)

// WithDefaultAppVersion overrides the version reported when the package
// lookup fails. An empty version is ignored.
func WithDefaultAppVersion(version string) Option {
	return func(d *DeviceInfo) {
		if version != "" {
			d.defaultAppVersion = version
		}
	}
}

// WithStore adds the installer store to snapshots and metrics.
func WithStore(enabled bool) Option {
	return func(d *DeviceInfo) {
		d.includeStore = enabled
	}
}

// WithRecorder sets the instrumentation sink.
func WithRecorder(r Recorder) Option {
	return func(d *DeviceInfo) {
		if r != nil {
			d.recorder = r
		}
	}
}

// New creates a DeviceInfo for host. A nil logger discards log output.
func New(host Host, logger *slog.Logger, opts ...Option) *DeviceInfo {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	d := &DeviceInfo{
		host:              host,
		logger:            logger,
		recorder:          nopRecorder{},
		defaultAppVersion: DefaultAppVersion,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// OS returns the platform family name.
func (d *DeviceInfo) OS() string {
	return OSName
}

// OSVersion returns the host-reported release version.
func (d *DeviceInfo) OSVersion() string {
	return d.host.OSVersion()
}

// Device returns the hardware model identifier.
func (d *DeviceInfo) Device() string {
	return d.host.Model()
}

// Resolution returns the default display size as "WIDTHxHEIGHT" in pixels,
// or "" when the window manager or its default display is unavailable.
func (d *DeviceInfo) Resolution() string {
	wm, ok := d.host.WindowManager()
	if !ok || wm == nil {
		return d.fallback(FieldResolution, fmt.Errorf("window manager: %w", ErrServiceUnavailable), "")
	}
	display, ok := wm.DefaultDisplay()
	if !ok || display == nil {
		return d.fallback(FieldResolution, ErrNoDefaultDisplay, "")
	}
	m := display.Metrics()
	return strconv.Itoa(m.WidthPixels) + "x" + strconv.Itoa(m.HeightPixels)
}

// Density returns the display-density label for the host DPI bucket.
func (d *DeviceInfo) Density() string {
	dpi := d.host.DisplayDensity()
	label := DensityLabel(dpi)
	if label == "" {
		return d.fallback(FieldDensity, fmt.Errorf("%w: %d", ErrUnknownDensity, dpi), "")
	}
	return label
}

// Carrier returns the network operator display name, or "" when telephony
// is unavailable or the operator name is missing or empty.
func (d *DeviceInfo) Carrier() string {
	tm, ok := d.host.Telephony()
	if !ok || tm == nil {
		return d.fallback(FieldCarrier, fmt.Errorf("telephony: %w", ErrServiceUnavailable), "")
	}
	name, ok := tm.NetworkOperatorName()
	if !ok || name == "" {
		return d.fallback(FieldCarrier, fmt.Errorf("operator name: %w", ErrValueAbsent), "")
	}
	return name
}

// Locale returns the default locale as "language_COUNTRY".
func (d *DeviceInfo) Locale() string {
	return d.host.Locale().String()
}

// AppVersion returns the installed package's version name as reported,
// which may be empty, or the default version when the package cannot be
// resolved.
func (d *DeviceInfo) AppVersion() string {
	pm := d.host.Packages()
	if pm == nil {
		return d.fallback(FieldAppVersion, fmt.Errorf("package manager: %w", ErrServiceUnavailable), d.defaultAppVersion)
	}
	pkg := d.host.PackageName()
	name, err := pm.VersionName(pkg)
	if err != nil {
		return d.fallback(FieldAppVersion, fmt.Errorf("version of %s: %w", pkg, err), d.defaultAppVersion)
	}
	return name
}

// Store returns the package name of the store that installed the app,
// or "" when it is unknown.
func (d *DeviceInfo) Store() string {
	pm := d.host.Packages()
	if pm == nil {
		return d.fallback(FieldStore, fmt.Errorf("package manager: %w", ErrServiceUnavailable), "")
	}
	pkg := d.host.PackageName()
	installer, err := pm.InstallerPackageName(pkg)
	if err != nil {
		return d.fallback(FieldStore, fmt.Errorf("installer of %s: %w", pkg, err), "")
	}
	if installer == "" {
		return d.fallback(FieldStore, fmt.Errorf("installer of %s: %w", pkg, ErrValueAbsent), "")
	}
	return installer
}

// Snapshot reads every field from the host.
func (d *DeviceInfo) Snapshot() Snapshot {
	start := time.Now()

	s := Snapshot{
		Device:     d.Device(),
		OS:         d.OS(),
		OSVersion:  d.OSVersion(),
		Carrier:    d.Carrier(),
		Resolution: d.Resolution(),
		Density:    d.Density(),
		Locale:     d.Locale(),
		AppVersion: d.AppVersion(),
	}
	if d.includeStore {
		s.Store = d.Store()
	}

	d.recorder.RecordSnapshot(time.Since(start))
	return s
}

// Metrics returns the percent-encoded JSON summary of a fresh snapshot.
// It returns "" only if encoding fails, which string fields cannot cause.
func (d *DeviceInfo) Metrics() string {
	encoded, err := EncodeMetrics(d.Snapshot())
	if err != nil {
		d.logger.Error("failed to encode metrics", "error", err)
		return ""
	}
	return encoded
}

// fallback records that field could not be read and returns def.
// Expected absences are logged at debug; anything else the host reports is
// logged as a warning.
func (d *DeviceInfo) fallback(field string, reason error, def string) string {
	d.recorder.RecordFallback(field)

	if isExpectedAbsence(reason) {
		d.logger.Debug("device field unavailable, using default",
			"field", field,
			"reason", reason,
			"default", def,
		)
	} else {
		d.logger.Warn("host query failed, using default",
			"field", field,
			"error", reason,
			"default", def,
		)
	}
	return def
}

func isExpectedAbsence(err error) bool {
	return errors.Is(err, ErrPackageNotFound) ||
		errors.Is(err, ErrServiceUnavailable) ||
		errors.Is(err, ErrNoDefaultDisplay) ||
		errors.Is(err, ErrValueAbsent) ||
		errors.Is(err, ErrUnknownDensity)
}
