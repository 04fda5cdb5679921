package mobile

import (
	"fmt"
	"strings"

	"github.com/SebastienMelki/devinfo/internal/device"
)

// PlatformHost is implemented by the native wrapper (Kotlin/Swift) on top of
// the platform's window, telephony, package and resource services. It uses
// only gomobile-compatible types; absence is reported through the Has*
// methods instead of null values.
type PlatformHost interface {
	OSVersion() string
	Model() string

	HasWindowManager() bool
	HasDefaultDisplay() bool
	DisplayWidth() int
	DisplayHeight() int
	DensityDPI() int

	HasTelephony() bool
	HasNetworkOperatorName() bool
	NetworkOperatorName() string

	// LocaleTag is the default locale as a BCP 47 or POSIX tag ("en-US", "en_US").
	LocaleTag() string

	PackageName() string
	// VersionName and InstallerPackageName may throw on the native side;
	// gomobile surfaces the exception as a Go error.
	VersionName(packageName string) (string, error)
	InstallerPackageName(packageName string) (string, error)
}

// platformHost adapts a PlatformHost to device.Host.
type platformHost struct {
	p PlatformHost
}

var _ device.Host = platformHost{}

func (h platformHost) OSVersion() string   { return h.p.OSVersion() }
func (h platformHost) Model() string       { return h.p.Model() }
func (h platformHost) DisplayDensity() int { return h.p.DensityDPI() }
func (h platformHost) PackageName() string { return h.p.PackageName() }

func (h platformHost) Locale() device.Locale {
	return device.ParseLocale(h.p.LocaleTag())
}

func (h platformHost) WindowManager() (device.WindowManager, bool) {
	if !h.p.HasWindowManager() {
		return nil, false
	}
	return h, true
}

func (h platformHost) DefaultDisplay() (device.Display, bool) {
	if !h.p.HasDefaultDisplay() {
		return nil, false
	}
	return h, true
}

func (h platformHost) Metrics() device.DisplayMetrics {
	return device.DisplayMetrics{WidthPixels: h.p.DisplayWidth(), HeightPixels: h.p.DisplayHeight()}
}

func (h platformHost) Telephony() (device.Telephony, bool) {
	if !h.p.HasTelephony() {
		return nil, false
	}
	return h, true
}

func (h platformHost) NetworkOperatorName() (string, bool) {
	if !h.p.HasNetworkOperatorName() {
		return "", false
	}
	return h.p.NetworkOperatorName(), true
}

func (h platformHost) Packages() device.PackageManager {
	return h
}

func (h platformHost) VersionName(pkg string) (string, error) {
	v, err := h.p.VersionName(pkg)
	return v, nativeError(err)
}

func (h platformHost) InstallerPackageName(pkg string) (string, error) {
	v, err := h.p.InstallerPackageName(pkg)
	return v, nativeError(err)
}

// nativeError maps the platform's not-found exceptions onto
// device.ErrPackageNotFound.
func nativeError(err error) error {
	if err == nil {
		return nil
	}
	if strings.Contains(err.Error(), "NameNotFound") {
		return fmt.Errorf("%w: %v", device.ErrPackageNotFound, err)
	}
	return err
}

// absentHost answers every query as unavailable. It stands in for the
// platform before SetPlatform is called.
type absentHost struct{}

func (absentHost) OSVersion() string                           { return "" }
func (absentHost) Model() string                               { return "" }
func (absentHost) WindowManager() (device.WindowManager, bool) { return nil, false }
func (absentHost) DisplayDensity() int                         { return 0 }
func (absentHost) Telephony() (device.Telephony, bool)         { return nil, false }
func (absentHost) Locale() device.Locale                       { return device.Locale{} }
func (absentHost) PackageName() string                         { return "" }
func (absentHost) Packages() device.PackageManager             { return nil }
