package device

import "fmt"

// StaticConfig describes a host whose answers are fixed up front. It is
// parsed from the environment by command-line tools.
type StaticConfig struct {
	// OSVersion is the reported OS release (e.g., "14").
	OSVersion string `env:"OS_VERSION"`

	// Model is the reported hardware model (e.g., "Pixel 8").
	Model string `env:"MODEL"`

	// ScreenWidth and ScreenHeight are in pixels. If either is zero the host
	// has no default display.
	ScreenWidth  int `env:"SCREEN_WIDTH"`
	ScreenHeight int `env:"SCREEN_HEIGHT"`

	// DensityDPI is the DPI bucket (e.g., 420). Zero means unknown.
	DensityDPI int `env:"DENSITY_DPI"`

	// Carrier is the operator display name. Empty means no operator.
	Carrier string `env:"CARRIER"`

	// NoTelephony simulates a device without a telephony service.
	NoTelephony bool `env:"NO_TELEPHONY" envDefault:"false"`

	// Locale is a BCP 47 or POSIX locale tag (e.g., "en-US").
	Locale string `env:"LOCALE" envDefault:"en-US"`

	// PackageName is the application package.
	PackageName string `env:"PACKAGE_NAME" envDefault:"com.example.app"`

	// AppVersion is the installed version name. Empty means the package
	// cannot be found.
	AppVersion string `env:"APP_VERSION"`

	// Installer is the package name of the installing store.
	Installer string `env:"INSTALLER"`
}

// StaticHost is a Host backed by a StaticConfig.
type StaticHost struct {
	cfg    StaticConfig
	locale Locale
}

var _ Host = (*StaticHost)(nil)

// NewStaticHost returns a Host that answers from cfg.
func NewStaticHost(cfg StaticConfig) *StaticHost {
	return &StaticHost{cfg: cfg, locale: ParseLocale(cfg.Locale)}
}

func (h *StaticHost) OSVersion() string   { return h.cfg.OSVersion }
func (h *StaticHost) Model() string       { return h.cfg.Model }
func (h *StaticHost) DisplayDensity() int { return h.cfg.DensityDPI }
func (h *StaticHost) Locale() Locale      { return h.locale }
func (h *StaticHost) PackageName() string { return h.cfg.PackageName }

func (h *StaticHost) WindowManager() (WindowManager, bool) {
	return staticWindowManager{cfg: &h.cfg}, true
}

func (h *StaticHost) Telephony() (Telephony, bool) {
	if h.cfg.NoTelephony {
		return nil, false
	}
	return staticTelephony{cfg: &h.cfg}, true
}

func (h *StaticHost) Packages() PackageManager {
	return staticPackages{cfg: &h.cfg}
}

type staticWindowManager struct{ cfg *StaticConfig }

func (w staticWindowManager) DefaultDisplay() (Display, bool) {
	if w.cfg.ScreenWidth <= 0 || w.cfg.ScreenHeight <= 0 {
		return nil, false
	}
	return staticDisplay{DisplayMetrics{WidthPixels: w.cfg.ScreenWidth, HeightPixels: w.cfg.ScreenHeight}}, true
}

type staticDisplay struct{ m DisplayMetrics }

func (d staticDisplay) Metrics() DisplayMetrics { return d.m }

type staticTelephony struct{ cfg *StaticConfig }

func (t staticTelephony) NetworkOperatorName() (string, bool) {
	return t.cfg.Carrier, t.cfg.Carrier != ""
}

type staticPackages struct{ cfg *StaticConfig }

func (p staticPackages) VersionName(pkg string) (string, error) {
	if pkg != p.cfg.PackageName || p.cfg.AppVersion == "" {
		return "", fmt.Errorf("%s: %w", pkg, ErrPackageNotFound)
	}
	return p.cfg.AppVersion, nil
}

func (p staticPackages) InstallerPackageName(pkg string) (string, error) {
	if pkg != p.cfg.PackageName {
		return "", fmt.Errorf("%s: %w", pkg, ErrPackageNotFound)
	}
	return p.cfg.Installer, nil
}
