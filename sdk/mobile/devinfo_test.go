package mobile

import (
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	jsoniter "github.com/json-iterator/go"

	"github.com/SebastienMelki/devinfo/internal/device"
)

func setupSDK(t *testing.T, configJSON string, p PlatformHost) {
	t.Helper()
	setupCallbackTest(t)
	if errMsg := Init(configJSON); errMsg != "" {
		t.Fatalf("Init: %s", errMsg)
	}
	SetPlatform(p)
}

func TestInit_InvalidConfig(t *testing.T) {
	setupCallbackTest(t)

	cb := newMockCallback()
	RegisterErrorCallback(cb)

	if errMsg := Init(`{bad`); errMsg == "" {
		t.Fatal("expected error for invalid config")
	}
	if IsInitialized() {
		t.Error("SDK should not be initialized after a failed Init")
	}
	if !cb.waitForCalls(1, time.Second) {
		t.Fatal("expected error callback")
	}
	if calls := cb.getCalls(); calls[0].Code != ErrCodeInvalidConfig {
		t.Errorf("code = %q, want %q", calls[0].Code, ErrCodeInvalidConfig)
	}
}

func TestInit_Success(t *testing.T) {
	setupSDK(t, `{}`, newFakePlatform())
	if !IsInitialized() {
		t.Error("expected SDK to be initialized")
	}
}

func TestGetters(t *testing.T) {
	setupSDK(t, `{}`, newFakePlatform())

	checks := []struct {
		name, got, want string
	}{
		{"os", GetOS(), "Android"},
		{"os version", GetOSVersion(), "14"},
		{"device", GetDevice(), "Pixel 8"},
		{"resolution", GetResolution(), "1080x2400"},
		{"density", GetDensity(), "XXHDPI"},
		{"carrier", GetCarrier(), "Verizon"},
		{"locale", GetLocale(), "en_US"},
		{"app version", GetAppVersion(), "42.0"},
		{"store", GetStore(), "com.android.vending"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %q, want %q", c.name, c.got, c.want)
		}
	}
}

func TestGetMetrics(t *testing.T) {
	p := newFakePlatform()
	p.hasTelephony = false
	setupSDK(t, `{"include_store": true}`, p)

	raw, err := url.QueryUnescape(GetMetrics())
	if err != nil {
		t.Fatalf("QueryUnescape: %v", err)
	}
	var got map[string]string
	if err := jsoniter.UnmarshalFromString(raw, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	want := map[string]string{
		"_device":      "Pixel 8",
		"_os":          "Android",
		"_os_version":  "14",
		"_resolution":  "1080x2400",
		"_density":     "XXHDPI",
		"_locale":      "en_US",
		"_app_version": "42.0",
		"_store":       "com.android.vending",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("metrics mismatch (-want +got):\n%s", diff)
	}
}

func TestGetAppVersion_ConfiguredDefault(t *testing.T) {
	p := newFakePlatform()
	p.versionErr = errors.New("PackageManager$NameNotFoundException")
	setupSDK(t, `{"default_app_version": "0.0.1"}`, p)

	if got := GetAppVersion(); got != "0.0.1" {
		t.Errorf("GetAppVersion() = %q, want %q", got, "0.0.1")
	}
}

func TestGetters_NotInitialized(t *testing.T) {
	setupCallbackTest(t)

	cb := newMockCallback()
	RegisterErrorCallback(cb)

	if got := GetResolution(); got != "" {
		t.Errorf("GetResolution() = %q, want empty", got)
	}
	if got := GetAppVersion(); got != device.DefaultAppVersion {
		t.Errorf("GetAppVersion() = %q, want %q", got, device.DefaultAppVersion)
	}
	if got := GetOS(); got != device.OSName {
		t.Errorf("GetOS() = %q, want %q", got, device.OSName)
	}

	// Two getters, each reports NOT_INITIALIZED and NO_PLATFORM.
	if !cb.waitForCalls(4, time.Second) {
		t.Fatal("expected error callbacks for uninitialized SDK")
	}
	if !cb.hasCode(ErrCodeNotInitialized) {
		t.Error("expected NOT_INITIALIZED notification")
	}
	if !cb.hasCode(ErrCodeNoPlatform) {
		t.Error("expected NO_PLATFORM notification")
	}
}

func TestGetMetrics_WithoutPlatform(t *testing.T) {
	setupSDK(t, `{}`, nil)

	snap, err := device.DecodeMetrics(GetMetrics())
	if err != nil {
		t.Fatalf("DecodeMetrics: %v", err)
	}
	if snap.OS != device.OSName {
		t.Errorf("OS = %q, want %q", snap.OS, device.OSName)
	}
	if snap.AppVersion != device.DefaultAppVersion {
		t.Errorf("AppVersion = %q, want %q", snap.AppVersion, device.DefaultAppVersion)
	}
	if snap.Carrier != "" {
		t.Errorf("Carrier = %q, want empty", snap.Carrier)
	}
}

func TestGetSnapshotJSON(t *testing.T) {
	setupSDK(t, `{}`, newFakePlatform())

	var got device.Snapshot
	if err := jsoniter.UnmarshalFromString(GetSnapshotJSON(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Device != "Pixel 8" || got.Carrier != "Verizon" {
		t.Errorf("unexpected snapshot %+v", got)
	}
}

func TestDecodeMetrics_Bridge(t *testing.T) {
	setupSDK(t, `{}`, newFakePlatform())

	decoded := DecodeMetrics(GetMetrics())
	if decoded == "" {
		t.Fatal("expected decoded snapshot JSON")
	}
	var got device.Snapshot
	if err := jsoniter.UnmarshalFromString(decoded, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Resolution != "1080x2400" {
		t.Errorf("Resolution = %q, want %q", got.Resolution, "1080x2400")
	}

	if DecodeMetrics("%zz") != "" {
		t.Error("expected empty result for malformed input")
	}
}

func TestSetPlatform_Replace(t *testing.T) {
	setupSDK(t, `{}`, newFakePlatform())

	other := newFakePlatform()
	other.model = "SM-S911B"
	SetPlatform(other)

	if got := GetDevice(); got != "SM-S911B" {
		t.Errorf("GetDevice() = %q, want %q", got, "SM-S911B")
	}
}
