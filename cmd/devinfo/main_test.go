package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	jsoniter "github.com/json-iterator/go"

	"github.com/SebastienMelki/devinfo/internal/device"
	"github.com/SebastienMelki/devinfo/internal/observability"
)

func setHostEnv(t *testing.T) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("DEVINFO_OS_VERSION", "14")
	t.Setenv("DEVINFO_MODEL", "Pixel 8")
	t.Setenv("DEVINFO_SCREEN_WIDTH", "1080")
	t.Setenv("DEVINFO_SCREEN_HEIGHT", "2400")
	t.Setenv("DEVINFO_DENSITY_DPI", "480")
	t.Setenv("DEVINFO_CARRIER", "Verizon")
	t.Setenv("DEVINFO_LOCALE", "en_US")
	t.Setenv("DEVINFO_APP_VERSION", "42.0")
}

func TestRun_EncodedOutput(t *testing.T) {
	setHostEnv(t)

	var out bytes.Buffer
	if err := run(&out); err != nil {
		t.Fatalf("run: %v", err)
	}

	snap, err := device.DecodeMetrics(strings.TrimSpace(out.String()))
	if err != nil {
		t.Fatalf("DecodeMetrics: %v", err)
	}
	want := device.Snapshot{
		Device:     "Pixel 8",
		OS:         "Android",
		OSVersion:  "14",
		Carrier:    "Verizon",
		Resolution: "1080x2400",
		Density:    "XXHDPI",
		Locale:     "en_US",
		AppVersion: "42.0",
	}
	if diff := cmp.Diff(want, snap); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_JSONOutput(t *testing.T) {
	setHostEnv(t)
	t.Setenv("OUTPUT_FORMAT", "json")
	t.Setenv("DEVINFO_APP_VERSION", "")
	t.Setenv("DEVINFO_DEFAULT_APP_VERSION", "0.9")

	var out bytes.Buffer
	if err := run(&out); err != nil {
		t.Fatalf("run: %v", err)
	}

	var got map[string]string
	if err := jsoniter.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal %q: %v", out.String(), err)
	}
	if got["_app_version"] != "0.9" {
		t.Errorf("_app_version = %q, want %q", got["_app_version"], "0.9")
	}
}

func TestRun_UnknownFormat(t *testing.T) {
	setHostEnv(t)
	t.Setenv("OUTPUT_FORMAT", "xml")

	if err := run(io.Discard); err == nil {
		t.Fatal("expected error for unknown output format")
	}
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	obs, err := observability.New("devinfo-test")
	if err != nil {
		t.Fatalf("observability.New: %v", err)
	}
	t.Cleanup(func() { _ = obs.Shutdown(context.Background()) })

	metrics, err := observability.NewMetrics(obs.Meter())
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}

	host := device.NewStaticHost(device.StaticConfig{
		Model:       "Pixel 8",
		Locale:      "en-US",
		NoTelephony: true,
	})
	info := device.New(host, nil, device.WithRecorder(metrics))

	srv := NewServer(":0", ServerConfig{}, info, obs, metrics, setupLogger("error", "text"))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, string(body)
}

func TestServer_Snapshot(t *testing.T) {
	ts := newTestServer(t)

	status, body := get(t, ts.URL+"/snapshot")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	var snap device.Snapshot
	if err := jsoniter.UnmarshalFromString(body, &snap); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if snap.Device != "Pixel 8" || snap.Carrier != "" {
		t.Errorf("unexpected snapshot %+v", snap)
	}

	status, body = get(t, ts.URL+"/snapshot?format=encoded")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if _, err := device.DecodeMetrics(body); err != nil {
		t.Errorf("encoded snapshot did not decode: %v", err)
	}
}

func TestServer_MetricsAndHealth(t *testing.T) {
	ts := newTestServer(t)

	get(t, ts.URL+"/snapshot")

	status, body := get(t, ts.URL+"/metrics")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	for _, name := range []string{"device_host_fallbacks_total", "device_snapshots_collected_total", "http_request_total"} {
		if !strings.Contains(body, name) {
			t.Errorf("metrics output missing %s", name)
		}
	}

	status, body = get(t, ts.URL+"/healthz")
	if status != http.StatusOK || body != "ok" {
		t.Errorf("healthz = %d %q, want 200 \"ok\"", status, body)
	}
}

func TestSetupLogger_Levels(t *testing.T) {
	ctx := context.Background()
	if !setupLogger("debug", "json").Enabled(ctx, slog.LevelDebug) {
		t.Error("debug logger should enable debug level")
	}
	if setupLogger("warn", "text").Enabled(ctx, slog.LevelInfo) {
		t.Error("warn logger should not enable info level")
	}
}

type failingShutdowner struct{ err error }

func (f failingShutdowner) Shutdown(context.Context) error { return f.err }

func TestShutdown_LogsError(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	shutdown("observability", failingShutdowner{err: errors.New("flush failed")}, logger)

	out := buf.String()
	if !strings.Contains(out, "shutdown error") || !strings.Contains(out, "flush failed") {
		t.Errorf("expected logged shutdown error, got %q", out)
	}
	if !strings.Contains(out, "component=observability") {
		t.Errorf("expected component attribute, got %q", out)
	}
}

func TestShutdown_SilentOnSuccess(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	shutdown("observability", failingShutdowner{}, logger)

	if buf.Len() != 0 {
		t.Errorf("expected no log output, got %q", buf.String())
	}
}
