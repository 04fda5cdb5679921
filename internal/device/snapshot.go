package device

import (
	"errors"
	"fmt"
	"net/url"
)

// Metric keys in the beacon payload, in serialization order.
const (
	KeyDevice     = "_device"
	KeyOS         = "_os"
	KeyOSVersion  = "_os_version"
	KeyCarrier    = "_carrier"
	KeyResolution = "_resolution"
	KeyDensity    = "_density"
	KeyLocale     = "_locale"
	KeyAppVersion = "_app_version"
	KeyStore      = "_store"
)

// requiredKeys are present in every encoded payload, even when empty.
var requiredKeys = []string{
	KeyDevice,
	KeyOS,
	KeyOSVersion,
	KeyResolution,
	KeyDensity,
	KeyLocale,
	KeyAppVersion,
}

// ErrMalformedMetrics is returned by DecodeMetrics for payloads that are not
// a complete metrics object.
var ErrMalformedMetrics = errors.New("malformed metrics")

// Snapshot is one complete read of the device metadata. Absent values are
// empty strings.
type Snapshot struct {
	Device     string `json:"_device"`
	OS         string `json:"_os"`
	OSVersion  string `json:"_os_version"`
	Carrier    string `json:"_carrier,omitempty"`
	Resolution string `json:"_resolution"`
	Density    string `json:"_density"`
	Locale     string `json:"_locale"`
	AppVersion string `json:"_app_version"`
	Store      string `json:"_store,omitempty"`
}

// Object returns the snapshot as an ordered JSON object. Carrier and store
// are only written when non-empty.
func (s Snapshot) Object() *Object {
	obj := NewObject()
	obj.Set(KeyDevice, s.Device)
	obj.Set(KeyOS, s.OS)
	obj.Set(KeyOSVersion, s.OSVersion)
	FillIfNotEmpty(obj, KeyCarrier, s.Carrier)
	obj.Set(KeyResolution, s.Resolution)
	obj.Set(KeyDensity, s.Density)
	obj.Set(KeyLocale, s.Locale)
	obj.Set(KeyAppVersion, s.AppVersion)
	FillIfNotEmpty(obj, KeyStore, s.Store)
	return obj
}

// EncodeMetrics serializes s to JSON and percent-encodes it for use as a
// query parameter value.
func EncodeMetrics(s Snapshot) (string, error) {
	data, err := s.Object().MarshalJSON()
	if err != nil {
		return "", fmt.Errorf("encode metrics: %w", err)
	}
	return url.QueryEscape(string(data)), nil
}

// DecodeMetrics reverses EncodeMetrics.
func DecodeMetrics(encoded string) (Snapshot, error) {
	raw, err := url.QueryUnescape(encoded)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrMalformedMetrics, err)
	}

	obj := NewObject()
	if err := obj.UnmarshalJSON([]byte(raw)); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrMalformedMetrics, err)
	}
	for _, key := range requiredKeys {
		if !obj.Has(key) {
			return Snapshot{}, fmt.Errorf("%w: missing %s", ErrMalformedMetrics, key)
		}
	}

	var s Snapshot
	s.Device, _ = obj.Get(KeyDevice)
	s.OS, _ = obj.Get(KeyOS)
	s.OSVersion, _ = obj.Get(KeyOSVersion)
	s.Carrier, _ = obj.Get(KeyCarrier)
	s.Resolution, _ = obj.Get(KeyResolution)
	s.Density, _ = obj.Get(KeyDensity)
	s.Locale, _ = obj.Get(KeyLocale)
	s.AppVersion, _ = obj.Get(KeyAppVersion)
	s.Store, _ = obj.Get(KeyStore)
	return s, nil
}

// MarshalSnapshot returns the plain (not percent-encoded) JSON of s.
func MarshalSnapshot(s Snapshot) ([]byte, error) {
	data, err := jsonAPI.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return data, nil
}
