package mobile

import (
	"fmt"
	"strings"

	"github.com/SebastienMelki/devinfo/internal/device"
)

// FillJSONIfValuesNotEmpty adds key/value pairs to a JSON object, skipping
// pairs whose value is null or empty and pairs whose key is null or empty,
// and returns the resulting object JSON.
//
// objectJSON is a JSON object of string fields ("" means an empty object).
// pairsJSON is a flat JSON array of alternating keys and values, for example
// ["key1", "value1", "key2", null]. An empty or odd-length array leaves the
// object unchanged. On malformed input objectJSON is returned as given and
// an INVALID_JSON warning is reported.
func FillJSONIfValuesNotEmpty(objectJSON string, pairsJSON string) string {
	obj, err := parseObject(objectJSON)
	if err != nil {
		reportError(newWarningError(ErrCodeInvalidJSON, fmt.Sprintf("invalid object: %s", err.Error())))
		return objectJSON
	}

	kv, err := parsePairs(pairsJSON)
	if err != nil {
		reportError(newWarningError(ErrCodeInvalidJSON, fmt.Sprintf("invalid pairs: %s", err.Error())))
		return objectJSON
	}

	device.FillIfNotEmpty(obj, kv...)

	data, err := obj.MarshalJSON()
	if err != nil {
		reportError(newCriticalError(ErrCodeEncodeFailed, err.Error()))
		return objectJSON
	}
	return string(data)
}

// DecodeMetrics percent-decodes a metrics string and returns the plain
// snapshot JSON. It returns an empty string and reports INVALID_JSON if the
// input is not a metrics payload.
func DecodeMetrics(encoded string) string {
	snap, err := device.DecodeMetrics(encoded)
	if err != nil {
		reportError(newWarningError(ErrCodeInvalidJSON, err.Error()))
		return ""
	}
	data, err := device.MarshalSnapshot(snap)
	if err != nil {
		reportError(newCriticalError(ErrCodeEncodeFailed, err.Error()))
		return ""
	}
	return string(data)
}

// parseObject unmarshals a JSON object of string fields.
func parseObject(jsonStr string) (*device.Object, error) {
	obj := device.NewObject()
	if strings.TrimSpace(jsonStr) == "" {
		return obj, nil
	}
	if err := obj.UnmarshalJSON([]byte(jsonStr)); err != nil {
		return nil, err
	}
	return obj, nil
}

// parsePairs unmarshals a flat array of strings and nulls. Nulls become
// empty strings; FillIfNotEmpty skips a pair when either side is empty.
func parsePairs(jsonStr string) ([]string, error) {
	if strings.TrimSpace(jsonStr) == "" {
		return nil, nil
	}

	var raw []*string
	if err := jsonAPI.UnmarshalFromString(jsonStr, &raw); err != nil {
		return nil, fmt.Errorf("pairs must be an array of strings: %w", err)
	}

	kv := make([]string, len(raw))
	for i, v := range raw {
		if v != nil {
			kv[i] = *v
		}
	}
	return kv, nil
}
