package device

// DPI buckets reported by the host resource configuration.
const (
	DensityLow     = 120
	DensityMedium  = 160
	DensityTV      = 213
	DensityHigh    = 240
	DensityXHigh   = 320
	Density400     = 400
	DensityXXHigh  = 480
	DensityXXXHigh = 640
)

var densityLabels = map[int]string{
	DensityLow:     "LDPI",
	DensityMedium:  "MDPI",
	DensityTV:      "TVDPI",
	DensityHigh:    "HDPI",
	DensityXHigh:   "XHDPI",
	Density400:     "XMHDPI",
	DensityXXHigh:  "XXHDPI",
	DensityXXXHigh: "XXXHDPI",
}

// DensityLabel maps a DPI bucket to its display-density label.
// Buckets outside the fixed set, including 0, map to the empty string.
func DensityLabel(dpi int) string {
	return densityLabels[dpi]
}
