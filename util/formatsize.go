package util

import "fmt"

var sizeUnits = []string{"KiB", "MiB", "GiB", "TiB"}

// FormatSize returns a human-readable string representation of a size in bytes.
func FormatSize(size int64) string {
	if size < 1024 {
		return fmt.Sprintf("%d B", size)
	}
	value := float64(size) / 1024
	unit := 0
	for value >= 1024 && unit < len(sizeUnits)-1 {
		value /= 1024
		unit++
	}
	return fmt.Sprintf("%.1f %s", value, sizeUnits[unit])
}
