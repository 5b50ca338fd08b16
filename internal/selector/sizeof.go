package selector

import "fmt"

// FormatSize renders a byte count on a binary-prefixed scale with two
// decimal places: 0 -> "0.00 B", 1536 -> "1.50 KB".
func FormatSize(n int64) string {
	v := float64(n)
	for _, unit := range []string{"", "K", "M", "G", "T", "P"} {
		if v < 1024 {
			return fmt.Sprintf("%.2f %sB", v, unit)
		}
		v /= 1024
	}
	return fmt.Sprintf("%.2f EB", v)
}
