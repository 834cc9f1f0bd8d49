package stats

import "fmt"

const (
	kib = 1024
	mib = 1024 * kib
	gib = 1024 * mib
)

// SizeBytes is a byte count as reported by the bundler. Webpack emits
// fractional sizes for concatenated modules, hence the float.
type SizeBytes float64

func (s SizeBytes) String() string {
	v := float64(s)
	switch {
	case v > gib:
		return fmt.Sprintf("%g GiB", v/gib)
	case v > mib:
		return fmt.Sprintf("%g MiB", v/mib)
	case v > kib:
		return fmt.Sprintf("%g KiB", v/kib)
	default:
		return fmt.Sprintf("%g B", v)
	}
}
