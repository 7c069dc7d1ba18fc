//go:build !amd64

package fieldproj

// SupportedCPU always reports false outside amd64: we have no cpuid feature
// table for this architecture. The SWAR builder still runs and is still
// correct; nothing in this package consults the result.
func SupportedCPU() bool {
	return false
}
