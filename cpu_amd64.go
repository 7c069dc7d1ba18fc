//go:build amd64

package fieldproj

import "github.com/klauspost/cpuid/v2"

// SupportedCPU reports whether the host CPU belongs to the generation the
// SWAR fast path was tuned against. A false result is not fatal: the SWAR
// builder is portable Go and correct on every CPU, so this is advisory
// only. Callers may use it to decide how aggressively to fan work out
// across records.
func SupportedCPU() bool {
	return cpuid.CPU.Supports(cpuid.AVX2, cpuid.CLMUL)
}
