//go:build !pavocheck

package pavo

// Layout identity is a caller obligation in release builds. Build with the
// pavocheck tag to turn mismatches into panics during tests.
func assertSameLayout[Dst, Src any]() {}
