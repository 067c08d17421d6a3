// Package internalcheck enforces repository-wide policies through static
// analysis tests. It is not intended for external use and the API may
// change without notice.
//
// The central policy: raw pointer handling stays confined. Only the
// capability package itself, declared FFI boundary packages and
// pavogen-generated files may import unsafe; everything else goes through
// the capability contracts.
package internalcheck
