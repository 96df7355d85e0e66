// Package shared holds small helpers used by several client packages.
package shared

// WipeByteArray zeroes b. Use it on password buffers once they have been
// copied into a request.
func WipeByteArray(b []byte) {
	clear(b)
}
