// Package shared holds small helpers used across the client packages.
package shared

// WipeByteArray overwrites b with zeros. It is used to drop secrets such as
// pasted bearer tokens from memory once they have been copied out.
func WipeByteArray(b []byte) {
	clear(b)
}
