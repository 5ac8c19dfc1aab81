package common

// WipeByteArray zeroes the buffer in place. Used to clear passwords from
// memory as soon as they have been consumed.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
