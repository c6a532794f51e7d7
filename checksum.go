package gfarch

// Checksum computes the 32-bit filename tag stored in each entry
// record: every byte of name folded as sum = byte + sum*137, with
// unsigned 32-bit wraparound. Every byte participates, including any
// embedded NUL. The result is order-sensitive and deterministic; it is
// an integrity tag, not a cryptographic hash.
func Checksum(name string) uint32 {
	var sum uint32
	for i := 0; i < len(name); i++ {
		sum = uint32(name[i]) + sum*137
	}
	return sum
}
