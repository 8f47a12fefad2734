package serialization

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// metadataChecksum is the metadata key holding the hex SHA-256 of the data section.
const metadataChecksum = "checksum"

// ComputeChecksum computes SHA-256 checksum of data.
func ComputeChecksum(data []byte) [32]byte {
	return sha256.Sum256(data)
}

// ValidateChecksum compares the checksum of data against a stored hex digest.
// Returns ErrChecksumMismatch if they don't match.
func ValidateChecksum(data []byte, stored string) error {
	want, err := hex.DecodeString(stored)
	if err != nil || len(want) != sha256.Size {
		return fmt.Errorf("%w: stored checksum %q is not a SHA-256 digest", ErrChecksumMismatch, stored)
	}
	sum := ComputeChecksum(data)
	if string(sum[:]) != string(want) {
		return ErrChecksumMismatch
	}
	return nil
}

func checksumHex(data []byte) string {
	sum := ComputeChecksum(data)
	return hex.EncodeToString(sum[:])
}
