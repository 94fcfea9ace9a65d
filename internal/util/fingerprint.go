package util

import (
	"fmt"
	"hash/crc32"
	"io"
	"os"
)

// CalculateFileFingerprint returns the CRC32 of the whole file together with
// its size. Data files are small, so the full content is hashed.
func CalculateFileFingerprint(filepath string) (string, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hash := crc32.NewIEEE()
	size, err := io.Copy(hash, file)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%d-%08x", size, hash.Sum32()), nil
}
