package workspace

import (
	"crypto/sha256"
	"encoding/hex"
	"io"

	billy "github.com/go-git/go-billy/v5"
)

// HashContent computes a SHA-256 hash of the given content
func HashContent(content []byte) string {
	hasher := sha256.New()
	hasher.Write(content)
	return hex.EncodeToString(hasher.Sum(nil))
}

// hashFile computes a SHA-256 hash of a file in fs
func hashFile(fs billy.Filesystem, path string) (string, error) {
	file, err := fs.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", err
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}
