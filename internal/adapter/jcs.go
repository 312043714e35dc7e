package adapter

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/gowebpki/jcs"
)

// JCS canonicalizes JSON documents (RFC 8785)
//
//go:generate mockgen -source=jcs.go -destination=../mocks/jcs.go -package=mocks -mock_names=JCS=MockJCS
type JCS interface {
	Transform(data []byte) ([]byte, error)
}

// RealJCS implements JCS with gowebpki/jcs
type RealJCS struct{}

// NewJCS creates a new real JCS transformer
func NewJCS() JCS {
	return &RealJCS{}
}

func (j *RealJCS) Transform(data []byte) ([]byte, error) {
	return jcs.Transform(data)
}

// CanonicalHash returns the hex sha256 of the canonical form of a JSON document.
// Documents that differ only in key order or whitespace share a hash.
func CanonicalHash(c JCS, data []byte) (string, error) {
	canonical, err := c.Transform(data)
	if err != nil {
		return "", fmt.Errorf("failed to canonicalize json: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}
