// Package avatar builds Gravatar image URLs
package avatar

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	baseURL = "https://www.gravatar.com/avatar/"
	// DefaultSize is the image edge length in pixels
	DefaultSize = 100
	// DefaultImage is the Gravatar fallback style for unknown emails
	DefaultImage = "retro"
)

// URL returns the Gravatar URL for email, hashing the lower-cased address.
// A non-positive size selects DefaultSize and an empty fallback selects DefaultImage.
func URL(email string, size int, fallback string) string {
	if size <= 0 {
		size = DefaultSize
	}
	if fallback == "" {
		fallback = DefaultImage
	}
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(email))))
	query := url.Values{
		"d": []string{fallback},
		"s": []string{strconv.Itoa(size)},
	}
	return fmt.Sprintf("%s%s?%s", baseURL, hex.EncodeToString(sum[:]), query.Encode())
}

// Default returns the URL for email with the default size and fallback image
func Default(email string) string {
	return URL(email, DefaultSize, DefaultImage)
}
