// Package id derives stable internal identifiers from player tags.
package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

// Generator creates internal player IDs.
type Generator interface {
	NewPlayerID(tag string, taken func(string) bool) (string, error)
}

// SlugGenerator builds IDs of the form p_<slug>, suffixing _2, _3, ... when
// the base form is already in use. Tags that slug down to nothing fall back
// to a random hex ID.
type SlugGenerator struct{}

func NewSlugGenerator() *SlugGenerator {
	return &SlugGenerator{}
}

func (g *SlugGenerator) NewPlayerID(tag string, taken func(string) bool) (string, error) {
	slug := Slugify(tag)
	if slug == "" {
		buf := make([]byte, 8)
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("read random bytes: %w", err)
		}
		slug = hex.EncodeToString(buf)
	}

	base := "p_" + slug
	if taken == nil || !taken(base) {
		return base, nil
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s_%d", base, i)
		if !taken(candidate) {
			return candidate, nil
		}
	}
}

// Slugify lowercases tag and collapses every non-alphanumeric run into a
// single hyphen, trimming leading and trailing hyphens.
func Slugify(tag string) string {
	var b strings.Builder
	b.Grow(len(tag))

	pendingHyphen := false
	for _, r := range strings.ToLower(strings.TrimSpace(tag)) {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !isAlnum {
			pendingHyphen = b.Len() > 0
			continue
		}
		if pendingHyphen {
			b.WriteByte('-')
			pendingHyphen = false
		}
		b.WriteRune(r)
	}

	return b.String()
}
