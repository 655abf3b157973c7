package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Joe's Pizza", "joes-pizza"},
		{"accents folded", "Café Menüe", "cafe-menue"},
		{"multiple spaces", "Main   Street  Bakery", "main-street-bakery"},
		{"punctuation stripped", "Bob & Sons, Inc.", "bob-sons-inc"},
		{"leading and trailing junk", "  --Hello World--  ", "hello-world"},
		{"already clean", "plumbing-services", "plumbing-services"},
		{"only symbols", "@#$%", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateSlug(tt.input))
		})
	}
}

func TestTimestampedSlug(t *testing.T) {
	createdAt := time.Unix(1700000000, 0)

	assert.Equal(t, "joes-pizza-1700000000", TimestampedSlug("Joe's Pizza", createdAt))

	// Same name, different creation time, different slug.
	later := time.Unix(1700000001, 0)
	assert.NotEqual(t,
		TimestampedSlug("Joe's Pizza", createdAt),
		TimestampedSlug("Joe's Pizza", later),
	)
}

func TestTimestampedSlugFallback(t *testing.T) {
	createdAt := time.Unix(1700000000, 0)

	// Names that slug to nothing still produce a usable slug.
	assert.Equal(t, "listing-1700000000", TimestampedSlug("@#$", createdAt))
}
