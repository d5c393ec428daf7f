package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitVariations(t *testing.T) {
	text := "First variation here.\n---\nSecond variation here.\n---\nThird variation here."
	got := SplitVariations(text, 3)
	assert.Equal(t, []string{
		"First variation here.",
		"Second variation here.",
		"Third variation here.",
	}, got)
}

func TestSplitVariationsDropsEmptyAndExtras(t *testing.T) {
	text := "---\nOne\n---\n\n---\nTwo\n---\nThree\n---\nFour"
	got := SplitVariations(text, 3)
	assert.Equal(t, []string{"One", "Two", "Three"}, got)
}

func TestSplitVariationsNoSeparator(t *testing.T) {
	got := SplitVariations("Just one message", 3)
	assert.Equal(t, []string{"Just one message"}, got)
}
