package guidance

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTrimAtUnitLeavesShortTextAlone(t *testing.T) {
	text := "Step 1: Do it."
	assert.Equal(t, text, trimAtUnit(text, 100, "Step "))
}

func TestTrimAtUnitCutsAtLastStepSentence(t *testing.T) {
	text := "Intro.\nStep 1: Plan the work. Keep it short.\nStep 2: Write the draft. Then review it carefully and " +
		strings.Repeat("x", 50)
	limit := strings.Index(text, "carefully")

	got := trimAtUnit(text, limit, "Step ")
	assert.Equal(t, "Intro.\nStep 1: Plan the work. Keep it short.\nStep 2: Write the draft.", got)
}

func TestTrimAtUnitFallsBackToSentenceWithoutMarker(t *testing.T) {
	text := strings.Repeat("a", 30) + ". " + strings.Repeat("b", 30)

	assert.Equal(t, strings.Repeat("a", 30)+".", trimAtUnit(text, 40, "Step "))
}

func TestTrimAtUnitHardCutsWithoutBoundary(t *testing.T) {
	text := strings.Repeat("a", 60)

	got := trimAtUnit(text, 40, "Step ")
	assert.Equal(t, strings.Repeat("a", 37)+"...", got)
	assert.Equal(t, 40, utf8.RuneCountInString(got))
}

func TestTrimAtUnitMarkerAtStartIsNotABoundary(t *testing.T) {
	text := "Step 1: " + strings.Repeat("word ", 20) + "end."

	got := trimAtUnit(text, 30, "Step ")
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.Equal(t, 30, utf8.RuneCountInString(got))
}

func TestTrimAtUnitBullets(t *testing.T) {
	text := "• First idea. Works well.\n• Second idea is long and keeps going without stopping"

	got := trimAtUnit(text, 50, "\n•")
	assert.Equal(t, "• First idea. Works well.", got)
}

func TestTrimAtUnitDropsIncompleteLastBullet(t *testing.T) {
	text := "• First idea works\n• Second idea keeps going and going"

	assert.Equal(t, "• First idea works", trimAtUnit(text, 30, "\n•"))
}

func TestTrimAtUnitSentences(t *testing.T) {
	text := "One sentence. Two sentences. Three is cut off here"

	assert.Equal(t, "One sentence. Two sentences.", trimAtUnit(text, 35, ""))
	assert.Equal(t, "No period at a...", trimAtUnit("No period at all in this text", 17, ""))
}
