package segment

import (
	"strings"
	"testing"

	"github.com/poiesic/conceptmap/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmentEmptyInput(t *testing.T) {
	s := New()

	t.Run("empty string", func(t *testing.T) {
		_, err := s.Segment("")
		require.Error(t, err)
		assert.ErrorIs(t, err, core.ErrInsufficientInput)
	})

	t.Run("whitespace only", func(t *testing.T) {
		_, err := s.Segment("   \n\t  ")
		assert.ErrorIs(t, err, core.ErrInsufficientInput)
	})

	t.Run("punctuation only", func(t *testing.T) {
		_, err := s.Segment("... !!! ???")
		assert.ErrorIs(t, err, core.ErrInsufficientInput)
	})
}

func TestSegmentFourSentences(t *testing.T) {
	s := New()

	units, err := s.Segment("I need to plan marketing. We should use social media. Budget needs planning. I also want SEO.")
	require.NoError(t, err)
	require.Len(t, units, 4)

	assert.Equal(t, "I need to plan marketing", units[0].Raw)
	assert.Equal(t, "We should use social media", units[1].Raw)
	assert.Equal(t, "Budget needs planning", units[2].Raw)
	assert.Equal(t, "I also want SEO", units[3].Raw)

	for i, unit := range units {
		assert.Equal(t, i, unit.ID)
		assert.Equal(t, core.UnassignedCluster, unit.ClusterID)
		assert.Equal(t, strings.ToLower(unit.Raw), unit.Normalized)
	}
}

func TestSegmentPreservesOrder(t *testing.T) {
	s := New()

	units, err := s.Segment("First things first. Second point here! Third and final thought?")
	require.NoError(t, err)
	require.Len(t, units, 3)
	assert.Contains(t, units[0].Raw, "First")
	assert.Contains(t, units[1].Raw, "Second")
	assert.Contains(t, units[2].Raw, "Third")
}

func TestSegmentSplitsLongSentences(t *testing.T) {
	s := New(WithWordRange(3, 8))

	units, err := s.Segment("We will review the budget carefully, allocate spending across teams, and report the results to the board next month.")
	require.NoError(t, err)
	require.Greater(t, len(units), 1)
	for _, unit := range units {
		assert.NotEmpty(t, unit.Raw)
		assert.False(t, strings.Contains(unit.Raw, ","), "clause boundaries should be split: %q", unit.Raw)
	}
}

func TestSegmentMergesShortTrailingFragment(t *testing.T) {
	s := New()

	units, err := s.Segment("The quarterly planning meeting went well. The end.")
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Contains(t, units[0].Raw, "The end")
}

func TestNormalize(t *testing.T) {
	t.Run("collapses whitespace", func(t *testing.T) {
		assert.Equal(t, "a b c", Normalize("  a\t b \n c "))
	})

	t.Run("lowercases", func(t *testing.T) {
		assert.Equal(t, "hello world", Normalize("Hello WORLD"))
	})

	t.Run("stable for identical input", func(t *testing.T) {
		in := "Café plans; café budgets"
		assert.Equal(t, Normalize(in), Normalize(in))
	})
}
