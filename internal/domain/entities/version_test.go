//go:build unit

package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/lockstep/internal/domain/entities"
)

func TestParseVersion(t *testing.T) {
	t.Parallel()

	t.Run("should parse a major.minor.patch triple", func(t *testing.T) {
		t.Parallel()

		// given
		raw := "1.10.3"

		// when
		version, err := entities.ParseVersion(raw)

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.Version{Major: 1, Minor: 10, Patch: 3}, version)
		assert.Equal(t, raw, version.String())
	})

	invalid := []struct {
		name string
		raw  string
	}{
		{name: "should reject two components", raw: "1.0"},
		{name: "should reject a pre-release suffix", raw: "1.0.0-rc"},
		{name: "should reject a build suffix", raw: "1.0.0+build"},
		{name: "should reject a leading v", raw: "v1.0.0"},
		{name: "should reject leading zeros", raw: "01.0.0"},
		{name: "should reject empty input", raw: ""},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// given
			raw := tt.raw

			// when
			_, err := entities.ParseVersion(raw)

			// then
			require.ErrorIs(t, err, entities.ErrInvalidVersion)
		})
	}
}

func TestVersionCompare(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		left     string
		right    string
		expected int
	}{
		{name: "should order by major first", left: "2.0.0", right: "1.9.9", expected: 1},
		{name: "should order by minor when majors are equal", left: "1.2.0", right: "1.10.0", expected: -1},
		{name: "should order by patch last", left: "1.1.2", right: "1.1.1", expected: 1},
		{name: "should consider equal triples equal", left: "3.4.5", right: "3.4.5", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// given
			left := entities.MustParseVersion(tt.left)
			right := entities.MustParseVersion(tt.right)

			// when
			result := left.Compare(right)

			// then
			assert.Equal(t, tt.expected, result)
			assert.Equal(t, tt.expected < 0, left.Less(right))
		})
	}
}

func TestMaxVersion(t *testing.T) {
	t.Parallel()

	t.Run("should return the greatest version", func(t *testing.T) {
		t.Parallel()

		// given
		versions := []entities.Version{
			entities.MustParseVersion("1.2.0"),
			entities.MustParseVersion("1.10.0"),
			entities.MustParseVersion("1.9.9"),
		}

		// when
		highest, ok := entities.MaxVersion(versions...)

		// then
		assert.True(t, ok)
		assert.Equal(t, "1.10.0", highest.String())
	})

	t.Run("should report false for no versions", func(t *testing.T) {
		t.Parallel()

		// given
		var versions []entities.Version

		// when
		_, ok := entities.MaxVersion(versions...)

		// then
		assert.False(t, ok)
	})
}
