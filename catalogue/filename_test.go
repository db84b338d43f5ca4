package catalogue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clausecker/puzzledb/tileset"
)

func TestFormatFilenameMatchesConvention(t *testing.T) {
	ts := tileset.Empty.Add(1).Add(2).Add(3).Add(6).Add(7).Add(8)
	assert.Equal(t, "1,2,3,6,7,8.pdb", FormatFilename(ts, false, SuffixPDB))
	assert.Equal(t, "1,2,3,6,7,8.zpdb", FormatFilename(ts, true, SuffixPDB))
	assert.Equal(t, "1,2,3,6,7,8.ipdb", FormatFilename(ts, false, SuffixIPDB))
}

func TestParseFilenameRoundTrip(t *testing.T) {
	ts := tileset.Empty.Add(1).Add(2).Add(3).Add(6).Add(7).Add(8)

	for _, zeroTracked := range []bool{false, true} {
		for _, suffix := range validSuffixes {
			name := FormatFilename(ts, zeroTracked, suffix)
			gotTs, gotZero, gotSuffix, err := ParseFilename(name)
			require.NoError(t, err)

			wantTs := ts
			if zeroTracked {
				wantTs = wantTs.Add(tileset.ZeroTile)
			}

			assert.Equal(t, wantTs, gotTs)
			assert.Equal(t, zeroTracked, gotZero)
			assert.Equal(t, suffix, gotSuffix)
		}
	}
}

func TestParseFilenameRejectsMalformed(t *testing.T) {
	cases := []string{
		"",
		"nodot",
		"1,2,3.",
		"1,2,x.pdb",
		".pdb",
		"1,2,3.whatever",
	}

	for _, c := range cases {
		_, _, _, err := ParseFilename(c)
		assert.Error(t, err, "expected error for %q", c)
	}
}
