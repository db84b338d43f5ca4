package tileset

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRankUnrankBijection(t *testing.T) {
	for k := 0; k <= MaxTiles; k++ {
		n := CombinationCount(k)
		for r := 0; r < n; r++ {
			m := Unrank(k, r)
			assert.Equal(t, k, m.Count(), "unrank(%d, %d) produced wrong cardinality", k, r)
			assert.Equal(t, r, Rank(m), "rank(unrank(%d, %d)) != %d", k, r, r)
		}
	}
}

func TestRankUnrankLargeK(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, k := range []int{7, 9, 12} {
		n := CombinationCount(k)
		for i := 0; i < 500; i++ {
			r := rng.Intn(n)
			m := Unrank(k, r)
			assert.Equal(t, r, Rank(m))
		}
	}
}

func TestCountGetLeastRemoveLeast(t *testing.T) {
	var m Tileset
	for _, p := range []int{3, 7, 24, 0, 12} {
		m = m.Add(p)
	}
	assert.Equal(t, 5, m.Count())
	assert.True(t, m.Has(0))
	assert.True(t, m.Has(24))
	assert.False(t, m.Has(1))

	seen := []int{}
	for tt := m; !tt.IsEmpty(); tt = tt.RemoveLeast() {
		seen = append(seen, tt.GetLeast())
	}
	assert.Equal(t, []int{0, 3, 7, 12, 24}, seen)
}

func TestRankSelect(t *testing.T) {
	m := Least(5).Add(10).Add(20) // {0,1,2,3,4,10,20}
	assert.Equal(t, Empty.Add(0), m.RankSelect(0))
	assert.Equal(t, Empty.Add(4), m.RankSelect(4))
	assert.Equal(t, Empty.Add(10), m.RankSelect(5))
	assert.Equal(t, Empty.Add(20), m.RankSelect(6))
}

func TestComplement(t *testing.T) {
	m := Least(12)
	c := m.Complement()
	assert.Equal(t, 0, m.Intersect(c).Count())
	assert.Equal(t, NumSlots, m.Union(c).Count())
}

func TestPopulateEqclassesSinglePosition(t *testing.T) {
	m := Least(24) // every position but 24 is in the map
	classes, n := PopulateEqclasses(m)
	assert.Equal(t, 1, n)
	assert.Equal(t, int8(0), classes[24])
	for p := 0; p < 24; p++ {
		assert.Equal(t, UnreachedEqclass, classes[p])
	}
}

func TestPopulateEqclassesTwoRegions(t *testing.T) {
	// Block off row 2 (positions 10..14) so rows 0-1 and rows 3-4 form two
	// disconnected regions of the blank-reachable complement.
	var m Tileset
	for p := 10; p <= 14; p++ {
		m = m.Add(p)
	}

	classes, n := PopulateEqclasses(m)
	assert.Equal(t, 2, n)
	assert.Equal(t, classes[0], classes[9])
	assert.NotEqual(t, classes[0], classes[15])
	for p := 10; p <= 14; p++ {
		assert.Equal(t, UnreachedEqclass, classes[p])
	}
}

func TestMorphIdentity(t *testing.T) {
	m := Least(5).Add(20)
	assert.Equal(t, m, Morph(m, 0))
}

func TestMorphIsPermutation(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 100; i++ {
		var m Tileset
		for j := 0; j < 6; j++ {
			m = m.Add(rng.Intn(NumSlots))
		}

		for g := 0; g < NumAutomorphisms; g++ {
			assert.Equal(t, m.Count(), Morph(m, g).Count(), "automorphism %d changed cardinality", g)
		}
	}
}

func TestCanonicalAutomorphismIsMinimal(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 200; i++ {
		var m Tileset
		for j := 0; j < 4; j++ {
			m = m.Add(rng.Intn(NumSlots))
		}

		g := CanonicalAutomorphism(m)
		canon := Morph(m, g)
		for h := 0; h < NumAutomorphisms; h++ {
			assert.LessOrEqual(t, uint32(canon), uint32(Morph(m, h)))
		}
	}
}
