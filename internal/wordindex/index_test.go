package wordindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_DedupesNormalizesAndFilters(t *testing.T) {
	ix := Build([]string{"cat", "CAT", " Cat ", "ca7", "a", "dog"}, 5, 0)

	require.Equal(t, 2, ix.Len())
	assert.Equal(t, 2, ix.BucketSize(3))
	assert.Equal(t, 0, ix.BucketSize(1))
}

func TestBuild_CapsAtMaxNumWords(t *testing.T) {
	ix := Build([]string{"cat", "dog", "rat", "hat"}, 5, 2)
	assert.Equal(t, 2, ix.Len())
}

func TestBuild_RejectsTooLong(t *testing.T) {
	ix := Build([]string{"toolongword"}, 5, 0)
	assert.Equal(t, 0, ix.Len())
}

func TestQuery_NoConstraintsReturnsWholeBucket(t *testing.T) {
	ix := Build([]string{"cat", "car", "can"}, 5, 0)
	ids := ix.Query(3, nil)
	assert.Len(t, ids, 3)
}

func TestQuery_IntersectsConstraints(t *testing.T) {
	ix := Build([]string{"cat", "car", "can", "bat"}, 5, 0)

	ids := ix.Query(3, []Constraint{{Pos: 0, Letter: 'C'}})
	words := idsToWords(ix, 3, ids)
	assert.ElementsMatch(t, []string{"CAT", "CAR", "CAN"}, words)

	ids = ix.Query(3, []Constraint{{Pos: 0, Letter: 'C'}, {Pos: 2, Letter: 'T'}})
	words = idsToWords(ix, 3, ids)
	assert.Equal(t, []string{"CAT"}, words)
}

func TestQuery_EmptyIntersectionIsEmpty(t *testing.T) {
	ix := Build([]string{"cat", "dog"}, 5, 0)
	ids := ix.Query(3, []Constraint{{Pos: 0, Letter: 'Z'}})
	assert.Empty(t, ids)
}

func TestIntersectSorted(t *testing.T) {
	assert.Equal(t, []int{2, 4}, IntersectSorted([]int{1, 2, 3, 4}, []int{2, 4, 6}))
	assert.Empty(t, IntersectSorted([]int{1, 2}, nil))
}

func TestRemoveID(t *testing.T) {
	out := RemoveID([]int{1, 2, 3}, 2)
	assert.Equal(t, []int{1, 3}, out)

	out = RemoveID([]int{1, 2, 3}, 9)
	assert.Equal(t, []int{1, 2, 3}, out)
}

func idsToWords(ix *Index, length int, ids []int) []string {
	words := make([]string, len(ids))
	for i, id := range ids {
		words[i] = ix.Word(length, id)
	}
	return words
}
