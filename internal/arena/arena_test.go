package arena

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBucketsNewReturnsDistinctZeroedValues(t *testing.T) {
	var b Buckets[int]
	x := b.New()
	y := b.New()
	require.NotSame(t, x, y)
	require.Equal(t, 0, *x)

	*x = 7
	require.Equal(t, 0, *y, "writing through x must not alias y")
}

func TestBucketsSpillsIntoANewBucket(t *testing.T) {
	var b Buckets[int]
	ptrs := make([]*int, 0, bucketElems+10)
	for i := 0; i < bucketElems+10; i++ {
		p := b.New()
		*p = i
		ptrs = append(ptrs, p)
	}
	for i, p := range ptrs {
		require.Equal(t, i, *p, "value at index %d was clobbered by a later bucket allocation", i)
	}
}

func TestNewSliceZeroLength(t *testing.T) {
	var b Buckets[int]
	require.Nil(t, b.NewSlice(0))
}

func TestNewSliceWithinABucket(t *testing.T) {
	var b Buckets[int]
	s := b.NewSlice(5)
	require.Len(t, s, 5)
	for i := range s {
		s[i] = i * 2
	}
	require.Equal(t, []int{0, 2, 4, 6, 8}, s)
}

func TestNewSliceOverflowGetsItsOwnBucket(t *testing.T) {
	var b Buckets[int]
	s := b.NewSlice(bucketElems + 1)
	require.Len(t, s, bucketElems+1)

	// a regular New() call right after must not alias the overflow slice.
	p := b.New()
	*p = -1
	require.NotEqual(t, -1, s[0])
}
