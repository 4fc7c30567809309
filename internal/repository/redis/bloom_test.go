package redis

import (
	"context"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBloomOffsets(t *testing.T) {
	f := NewBlogBloomFilter(nil, 1024)
	a := f.offsets(42)
	require.Len(t, a, defaultBloomHashes)
	assert.Equal(t, a, f.offsets(42))
	for _, o := range a {
		assert.Less(t, o, uint64(1024))
	}
}

func TestBloomAddAndExists(t *testing.T) {
	ctx := context.Background()
	db, mock := redismock.NewClientMock()
	f := NewBlogBloomFilter(db, 1<<20)

	for _, o := range f.offsets(42) {
		mock.ExpectSetBit(KeyBlogBloom, int64(o), 1).SetVal(0)
	}
	for _, o := range f.offsets(42) {
		mock.ExpectGetBit(KeyBlogBloom, int64(o)).SetVal(1)
	}
	offsets := f.offsets(43)
	mock.ExpectGetBit(KeyBlogBloom, int64(offsets[0])).SetVal(1)
	mock.ExpectGetBit(KeyBlogBloom, int64(offsets[1])).SetVal(0)
	mock.ExpectGetBit(KeyBlogBloom, int64(offsets[2])).SetVal(1)

	require.NoError(t, f.Add(ctx, 42))

	ok, err := f.Exists(ctx, 42)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.Exists(ctx, 43)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBloomBulkAddEmpty(t *testing.T) {
	db, mock := redismock.NewClientMock()
	require.NoError(t, NewBlogBloomFilter(db, 64).BulkAdd(context.Background(), nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}
