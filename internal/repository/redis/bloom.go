package redis

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/Guyuepp/threaded-blog/domain"
)

const (
	KeyBlogBloom = "bloom:blog:ids"

	defaultBloomHashes = 3
)

// bloomFilter is a Redis bitmap bloom filter over blog ids.
type bloomFilter struct {
	client  *redis.Client
	key     string
	bitSize uint64
	hashes  int
}

var _ domain.BloomRepository = (*bloomFilter)(nil)

func NewBlogBloomFilter(client *redis.Client, bitSize uint64) *bloomFilter {
	return &bloomFilter{
		client:  client,
		key:     KeyBlogBloom,
		bitSize: max(bitSize, 1),
		hashes:  defaultBloomHashes,
	}
}

func (r *bloomFilter) Add(ctx context.Context, id int64) error {
	return r.BulkAdd(ctx, []int64{id})
}

func (r *bloomFilter) BulkAdd(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	pipe := r.client.Pipeline()
	for _, id := range ids {
		for _, offset := range r.offsets(id) {
			pipe.SetBit(ctx, r.key, int64(offset), 1)
		}
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (r *bloomFilter) Exists(ctx context.Context, id int64) (bool, error) {
	pipe := r.client.Pipeline()
	for _, offset := range r.offsets(id) {
		pipe.GetBit(ctx, r.key, int64(offset))
	}
	cmds, err := pipe.Exec(ctx)
	if err != nil {
		return false, err
	}

	for _, cmd := range cmds {
		val, err := cmd.(*redis.IntCmd).Result()
		if err != nil {
			return false, err
		}
		if val == 0 {
			return false, nil
		}
	}
	return true, nil
}

// offsets uses double hashing: g_i(x) = h1(x) + i*h2(x) mod m.
func (r *bloomFilter) offsets(id int64) []uint64 {
	data := strconv.AppendInt(nil, id, 10)

	h := fnv.New64a()
	h.Write(data)
	sum := h.Sum64()
	h1, h2 := sum&0xffffffff, sum>>32|1

	offsets := make([]uint64, r.hashes)
	for i := range offsets {
		offsets[i] = (h1 + uint64(i)*h2) % r.bitSize
	}
	return offsets
}
