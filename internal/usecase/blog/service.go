package blog

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/Guyuepp/threaded-blog/domain"
)

const bloomWarmupBatch = 1000

type Service struct {
	blogRepo  domain.BlogRepository
	bloomRepo domain.BloomRepository
}

var _ domain.BlogUsecase = (*Service)(nil)

func NewService(b domain.BlogRepository, bloom domain.BloomRepository) *Service {
	return &Service{
		blogRepo:  b,
		bloomRepo: bloom,
	}
}

// InitBloomFilter 分批把所有博客ID写入布隆过滤器
func (s *Service) InitBloomFilter(ctx context.Context) error {
	var (
		cursor int64
		total  int
	)
	for {
		ids, err := s.blogRepo.FetchIDs(ctx, cursor, bloomWarmupBatch)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			break
		}
		if err := s.bloomRepo.BulkAdd(ctx, ids); err != nil {
			return err
		}
		total += len(ids)
		cursor = ids[len(ids)-1]
		if len(ids) < bloomWarmupBatch {
			break
		}
	}
	logrus.Infof("bloom filter warmed with %d blog ids", total)
	return nil
}
