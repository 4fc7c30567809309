package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/Guyuepp/threaded-blog/domain"
	"github.com/Guyuepp/threaded-blog/internal/events"
	"github.com/Guyuepp/threaded-blog/internal/repository"
	"github.com/Guyuepp/threaded-blog/internal/repository/memory"
	mysqlRepo "github.com/Guyuepp/threaded-blog/internal/repository/mysql"
	myRedisCache "github.com/Guyuepp/threaded-blog/internal/repository/redis"
	"github.com/Guyuepp/threaded-blog/internal/rest"
	"github.com/Guyuepp/threaded-blog/internal/rest/middleware"
	"github.com/Guyuepp/threaded-blog/internal/sanitize"
	"github.com/Guyuepp/threaded-blog/internal/usecase/blog"
	"github.com/Guyuepp/threaded-blog/internal/usecase/comment"
	"github.com/Guyuepp/threaded-blog/internal/workers"
)

func init() {
	if err := godotenv.Load(); err != nil {
		logrus.Warn("no .env file found, reading configuration from the environment")
	}
}

// stores 三个仓储加布隆过滤器, 由 DATABASE_DRIVER 决定实现
type stores struct {
	comments domain.CommentRepository
	blogs    domain.BlogRepository
	users    domain.UserRepository
	bloom    domain.BloomRepository
	close    func()
}

func main() {
	setupLogger()
	cfg := loadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		st  stores
		err error
	)
	if cfg.DB.Driver == driverMemory {
		st = memoryStores()
	} else {
		st, err = sqlStores(ctx, cfg)
		if err != nil {
			logrus.Fatalf("failed to prepare stores: %v", err)
		}
	}
	defer st.close()

	publisher, closePublisher, err := events.NewPublisher(cfg.NatsURL)
	if err != nil {
		logrus.Fatalf("failed to connect to nats: %v", err)
	}
	defer closePublisher()

	// Build service Layer
	blogSvc := blog.NewService(st.blogs, st.bloom)
	commentSvc := comment.NewService(st.comments, st.blogs, st.users, st.bloom, sanitize.NewHTML(), publisher)

	// Prepare bloom filter
	if err := blogSvc.InitBloomFilter(ctx); err != nil {
		logrus.Errorf("failed to init bloom filter: %v", err)
		return
	}

	// Start worker
	reconciler := workers.NewCounterReconciler(st.comments, st.blogs, st.bloom, cfg.ReconcileInterval, cfg.ReconcileGrace)
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		reconciler.Start(ctx)
	}()

	// prepare gin
	gin.SetMode(gin.ReleaseMode)
	route := gin.New()
	route.Use(gin.Recovery())
	route.Use(middleware.Logger())
	route.Use(middleware.CORS())
	route.Use(middleware.SetRequestContextWithTimeout(cfg.Timeout))
	route.Use(middleware.AuthMiddleware(cfg.JWTSecret))

	rest.NewCommentHandler(commentSvc).Register(route)

	// Start Server
	srv := &http.Server{
		Addr:    cfg.Address,
		Handler: route,
	}
	go func() {
		logrus.Infof("Server is running on %s", cfg.Address)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("listen: %s", err)
		}
	}()

	// shutdown
	<-ctx.Done()
	logrus.Info("Shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Waiting for worker to cleanup...")
	select {
	case <-workerDone:
	case <-shutdownCtx.Done():
	}

	logrus.Info("Server exiting")
}

func sqlStores(ctx context.Context, cfg config) (stores, error) {
	db := mysqlRepo.NewClient(cfg.DB)
	if err := db.Connect(ctx); err != nil {
		return stores{}, err
	}
	if err := db.Migrate(ctx); err != nil {
		_ = db.Close()
		return stores{}, err
	}

	// prepare cache
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.CacheAddr,
		Password: cfg.CachePass,
		DB:       cfg.CacheDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		_ = db.Close()
		return stores{}, err
	}

	// Blog 的三层: DB -> Cache -> Repository 协调层
	blogDBRepo := mysqlRepo.NewBlogDBRepository(db.DB)
	blogCache := myRedisCache.NewBlogCache(client)
	blogRepo := repository.NewBlogRepository(blogDBRepo, blogCache)

	return stores{
		comments: mysqlRepo.NewCommentRepository(db.DB),
		blogs:    blogRepo,
		users:    mysqlRepo.NewUserRepository(db.DB),
		bloom:    myRedisCache.NewBlogBloomFilter(client, cfg.BloomBitSize),
		close: func() {
			if err := client.Close(); err != nil {
				logrus.Errorf("got error when closing the cache connection: %v", err)
			}
			if err := db.Close(); err != nil {
				logrus.Errorf("got error when closing the DB connection: %v", err)
			}
		},
	}, nil
}

// memoryStores 本地开发用, 预置一篇开放评论的博客和一个用户
func memoryStores() stores {
	now := time.Now()
	logrus.Warn("using in-memory stores, data is lost on exit")
	return stores{
		comments: memory.NewCommentStore(),
		blogs: memory.NewBlogStore(domain.Blog{
			ID:                1,
			Title:             "Hello",
			Status:            domain.BlogStatusPublished,
			IsCommentsEnabled: true,
			CreatedAt:         now,
			UpdatedAt:         now,
		}),
		users: memory.NewUserStore(domain.User{
			ID:        1,
			Username:  "demo",
			CreatedAt: now,
			UpdatedAt: now,
		}),
		bloom: memory.NewBloom(),
		close: func() {},
	}
}
