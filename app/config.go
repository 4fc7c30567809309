package main

import (
	"os"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	mysqlRepo "github.com/Guyuepp/threaded-blog/internal/repository/mysql"
)

const (
	defaultTimeout           = 30
	defaultAddress           = ":9090"
	defaultCacheDB           = 0
	defaultBloomBitSize      = 10000000
	defaultReconcileInterval = 10 * time.Minute
	defaultReconcileGrace    = 2 * time.Minute
	defaultDriver            = mysqlRepo.DriverMySQL
	driverMemory             = "memory"
	dbMaxRetry               = 10
	dbRetryIntervalSec       = 2
)

type config struct {
	DB                mysqlRepo.Config
	CacheAddr         string
	CachePass         string
	CacheDB           int
	Timeout           time.Duration
	Address           string
	JWTSecret         string
	BloomBitSize      uint64
	NatsURL           string
	ReconcileInterval time.Duration
	ReconcileGrace    time.Duration
}

func loadConfig() config {
	cfg := config{
		DB: mysqlRepo.Config{
			Driver:        getenv("DATABASE_DRIVER", defaultDriver),
			Host:          os.Getenv("DATABASE_HOST"),
			Port:          os.Getenv("DATABASE_PORT"),
			User:          os.Getenv("DATABASE_USER"),
			Password:      os.Getenv("DATABASE_PASS"),
			Name:          os.Getenv("DATABASE_NAME"),
			URL:           os.Getenv("DATABASE_URL"),
			Location:      time.UTC,
			MaxRetry:      dbMaxRetry,
			RetryInterval: dbRetryIntervalSec * time.Second,
		},
		CacheAddr: os.Getenv("CACHE_HOST") + ":" + os.Getenv("CACHE_PORT"),
		CachePass: os.Getenv("CACHE_PASS"),
		Address:   getenv("SERVER_ADDRESS", defaultAddress),
		JWTSecret: os.Getenv("JWT_SECRET"),
		NatsURL:   os.Getenv("NATS_URL"),
	}

	cacheDB, err := strconv.Atoi(os.Getenv("CACHE_DB"))
	if err != nil {
		logrus.Warn("failed to parse CACHE_DB, using default cacheDB")
		cacheDB = defaultCacheDB
	}
	cfg.CacheDB = cacheDB

	timeout, err := strconv.Atoi(os.Getenv("CONTEXT_TIMEOUT"))
	if err != nil {
		logrus.Warn("failed to parse CONTEXT_TIMEOUT, using default timeout")
		timeout = defaultTimeout
	}
	cfg.Timeout = time.Duration(timeout) * time.Second

	bloomBitSize, err := strconv.ParseUint(os.Getenv("BLOOM_FILTER_SIZE"), 10, 64)
	if err != nil {
		logrus.Warn("failed to parse BLOOM_FILTER_SIZE, using default size")
		bloomBitSize = defaultBloomBitSize
	}
	cfg.BloomBitSize = bloomBitSize

	interval, err := time.ParseDuration(os.Getenv("RECONCILE_INTERVAL"))
	if err != nil || interval <= 0 {
		interval = defaultReconcileInterval
	}
	cfg.ReconcileInterval = interval

	grace, err := time.ParseDuration(os.Getenv("RECONCILE_GRACE"))
	if err != nil || grace <= 0 {
		grace = defaultReconcileGrace
	}
	if grace >= interval {
		logrus.Warnf("RECONCILE_GRACE %s is not below the interval, using %s", grace, interval/2)
		grace = interval / 2
	}
	cfg.ReconcileGrace = grace

	if cfg.JWTSecret == "" {
		logrus.Warn("JWT_SECRET is empty, every request will be anonymous")
	}
	return cfg
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	level, err := logrus.ParseLevel(getenv("LOG_LEVEL", "info"))
	if err != nil {
		logrus.Warnf("unknown LOG_LEVEL, using info: %v", err)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}
