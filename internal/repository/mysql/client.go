package mysql

import (
	"context"
	"fmt"
	"net"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/sirupsen/logrus"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Guyuepp/threaded-blog/internal/repository/mysql/model"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// Config describes how to reach the relational store.
type Config struct {
	Driver        string
	Host          string
	Port          string
	User          string
	Password      string
	Name          string
	URL           string // full postgres DSN, takes precedence over the discrete fields
	Location      *time.Location
	MaxRetry      int
	RetryInterval time.Duration
}

// DSN renders the connection string for the configured driver.
func (c Config) DSN() string {
	switch c.Driver {
	case DriverPostgres:
		if c.URL != "" {
			return c.URL
		}
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			c.Host, c.Port, c.User, c.Password, c.Name)
	default:
		cfg := mysqldriver.NewConfig()
		cfg.User = c.User
		cfg.Passwd = c.Password
		cfg.Net = "tcp"
		cfg.Addr = net.JoinHostPort(c.Host, c.Port)
		cfg.DBName = c.Name
		cfg.ParseTime = true
		if c.Location != nil {
			cfg.Loc = c.Location
		}
		return cfg.FormatDSN()
	}
}

func (c Config) dialector() gorm.Dialector {
	if c.Driver == DriverPostgres {
		return postgres.Open(c.DSN())
	}
	return gormmysql.Open(c.DSN())
}

// Client owns the gorm handle. It is built by the composition root and handed
// to repositories; nothing in this package keeps a global connection.
type Client struct {
	cfg Config
	DB  *gorm.DB
}

func NewClient(cfg Config) *Client {
	if cfg.MaxRetry <= 0 {
		cfg.MaxRetry = 1
	}
	return &Client{cfg: cfg}
}

// Connect opens the pool and pings it, retrying while the database comes up.
func (c *Client) Connect(ctx context.Context) error {
	var err error
	for i := range c.cfg.MaxRetry {
		err = c.open(ctx)
		if err == nil {
			return nil
		}
		logrus.Warnf("failed to connect to database (attempt %d/%d): %v", i+1, c.cfg.MaxRetry, err)

		if i == c.cfg.MaxRetry-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.cfg.RetryInterval):
		}
	}
	return fmt.Errorf("could not connect to database after %d attempts: %w", c.cfg.MaxRetry, err)
}

func (c *Client) open(ctx context.Context) error {
	db, err := gorm.Open(c.cfg.dialector(), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return err
	}
	c.DB = db
	return nil
}

// Migrate creates or updates the tables this service owns or reads.
func (c *Client) Migrate(ctx context.Context) error {
	return c.DB.WithContext(ctx).AutoMigrate(&model.User{}, &model.Blog{}, &model.Comment{})
}

func (c *Client) Close() error {
	if c.DB == nil {
		return nil
	}
	sqlDB, err := c.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
