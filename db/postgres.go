package db

import (
	"errors"
	"fmt"
	"math"
	"net"
	"net/url"

	"github.com/jackc/pgx/v4/pgxpool"
)

const postgresScheme = "postgres"

// ErrInvalidPoolSize is returned for a pool size that doesn't fit a pgx pool
var ErrInvalidPoolSize = errors.New("invalid pool size")

// URL composes the connection string of the database described by cfg
func (cfg Config) URL() string {
	u := url.URL{
		Scheme: postgresScheme,
		User:   url.UserPassword(cfg.User, cfg.Password),
		Host:   net.JoinHostPort(cfg.Host, cfg.Port),
		Path:   "/" + cfg.Name,
	}
	return u.String()
}

// ParseURL checks that connString is a valid postgres connection string and
// returns the pool configuration it describes. poolSize overrides the pool max
// connections when it's greater than 0. No connection is opened.
func ParseURL(connString string, poolSize int) (*pgxpool.Config, error) {
	if connString == "" {
		return nil, errors.New("empty connection string")
	}
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse DB config: %w", err)
	}
	if poolSize < 0 || poolSize > math.MaxInt32 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPoolSize, poolSize)
	}
	if poolSize > 0 {
		config.MaxConns = int32(poolSize)
	}
	return config, nil
}

// Redact hides the password of a URL connection string so it can be logged
func Redact(connString string) string {
	u, err := url.Parse(connString)
	if err != nil || u.User == nil {
		return connString
	}
	return u.Redacted()
}
