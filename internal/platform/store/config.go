package store

import "time"

// Config aggregates per backend configuration
type Config struct {
	AppName string

	RDS RedisConfig
}

// RedisConfig configures redis connectivity
type RedisConfig struct {
	Enabled  bool
	Addr     string
	DB       int
	Password string

	// Guard/boot knobs:
	ConnectRetries int           // default 5 (exponential backoff between attempts)
	PingTimeout    time.Duration // default 5s
}

func (c RedisConfig) retries() int {
	if c.ConnectRetries <= 0 {
		return 5
	}
	return c.ConnectRetries
}

func (c RedisConfig) pingTimeout() time.Duration {
	if c.PingTimeout <= 0 {
		return 5 * time.Second
	}
	return c.PingTimeout
}
