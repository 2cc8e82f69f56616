package config

import (
	"time"

	"go.mongodb.org/mongo-driver/mongo/options"
)

type DatabaseConfig struct {
	URI                 string        `envconfig:"URI" default:"mongodb://localhost:27017"`
	DatabaseName        string        `envconfig:"DB" default:"keep_clone"`
	NotesCollection     string        `envconfig:"NOTES_COLLECTION" default:"notes"`
	RemindersCollection string        `envconfig:"REMINDERS_COLLECTION" default:"reminders"`
	MaxPoolSize         uint64        `envconfig:"MAX_POOL_SIZE" default:"100"`
	MinPoolSize         uint64        `envconfig:"MIN_POOL_SIZE" default:"10"`
	MaxConnIdleTime     time.Duration `envconfig:"MAX_CONN_IDLE_TIME" default:"60s"`
	RetryWrites         bool          `envconfig:"RETRY_WRITES" default:"true"`
	ConnectTimeout      time.Duration `envconfig:"CONNECT_TIMEOUT" default:"10s"`
}

func (c DatabaseConfig) ClientOptions() *options.ClientOptions {
	return options.Client().
		ApplyURI(c.URI).
		SetMaxPoolSize(c.MaxPoolSize).
		SetMinPoolSize(c.MinPoolSize).
		SetMaxConnIdleTime(c.MaxConnIdleTime).
		SetRetryWrites(c.RetryWrites).
		SetConnectTimeout(c.ConnectTimeout)
}
