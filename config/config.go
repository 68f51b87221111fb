package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type (
	Config struct {
		HTTP      HTTP
		Log       Log
		PG        PG
		S3        S3
		Kafka     Kafka
		Scheduler Scheduler
		Commands  Commands
		Swagger   Swagger
	}

	HTTP struct {
		Port           string `env:"HTTP_PORT,required"`
		UsePreforkMode bool   `env:"HTTP_USE_PREFORK_MODE" envDefault:"false"`
	}

	Log struct {
		Level string `env:"LOG_LEVEL,required"`
	}

	PG struct {
		PoolMax int    `env:"PG_POOL_MAX,required"`
		URL     string `env:"PG_URL,required"`
	}

	S3 struct {
		Endpoint       string        `env:"S3_ENDPOINT,required"`
		AccessKey      string        `env:"S3_ACCESS_KEY,required"`
		SecretKey      string        `env:"S3_SECRET_KEY,required"`
		Bucket         string        `env:"S3_BUCKET,required"`
		CfgLoadTimeout time.Duration `env:"S3_LOAD_CFG_TIMEOUT" envDefault:"10s"`
	}

	Kafka struct {
		Brokers       []string `env:"KAFKA_BROKERS,required"`
		GroupID       string   `env:"KAFKA_GROUP_ID,required"`
		EventsTopic   string   `env:"KAFKA_EVENTS_TOPIC,required"`
		CommandsTopic string   `env:"KAFKA_COMMANDS_TOPIC,required"`
	}

	Scheduler struct {
		SweepInterval   time.Duration `env:"SCHEDULER_SWEEP_INTERVAL" envDefault:"15m"`
		SweepTimeout    time.Duration `env:"SCHEDULER_SWEEP_TIMEOUT" envDefault:"2m"` // listing, transforms and catalog writes for the whole batch
		ShutdownTimeout time.Duration `env:"SCHEDULER_SHUTDOWN_TIMEOUT" envDefault:"5s"`
	}

	Commands struct {
		CommitTimeout   time.Duration `env:"COMMANDS_COMMIT_TIMEOUT" envDefault:"2s"`
		ProcessTimeout  time.Duration `env:"COMMANDS_PROCESS_TIMEOUT" envDefault:"30s"` // one command may run a full transform
		ShutdownTimeout time.Duration `env:"COMMANDS_SHUTDOWN_TIMEOUT" envDefault:"5s"`
		Workers         int           `env:"COMMANDS_WORKERS" envDefault:"2"`
	}

	Swagger struct {
		Enabled bool `env:"SWAGGER_ENABLED" envDefault:"false"`
	}
)

func New() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	return cfg, nil
}
