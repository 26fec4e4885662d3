package config

import "time"

// Config covers the producer side only; reservation events are consumed by
// external notification tooling.
type Config struct {
	Brokers []string

	ProducerCompression  string
	ProducerRequireAcks  int
	ProducerMaxAttempts  int
	ProducerBatchTimeout time.Duration
	ProducerAsync        bool
}

func New(brokers []string) *Config {
	return &Config{
		Brokers:              brokers,
		ProducerCompression:  "snappy",
		ProducerRequireAcks:  -1,
		ProducerMaxAttempts:  3,
		ProducerBatchTimeout: 100 * time.Millisecond,
	}
}
