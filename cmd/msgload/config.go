package main

import (
	"github.com/BurntSushi/toml"
)

type Config struct {
	NumThreads       int
	DurationSec      int
	PayloadSize      int
	NumHeaders       int
	ObjectPayload    bool
	Compress         bool
	StatsIntervalSec int
}

var defaultConfig = Config{
	NumThreads:       4,
	DurationSec:      10,
	PayloadSize:      1024,
	NumHeaders:       4,
	StatsIntervalSec: 5,
}

func (c *Config) ReadFromTomlFile(filename string) error {
	_, err := toml.DecodeFile(filename, c)
	return err
}

func (c *Config) validate() {
	if c.NumThreads <= 0 {
		c.NumThreads = defaultConfig.NumThreads
	}
	if c.DurationSec <= 0 {
		c.DurationSec = defaultConfig.DurationSec
	}
	if c.PayloadSize < 0 {
		c.PayloadSize = defaultConfig.PayloadSize
	}
	if c.NumHeaders < 0 {
		c.NumHeaders = defaultConfig.NumHeaders
	}
	if c.StatsIntervalSec <= 0 {
		c.StatsIntervalSec = defaultConfig.StatsIntervalSec
	}
	if c.ObjectPayload && c.Compress {
		// compression works on raw byte payloads only
		c.Compress = false
	}
}
