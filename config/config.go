// Copyright (c) nano Author and TFG Co. All Rights Reserved.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is a wrapper around a viper config
type Config struct {
	config *viper.Viper
}

// NewConfig creates a new config with a given viper config if given
func NewConfig(cfgs ...*viper.Viper) *Config {
	var cfg *viper.Viper
	if len(cfgs) > 0 {
		cfg = cfgs[0]
	} else {
		cfg = viper.New()
	}

	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()
	c := &Config{config: cfg}
	c.fillDefaultValues()
	return c
}

func (c *Config) fillDefaultValues() {
	defaultsMap := map[string]interface{}{
		"perception.sight.maxtracespertick":                     6,
		"perception.sight.minqueriespertimeslicecheck":          40,
		"perception.sight.maxtimeslicepertick":                  5 * time.Millisecond,
		"perception.sight.highimportancequerydistancethreshold": 300,
		"perception.sight.maxqueryimportance":                   60,
		"perception.sight.sightlimitqueryimportance":            10,
		"perception.sight.tracecost":                            1,
		"perception.sight.importancelimittracefraction":         0.75,
		"perception.sight.minageperskippedtick":                 60,
		"perception.sight.autosightcountstowardtimeslice":       true,
		"perception.tick.interval":                              time.Second / 30,
		"perception.events.nats.enabled":                        false,
		"perception.events.nats.url":                            "nats://localhost:4222",
		"perception.events.nats.subject":                        "perception.sight",
		"perception.events.nats.connectiontimeout":              2 * time.Second,
		"perception.events.nats.maxreconnectionretries":         15,
		"perception.debug.enabled":                              false,
		"perception.debug.addr":                                 ":8090",
		"perception.metrics.constTags":                          map[string]string{},
		"perception.metrics.prometheus.enabled":                 false,
		"perception.metrics.statsd.enabled":                     false,
		"perception.metrics.statsd.host":                        "localhost:8125",
		"perception.metrics.statsd.prefix":                      "perception.",
		"perception.metrics.statsd.rate":                        1,
		"perception.tracing.jaeger.disabled":                    true,
		"perception.tracing.jaeger.probability":                 1.0,
		"perception.tracing.jaeger.agenthostport":               "localhost:6831",
		"perception.tracing.jaeger.servicename":                 "perception",
		"logger.level":                                          "info",
		"logger.format":                                         "json",
		"logger.dir":                                            "",
		"logger.rotation":                                       false,
		"logger.stdout":                                         true,
		"logger.maxsize":                                        100,
		"logger.maxage":                                         7,
		"logger.maxbackups":                                     10,
		"logger.localtime":                                      true,
		"logger.compress":                                       false,
	}

	for param := range defaultsMap {
		if c.config.Get(param) == nil {
			c.config.SetDefault(param, defaultsMap[param])
		}
	}
}

// Viper returns the underlying viper config
func (c *Config) Viper() *viper.Viper {
	return c.config
}

// GetDuration returns a duration from the inner config
func (c *Config) GetDuration(s string) time.Duration {
	return c.config.GetDuration(s)
}

// GetString returns a string from the inner config
func (c *Config) GetString(s string) string {
	return c.config.GetString(s)
}

// GetInt returns an int from the inner config
func (c *Config) GetInt(s string) int {
	return c.config.GetInt(s)
}

// GetBool returns an boolean from the inner config
func (c *Config) GetBool(s string) bool {
	return c.config.GetBool(s)
}

// GetFloat64 returns a float64 from the inner config
func (c *Config) GetFloat64(s string) float64 {
	return c.config.GetFloat64(s)
}

// GetStringSlice returns a string slice from the inner config
func (c *Config) GetStringSlice(s string) []string {
	return c.config.GetStringSlice(s)
}

// GetStringMapString returns a string map string from the inner config
func (c *Config) GetStringMapString(s string) map[string]string {
	return c.config.GetStringMapString(s)
}

// Get returns an interface from the inner config
func (c *Config) Get(s string) interface{} {
	return c.config.Get(s)
}

// Set sets a value in the inner config
func (c *Config) Set(key string, value interface{}) {
	c.config.Set(key, value)
}
