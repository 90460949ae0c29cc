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

package metrics

import (
	"fmt"

	"github.com/DataDog/datadog-go/statsd"
	"github.com/tutumagi/perception/config"
	"github.com/tutumagi/perception/logger"
)

// Client is the interface to required dogstatsd functions
type Client interface {
	Count(name string, value int64, tags []string, rate float64) error
	Gauge(name string, value float64, tags []string, rate float64) error
	TimeInMilliseconds(name string, value float64, tags []string, rate float64) error
}

// StatsdReporter sends application metrics to statsd
type StatsdReporter struct {
	client      Client
	rate        float64
	sense       string
	defaultTags []string
}

// NewStatsdReporter returns an instance of statsd reporter and an
// error if something fails
func NewStatsdReporter(
	cfg *config.Config,
	sense string,
	tagsMap map[string]string,
	clientOrNil ...Client,
) (*StatsdReporter, error) {
	host := cfg.GetString("perception.metrics.statsd.host")
	prefix := cfg.GetString("perception.metrics.statsd.prefix")
	rate := cfg.GetFloat64("perception.metrics.statsd.rate")

	sr := &StatsdReporter{
		rate:        rate,
		sense:       sense,
		defaultTags: []string{fmt.Sprintf("%s:%s", senseLabel, sense)},
	}
	for k, v := range tagsMap {
		sr.defaultTags = append(sr.defaultTags, fmt.Sprintf("%s:%s", k, v))
	}

	if len(clientOrNil) > 0 && clientOrNil[0] != nil {
		sr.client = clientOrNil[0]
		return sr, nil
	}

	c, err := statsd.New(host, statsd.WithNamespace(prefix))
	if err != nil {
		return nil, err
	}
	logger.Infof("statsd reporter connected to %s", host)
	sr.client = c
	return sr, nil
}

func (s *StatsdReporter) tags(tags map[string]string) []string {
	fullTags := make([]string, 0, len(s.defaultTags)+len(tags))
	fullTags = append(fullTags, s.defaultTags...)
	for k, v := range tags {
		fullTags = append(fullTags, fmt.Sprintf("%s:%s", k, v))
	}
	return fullTags
}

// ReportCount sends count reports to statsd
func (s *StatsdReporter) ReportCount(metric string, tags map[string]string, count float64) error {
	return s.client.Count(metric, int64(count), s.tags(tags), s.rate)
}

// ReportGauge sends gauge reports to statsd
func (s *StatsdReporter) ReportGauge(metric string, tags map[string]string, value float64) error {
	return s.client.Gauge(metric, value, s.tags(tags), s.rate)
}

// ReportSummary sends summary reports to statsd, values are seconds
func (s *StatsdReporter) ReportSummary(metric string, tags map[string]string, value float64) error {
	return s.client.TimeInMilliseconds(metric, value*1000, s.tags(tags), s.rate)
}
