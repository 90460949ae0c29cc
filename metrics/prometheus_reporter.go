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
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/tutumagi/perception/config"
)

// senseLabel is attached to every metric so several senses can share a registry
const senseLabel = "sense"

// PrometheusReporter reports metrics to prometheus
type PrometheusReporter struct {
	name                string
	namespace           string
	constLabels         map[string]string
	countReportersMap   map[string]*prometheus.CounterVec
	summaryReportersMap map[string]*prometheus.SummaryVec
	gaugeReportersMap   map[string]*prometheus.GaugeVec
	mu                  sync.Mutex
}

// NewPrometheusReporter creates a reporter registered in the given registerer,
// prometheus.DefaultRegisterer is used when registerer is nil
func NewPrometheusReporter(
	name string,
	cfg *config.Config,
	constLabels map[string]string,
	registerer prometheus.Registerer,
) (*PrometheusReporter, error) {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	if constLabels == nil && cfg != nil {
		constLabels = cfg.GetStringMapString("perception.metrics.constTags")
	}
	p := &PrometheusReporter{
		name:                name,
		namespace:           "perception",
		constLabels:         constLabels,
		countReportersMap:   make(map[string]*prometheus.CounterVec),
		summaryReportersMap: make(map[string]*prometheus.SummaryVec),
		gaugeReportersMap:   make(map[string]*prometheus.GaugeVec),
	}
	if err := p.registerMetrics(registerer); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *PrometheusReporter) registerMetrics(registerer prometheus.Registerer) error {
	labels := []string{senseLabel}

	p.summaryReportersMap[UpdateTime] = prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Namespace:   p.namespace,
			Subsystem:   "sense",
			Name:        "update_time_seconds",
			Help:        "the time spent in one sense update",
			Objectives:  map[float64]float64{0.7: 0.02, 0.95: 0.005, 0.99: 0.001},
			ConstLabels: p.constLabels,
		},
		labels,
	)

	for metric, help := range map[string]string{
		Traces:          "the number of line of sight checks issued",
		QueriesServiced: "the number of sight queries evaluated",
		QueriesDropped:  "the number of dangling sight queries purged",
		EventsEmitted:   "the number of gained/lost sight events",
	} {
		p.countReportersMap[metric] = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   p.namespace,
				Subsystem:   "sense",
				Name:        metric + "_total",
				Help:        help,
				ConstLabels: p.constLabels,
			},
			labels,
		)
	}

	p.gaugeReportersMap[QueueSize] = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace:   p.namespace,
			Subsystem:   "sense",
			Name:        QueueSize,
			Help:        "the number of queued sight queries",
			ConstLabels: p.constLabels,
		},
		labels,
	)

	collectors := make([]prometheus.Collector, 0, len(p.countReportersMap)+2)
	for _, c := range p.countReportersMap {
		collectors = append(collectors, c)
	}
	for _, c := range p.summaryReportersMap {
		collectors = append(collectors, c)
	}
	for _, c := range p.gaugeReportersMap {
		collectors = append(collectors, c)
	}
	for _, c := range collectors {
		if err := registerer.Register(c); err != nil {
			return fmt.Errorf("register prometheus collector: %w", err)
		}
	}
	return nil
}

func (p *PrometheusReporter) labels(tags map[string]string) prometheus.Labels {
	sense := p.name
	if v, ok := tags[senseLabel]; ok && v != "" {
		sense = v
	}
	return prometheus.Labels{senseLabel: sense}
}

// ReportCount reports a count metric
func (p *PrometheusReporter) ReportCount(metric string, tags map[string]string, count float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	c, ok := p.countReportersMap[metric]
	if !ok {
		return ErrMetricNotKnown
	}
	c.With(p.labels(tags)).Add(count)
	return nil
}

// ReportSummary reports a summary metric
func (p *PrometheusReporter) ReportSummary(metric string, tags map[string]string, value float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	s, ok := p.summaryReportersMap[metric]
	if !ok {
		return ErrMetricNotKnown
	}
	s.With(p.labels(tags)).Observe(value)
	return nil
}

// ReportGauge reports a gauge metric
func (p *PrometheusReporter) ReportGauge(metric string, tags map[string]string, value float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	g, ok := p.gaugeReportersMap[metric]
	if !ok {
		return ErrMetricNotKnown
	}
	g.With(p.labels(tags)).Set(value)
	return nil
}
