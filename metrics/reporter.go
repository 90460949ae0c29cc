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
	"github.com/tutumagi/perception/logger"
	"go.uber.org/zap"
)

// Reporter interface
type Reporter interface {
	ReportCount(metric string, tags map[string]string, count float64) error
	ReportSummary(metric string, tags map[string]string, value float64) error
	ReportGauge(metric string, tags map[string]string, value float64) error
}

// ReportCount reports to every reporter, errors are logged and swallowed
func ReportCount(reporters []Reporter, metric string, tags map[string]string, count float64) {
	for _, r := range reporters {
		if err := r.ReportCount(metric, tags, count); err != nil {
			logger.Warn("failed to report count", zap.String("metric", metric), zap.Error(err))
		}
	}
}

// ReportSummary reports to every reporter, errors are logged and swallowed
func ReportSummary(reporters []Reporter, metric string, tags map[string]string, value float64) {
	for _, r := range reporters {
		if err := r.ReportSummary(metric, tags, value); err != nil {
			logger.Warn("failed to report summary", zap.String("metric", metric), zap.Error(err))
		}
	}
}

// ReportGauge reports to every reporter, errors are logged and swallowed
func ReportGauge(reporters []Reporter, metric string, tags map[string]string, value float64) {
	for _, r := range reporters {
		if err := r.ReportGauge(metric, tags, value); err != nil {
			logger.Warn("failed to report gauge", zap.String("metric", metric), zap.Error(err))
		}
	}
}
