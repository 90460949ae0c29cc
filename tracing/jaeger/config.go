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

package jaeger

import (
	"io"

	opentracing "github.com/opentracing/opentracing-go"
	"github.com/tutumagi/perception/config"
	"github.com/tutumagi/perception/logger"
	jaegercfg "github.com/uber/jaeger-client-go/config"
)

// Options holds configuration options for Jaeger
type Options struct {
	Disabled      bool
	Probability   float64
	ServiceName   string
	AgentHostPort string
}

// OptionsFromConfig reads perception.tracing.jaeger.* keys
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Disabled:      cfg.GetBool("perception.tracing.jaeger.disabled"),
		Probability:   cfg.GetFloat64("perception.tracing.jaeger.probability"),
		ServiceName:   cfg.GetString("perception.tracing.jaeger.servicename"),
		AgentHostPort: cfg.GetString("perception.tracing.jaeger.agenthostport"),
	}
}

// Configure configures a global Jaeger tracer
func Configure(options Options) (io.Closer, error) {
	logger.Infof("Configuring Jaeger with options: %+v", options)
	cfg := jaegercfg.Configuration{
		ServiceName: options.ServiceName,
		Disabled:    options.Disabled,
		Sampler: &jaegercfg.SamplerConfig{
			Type:  "probabilistic",
			Param: options.Probability,
		},
		Reporter: &jaegercfg.ReporterConfig{
			LocalAgentHostPort: options.AgentHostPort,
		},
	}

	tracer, closer, err := cfg.NewTracer()
	if err != nil {
		return nil, err
	}
	opentracing.SetGlobalTracer(tracer)
	return closer, nil
}
