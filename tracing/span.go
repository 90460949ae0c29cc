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

package tracing

import (
	"context"

	opentracing "github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/opentracing/opentracing-go/log"
	"github.com/tutumagi/perception/logger"
)

type spanKey struct{}

// StartSpan starts a new span with a given parent context, operation name and tags.
// The span is stored in the returned context.
func StartSpan(
	parentCtx context.Context,
	opName string,
	tags opentracing.Tags,
) context.Context {
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	var parent opentracing.SpanContext
	if span := opentracing.SpanFromContext(parentCtx); span != nil {
		parent = span.Context()
	}
	span := opentracing.StartSpan(opName, opentracing.ChildOf(parent), tags)
	ctx := opentracing.ContextWithSpan(parentCtx, span)
	return context.WithValue(ctx, spanKey{}, span)
}

// SpanFromContext returns the span started by StartSpan, or nil
func SpanFromContext(ctx context.Context) opentracing.Span {
	if ctx == nil {
		return nil
	}
	if span, ok := ctx.Value(spanKey{}).(opentracing.Span); ok {
		return span
	}
	return nil
}

// SetTags adds tags to the span stored in ctx
func SetTags(ctx context.Context, tags opentracing.Tags) {
	span := SpanFromContext(ctx)
	if span == nil {
		return
	}
	for k, v := range tags {
		span.SetTag(k, v)
	}
}

// FinishSpan finishes a span retrieved from the given context and logs the error if it exists
func FinishSpan(ctx context.Context, err error) {
	span := SpanFromContext(ctx)
	if span == nil {
		logger.Debug("tracing: no span to finish")
		return
	}
	defer span.Finish()
	if err != nil {
		LogError(span, err.Error())
	}
}

// LogError logs an error to a span
func LogError(span opentracing.Span, message string) {
	span.SetTag("error", true)
	span.LogFields(
		log.String("event", "error"),
		log.String("message", message),
	)
	ext.Error.Set(span, true)
}
