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

var (
	// Traces is the number of line of sight checks issued in a tick
	Traces = "sight_traces"
	// QueriesServiced is the number of queries evaluated in a tick
	QueriesServiced = "sight_queries_serviced"
	// QueriesDropped is the number of dangling queries purged in a tick
	QueriesDropped = "sight_queries_dropped"
	// EventsEmitted is the number of gained/lost sight events in a tick
	EventsEmitted = "sight_events"
	// QueueSize is the number of queued queries after a tick
	QueueSize = "sight_queue_size"
	// UpdateTime is the wall time of a tick in seconds
	UpdateTime = "sight_update_time"
)
