package sight

import (
	"context"
	"time"

	opentracing "github.com/opentracing/opentracing-go"
	"github.com/tutumagi/perception/engine/math32"
	"github.com/tutumagi/perception/engine/perception"
	"github.com/tutumagi/perception/engine/utils"
	"github.com/tutumagi/perception/logger"
	"github.com/tutumagi/perception/metrics"
	"github.com/tutumagi/perception/tracing"
	"go.uber.org/zap"
)

// StopReason 一帧的处理为什么结束
type StopReason int8

const (
	// StopDrained 所有 query 都处理完了
	StopDrained StopReason = iota
	// StopTraceBudget 视线检测预算用完了
	StopTraceBudget
	// StopTimeSlice 时间片用完了
	StopTimeSlice
)

func (r StopReason) String() string {
	switch r {
	case StopTraceBudget:
		return "traces"
	case StopTimeSlice:
		return "time"
	}
	return "drained"
}

// Stats 上一帧的统计
type Stats struct {
	// 消耗的检测预算
	Traces int
	// 调用 VisibilityTester 的次数
	TraceCalls int
	Serviced   int
	AutoSeen   int
	Dropped    int
	Events     int
	Elapsed    time.Duration
	StopReason StopReason
}

// LastStats 上一帧的统计
func (s *Sense) LastStats() Stats {
	return s.lastStats
}

// evaluation 一个 query 的处理结果
type evaluation struct {
	seen     bool
	auto     bool
	location math32.Vector3
	strength float32
	// 消耗的检测预算
	cost  int
	calls int
}

// Update 每帧调用一次，返回这一帧花费的时间
//	按优先级从高到低处理 query，直到检测预算或者时间片用完，正在处理的 query 一定会处理完
func (s *Sense) Update(ctx context.Context, deltaSeconds float32) time.Duration {
	if len(s.queries) == 0 {
		s.lastStats = Stats{}
		s.flushDeferred()
		return 0
	}

	ctx = tracing.StartSpan(ctx, "sight.update", opentracing.Tags{
		"sense":   s.name,
		"queries": len(s.queries),
	})

	start := s.clock()
	s.updating = true

	s.SortQueries()

	stats := Stats{StopReason: StopDrained}
	eventsBefore := len(s.events)
	minQueries := s.settings.minQueriesPerTimeSliceCheck()
	dropped := make([]bool, len(s.queries))
	processed := 0

	idx := 0
	for ; idx < len(s.queries); idx++ {
		if stats.Traces >= s.settings.MaxTracesPerTick {
			stats.StopReason = StopTraceBudget
			break
		}
		if processed > 0 && processed%minQueries == 0 && s.clock().Sub(start) > s.settings.MaxTimeSlicePerTick {
			stats.StopReason = StopTimeSlice
			break
		}

		q := s.queries[idx]
		listener, digest, target, ok := s.resolve(q)
		if !ok {
			dropped[idx] = true
			stats.Dropped++
			continue
		}

		eval := s.evaluate(q, listener, digest, target)
		stats.Traces += eval.cost
		stats.TraceCalls += eval.calls
		stats.Serviced++
		if eval.auto {
			stats.AutoSeen++
		}
		if !eval.auto || s.settings.AutoSightCountsTowardTimeSlice {
			processed++
		}

		s.applyResult(q, listener, target, eval, stats.Traces)
	}

	// 没轮到的 query 变老，下一帧优先级更高
	ageStep := deltaSeconds
	if ageStep < s.settings.MinAgePerSkippedTick {
		ageStep = s.settings.MinAgePerSkippedTick
	}
	for i := idx; i < len(s.queries); i++ {
		q := s.queries[i]
		q.Age += ageStep
		q.RecalcScore()
	}

	s.requeue(idx, dropped)

	stats.Events = len(s.events) - eventsBefore
	stats.Elapsed = s.clock().Sub(start)
	s.lastStats = stats
	s.updating = false

	s.report(stats)
	tracing.SetTags(ctx, opentracing.Tags{
		"traces":   stats.Traces,
		"serviced": stats.Serviced,
		"dropped":  stats.Dropped,
		"stop":     stats.StopReason.String(),
	})
	tracing.FinishSpan(ctx, nil)

	s.flushDeferred()
	return stats.Elapsed
}

// resolve 找到 query 两端，任意一端已经不存在了返回 false
func (s *Sense) resolve(q *Query) (*perception.Listener, DigestedProperties, perception.Actor, bool) {
	listener, ok := s.listeners[q.ObserverID]
	if !ok || !listener.Valid() {
		return nil, DigestedProperties{}, nil, false
	}
	digest, ok := s.digests[q.ObserverID]
	if !ok {
		return nil, DigestedProperties{}, nil, false
	}
	target, ok := s.targets[q.TargetID]
	if !ok {
		return nil, DigestedProperties{}, nil, false
	}
	actor := target.Actor()
	if actor == nil {
		return nil, DigestedProperties{}, nil, false
	}
	return listener, digest, actor, true
}

// evaluate 处理一个 query，不修改 query
func (s *Sense) evaluate(q *Query, listener *perception.Listener, digest DigestedProperties, actor perception.Actor) evaluation {
	if seen, strength := s.autoSight(digest, q, listener, actor); seen {
		return evaluation{
			seen:     true,
			auto:     true,
			location: actor.Location(),
			strength: strength,
		}
	}

	listenerLocation, listenerDirection := listener.ViewPoint()
	targetLocation := actor.Location()
	distSq := math32.DistSquared(listenerLocation, targetLocation)

	// 超出丢失视野的范围，不需要检测
	if distSq > digest.LoseSightRadiusSq {
		return evaluation{location: q.LastSeenLocation}
	}
	// 不在视锥内，不需要检测
	if !inSightCone(listenerLocation, listenerDirection, targetLocation, digest.PeripheralVisionAngleCos) {
		return evaluation{location: q.LastSeenLocation}
	}
	// 在视距和丢失视野的范围之间，只有上次看到了才继续算看到
	if distSq > digest.SightRadiusSq {
		return evaluation{
			seen:     q.LastResult,
			location: q.LastSeenLocation,
			strength: 1,
		}
	}

	target := s.targets[q.TargetID]
	if target.HasReporter() {
		return s.evaluateReporter(target.reporter, listener, listenerLocation, targetLocation)
	}

	result := s.tester.TestVisibility(listenerLocation, targetLocation, []perception.Actor{listener.Body})
	eval := evaluation{
		seen:     result.VisibleTo(actor),
		location: targetLocation,
		strength: 1,
		cost:     s.settings.traceCost(),
		calls:    1,
	}
	if !eval.seen {
		eval.location = q.LastSeenLocation
	}
	return eval
}

// evaluateReporter 目标自己决定能不能被看到，它做的检测次数计入预算
func (s *Sense) evaluateReporter(reporter perception.SightTargetReporter, listener *perception.Listener, from, targetLocation math32.Vector3) evaluation {
	var result perception.SeenResult
	if !utils.RunPanicless(func() { result = reporter.CanBeSeenFrom(from, listener.Body) }) {
		logger.Error("sight target reporter panicked", zap.Stringer("listener", listener))
		return evaluation{location: math32.InvalidLocation}
	}

	checks := utils.MaxInt(result.NumberOfLoSChecksPerformed, 0)
	eval := evaluation{
		seen:     result.Seen,
		location: result.SeenLocation,
		strength: result.SightStrength,
		cost:     checks * s.settings.traceCost(),
	}
	if eval.seen {
		if !eval.location.IsValid() || eval.location.IsZero() {
			eval.location = targetLocation
		}
		if eval.strength <= 0 {
			eval.strength = 1
		}
	}
	return eval
}

// applyResult 记录结果，产生视野变化事件，重置 age 和优先级
func (s *Sense) applyResult(q *Query, listener *perception.Listener, actor perception.Actor, eval evaluation, traces int) {
	if eval.seen != q.LastResult {
		event := Event{
			Type:       GainedSight,
			SeenActor:  actor,
			Observer:   listener.Body,
			ObserverID: q.ObserverID,
			TargetID:   q.TargetID,
			Age:        q.Age,
			Strength:   eval.strength,
			Location:   eval.location,
		}
		if !eval.seen {
			event.Type = LostSight
			event.Strength = 0
			event.Location = q.LastSeenLocation
		}
		s.RegisterEvent(event)
	}

	q.LastResult = eval.seen
	if eval.seen && eval.location.IsValid() {
		q.LastSeenLocation = eval.location
	}

	digest := s.digests[q.ObserverID]
	importance := s.calcImportance(listener, actor.Location(), digest.SightRadiusSq, s.underTracePressure(traces))
	if eval.seen && eval.strength > 0 && eval.strength < 1 {
		importance *= eval.strength
	}
	q.Importance = importance
	q.Age = 0
	q.RecalcScore()
}

// requeue 去掉失效的 query，处理过的放到没轮到的后面
func (s *Sense) requeue(serviced int, dropped []bool) {
	queue := make([]*Query, 0, len(s.queries))
	for i := serviced; i < len(s.queries); i++ {
		queue = append(queue, s.queries[i])
	}
	for i := 0; i < serviced; i++ {
		if !dropped[i] {
			queue = append(queue, s.queries[i])
		}
	}
	s.queries = queue
}

func (s *Sense) report(stats Stats) {
	if len(s.reporters) == 0 {
		return
	}
	tags := map[string]string{"sense": s.name}
	metrics.ReportCount(s.reporters, metrics.Traces, tags, float64(stats.Traces))
	metrics.ReportCount(s.reporters, metrics.QueriesServiced, tags, float64(stats.Serviced))
	metrics.ReportCount(s.reporters, metrics.QueriesDropped, tags, float64(stats.Dropped))
	metrics.ReportCount(s.reporters, metrics.EventsEmitted, tags, float64(stats.Events))
	metrics.ReportGauge(s.reporters, metrics.QueueSize, tags, float64(len(s.queries)))
	metrics.ReportSummary(s.reporters, metrics.UpdateTime, tags, stats.Elapsed.Seconds())
}

// inSightCone 目标是否在视锥内，重合的时候算在内
func inSightCone(from, direction, to math32.Vector3, angleCos float32) bool {
	toTarget := to.Sub(from).Normalize()
	facing := direction.Normalize()
	if toTarget.IsZero() || facing.IsZero() {
		return true
	}
	return facing.Dot(toTarget) >= angleCos
}
