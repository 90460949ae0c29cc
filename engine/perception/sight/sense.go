package sight

import (
	"sort"
	"time"

	"github.com/tutumagi/perception/engine/math32"
	"github.com/tutumagi/perception/engine/perception"
	"github.com/tutumagi/perception/logger"
	"github.com/tutumagi/perception/metrics"
	"go.uber.org/zap"
)

// AutoSightFunc 判断是否不做视线检测直接算看到，返回是否看到和刺激强度
type AutoSightFunc func(digest DigestedProperties, query *Query, listener *perception.Listener, target perception.Actor) (bool, float32)

// Sense 视觉感知
//	把所有 (观察者, 目标) 组合成 query 放在一个按优先级排序的队列里，
//	每帧在预算内从队首开始做视线检测，没轮到的 query 下一帧优先级更高
//	不是线程安全的，所有方法都要在感知系统的 tick 线程调用
type Sense struct {
	name     string
	settings Settings

	highImportanceDistanceSq float32

	tester    perception.VisibilityTester
	autoSight AutoSightFunc
	clock     func() time.Time
	reporters []metrics.Reporter

	listeners map[perception.ListenerID]*perception.Listener
	digests   map[perception.ListenerID]DigestedProperties
	targets   map[TargetID]*Target
	queries   []*Query

	events []Event

	// Update 过程中触发的注册/注销，等这一帧结束再处理
	updating bool
	deferred []func()

	lastStats Stats
}

// Option 构造 Sense 的可选参数
type Option func(s *Sense)

// WithClock 替换时钟，测试用
func WithClock(clock func() time.Time) Option {
	return func(s *Sense) {
		s.clock = clock
	}
}

// WithReporters 每帧结束上报指标
func WithReporters(reporters ...metrics.Reporter) Option {
	return func(s *Sense) {
		s.reporters = append(s.reporters, reporters...)
	}
}

// WithName 指标和 tracing 里 sense 的名字
func WithName(name string) Option {
	return func(s *Sense) {
		s.name = name
	}
}

// WithAutoSight 替换默认的自动可见判断
func WithAutoSight(f AutoSightFunc) Option {
	return func(s *Sense) {
		s.autoSight = f
	}
}

// New ctor
func New(settings Settings, tester perception.VisibilityTester, opts ...Option) *Sense {
	s := &Sense{
		name:      SenseName,
		settings:  settings,
		tester:    tester,
		clock:     time.Now,
		listeners: make(map[perception.ListenerID]*perception.Listener),
		digests:   make(map[perception.ListenerID]DigestedProperties),
		targets:   make(map[TargetID]*Target),
	}
	threshold := nonNegative(settings.HighImportanceQueryDistanceThreshold)
	s.highImportanceDistanceSq = threshold * threshold

	for _, opt := range opts {
		opt(s)
	}
	if s.autoSight == nil {
		s.autoSight = s.ShouldAutomaticallySeeTarget
	}
	return s
}

// Settings 当前参数
func (s *Sense) Settings() Settings {
	return s.settings
}

// Name sense 的名字
func (s *Sense) Name() string {
	return s.name
}

// runOrDefer Update 过程中的操作推迟到这一帧结束
func (s *Sense) runOrDefer(f func()) bool {
	if s.updating {
		s.deferred = append(s.deferred, f)
		return false
	}
	f()
	return true
}

func (s *Sense) flushDeferred() {
	for len(s.deferred) > 0 {
		fns := s.deferred
		s.deferred = nil
		for _, f := range fns {
			f()
		}
	}
}

/************************* listener *********************************/

// OnNewListener 有新的感知者，没有视觉配置的忽略
func (s *Sense) OnNewListener(listener *perception.Listener) {
	if s.updating {
		s.deferred = append(s.deferred, func() { s.OnNewListener(listener) })
		return
	}
	cfg, ok := ConfigOf(listener)
	if !ok || listener.ID == perception.InvalidListenerID {
		return
	}
	if _, exists := s.listeners[listener.ID]; exists {
		s.OnListenerUpdate(listener)
		return
	}
	digest := s.digestListener(listener, cfg)

	s.listeners[listener.ID] = listener
	s.digests[listener.ID] = digest

	added := s.GenerateQueriesForListener(listener, digest)
	s.SortQueries()

	logger.Debug("sight listener added", zap.Stringer("listener", listener), zap.Int("queries", added))
}

// OnListenerUpdate 感知者的配置变化了，原来的 query 的优先级都作废，重新生成
func (s *Sense) OnListenerUpdate(listener *perception.Listener) {
	if s.updating {
		s.deferred = append(s.deferred, func() { s.OnListenerUpdate(listener) })
		return
	}
	cfg, ok := ConfigOf(listener)
	if !ok {
		s.OnListenerRemoved(listener)
		return
	}
	if _, exists := s.listeners[listener.ID]; !exists {
		s.OnNewListener(listener)
		return
	}

	s.RemoveAllQueriesByListener(listener.ID, DontSort)

	digest := s.digestListener(listener, cfg)
	s.listeners[listener.ID] = listener
	s.digests[listener.ID] = digest

	added := s.GenerateQueriesForListener(listener, digest)
	s.SortQueries()

	logger.Debug("sight listener updated", zap.Stringer("listener", listener), zap.Int("queries", added))
}

// OnListenerRemoved 感知者移除，它的 query 立即失效
func (s *Sense) OnListenerRemoved(listener *perception.Listener) {
	if listener == nil {
		return
	}
	id := listener.ID
	if s.updating {
		// 推迟的注册在帧末重放，移除也跟在后面重放一次
		s.deferred = append(s.deferred, func() { s.removeListener(id) })
	}
	s.removeListener(id)
}

func (s *Sense) removeListener(id perception.ListenerID) {
	if _, ok := s.listeners[id]; !ok {
		return
	}
	delete(s.listeners, id)
	delete(s.digests, id)

	s.RemoveAllQueriesByListener(id, Sort)

	logger.Debug("sight listener removed", zap.Uint32("listener", uint32(id)))
}

// OnListenerForgetsActor 感知者忘记某个实体
func (s *Sense) OnListenerForgetsActor(listener *perception.Listener, actor perception.Actor) {
	if listener == nil || actor == nil {
		return
	}
	targetID := actor.ActorID()
	s.runOrDefer(func() {
		if q := s.findQuery(listener.ID, targetID); q != nil {
			q.ForgetPreviousResult()
		}
	})
}

// OnListenerForgetsAll 感知者忘记所有实体
func (s *Sense) OnListenerForgetsAll(listener *perception.Listener) {
	if listener == nil {
		return
	}
	s.runOrDefer(func() {
		for _, q := range s.queries {
			if q.ObserverID == listener.ID {
				q.ForgetPreviousResult()
			}
		}
	})
}

func (s *Sense) digestListener(listener *perception.Listener, cfg *Config) DigestedProperties {
	if cfg.needsClamp() {
		logger.Warn("sight config clamped",
			zap.Stringer("listener", listener),
			zap.Float32("sightRadius", cfg.SightRadius),
			zap.Float32("loseSightRadius", cfg.LoseSightRadius),
			zap.Float32("peripheralVisionAngle", cfg.PeripheralVisionAngleDegrees),
		)
	}
	return Digest(cfg)
}

// Digest 获取感知者的预计算参数
func (s *Sense) Digest(id perception.ListenerID) (DigestedProperties, bool) {
	d, ok := s.digests[id]
	return d, ok
}

// ListenerCount 视觉感知者的数量
func (s *Sense) ListenerCount() int {
	return len(s.listeners)
}

func (s *Sense) sortedListenerIDs() []perception.ListenerID {
	ids := make([]perception.ListenerID, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

/************************* source *********************************/

// RegisterSource 实体可以被看到了
func (s *Sense) RegisterSource(actor perception.Actor) {
	s.runOrDefer(func() { s.RegisterTarget(actor, Sort) })
}

// UnregisterSource 实体不再可以被看到，它的 query 立即失效
func (s *Sense) UnregisterSource(actor perception.Actor) {
	if actor == nil {
		return
	}
	id := actor.ActorID()
	if s.updating {
		s.deferred = append(s.deferred, func() { s.removeTarget(id, Sort) })
	}
	s.removeTarget(id, Sort)
}

// CleanseInvalidSources 清理已经销毁的目标
func (s *Sense) CleanseInvalidSources() int {
	invalid := make([]TargetID, 0)
	for id, target := range s.targets {
		if !target.Valid() {
			invalid = append(invalid, id)
		}
	}
	for _, id := range invalid {
		s.removeTarget(id, DontSort)
	}
	if len(invalid) > 0 {
		s.runOrDefer(s.SortQueries)
		logger.Debug("sight cleansed invalid sources", zap.Int("count", len(invalid)))
	}
	return len(invalid)
}

// RegisterTarget 注册目标并为已有的感知者生成 query，返回是否生成了新的 query
func (s *Sense) RegisterTarget(actor perception.Actor, post PostProcess) bool {
	if !perception.IsAlive(actor) {
		return false
	}
	if s.updating {
		s.deferred = append(s.deferred, func() { s.RegisterTarget(actor, post) })
		return false
	}
	id := actor.ActorID()
	if _, ok := s.targets[id]; ok {
		return false
	}
	target := newTarget(actor)
	s.targets[id] = target

	added := 0
	targetLocation := actor.Location()
	for _, listenerID := range s.sortedListenerIDs() {
		listener := s.listeners[listenerID]
		digest := s.digests[listenerID]
		if !s.shouldQuery(listener, digest, target) {
			continue
		}
		importance := s.CalcQueryImportance(listener, targetLocation, digest.SightRadiusSq)
		s.queries = append(s.queries, newQuery(listenerID, id, importance))
		added++
	}

	if added > 0 && post == Sort {
		s.SortQueries()
	}
	logger.Debug("sight target registered", zap.Stringer("target", target), zap.Int("queries", added))
	return added > 0
}

func (s *Sense) removeTarget(id TargetID, post PostProcess) {
	target, ok := s.targets[id]
	if !ok {
		return
	}
	target.invalidate()
	delete(s.targets, id)
	s.RemoveAllQueriesToTarget(id, post)
}

// Target 获取目标
func (s *Sense) Target(id TargetID) (*Target, bool) {
	t, ok := s.targets[id]
	return t, ok
}

// TargetCount 目标的数量
func (s *Sense) TargetCount() int {
	return len(s.targets)
}

func (s *Sense) sortedTargetIDs() []TargetID {
	ids := make([]TargetID, 0, len(s.targets))
	for id := range s.targets {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

/************************* auto sight *********************************/

// ShouldAutomaticallySeeTarget 目标离上次看到的位置足够近时直接算看到
func (s *Sense) ShouldAutomaticallySeeTarget(digest DigestedProperties, query *Query, listener *perception.Listener, target perception.Actor) (bool, float32) {
	if !digest.AutoSuccessEnabled() || !query.LastSeenLocation.IsValid() || target == nil {
		return false, 0
	}
	distSq := math32.DistSquared(target.Location(), query.LastSeenLocation)
	if distSq <= digest.AutoSuccessRangeSqFromLastSeenLocation {
		return true, 1
	}
	return false, 0
}
