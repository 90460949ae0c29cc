package sight

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tutumagi/perception/engine/math32"
	"github.com/tutumagi/perception/engine/perception"
)

type pair struct {
	observer perception.ListenerID
	target   TargetID
}

func pairsOf(s *Sense) []pair {
	res := make([]pair, 0, s.QueryCount())
	for _, q := range s.Snapshot() {
		res = append(res, pair{q.ObserverID, q.TargetID})
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].observer != res[j].observer {
			return res[i].observer < res[j].observer
		}
		return res[i].target < res[j].target
	})
	return res
}

func TestRegistrationIsSymmetric(t *testing.T) {
	cfg := sightConfig(1000, 1200, 90)
	expected := []pair{{1, "b"}, {1, "c"}, {2, "a"}}

	t.Run("listeners first", func(t *testing.T) {
		s := New(DefaultSettings(), newCountingTester())
		a, b, c := newActor("a", 1, 0, 0), newActor("b", 2, 100, 0), newActor("c", 2, 200, 0)
		addListener(s, 1, a, cfg)
		addListener(s, 2, b, cfg)
		s.RegisterSource(a)
		s.RegisterSource(b)
		s.RegisterSource(c)
		assert.Equal(t, expected, pairsOf(s))
	})

	t.Run("sources first", func(t *testing.T) {
		s := New(DefaultSettings(), newCountingTester())
		a, b, c := newActor("a", 1, 0, 0), newActor("b", 2, 100, 0), newActor("c", 2, 200, 0)
		s.RegisterSource(c)
		s.RegisterSource(b)
		s.RegisterSource(a)
		addListener(s, 2, b, cfg)
		addListener(s, 1, a, cfg)
		assert.Equal(t, expected, pairsOf(s))
	})
}

func TestOnNewListenerAppliesImmediately(t *testing.T) {
	s := New(DefaultSettings(), newCountingTester())
	s.RegisterSource(newActor("t1", 2, 100, 0))
	s.RegisterSource(newActor("t2", 2, 200, 0))

	l := addListener(s, 1, newActor("observer", 1, 0, 0), sightConfig(1000, 1200, 90))
	assert.Equal(t, 1, s.ListenerCount())
	assert.Equal(t, 2, s.QueryCount())
	assert.Empty(t, s.deferred)
	_, ok := s.Digest(1)
	assert.True(t, ok)

	l.SetSenseConfig(SenseName, sightConfig(150, 200, 90))
	s.OnListenerUpdate(l)
	assert.Empty(t, s.deferred)
	d, _ := s.Digest(1)
	assert.Equal(t, float32(150*150), d.SightRadiusSq)
	assert.Equal(t, 2, s.QueryCount())
}

func TestRegisterTargetTwice(t *testing.T) {
	s := New(DefaultSettings(), newCountingTester())
	addListener(s, 1, newActor("a", 1, 0, 0), sightConfig(1000, 1200, 90))

	b := newActor("b", 2, 100, 0)
	assert.True(t, s.RegisterTarget(b, Sort))
	assert.False(t, s.RegisterTarget(b, Sort))
	assert.Equal(t, 1, s.QueryCount())

	dead := newActor("dead", 2, 100, 0)
	dead.dead = true
	assert.False(t, s.RegisterTarget(dead, Sort))
	assert.Equal(t, 1, s.TargetCount())
}

func TestListenerWithoutSightConfig(t *testing.T) {
	s := New(DefaultSettings(), newCountingTester())
	s.RegisterSource(newActor("b", 2, 100, 0))

	l := perception.NewListener(1, newActor("a", 1, 0, 0))
	s.OnNewListener(l)
	assert.Equal(t, 0, s.ListenerCount())
	assert.Equal(t, 0, s.QueryCount())
}

func TestOnNewListenerTwice(t *testing.T) {
	s := New(DefaultSettings(), newCountingTester())
	s.RegisterSource(newActor("b", 2, 100, 0))
	l := addListener(s, 1, newActor("a", 1, 0, 0), sightConfig(1000, 1200, 90))
	s.OnNewListener(l)
	assert.Equal(t, 1, s.QueryCount())
}

func TestOnListenerUpdate(t *testing.T) {
	s := New(DefaultSettings(), newCountingTester())
	s.RegisterSource(newActor("enemy", 2, 100, 0))
	s.RegisterSource(newActor("friend", 1, 100, 0))
	s.RegisterSource(newActor("neutral", perception.NoTeam, 100, 0))

	cfg := sightConfig(1000, 1200, 90)
	l := addListener(s, 1, newActor("a", 1, 0, 0), cfg)
	assert.Equal(t, 1, s.QueryCount())

	all := sightConfig(2000, 2500, 60)
	all.DetectionByAffiliation = perception.DetectAll
	l.SetSenseConfig(SenseName, all)
	s.OnListenerUpdate(l)
	assert.Equal(t, 3, s.QueryCount())

	digest, ok := s.Digest(1)
	require.True(t, ok)
	assert.Equal(t, float32(2000*2000), digest.SightRadiusSq)

	// 去掉视觉配置等同于移除
	l2 := perception.NewListener(1, l.Body)
	s.OnListenerUpdate(l2)
	assert.Equal(t, 0, s.ListenerCount())
	assert.Equal(t, 0, s.QueryCount())
}

func TestRemovalIsIdempotent(t *testing.T) {
	s := New(DefaultSettings(), newCountingTester())
	a := newActor("a", 1, 0, 0)
	b := newActor("b", 2, 100, 0)
	c := newActor("c", 2, 200, 0)
	l := addListener(s, 1, a, sightConfig(1000, 1200, 90))
	s.RegisterSource(b)
	s.RegisterSource(c)
	require.Equal(t, 2, s.QueryCount())

	assert.Equal(t, 1, s.RemoveAllQueriesToTarget("b", Sort))
	assert.Equal(t, 0, s.RemoveAllQueriesToTarget("b", Sort))

	s.UnregisterSource(c)
	s.UnregisterSource(c)
	assert.Equal(t, 0, s.QueryCount())

	s.OnListenerRemoved(l)
	s.OnListenerRemoved(l)
	s.OnListenerRemoved(nil)
	assert.Equal(t, 0, s.ListenerCount())
	assert.Equal(t, 0, s.RemoveAllQueriesByListener(1, Sort))
}

func TestSortQueries(t *testing.T) {
	s := New(DefaultSettings(), newCountingTester())
	addListener(s, 1, newActor("a", 1, 0, 0), sightConfig(1000, 1200, 90))
	s.RegisterSource(newActor("far", 2, 900, 0))
	s.RegisterSource(newActor("near", 2, 100, 0))
	s.RegisterSource(newActor("mid", 2, 500, 0))
	s.RegisterSource(newActor("mid2", 2, 0, 500))

	snapshot := s.Snapshot()
	require.Len(t, snapshot, 4)
	for i := 1; i < len(snapshot); i++ {
		assert.GreaterOrEqual(t, snapshot[i-1].Score, snapshot[i].Score)
	}
	assert.Equal(t, TargetID("near"), snapshot[0].TargetID)
	// 同分保持插入顺序
	assert.Equal(t, TargetID("mid"), snapshot[1].TargetID)
	assert.Equal(t, TargetID("mid2"), snapshot[2].TargetID)
	assert.Equal(t, TargetID("far"), snapshot[3].TargetID)
}

func TestCalcQueryImportance(t *testing.T) {
	s := New(DefaultSettings(), newCountingTester())
	l := perception.NewListener(1, newActor("a", 1, 0, 0))
	sightSq := float32(1000 * 1000)

	assert.Equal(t, float32(60), s.CalcQueryImportance(l, math32.Vector3{X: 200}, sightSq))
	assert.InDelta(t, 10, s.CalcQueryImportance(l, math32.Vector3{X: 1000}, sightSq), 1e-3)
	assert.Equal(t, float32(0), s.CalcQueryImportance(l, math32.Vector3{X: 3000}, sightSq))
	assert.InDelta(t, 47.5, s.CalcQueryImportance(l, math32.Vector3{X: 500}, sightSq), 1e-3)

	// 预算紧张时不超过视距边缘的优先级
	assert.Equal(t, float32(10), s.calcImportance(l, math32.Vector3{X: 500}, sightSq, true))
	assert.Equal(t, float32(60), s.calcImportance(l, math32.Vector3{X: 200}, sightSq, true))
}

func TestUnderTracePressure(t *testing.T) {
	settings := DefaultSettings()
	settings.MaxTracesPerTick = 4
	s := New(settings, newCountingTester())
	assert.False(t, s.underTracePressure(2))
	assert.True(t, s.underTracePressure(3))
}

func TestForgetPreviousResult(t *testing.T) {
	s := New(DefaultSettings(), newCountingTester())
	l := addListener(s, 1, newActor("a", 1, 0, 0), sightConfig(1000, 1200, 90))
	b := newActor("b", 2, 500, 0)
	c := newActor("c", 2, 600, 0)
	s.RegisterSource(b)
	s.RegisterSource(c)

	s.Update(context.Background(), 0.1)
	q, ok := s.Query(1, "b")
	require.True(t, ok)
	require.True(t, q.LastResult)

	s.OnListenerForgetsActor(l, b)
	q, ok = s.Query(1, "b")
	require.True(t, ok)
	assert.False(t, q.LastResult)
	assert.False(t, q.LastSeenLocation.IsValid())

	q, _ = s.Query(1, "c")
	assert.True(t, q.LastResult)

	s.OnListenerForgetsAll(l)
	q, _ = s.Query(1, "c")
	assert.False(t, q.LastResult)
	assert.Equal(t, 2, s.QueryCount())
}

func TestCleanseInvalidSources(t *testing.T) {
	s := New(DefaultSettings(), newCountingTester())
	addListener(s, 1, newActor("a", 1, 0, 0), sightConfig(1000, 1200, 90))
	b := newActor("b", 2, 500, 0)
	c := newActor("c", 2, 600, 0)
	d := newActor("d", 2, 700, 0)
	s.RegisterSource(b)
	s.RegisterSource(c)
	s.RegisterSource(d)

	b.dead = true
	d.dead = true
	assert.Equal(t, 2, s.CleanseInvalidSources())
	assert.Equal(t, 1, s.TargetCount())
	assert.Equal(t, []pair{{1, "c"}}, pairsOf(s))
	assert.Equal(t, 0, s.CleanseInvalidSources())
}

func TestShouldAutomaticallySeeTarget(t *testing.T) {
	s := New(DefaultSettings(), newCountingTester())
	l := perception.NewListener(1, newActor("a", 1, 0, 0))
	target := newActor("b", 2, 520, 0)

	cfg := sightConfig(1000, 1200, 90)
	cfg.AutoSuccessRangeFromLastSeenLocation = 50
	digest := Digest(cfg)

	q := newQuery(1, "b", 10)
	seen, _ := s.ShouldAutomaticallySeeTarget(digest, q, l, target)
	assert.False(t, seen)

	q.LastSeenLocation = math32.Vector3{X: 500}
	seen, strength := s.ShouldAutomaticallySeeTarget(digest, q, l, target)
	assert.True(t, seen)
	assert.Equal(t, float32(1), strength)

	target.loc = math32.Vector3{X: 600}
	seen, _ = s.ShouldAutomaticallySeeTarget(digest, q, l, target)
	assert.False(t, seen)

	seen, _ = s.ShouldAutomaticallySeeTarget(Digest(sightConfig(1000, 1200, 90)), q, l, newActor("b", 2, 500, 0))
	assert.False(t, seen)
}
