package sight

import (
	"time"

	"github.com/tutumagi/perception/engine/math32"
	"github.com/tutumagi/perception/engine/perception"
	"github.com/tutumagi/perception/engine/perception/mocks"
)

type fakeActor struct {
	id     perception.ActorID
	loc    math32.Vector3
	facing math32.Vector3
	team   perception.TeamID
	dead   bool
}

func (a *fakeActor) ActorID() perception.ActorID      { return a.id }
func (a *fakeActor) Location() math32.Vector3         { return a.loc }
func (a *fakeActor) Valid() bool                      { return !a.dead }
func (a *fakeActor) GenericTeamID() perception.TeamID { return a.team }

func (a *fakeActor) ViewPoint() (math32.Vector3, math32.Vector3) {
	if a.facing.IsZero() {
		return a.loc, math32.ForwardVector3
	}
	return a.loc, a.facing
}

func newActor(id string, team perception.TeamID, x, z float32) *fakeActor {
	return &fakeActor{id: perception.ActorID(id), team: team, loc: math32.Vector3{X: x, Z: z}}
}

// reportingActor 自己决定可见性的目标
type reportingActor struct {
	*fakeActor
	*mocks.MockSightTargetReporter
}

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1600000000, 0)}
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

type recordingReporter struct {
	counts    map[string]float64
	gauges    map[string]float64
	summaries map[string]float64
}

func newRecordingReporter() *recordingReporter {
	return &recordingReporter{
		counts:    map[string]float64{},
		gauges:    map[string]float64{},
		summaries: map[string]float64{},
	}
}

func (r *recordingReporter) ReportCount(metric string, tags map[string]string, count float64) error {
	r.counts[metric] += count
	return nil
}

func (r *recordingReporter) ReportSummary(metric string, tags map[string]string, value float64) error {
	r.summaries[metric] = value
	return nil
}

func (r *recordingReporter) ReportGauge(metric string, tags map[string]string, value float64) error {
	r.gauges[metric] = value
	return nil
}

func sightConfig(sight, lose, angle float32) *Config {
	return &Config{
		SightRadius:                          sight,
		LoseSightRadius:                      lose,
		PeripheralVisionAngleDegrees:         angle,
		AutoSuccessRangeFromLastSeenLocation: -1,
		DetectionByAffiliation:               perception.DetectEnemies,
	}
}

func addListener(s *Sense, id perception.ListenerID, body perception.Actor, cfg *Config) *perception.Listener {
	l := perception.NewListener(id, body)
	l.SetSenseConfig(SenseName, cfg)
	s.OnNewListener(l)
	return l
}

// countingTester 记录每次检测的终点，不会被挡住
type countingTester struct {
	calls   int
	targets map[math32.Vector3]int
	onTrace func()
}

func newCountingTester() *countingTester {
	return &countingTester{targets: map[math32.Vector3]int{}}
}

func (c *countingTester) TestVisibility(from, to math32.Vector3, ignore []perception.Actor) perception.TraceResult {
	c.calls++
	c.targets[to]++
	if c.onTrace != nil {
		c.onTrace()
	}
	return perception.TraceResult{}
}
