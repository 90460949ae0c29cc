package sightdebug

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tutumagi/perception/engine/math32"
	"github.com/tutumagi/perception/engine/perception"
	"github.com/tutumagi/perception/engine/perception/sight"
)

type actor struct {
	id   perception.ActorID
	loc  math32.Vector3
	team perception.TeamID
}

func (a *actor) ActorID() perception.ActorID      { return a.id }
func (a *actor) Location() math32.Vector3         { return a.loc }
func (a *actor) Valid() bool                      { return true }
func (a *actor) GenericTeamID() perception.TeamID { return a.team }

func newSense(t *testing.T) *sight.Sense {
	s := sight.New(sight.DefaultSettings(), perception.VisibilityTesterFunc(
		func(from, to math32.Vector3, ignore []perception.Actor) perception.TraceResult {
			return perception.TraceResult{Blocked: to.X > 700}
		}))

	l := perception.NewListener(1, &actor{id: "observer", team: 1})
	l.SetSenseConfig(sight.SenseName, &sight.Config{
		SightRadius:                  1000,
		LoseSightRadius:              1200,
		PeripheralVisionAngleDegrees: 90,
		DetectionByAffiliation:       perception.DetectEnemies,
	})
	s.OnNewListener(l)
	s.RegisterSource(&actor{id: "a", team: 2, loc: math32.Vector3{X: 500}})
	s.RegisterSource(&actor{id: "b", team: 2, loc: math32.Vector3{X: 800}})
	s.Update(context.Background(), 0.1)
	require.Equal(t, 2, s.QueryCount())
	return s
}

func TestLegend(t *testing.T) {
	legend := Legend()
	assert.Contains(t, legend, "#008000: sight radius")
	assert.Contains(t, legend, "#ff6ec7: lose sight radius")
	assert.Equal(t, 4, strings.Count(legend, "\n"))
}

func TestColorOf(t *testing.T) {
	assert.Equal(t, SeenColor, ColorOf(QueryInfo{Seen: true}))
	assert.Equal(t, UnseenColor, ColorOf(QueryInfo{}))
	assert.Equal(t, tcell.ColorGreen, SightRangeColor)
}

func TestStoreCapture(t *testing.T) {
	store := NewStore()
	store.Capture(7, newSense(t))

	last := store.Last()
	assert.Equal(t, uint64(7), last.Frame)
	require.Len(t, last.Queries, 2)
	assert.Equal(t, 2, last.Stats.TraceCalls)
	assert.Equal(t, "drained", last.Stats.StopReason)

	seen := map[string]QueryInfo{}
	for _, q := range last.Queries {
		seen[q.Target] = q
	}
	assert.True(t, seen["a"].Seen)
	require.NotNil(t, seen["a"].LastSeen)
	assert.Equal(t, math32.Vector3{X: 500}, *seen["a"].LastSeen)
	assert.False(t, seen["b"].Seen)
	assert.Nil(t, seen["b"].LastSeen)

	assert.Len(t, store.QueriesOf(1), 2)
	assert.Empty(t, store.QueriesOf(2))
}

func TestRouter(t *testing.T) {
	store := NewStore()
	store.Capture(1, newSense(t))
	router := NewRouter(store)

	tables := []struct {
		path   string
		status int
	}{
		{"/sight/queries", http.StatusOK},
		{"/sight/queries/1", http.StatusOK},
		{"/sight/queries/abc", http.StatusBadRequest},
		{"/sight/stats", http.StatusOK},
		{"/sight/legend", http.StatusOK},
		{"/metrics", http.StatusOK},
		{"/nope", http.StatusNotFound},
	}
	for _, table := range tables {
		t.Run(table.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest("GET", table.path, nil))
			assert.Equal(t, table.status, rec.Code)
		})
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/sight/queries", nil))
	var snapshot Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snapshot))
	assert.Equal(t, uint64(1), snapshot.Frame)
	assert.Len(t, snapshot.Queries, 2)
}
