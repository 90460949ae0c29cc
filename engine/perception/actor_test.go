package perception

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tutumagi/perception/engine/math32"
)

type testActor struct {
	id     ActorID
	loc    math32.Vector3
	dead   bool
	team   TeamID
	facing math32.Vector3
}

func (a *testActor) ActorID() ActorID         { return a.id }
func (a *testActor) Location() math32.Vector3 { return a.loc }
func (a *testActor) Valid() bool              { return !a.dead }

type teamActor struct {
	testActor
}

func (a *teamActor) GenericTeamID() TeamID { return a.team }

type viewerActor struct {
	testActor
}

func (a *viewerActor) ViewPoint() (math32.Vector3, math32.Vector3) {
	return a.loc.Add(math32.Vector3{Y: 1}), a.facing
}

func TestTeamOf(t *testing.T) {
	assert.Equal(t, NoTeam, TeamOf(nil))
	assert.Equal(t, NoTeam, TeamOf(&testActor{id: "a"}))
	assert.Equal(t, TeamID(3), TeamOf(&teamActor{testActor{id: "b", team: 3}}))
}

func TestViewPointOf(t *testing.T) {
	plain := &testActor{id: "a", loc: math32.Vector3{X: 1}}
	loc, dir := ViewPointOf(plain)
	assert.Equal(t, plain.loc, loc)
	assert.Equal(t, math32.ForwardVector3, dir)

	v := &viewerActor{testActor{id: "v", facing: math32.Vector3{Z: 1}}}
	loc, dir = ViewPointOf(v)
	assert.Equal(t, math32.Vector3{Y: 1}, loc)
	assert.Equal(t, math32.Vector3{Z: 1}, dir)
}

func TestListener(t *testing.T) {
	body := &testActor{id: "body"}
	l := NewListener(7, body)
	assert.True(t, l.Valid())
	assert.Equal(t, ActorID("body"), l.BodyID())

	l.SetSenseConfig("sight", 42)
	cfg, ok := l.SenseConfig("sight")
	assert.True(t, ok)
	assert.Equal(t, 42, cfg)
	_, ok = l.SenseConfig("hearing")
	assert.False(t, ok)

	body.dead = true
	assert.False(t, l.Valid())

	var nilListener *Listener
	assert.False(t, nilListener.Valid())
}
