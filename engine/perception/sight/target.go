package sight

import (
	"fmt"

	"github.com/tutumagi/perception/engine/math32"
	"github.com/tutumagi/perception/engine/perception"
)

// TargetID 被观察目标的标识
type TargetID = perception.ActorID

// Target 可能被看到的目标，只持有实体的弱引用
type Target struct {
	ID     TargetID
	TeamID perception.TeamID

	actor perception.Actor
	// 实体自己实现的可见性检测，可能为 nil
	reporter perception.SightTargetReporter
}

func newTarget(actor perception.Actor) *Target {
	t := &Target{
		ID:     actor.ActorID(),
		TeamID: perception.TeamOf(actor),
		actor:  actor,
	}
	if reporter, ok := actor.(perception.SightTargetReporter); ok {
		t.reporter = reporter
	}
	return t
}

func (t *Target) String() string {
	return fmt.Sprintf("<SightTarget(%s)> team:%d reporter:%v", t.ID, t.TeamID, t.reporter != nil)
}

// Actor 实体已经销毁或者被注销时返回 nil
func (t *Target) Actor() perception.Actor {
	if t == nil || !perception.IsAlive(t.actor) {
		return nil
	}
	return t.actor
}

// Valid 弱引用是否还有效
func (t *Target) Valid() bool {
	return t.Actor() != nil
}

// HasReporter 目标是否自己决定可见性
func (t *Target) HasReporter() bool {
	return t.reporter != nil
}

// Location 目标当前的位置，失效的目标返回原点
func (t *Target) Location() math32.Vector3 {
	if actor := t.Actor(); actor != nil {
		return actor.Location()
	}
	return math32.ZeroVector3
}

func (t *Target) invalidate() {
	t.actor = nil
	t.reporter = nil
}
