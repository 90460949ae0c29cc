package perception

import "github.com/tutumagi/perception/engine/math32"

// ActorID 实体的稳定标识
type ActorID string

// InvalidActorID 无效的实体标识
const InvalidActorID ActorID = ""

// Actor 可以被感知/感知别人的实体
//	感知系统只持有实体的弱引用，实体销毁后 Valid 返回 false
type Actor interface {
	ActorID() ActorID
	Location() math32.Vector3
	Valid() bool
}

// TeamAgent 实体可选实现，提供阵营
type TeamAgent interface {
	GenericTeamID() TeamID
}

// Viewer 实体可选实现，提供眼睛的位置和朝向
type Viewer interface {
	ViewPoint() (location math32.Vector3, direction math32.Vector3)
}

// TeamOf 获取实体的阵营，没有实现 TeamAgent 的实体属于 NoTeam
func TeamOf(actor Actor) TeamID {
	if actor == nil {
		return NoTeam
	}
	if agent, ok := actor.(TeamAgent); ok {
		return agent.GenericTeamID()
	}
	return NoTeam
}

// ViewPointOf 获取实体的视点，没有实现 Viewer 的实体从自身位置看向 +X
func ViewPointOf(actor Actor) (math32.Vector3, math32.Vector3) {
	if viewer, ok := actor.(Viewer); ok {
		return viewer.ViewPoint()
	}
	return actor.Location(), math32.ForwardVector3
}

// IsAlive 弱引用是否还有效
func IsAlive(actor Actor) bool {
	return actor != nil && actor.Valid()
}
