package perception

import (
	"fmt"

	"github.com/tutumagi/perception/engine/math32"
)

// ListenerID 感知者标识，由外部感知系统分配
type ListenerID uint32

// InvalidListenerID 无效的感知者
const InvalidListenerID ListenerID = 0

// Listener 感知者描述，由外部感知系统持有，各个 sense 只读
type Listener struct {
	ID   ListenerID
	Body Actor

	configs map[string]interface{}
}

// NewListener ctor
func NewListener(id ListenerID, body Actor) *Listener {
	return &Listener{
		ID:      id,
		Body:    body,
		configs: make(map[string]interface{}, 2),
	}
}

func (l *Listener) String() string {
	if l.Body == nil {
		return fmt.Sprintf("<Listener(%d)>", l.ID)
	}
	return fmt.Sprintf("<Listener(%d) %s>", l.ID, l.Body.ActorID())
}

// SetSenseConfig 设置某个 sense 的配置
func (l *Listener) SetSenseConfig(sense string, cfg interface{}) {
	if l.configs == nil {
		l.configs = make(map[string]interface{}, 2)
	}
	l.configs[sense] = cfg
}

// SenseConfig 获取某个 sense 的配置
func (l *Listener) SenseConfig(sense string) (interface{}, bool) {
	cfg, ok := l.configs[sense]
	return cfg, ok
}

// BodyID 感知者自身实体的标识
func (l *Listener) BodyID() ActorID {
	if l.Body == nil {
		return InvalidActorID
	}
	return l.Body.ActorID()
}

// TeamID 感知者的阵营
func (l *Listener) TeamID() TeamID {
	return TeamOf(l.Body)
}

// ViewPoint 感知者当前的视点
func (l *Listener) ViewPoint() (math32.Vector3, math32.Vector3) {
	if l.Body == nil {
		return math32.InvalidLocation, math32.ForwardVector3
	}
	return ViewPointOf(l.Body)
}

// Valid 感知者实体是否还有效
func (l *Listener) Valid() bool {
	return l != nil && l.ID != InvalidListenerID && IsAlive(l.Body)
}
