package sight

import (
	"fmt"

	"github.com/tutumagi/perception/engine/math32"
	"github.com/tutumagi/perception/engine/perception"
)

// EventType 视觉事件类型
type EventType int8

const (
	Undefined EventType = iota
	GainedSight
	LostSight
)

func (t EventType) String() string {
	switch t {
	case GainedSight:
		return "GainedSight"
	case LostSight:
		return "LostSight"
	}
	return "Undefined"
}

// Event 视觉事件，交给外部的感知系统分发
type Event struct {
	Type       EventType
	SeenActor  perception.Actor
	Observer   perception.Actor
	ObserverID perception.ListenerID
	TargetID   TargetID

	// 处理前这个 query 等了多久
	Age      float32
	Strength float32
	// GainedSight 是看到的位置，LostSight 是最后看到的位置
	Location math32.Vector3
}

func (e Event) String() string {
	return fmt.Sprintf("<SightEvent %s> observer:%d target:%s strength:%.2f location:%s",
		e.Type, e.ObserverID, e.TargetID, e.Strength, e.Location)
}

// RegisterEvent 记录一个视觉事件
func (s *Sense) RegisterEvent(event Event) {
	s.events = append(s.events, event)
}

// DrainEvents 取走所有未处理的事件
func (s *Sense) DrainEvents() []Event {
	events := s.events
	s.events = nil
	return events
}

// PendingEvents 未处理的事件数量
func (s *Sense) PendingEvents() int {
	return len(s.events)
}
