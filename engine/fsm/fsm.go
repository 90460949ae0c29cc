package fsm

import (
	"errors"

	"github.com/tutumagi/perception/logger"
	"go.uber.org/zap"
)

// ErrStateReject 当前状态不允许切换到目标状态
var ErrStateReject = errors.New("fsm: transition rejected")

// ErrStateNoAction 目标状态没有 Action
var ErrStateNoAction = errors.New("fsm: state has no action")

const (
	// Default 初始状态，Action 返回 Default 表示停在当前状态
	Default StateType = 0
)

// StateType 状态类型
type StateType int32

// StateContext 传给 Action 的参数
type StateContext interface{}

// Action 状态的行为
type Action interface {
	// Enter 进入状态时调用，返回非 Default 的状态会立即继续切换
	Enter(ctx StateContext) StateType
	// Tick 帧循环，返回非 Default 的状态会切换过去
	Tick(dt float32, ctx StateContext) StateType
}

// State 一个状态和它可以切换到的状态
type State struct {
	Action Action
	States map[StateType]struct{}
}

// NewState 新建一个状态
func NewState(act Action, states ...StateType) State {
	s := State{
		Action: act,
		States: map[StateType]struct{}{},
	}
	for _, state := range states {
		s.States[state] = struct{}{}
	}
	return s
}

// States 状态类型对应状态结构
type States map[StateType]State

// StateMachine state machine
type StateMachine struct {
	Prev   StateType
	Cur    StateType
	States States

	// 状态变化后回调
	StateChange func(prev, cur StateType)
}

// CanEnter 当前状态能否切换到 next
func (s *StateMachine) CanEnter(next StateType) bool {
	state, ok := s.States[s.Cur]
	if !ok || state.States == nil {
		return false
	}
	_, ok = state.States[next]
	return ok
}

// EnterState 切换到 next，Enter 返回新的状态时继续切换
func (s *StateMachine) EnterState(next StateType, ctx StateContext) error {
	for {
		if !s.CanEnter(next) {
			return ErrStateReject
		}
		state, ok := s.States[next]
		if !ok || state.Action == nil {
			logger.Error("fsm state without action", zap.Int32("state", int32(next)))
			return ErrStateNoAction
		}

		s.Prev = s.Cur
		s.Cur = next
		if s.Prev != s.Cur && s.StateChange != nil {
			s.StateChange(s.Prev, s.Cur)
		}

		after := state.Action.Enter(ctx)
		if after == s.Cur || after == Default {
			return nil
		}
		next = after
	}
}

// Tick 帧循环
func (s *StateMachine) Tick(dt float32, ctx StateContext) error {
	state, ok := s.States[s.Cur]
	if !ok || state.Action == nil {
		return nil
	}
	next := state.Action.Tick(dt, ctx)
	if next == s.Cur || next == Default {
		return nil
	}
	return s.EnterState(next, ctx)
}
