package perception

import "github.com/tutumagi/perception/engine/math32"

// TraceResult 一次视线检测的结果
type TraceResult struct {
	Blocked     bool
	HitLocation math32.Vector3
	HitActor    Actor
}

// VisibleTo 检测结果是否表示 target 可见，被 target 自己挡住也算可见
func (r TraceResult) VisibleTo(target Actor) bool {
	if !r.Blocked {
		return true
	}
	return r.HitActor != nil && target != nil && r.HitActor.ActorID() == target.ActorID()
}

// VisibilityTester 视线检测，几何实现不在感知系统内
type VisibilityTester interface {
	TestVisibility(from, to math32.Vector3, ignore []Actor) TraceResult
}

// VisibilityTesterFunc 函数适配 VisibilityTester
type VisibilityTesterFunc func(from, to math32.Vector3, ignore []Actor) TraceResult

// TestVisibility implements VisibilityTester
func (f VisibilityTesterFunc) TestVisibility(from, to math32.Vector3, ignore []Actor) TraceResult {
	return f(from, to, ignore)
}

// SeenResult 自定义可见性检测的结果
type SeenResult struct {
	Seen bool
	// 被看到的位置，不一定是实体的位置，比如只露出了头
	SeenLocation math32.Vector3
	// 实际做了多少次视线检测，计入当前帧的检测预算
	NumberOfLoSChecksPerformed int
	// 刺激强度 [0, 1]
	SightStrength float32
}

// SightTargetReporter 实体可选实现，自己决定能不能被看到，代替通用的视线检测
type SightTargetReporter interface {
	CanBeSeenFrom(observerLocation math32.Vector3, ignore Actor) SeenResult
}
