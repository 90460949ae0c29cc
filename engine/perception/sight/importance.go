package sight

import (
	"github.com/tutumagi/perception/engine/math32"
	"github.com/tutumagi/perception/engine/perception"
)

// CalcQueryImportance 根据距离计算 query 的重要程度，范围 [0, MaxQueryImportance]
//	近处的目标直接是最高优先级，视距边缘的是 SightLimitQueryImportance，之外的更低
func (s *Sense) CalcQueryImportance(listener *perception.Listener, targetLocation math32.Vector3, sightRadiusSq float32) float32 {
	return s.calcImportance(listener, targetLocation, sightRadiusSq, false)
}

func (s *Sense) calcImportance(listener *perception.Listener, targetLocation math32.Vector3, sightRadiusSq float32, limited bool) float32 {
	maxImportance := nonNegative(s.settings.MaxQueryImportance)
	limitImportance := nonNegative(s.settings.SightLimitQueryImportance)

	listenerLocation, _ := listener.ViewPoint()
	distSq := math32.DistSquared(listenerLocation, targetLocation)
	if distSq <= s.highImportanceDistanceSq {
		return maxImportance
	}
	if sightRadiusSq <= 0 {
		return 0
	}

	importance := (limitImportance-maxImportance)/sightRadiusSq*distSq + maxImportance
	importance = math32.Clamp(importance, 0, maxImportance)

	// 预算快用完了，远处的检测往后放
	if limited && importance > limitImportance {
		importance = limitImportance
	}
	return importance
}

// underTracePressure 当前帧的检测预算是否快用完了
func (s *Sense) underTracePressure(traces int) bool {
	if s.settings.MaxTracesPerTick <= 0 {
		return true
	}
	return float32(traces) >= s.settings.ImportanceLimitTraceFraction*float32(s.settings.MaxTracesPerTick)
}
