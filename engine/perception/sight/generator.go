package sight

import "github.com/tutumagi/perception/engine/perception"

// shouldQuery 感知者是否需要检测这个目标：不能看自己，阵营要符合
func (s *Sense) shouldQuery(listener *perception.Listener, digest DigestedProperties, target *Target) bool {
	if listener == nil || target == nil {
		return false
	}
	if target.ID == listener.BodyID() {
		return false
	}
	return perception.ShouldSenseTeam(listener.TeamID(), target.TeamID, digest.AffiliationFlags)
}

// GenerateQueriesForListener 为感知者和所有已注册的目标生成 query，不排序，返回生成的数量
func (s *Sense) GenerateQueriesForListener(listener *perception.Listener, digest DigestedProperties) int {
	if s.updating {
		s.deferred = append(s.deferred, func() { s.GenerateQueriesForListener(listener, digest) })
		return 0
	}

	added := 0
	for _, id := range s.sortedTargetIDs() {
		target := s.targets[id]
		if !target.Valid() || !s.shouldQuery(listener, digest, target) {
			continue
		}
		importance := s.CalcQueryImportance(listener, target.Location(), digest.SightRadiusSq)
		s.queries = append(s.queries, newQuery(listener.ID, id, importance))
		added++
	}
	return added
}
