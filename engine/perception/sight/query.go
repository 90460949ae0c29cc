package sight

import (
	"fmt"
	"sort"

	"github.com/tutumagi/perception/engine/math32"
	"github.com/tutumagi/perception/engine/perception"
)

// Query 一个 (观察者, 目标) 的可见性检测任务，只持有双方的 key
type Query struct {
	ObserverID perception.ListenerID
	TargetID   TargetID

	// 距离上次被处理过去了多久
	Age float32
	// 调度优先级 Age + Importance
	Score      float32
	Importance float32

	LastSeenLocation math32.Vector3
	LastResult       bool
}

func newQuery(observer perception.ListenerID, target TargetID, importance float32) *Query {
	q := &Query{
		ObserverID:       observer,
		TargetID:         target,
		Importance:       importance,
		LastSeenLocation: math32.InvalidLocation,
	}
	q.RecalcScore()
	return q
}

func (q *Query) String() string {
	return fmt.Sprintf("<SightQuery(%d->%s)> age:%.2f importance:%.2f score:%.2f seen:%v",
		q.ObserverID, q.TargetID, q.Age, q.Importance, q.Score, q.LastResult)
}

// RecalcScore 重新计算优先级
func (q *Query) RecalcScore() {
	q.Score = q.Age + q.Importance
}

// ForgetPreviousResult 忘记上次的检测结果，query 仍然留在队列中
func (q *Query) ForgetPreviousResult() {
	q.LastSeenLocation = math32.InvalidLocation
	q.LastResult = false
}

// PostProcess 批量操作 query 之后是否立即排序
type PostProcess int8

const (
	// DontSort 由调用方最后统一排序
	DontSort PostProcess = iota
	// Sort 立即排序
	Sort
)

type _SortByScore []*Query

func (a _SortByScore) Len() int           { return len(a) }
func (a _SortByScore) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a _SortByScore) Less(i, j int) bool { return a[i].Score > a[j].Score }

// SortQueries 按 score 从高到低排序，score 相同的保持原来的顺序
func (s *Sense) SortQueries() {
	for _, q := range s.queries {
		q.RecalcScore()
	}
	sort.Stable(_SortByScore(s.queries))
}

// RemoveAllQueriesByListener 移除观察者的所有 query，返回移除的数量
func (s *Sense) RemoveAllQueriesByListener(id perception.ListenerID, post PostProcess) int {
	return s.removeQueries(func(q *Query) bool { return q.ObserverID == id }, post)
}

// RemoveAllQueriesToTarget 移除看向目标的所有 query，返回移除的数量
func (s *Sense) RemoveAllQueriesToTarget(id TargetID, post PostProcess) int {
	return s.removeQueries(func(q *Query) bool { return q.TargetID == id }, post)
}

func (s *Sense) removeQueries(match func(q *Query) bool, post PostProcess) int {
	// 正在 Update 的时候不能动队列，等这一帧结束
	if s.updating {
		s.deferred = append(s.deferred, func() { s.removeQueries(match, post) })
		return 0
	}

	kept := s.queries[:0]
	for _, q := range s.queries {
		if !match(q) {
			kept = append(kept, q)
		}
	}
	removed := len(s.queries) - len(kept)
	for i := len(kept); i < len(s.queries); i++ {
		s.queries[i] = nil
	}
	s.queries = kept

	if removed > 0 && post == Sort {
		s.SortQueries()
	}
	return removed
}

func (s *Sense) findQuery(observer perception.ListenerID, target TargetID) *Query {
	for _, q := range s.queries {
		if q.ObserverID == observer && q.TargetID == target {
			return q
		}
	}
	return nil
}

// Query 获取 query 的拷贝
func (s *Sense) Query(observer perception.ListenerID, target TargetID) (Query, bool) {
	if q := s.findQuery(observer, target); q != nil {
		return *q, true
	}
	return Query{}, false
}

// QueryCount 队列中 query 的数量
func (s *Sense) QueryCount() int {
	return len(s.queries)
}

// Snapshot 按当前队列顺序拷贝所有 query
func (s *Sense) Snapshot() []Query {
	res := make([]Query, 0, len(s.queries))
	for _, q := range s.queries {
		res = append(res, *q)
	}
	return res
}
