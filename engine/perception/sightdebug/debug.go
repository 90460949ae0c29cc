package sightdebug

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/tutumagi/perception/engine/math32"
	"github.com/tutumagi/perception/engine/perception/sight"
)

// 调试绘制的颜色
var (
	SightRangeColor = tcell.ColorGreen
	LoseSightColor  = tcell.NewRGBColor(255, 110, 199)
	SeenColor       = tcell.NewRGBColor(50, 255, 50)
	UnseenColor     = tcell.NewRGBColor(255, 80, 80)
)

// Legend 调试绘制的图例
func Legend() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: sight radius\n", hex(SightRangeColor))
	fmt.Fprintf(&b, "%s: lose sight radius\n", hex(LoseSightColor))
	fmt.Fprintf(&b, "%s: target seen\n", hex(SeenColor))
	fmt.Fprintf(&b, "%s: target not seen\n", hex(UnseenColor))
	return b.String()
}

// ColorOf query 在调试绘制中的颜色
func ColorOf(q QueryInfo) tcell.Color {
	if q.Seen {
		return SeenColor
	}
	return UnseenColor
}

func hex(c tcell.Color) string {
	return fmt.Sprintf("#%06x", c.Hex())
}

// QueryInfo 一个 query 的调试信息
type QueryInfo struct {
	Observer   uint32          `json:"observer"`
	Target     string          `json:"target"`
	Age        float32         `json:"age"`
	Score      float32         `json:"score"`
	Importance float32         `json:"importance"`
	Seen       bool            `json:"seen"`
	LastSeen   *math32.Vector3 `json:"lastSeen,omitempty"`
}

// StatsInfo 上一帧的统计
type StatsInfo struct {
	Traces     int    `json:"traces"`
	TraceCalls int    `json:"traceCalls"`
	Serviced   int    `json:"serviced"`
	AutoSeen   int    `json:"autoSeen"`
	Dropped    int    `json:"dropped"`
	Events     int    `json:"events"`
	ElapsedUs  int64  `json:"elapsedUs"`
	StopReason string `json:"stopReason"`
}

// Snapshot 某一帧结束时的队列
type Snapshot struct {
	Frame   uint64      `json:"frame"`
	Queries []QueryInfo `json:"queries"`
	Stats   StatsInfo   `json:"stats"`
}

// Store tick 线程写入，http 线程读取
type Store struct {
	mu   sync.RWMutex
	last Snapshot
}

// NewStore ctor
func NewStore() *Store {
	return &Store{}
}

// Capture 在 tick 线程调用，拷贝当前队列
func (st *Store) Capture(frame uint64, s *sight.Sense) {
	queries := s.Snapshot()
	infos := make([]QueryInfo, 0, len(queries))
	for _, q := range queries {
		info := QueryInfo{
			Observer:   uint32(q.ObserverID),
			Target:     string(q.TargetID),
			Age:        q.Age,
			Score:      q.Score,
			Importance: q.Importance,
			Seen:       q.LastResult,
		}
		if q.LastSeenLocation.IsValid() {
			loc := q.LastSeenLocation
			info.LastSeen = &loc
		}
		infos = append(infos, info)
	}
	stats := s.LastStats()

	st.mu.Lock()
	defer st.mu.Unlock()
	st.last = Snapshot{
		Frame:   frame,
		Queries: infos,
		Stats: StatsInfo{
			Traces:     stats.Traces,
			TraceCalls: stats.TraceCalls,
			Serviced:   stats.Serviced,
			AutoSeen:   stats.AutoSeen,
			Dropped:    stats.Dropped,
			Events:     stats.Events,
			ElapsedUs:  stats.Elapsed.Microseconds(),
			StopReason: stats.StopReason.String(),
		},
	}
}

// Last 最近一次 Capture 的结果
func (st *Store) Last() Snapshot {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.last
}

// QueriesOf 某个观察者的 query
func (st *Store) QueriesOf(observer uint32) []QueryInfo {
	st.mu.RLock()
	defer st.mu.RUnlock()
	res := make([]QueryInfo, 0)
	for _, q := range st.last.Queries {
		if q.Observer == observer {
			res = append(res, q)
		}
	}
	return res
}
