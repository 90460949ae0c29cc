package sight

import (
	"fmt"
	"time"

	"github.com/tutumagi/perception/config"
	validator "gopkg.in/go-playground/validator.v9"
)

// Settings 视觉 sense 的全局参数，构造 Sense 的时候读取一次
type Settings struct {
	// 每帧最多做多少次视线检测（按 TraceCost 计）
	MaxTracesPerTick int `validate:"gte=0"`
	// 至少处理多少个 query 才检查一次时间片，检查时间本身也有开销
	MinQueriesPerTimeSliceCheck int `validate:"gte=0"`
	// 每帧的时间片
	MaxTimeSlicePerTick time.Duration `validate:"gte=0"`
	// 小于这个距离的 query 直接是最高优先级
	HighImportanceQueryDistanceThreshold float32 `validate:"gte=0"`
	MaxQueryImportance                   float32 `validate:"gte=0"`
	// 视距边缘的 query 的优先级
	SightLimitQueryImportance float32 `validate:"gte=0"`
	// 一次视线检测消耗多少预算
	TraceCost int `validate:"gte=0"`
	// 预算用到这个比例后，远处的 query 优先级不超过 SightLimitQueryImportance
	ImportanceLimitTraceFraction float32 `validate:"gte=0,lte=1"`
	// 没轮到的 query 每帧至少增加的 age，为 0 时只按帧间隔增加
	MinAgePerSkippedTick float32 `validate:"gte=0"`
	// 自动可见的 query 是否计入时间片检查的计数
	AutoSightCountsTowardTimeSlice bool
}

// DefaultSettings 默认参数
func DefaultSettings() Settings {
	return Settings{
		MaxTracesPerTick:                     6,
		MinQueriesPerTimeSliceCheck:          40,
		MaxTimeSlicePerTick:                  5 * time.Millisecond,
		HighImportanceQueryDistanceThreshold: 300,
		MaxQueryImportance:                   60,
		SightLimitQueryImportance:            10,
		TraceCost:                            1,
		ImportanceLimitTraceFraction:         0.75,
		MinAgePerSkippedTick:                 60,
		AutoSightCountsTowardTimeSlice:       true,
	}
}

var validate = validator.New()

// Validate 只检查非负
func (s Settings) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("invalid sight settings: %w", err)
	}
	return nil
}

// SettingsFromConfig 读取 perception.sight.* 配置
func SettingsFromConfig(cfg *config.Config) (Settings, error) {
	s := Settings{
		MaxTracesPerTick:                     cfg.GetInt("perception.sight.maxtracespertick"),
		MinQueriesPerTimeSliceCheck:          cfg.GetInt("perception.sight.minqueriespertimeslicecheck"),
		MaxTimeSlicePerTick:                  cfg.GetDuration("perception.sight.maxtimeslicepertick"),
		HighImportanceQueryDistanceThreshold: float32(cfg.GetFloat64("perception.sight.highimportancequerydistancethreshold")),
		MaxQueryImportance:                   float32(cfg.GetFloat64("perception.sight.maxqueryimportance")),
		SightLimitQueryImportance:            float32(cfg.GetFloat64("perception.sight.sightlimitqueryimportance")),
		TraceCost:                            cfg.GetInt("perception.sight.tracecost"),
		ImportanceLimitTraceFraction:         float32(cfg.GetFloat64("perception.sight.importancelimittracefraction")),
		MinAgePerSkippedTick:                 float32(cfg.GetFloat64("perception.sight.minageperskippedtick")),
		AutoSightCountsTowardTimeSlice:       cfg.GetBool("perception.sight.autosightcountstowardtimeslice"),
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func (s Settings) traceCost() int {
	if s.TraceCost < 1 {
		return 1
	}
	return s.TraceCost
}

func (s Settings) minQueriesPerTimeSliceCheck() int {
	if s.MinQueriesPerTimeSliceCheck < 1 {
		return 1
	}
	return s.MinQueriesPerTimeSliceCheck
}
