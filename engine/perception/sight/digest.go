package sight

import (
	"math"

	"github.com/tutumagi/perception/engine/math32"
	"github.com/tutumagi/perception/engine/perception"
)

// SenseName listener 上视觉配置的 key
const SenseName = "sight"

// Config 感知者的视觉配置
type Config struct {
	SightRadius     float32 `yaml:"sightRadius"`
	LoseSightRadius float32 `yaml:"loseSightRadius"`
	// 半角，90 表示能看到前方 180 度
	PeripheralVisionAngleDegrees float32 `yaml:"peripheralVisionAngleDegrees"`
	// 距离上次看到的位置在这个范围内直接算看到，<= 0 表示关闭
	AutoSuccessRangeFromLastSeenLocation float32                `yaml:"autoSuccessRangeFromLastSeenLocation"`
	DetectionByAffiliation               perception.Affiliation `yaml:"detectionByAffiliation"`
}

// DefaultConfig 默认视觉配置
func DefaultConfig() *Config {
	return &Config{
		SightRadius:                          3000,
		LoseSightRadius:                      3500,
		PeripheralVisionAngleDegrees:         90,
		AutoSuccessRangeFromLastSeenLocation: -1,
		DetectionByAffiliation:               perception.DetectEnemies,
	}
}

// needsClamp 配置是否不合法，需要修正
func (c *Config) needsClamp() bool {
	return c.SightRadius < 0 ||
		c.LoseSightRadius < c.SightRadius ||
		c.PeripheralVisionAngleDegrees < 0 ||
		c.PeripheralVisionAngleDegrees > 180
}

// ConfigOf 获取 listener 的视觉配置，没有配置的 listener 不参与视觉感知
func ConfigOf(l *perception.Listener) (*Config, bool) {
	if l == nil {
		return nil, false
	}
	raw, ok := l.SenseConfig(SenseName)
	if !ok {
		return nil, false
	}
	switch cfg := raw.(type) {
	case *Config:
		if cfg == nil {
			return DefaultConfig(), true
		}
		return cfg, true
	case Config:
		return &cfg, true
	}
	return nil, false
}

// DigestedProperties 由配置预计算出来的参数，下次配置变化前不会改变
type DigestedProperties struct {
	PeripheralVisionAngleCos float32
	SightRadiusSq            float32
	// 0 表示关闭
	AutoSuccessRangeSqFromLastSeenLocation float32
	LoseSightRadiusSq                      float32
	AffiliationFlags                       perception.Affiliation
}

// Digest 由配置计算 DigestedProperties，非法的数值会被修正，不会出现负数或者 NaN
func Digest(cfg *Config) DigestedProperties {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	sightRadius := nonNegative(cfg.SightRadius)
	loseSightRadius := nonNegative(cfg.LoseSightRadius)
	if loseSightRadius < sightRadius {
		loseSightRadius = sightRadius
	}
	autoSuccess := nonNegative(cfg.AutoSuccessRangeFromLastSeenLocation)
	angle := math32.Clamp(nonNegative(cfg.PeripheralVisionAngleDegrees), 0, 180)

	return DigestedProperties{
		PeripheralVisionAngleCos:               math32.Cos(angle),
		SightRadiusSq:                          sightRadius * sightRadius,
		AutoSuccessRangeSqFromLastSeenLocation: autoSuccess * autoSuccess,
		LoseSightRadiusSq:                      loseSightRadius * loseSightRadius,
		AffiliationFlags:                       cfg.DetectionByAffiliation,
	}
}

// AutoSuccessEnabled 是否开启了上次看到位置附近的自动可见
func (d DigestedProperties) AutoSuccessEnabled() bool {
	return d.AutoSuccessRangeSqFromLastSeenLocation > 0
}

// nonNegative NaN 和负数都修正为 0
func nonNegative(v float32) float32 {
	if math.IsNaN(float64(v)) || v < 0 {
		return 0
	}
	return v
}
