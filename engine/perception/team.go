package perception

// TeamID 阵营
type TeamID uint8

// NoTeam 不属于任何阵营
const NoTeam TeamID = 255

// Attitude 阵营之间的态度
type Attitude int8

const (
	Friendly Attitude = iota
	Neutral
	Hostile
)

func (a Attitude) String() string {
	switch a {
	case Friendly:
		return "friendly"
	case Neutral:
		return "neutral"
	case Hostile:
		return "hostile"
	}
	return "unknown"
}

// AttitudeSolver 计算 a 对 b 的态度
type AttitudeSolver func(a, b TeamID) Attitude

// DefaultAttitudeSolver 任意一方没有阵营是中立，同阵营友好，其他敌对
func DefaultAttitudeSolver(a, b TeamID) Attitude {
	if a == NoTeam || b == NoTeam {
		return Neutral
	}
	if a == b {
		return Friendly
	}
	return Hostile
}

var attitudeSolver AttitudeSolver = DefaultAttitudeSolver

// SetAttitudeSolver 替换全局的态度计算，传 nil 恢复默认
func SetAttitudeSolver(solver AttitudeSolver) {
	if solver == nil {
		solver = DefaultAttitudeSolver
	}
	attitudeSolver = solver
}

// GetAttitude a 对 b 的态度
func GetAttitude(a, b TeamID) Attitude {
	return attitudeSolver(a, b)
}

// Affiliation 感知关心的阵营 flag
type Affiliation uint8

const (
	DetectEnemies Affiliation = 1 << iota
	DetectNeutrals
	DetectFriendlies

	// DetectNone 什么都不关心
	DetectNone Affiliation = 0
	// DetectAll 关心所有阵营
	DetectAll = DetectEnemies | DetectNeutrals | DetectFriendlies
)

// Has 是否包含 flag
func (a Affiliation) Has(flag Affiliation) bool {
	return a&flag != 0
}

// AffiliationOf 态度对应的 flag
func AffiliationOf(attitude Attitude) Affiliation {
	switch attitude {
	case Friendly:
		return DetectFriendlies
	case Neutral:
		return DetectNeutrals
	case Hostile:
		return DetectEnemies
	}
	return DetectNone
}

// ShouldSenseTeam listener 所在阵营根据 flags 是否关心 target 所在阵营
func ShouldSenseTeam(listenerTeam, targetTeam TeamID, flags Affiliation) bool {
	return flags.Has(AffiliationOf(GetAttitude(listenerTeam, targetTeam)))
}
