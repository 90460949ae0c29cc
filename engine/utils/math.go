package utils

// MaxInt return max
func MaxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
