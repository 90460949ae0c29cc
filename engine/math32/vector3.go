package math32

import (
	"fmt"
	"math"
)

// Vector3 三维坐标，y 轴向上
type Vector3 struct {
	X float32
	Y float32
	Z float32
}

// InvalidLocation 无效坐标，表示从没见过或者已经遗忘
var InvalidLocation = Vector3{X: math.MaxFloat32, Y: math.MaxFloat32, Z: math.MaxFloat32}

// ZeroVector3 原点
var ZeroVector3 = Vector3{}

// ForwardVector3 默认朝向
var ForwardVector3 = Vector3{X: 1}

func (v Vector3) String() string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", v.X, v.Y, v.Z)
}

// IsValid 是否是有效坐标
func (v Vector3) IsValid() bool {
	return v != InvalidLocation
}

// IsZero 是否为零向量
func (v Vector3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// Add v + o
func (v Vector3) Add(o Vector3) Vector3 {
	return Vector3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Sub v - o
func (v Vector3) Sub(o Vector3) Vector3 {
	return Vector3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

// Scale v * s
func (v Vector3) Scale(s float32) Vector3 {
	return Vector3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Dot 点积
func (v Vector3) Dot(o Vector3) float32 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// SizeSquared 长度的平方
func (v Vector3) SizeSquared() float32 {
	return v.Dot(v)
}

// Size 长度
func (v Vector3) Size() float32 {
	return float32(math.Sqrt(float64(v.SizeSquared())))
}

// Normalize 单位化，零向量返回零向量
func (v Vector3) Normalize() Vector3 {
	size := v.Size()
	if size <= 1e-8 {
		return ZeroVector3
	}
	return v.Scale(1 / size)
}

// DistSquared 两点距离的平方
func DistSquared(a, b Vector3) float32 {
	return a.Sub(b).SizeSquared()
}

// Dist 两点距离
func Dist(a, b Vector3) float32 {
	return a.Sub(b).Size()
}

// Clamp 把 v 限定在 [min, max]
func Clamp(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Cos 角度制 cos
func Cos(degrees float32) float32 {
	return float32(math.Cos(float64(degrees) * math.Pi / 180))
}
