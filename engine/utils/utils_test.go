package utils

import (
	"testing"

	. "github.com/go-playground/assert/v2"
)

func Test_MaxInt(t *testing.T) {
	Equal(t, MaxInt(1, 2), 2)
	Equal(t, MaxInt(-3, 0), 0)
}

func Test_RunPanicless(t *testing.T) {
	Equal(t, RunPanicless(func() {}), true)
	Equal(t, RunPanicless(func() { panic("trace exploded") }), false)
	Equal(t, CatchPanic(func() { panic("x") }), "x")
}
