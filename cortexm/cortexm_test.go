package cortexm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIRQNumber(t *testing.T) {
	tests := []struct {
		name string
		icsr uint32
		want int16
	}{
		{"thread mode", 0x0000_0000, -16},
		{"NMI", 0x0000_0002, -14},
		{"HardFault", 0x0000_0003, -13},
		{"SysTick", 0x0000_000F, -1},
		{"first external interrupt", 0x0000_0010, 0},
		{"interrupt 31", 0x0000_002F, 31},
		{"all vector bits set", 0x0000_01FF, 495},
		{"upper ICSR bits ignored", 0xFFFF_FE10, 0},
		{"pending bits ignored", 0x0440_001F, 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IRQNumber(tt.icsr))
		})
	}
}

func TestCurrentIRQn(t *testing.T) {
	resetRuntimeState()
	hostedICSR = 0x0000_001F
	assert.Equal(t, int16(15), CurrentIRQn())
}

func TestMaskPrimitivesNest(t *testing.T) {
	resetRuntimeState()

	outer := DisableInterrupts()
	assert.Equal(t, uint32(0), outer)
	assert.True(t, InterruptsMasked())

	inner := DisableInterrupts()
	assert.Equal(t, uint32(1), inner)
	EnableInterrupts(inner)
	assert.True(t, InterruptsMasked(), "inner exit must restore the masked state")

	EnableInterrupts(outer)
	assert.False(t, InterruptsMasked())
}
