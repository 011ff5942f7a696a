package targets_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"omibyte.io/veneer/targets"
)

func TestFindBySeries(t *testing.T) {
	target, err := targets.All().FindBySeries("atsamd21")
	require.NoError(t, err)
	assert.Equal(t, "atsamd21", target.Series)
	assert.Equal(t, "cortex-m0plus", target.Cpu)
	assert.Equal(t, "cortexm", target.Architecture)

	_, err = targets.All().FindBySeries("atmega328p")
	assert.ErrorIs(t, err, targets.ErrSeriesNotFound)
}

func TestFindByChip(t *testing.T) {
	target, err := targets.All().FindByChip("atsame51j20")
	require.NoError(t, err)
	assert.Equal(t, "atsamx51", target.Series)

	target, err = targets.All().FindByChip("atsamd21g18")
	require.NoError(t, err)
	assert.Equal(t, "atsamd21", target.Series)

	_, err = targets.All().FindByChip("stm32f103")
	assert.ErrorIs(t, err, targets.ErrSeriesNotFound)
}

func TestHasInterrupt(t *testing.T) {
	target, err := targets.All().FindBySeries("atsamd21")
	require.NoError(t, err)
	assert.True(t, target.HasInterrupt("TC3"))
	assert.True(t, target.HasInterrupt("SERCOM5"))
	assert.False(t, target.HasInterrupt("GMAC"))

	target, err = targets.All().FindBySeries("atsamx51")
	require.NoError(t, err)
	assert.True(t, target.HasInterrupt("GMAC"))
	assert.False(t, target.HasInterrupt("PTC"))
}

func TestBuildTags(t *testing.T) {
	target, err := targets.All().FindBySeries("atsamx51")
	require.NoError(t, err)
	tags := target.BuildTags()
	assert.Contains(t, tags, "samx51")
	assert.Contains(t, tags, "sam")
	assert.Contains(t, tags, "cortexm")
}

func TestAllSeriesComplete(t *testing.T) {
	for _, target := range targets.All() {
		assert.NotEmpty(t, target.Series)
		assert.NotEmpty(t, target.Chips)
		assert.NotEmpty(t, target.ChipPackage)
		assert.NotEmpty(t, target.Interrupts)
	}
}
