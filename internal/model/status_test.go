package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/salsaesp/shiftsat/internal/model"
)

func TestAlphabet_Contains(t *testing.T) {
	a := model.Alphabet{model.StatusMorning, model.StatusAfternoon}
	assert.True(t, a.Contains(model.StatusMorning))
	assert.False(t, a.Contains(model.StatusOff))
}

func TestIsWorkShift(t *testing.T) {
	assert.True(t, model.IsWorkShift(model.StatusMorning))
	assert.True(t, model.IsWorkShift(model.StatusAfternoon))
	assert.False(t, model.IsWorkShift(model.StatusOff))
	assert.False(t, model.IsWorkShift(model.StatusCompOff))
}

func TestIsFree(t *testing.T) {
	for _, s := range []model.Status{model.StatusOff, model.StatusClosed, model.StatusQualityOff, model.StatusCompOff} {
		assert.True(t, model.IsFree(s), "%s should be free", s)
	}
	for _, s := range []model.Status{model.StatusMorning, model.StatusAfternoon, model.StatusAbsence, model.StatusVacation, model.StatusOutOfRange} {
		assert.False(t, model.IsFree(s), "%s should not be free", s)
	}
}

func TestDefaultAlphabets(t *testing.T) {
	assert.True(t, model.DefaultShifts.Contains(model.StatusOutOfRange))
	assert.True(t, model.DefaultCheckShifts.Contains(model.StatusQualityOff))
	assert.False(t, model.DefaultCheckShifts.Contains(model.StatusAbsence), "check alphabet excludes non-working statuses")
	assert.True(t, model.DefaultWorkingShifts.Contains(model.StatusCompOff), "a worked compensation day counts as productive")
}
