package deckgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBucket(t *testing.T) {
	tests := []struct {
		manaValue float64
		want      int
	}{
		{-1, 1},
		{0, 1},
		{0.5, 1},
		{1, 1},
		{2, 2},
		{5, 5},
		{6, 6},
		{9, 6},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Bucket(tt.manaValue), "Bucket(%v)", tt.manaValue)
	}
}

func TestCalculateCurve(t *testing.T) {
	source := testCatalog()
	curve := CalculateCurve(map[string]int{
		"Lightning Bolt":   4, // mv 1
		"Goblin Raider":    4, // mv 2
		"Goblin Chieftain": 3, // mv 3
		"Mountain":         20,
		"Unknown Card":     2,
	}, source)

	assert.Equal(t, Curve{1: 4, 2: 4, 3: 3, 4: 0, 5: 0, 6: 0}, curve,
		"lands and unknown cards are ignored")
}

func TestScoreForCurve(t *testing.T) {
	target := Curve{1: 4, 2: 8}

	assert.Equal(t, 1.0, ScoreForCurve(1, Curve{}, target), "empty bucket scores full")
	assert.Equal(t, 0.5, ScoreForCurve(2, Curve{2: 4}, target), "half-full bucket scores the gap")
	assert.Equal(t, 0.0, ScoreForCurve(1, Curve{1: 4}, target), "full bucket scores zero")
	assert.Equal(t, 0.0, ScoreForCurve(1, Curve{1: 9}, target), "overfull bucket clamps to zero")
	assert.Equal(t, 0.0, ScoreForCurve(5, Curve{}, target), "bucket with no target scores zero")
}

func TestAverageManaValue(t *testing.T) {
	assert.Equal(t, 0.0, AverageManaValue(Curve{}), "empty curve averages zero")
	assert.Equal(t, 2.0, AverageManaValue(Curve{1: 2, 3: 2}))
	assert.Equal(t, 6.0, AverageManaValue(Curve{6: 5}), "bucket 6 counts as six")
}
