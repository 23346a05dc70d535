package deckgen

// Bucket maps a mana value to its curve bucket. Values at or below zero
// land in bucket 1 and values of six or more share bucket 6.
func Bucket(manaValue float64) int {
	switch {
	case manaValue <= 0:
		return 1
	case manaValue >= 6:
		return 6
	default:
		return int(manaValue)
	}
}

// CalculateCurve tallies the mana curve of a set of nonland cards. Cards
// missing from the source and lands are ignored.
func CalculateCurve(cards map[string]int, source CardSource) Curve {
	curve := Curve{1: 0, 2: 0, 3: 0, 4: 0, 5: 0, 6: 0}
	for name, qty := range cards {
		card, ok := source.Get(name)
		if !ok || card.IsLand() {
			continue
		}
		curve[Bucket(card.ManaValue)] += qty
	}
	return curve
}

// ScoreForCurve scores how much a card at the given mana value would help
// the deck approach its target curve. The score is the remaining fraction
// of the target bucket, clamped to [0, 1]. A full or overfull bucket scores
// zero, as does a bucket with no target at all.
func ScoreForCurve(manaValue float64, current, target Curve) float64 {
	bucket := Bucket(manaValue)
	want := target[bucket]
	if want <= 0 {
		return 0
	}
	gap := float64(want-current[bucket]) / float64(want)
	if gap < 0 {
		return 0
	}
	if gap > 1 {
		return 1
	}
	return gap
}

// AverageManaValue computes the mean mana value across a curve, treating
// bucket 6 as mana value six. Returns zero for an empty curve.
func AverageManaValue(curve Curve) float64 {
	total := 0
	weighted := 0.0
	for bucket, count := range curve {
		total += count
		weighted += float64(bucket) * float64(count)
	}
	if total == 0 {
		return 0
	}
	return weighted / float64(total)
}
