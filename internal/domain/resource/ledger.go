package resource

// Ledger is a fixed set of stockpile quantities. It is a value type:
// every operation returns a new Ledger and leaves the operands alone.
type Ledger struct {
	Ore   int `json:"ore"`
	Wood  int `json:"wood"`
	Metal int `json:"metal"`
	Food  int `json:"food"`
}

func (l Ledger) Add(other Ledger) Ledger {
	return Ledger{
		Ore:   l.Ore + other.Ore,
		Wood:  l.Wood + other.Wood,
		Metal: l.Metal + other.Metal,
		Food:  l.Food + other.Food,
	}
}

// Sub clamps every field at zero instead of failing. It is NOT a
// transactional withdrawal: callers that spend from a ledger must gate on
// CanAfford first (game.State.SpendResources is the sanctioned path).
func (l Ledger) Sub(other Ledger) Ledger {
	return Ledger{
		Ore:   clampZero(l.Ore - other.Ore),
		Wood:  clampZero(l.Wood - other.Wood),
		Metal: clampZero(l.Metal - other.Metal),
		Food:  clampZero(l.Food - other.Food),
	}
}

// Scale multiplies every field by factor, truncating toward zero.
func (l Ledger) Scale(factor float64) Ledger {
	return Ledger{
		Ore:   int(float64(l.Ore) * factor),
		Wood:  int(float64(l.Wood) * factor),
		Metal: int(float64(l.Metal) * factor),
		Food:  int(float64(l.Food) * factor),
	}
}

// CanAfford reports whether every field covers the corresponding cost field.
func (l Ledger) CanAfford(cost Ledger) bool {
	return l.Ore >= cost.Ore &&
		l.Wood >= cost.Wood &&
		l.Metal >= cost.Metal &&
		l.Food >= cost.Food
}

// Total is the sum over all fields, used by the score function.
func (l Ledger) Total() int {
	return l.Ore + l.Wood + l.Metal + l.Food
}

func (l Ledger) IsZero() bool {
	return l == Ledger{}
}

func clampZero(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
