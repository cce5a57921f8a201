package risk

// Gate decides whether a detected round-trip profit is worth acting on.
type Gate struct {
	MinProfitUSD float64
}

// Allow reports whether profitUSD strictly exceeds the configured minimum.
func (g Gate) Allow(profitUSD float64) bool {
	return profitUSD > g.MinProfitUSD
}
