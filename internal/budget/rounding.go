package budget

// distributeCents splits total cents across entries proportionally to their
// weights using the largest-remainder method: every entry gets the floor of
// its exact share, and the leftover cents go one at a time to the entries
// with the largest fractional remainders (ties broken by declaration order).
// The returned amounts always sum to exactly total.
func distributeCents(total int64, weights []float64) []int64 {
	n := len(weights)
	if n == 0 {
		return nil
	}

	var weightSum float64
	for _, w := range weights {
		weightSum += w
	}
	if weightSum <= 0 {
		// Degenerate input: equal split.
		weights = make([]float64, n)
		for i := range weights {
			weights[i] = 1
		}
		weightSum = float64(n)
	}

	amounts := make([]int64, n)
	remainders := make([]float64, n)
	var assigned int64
	for i, w := range weights {
		exact := float64(total) * (w / weightSum)
		amounts[i] = int64(exact)
		remainders[i] = exact - float64(amounts[i])
		assigned += amounts[i]
	}

	for leftover := total - assigned; leftover > 0; leftover-- {
		best := 0
		for i := 1; i < n; i++ {
			if remainders[i] > remainders[best] {
				best = i
			}
		}
		amounts[best]++
		remainders[best] = 0
	}

	return amounts
}

// percentagesOf converts cent amounts into integer percentages of total.
// Each entry is rounded to the nearest integer and the rounding remainder is
// absorbed by the largest allocation so the result sums to exactly 100.
func percentagesOf(amounts []int64, total int64) []int {
	n := len(amounts)
	if n == 0 || total <= 0 {
		return nil
	}

	percs := make([]int, n)
	sum, largest := 0, 0
	for i, a := range amounts {
		exact := float64(a) / float64(total) * 100
		percs[i] = int(exact + 0.5)
		sum += percs[i]
		if a > amounts[largest] {
			largest = i
		}
	}

	percs[largest] += 100 - sum
	return percs
}
