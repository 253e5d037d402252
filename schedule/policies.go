package schedule

// soonAsPossible runs the first n slots, then stops: true, true, ..., false, false.
func soonAsPossible(n, max int) []bool {
	out := make([]bool, max)
	for i := 0; i < n; i++ {
		out[i] = true
	}

	return out
}

// lateAsPossible defers every run to the last possible moment: false until
// the final n slots, then true.
func lateAsPossible(n, max int) []bool {
	out := make([]bool, max)
	start := max - n
	for i := start; i < max; i++ {
		out[i] = true
	}

	return out
}

// centered places n true slots as a contiguous block straddling max/2.
// Start is clamped at zero and end at max-1, so the block is always
// exactly n wide when n <= max.
func centered(n, max int) []bool {
	out := make([]bool, max)
	if n == 0 || max == 0 {
		return out
	}

	mid := max / 2
	half := n / 2
	start := mid - half
	if start < 0 {
		start = 0
	}
	end := start + n - 1
	if end > max-1 {
		end = max - 1
	}
	for i := start; i <= end; i++ {
		out[i] = true
	}

	return out
}

// halfBeginningHalfEnd splits n roughly in half: the first half lands at
// the start of the slot range, the second half at the end.
func halfBeginningHalfEnd(n, max int) []bool {
	out := make([]bool, max)
	first := (n + 1) / 2
	second := n - first
	for i := 0; i < first; i++ {
		out[i] = true
	}
	for i := max - second; i < max; i++ {
		out[i] = true
	}

	return out
}

// interleaveEvenly distributes n true slots among max as uniformly as
// possible via Bresenham-style error accumulation: exactly n slots end up
// true, spread with minimal variance in gap size.
func interleaveEvenly(n, max int) []bool {
	out := make([]bool, max)
	if n == 0 || max == 0 {
		return out
	}
	acc := 0
	for i := 0; i < max; i++ {
		acc += n
		if acc >= max {
			out[i] = true
			acc -= max
		}
	}

	return out
}
