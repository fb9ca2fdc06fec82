package sorting

// Bubble sorts s with adjacent swaps. After pass k the last k elements are in
// their final place and drop out of the active range; the sort stops after
// the first pass without a swap. Stable, O(n²) worst case, O(n) on sorted
// input.
func Bubble[T any](s []T, less Less[T]) Stats {
	var st Stats
	n := len(s)
	for {
		st.Passes++
		swapped := false
		for i := 1; i < n; i++ {
			st.Comparisons++
			if less(s[i], s[i-1]) {
				s[i], s[i-1] = s[i-1], s[i]
				st.Swaps++
				swapped = true
			}
		}
		n--
		if !swapped {
			return st
		}
	}
}
