package sorting

// Shaker sorts s with alternating forward and backward bubble passes between
// two shrinking boundaries. The forward pass carries the largest unsorted
// element to right, the backward pass carries the smallest to left.
//
// Small elements stuck near the end reach the front in one backward pass
// instead of one position per pass.
func Shaker[T any](s []T, less Less[T]) Stats {
	var st Stats
	if len(s) < 2 {
		return st
	}

	left, right := 0, len(s)-1
	for left < right {
		st.Passes++
		for i := left; i < right; i++ {
			st.Comparisons++
			if less(s[i+1], s[i]) {
				s[i], s[i+1] = s[i+1], s[i]
				st.Swaps++
			}
		}
		right--

		st.Passes++
		for i := right; i > left; i-- {
			st.Comparisons++
			if less(s[i], s[i-1]) {
				s[i], s[i-1] = s[i-1], s[i]
				st.Swaps++
			}
		}
		left++
	}
	return st
}
