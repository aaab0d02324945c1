package pq

// Heapify rearranges s in place into min-heap order under cmp: for every i,
// s[i] sorts no later than s[2i+1] and s[2i+2].
func Heapify[E any](s []E, cmp func(a, b E) int) {
	for i := len(s)/2 - 1; i >= 0; i-- {
		siftDown(s, i, cmp)
	}
}

func siftDown[E any](s []E, i int, cmp func(a, b E) int) {
	n := len(s)
	for {
		least := i
		if l := 2*i + 1; l < n && cmp(s[l], s[least]) < 0 {
			least = l
		}
		if r := 2*i + 2; r < n && cmp(s[r], s[least]) < 0 {
			least = r
		}
		if least == i {
			return
		}
		s[i], s[least] = s[least], s[i]
		i = least
	}
}
