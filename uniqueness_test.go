package mph

import "testing"

func intEquivalence() Equivalence[int] {
	return Equivalence[int]{
		Hash:  func(v int) uint64 { return uint64(v) },
		Equal: func(a, b int) bool { return a == b },
	}
}

func TestUniquenessCheckerAllDistinct(t *testing.T) {
	assert := newAsserter(t)

	items := make([]int, 0, len(keyw))
	for i := range keyw {
		items = append(items, i)
	}

	checker := NewUniquenessChecker[int](intEquivalence(), len(items), 8)
	assert(checker.AllDistinct(SliceFactory(items)), "expected distinct ints to report unique")
}

func TestUniquenessCheckerDetectsDuplicate(t *testing.T) {
	assert := newAsserter(t)

	items := []int{1, 2, 3, 4, 5, 3}
	checker := NewUniquenessChecker[int](intEquivalence(), len(items), 8)
	assert(!checker.AllDistinct(SliceFactory(items)), "expected duplicate 3 to be detected")
}

func TestUniquenessCheckerLargeRange(t *testing.T) {
	assert := newAsserter(t)

	n := 1_000_000
	items := make([]int64, n)
	for i := 0; i < n; i++ {
		items[i] = int64(i)
	}

	eq := Equivalence[int64]{
		Hash:  func(v int64) uint64 { return uint64(v) },
		Equal: func(a, b int64) bool { return a == b },
	}
	checker := NewUniquenessChecker[int64](eq, n, 8)
	assert(checker.AllDistinct(SliceFactory(items)), "expected 1M distinct longs to report unique")

	items[n-1] = 0x1000000000
	items[0] = 0x1000000000
	assert(!checker.AllDistinct(SliceFactory(items)), "expected mutated duplicate to be detected")
}
