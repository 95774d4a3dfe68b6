package mph

import "testing"

func TestMinimalSetAddContainsRemove(t *testing.T) {
	assert := newAsserter(t)

	m := buildMinimal(t, keyw)
	s := NewMinimalSet(m)

	added, err := s.Add(keyw[0])
	assert(err == nil, "expected Add to succeed, got %v", err)
	assert(added, "expected Add to report the bit was previously clear")
	assert(s.Contains(keyw[0]), "expected Contains(%q) to be true after Add", keyw[0])

	removed := s.Remove(keyw[0])
	assert(removed, "expected Remove to report the bit was previously set")
	assert(!s.Contains(keyw[0]), "expected Contains(%q) to be false after Remove", keyw[0])
}

func TestMinimalSetRejectsNonMember(t *testing.T) {
	assert := newAsserter(t)

	m := buildMinimal(t, keyw)
	s := NewMinimalSet(m)

	_, err := s.Add("not-in-the-domain-at-all")
	assert(err != nil, "expected Add to reject a non-member key")
}

func TestMinimalSetSizeAndEmptiness(t *testing.T) {
	assert := newAsserter(t)

	m := buildMinimal(t, keyw)
	s := NewMinimalSet(m)
	assert(s.IsEmpty(), "expected a fresh set to be empty")
	assert(!s.IsFull(), "expected a fresh set to not be full")

	s.Fill()
	assert(s.IsFull(), "expected Fill to make the set full")
	assert(s.Size() == len(keyw), "expected size %d after Fill, got %d", len(keyw), s.Size())

	count := 0
	s.ForEach(func(string) { count++ })
	assert(count == len(keyw), "expected ForEach to visit %d members, visited %d", len(keyw), count)
}

func TestMinimalSetRemoveIf(t *testing.T) {
	assert := newAsserter(t)

	m := buildMinimal(t, keyw)
	s := NewMinimalSet(m)
	s.Fill()

	removed := s.RemoveIf(func(v string) bool { return len(v) > 10 })
	assert(removed > 0, "expected RemoveIf to remove at least one long word")
	s.ForEach(func(v string) {
		assert(len(v) <= 10, "expected only short words to remain, found %q", v)
	})
}

func TestMinimalSetMutableCopyIndependence(t *testing.T) {
	assert := newAsserter(t)

	m := buildMinimal(t, keyw)
	s := NewMinimalSet(m)
	s.Add(keyw[0])

	cp := s.MutableCopy()
	cp.Add(keyw[1])

	assert(s.Contains(keyw[0]), "expected original to still contain keyw[0]")
	assert(!s.Contains(keyw[1]), "expected original to be unaffected by mutation on the copy")
	assert(cp.Contains(keyw[1]), "expected copy to contain keyw[1]")
}

func TestMinimalSetImmutableView(t *testing.T) {
	assert := newAsserter(t)

	m := buildMinimal(t, keyw)
	s := NewMinimalSet(m)
	view := s.ImmutableView()
	assert(!view.Contains(keyw[0]), "expected view to reflect empty set before Add")

	s.Add(keyw[0])
	assert(view.Contains(keyw[0]), "expected live view to reflect mutation through s")
}
