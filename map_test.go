package mph

import (
	"errors"
	"testing"
)

func TestMinimalMapPutGetRemove(t *testing.T) {
	assert := newAsserter(t)

	// Map container contract: non-member keys rejected, SetValue writes through.
	items := []string{"ostrich", "dog", "snail", "centipede"}
	m := buildMinimal(t, items)
	storage := NewStorage[int](m.Len())
	mm := NewMinimalMap(m, storage)

	prev, err := mm.Put("ostrich", 2)
	assert(err == nil, "expected Put(ostrich,2) to succeed, got %v", err)
	assert(prev == 0, "expected zero previous value, got %d", prev)

	v, ok := mm.Get("ostrich")
	assert(ok, "expected Get(ostrich) to be present")
	assert(v == 2, "expected Get(ostrich)==2, got %d", v)

	_, err = mm.Put("whippet", 3)
	assert(err != nil, "expected Put(whippet,...) to fail for a non-member key")
	assert(errors.Is(err, ErrInvalidArgument), "expected ErrInvalidArgument, got %v", err)

	mm.Put("dog", 3)
	for _, e := range mm.Entries() {
		if e.Key == "dog" {
			e.SetValue(4)
		}
	}
	v, ok = mm.Get("dog")
	assert(ok && v == 4, "expected Get(dog)==4 after SetValue, got %d, present=%v", v, ok)

	prevVal, present := mm.Remove("dog")
	assert(present, "expected Remove(dog) to report it was present")
	assert(prevVal == 4, "expected Remove(dog) to return 4, got %d", prevVal)
	_, ok = mm.Get("dog")
	assert(!ok, "expected Get(dog) to be absent after Remove")
}

func TestMinimalMapDefaultValueStorage(t *testing.T) {
	assert := newAsserter(t)

	items := []string{"ostrich", "dog", "snail", "centipede"}
	m := buildMinimal(t, items)
	storage := NewStorageWithDefault[int](m.Len(), 0)
	mm := NewMinimalMap(m, storage)

	v, ok := mm.Get("snail")
	assert(ok, "expected default-value storage to always report present")
	assert(v == 0, "expected Get(snail)==0 without a prior Put, got %d", v)

	mm.Put("dog", 9)
	prev, present := mm.Remove("dog")
	assert(present, "expected Remove to report prior presence")
	assert(prev == 9, "expected Remove to return 9, got %d", prev)

	v, ok = mm.Get("dog")
	assert(ok, "expected dog to remain present (default storage never absents)")
	assert(v == 0, "expected dog's slot to reset to the default value 0, got %d", v)
}

func TestMinimalMapSizeAndClear(t *testing.T) {
	assert := newAsserter(t)

	m := buildMinimal(t, keyw)
	storage := NewStorage[int](m.Len())
	mm := NewMinimalMap(m, storage)

	for i, k := range keyw {
		mm.Put(k, i)
	}
	assert(mm.Size() == len(keyw), "expected size %d, got %d", len(keyw), mm.Size())

	mm.Clear()
	assert(mm.Size() == 0, "expected size 0 after Clear, got %d", mm.Size())
}

func TestMinimalMapRejectsTypedNilPointer(t *testing.T) {
	assert := newAsserter(t)

	// A nil *int boxed through V any must be caught by reflect, not by
	// any(v) == nil (which is false for a typed-nil pointer).
	items := []string{"ostrich", "dog", "snail", "centipede"}
	m := buildMinimal(t, items)

	storage := NewStorage[*int](m.Len())
	mm := NewMinimalMap(m, storage)

	var nilPtr *int
	_, err := mm.Put("dog", nilPtr)
	assert(err != nil, "expected Put(dog, nil *int) to be rejected")
	assert(errors.Is(err, ErrContainerIntegrity), "expected ErrContainerIntegrity, got %v", err)
	_, ok := mm.Get("dog")
	assert(!ok, "expected dog to remain absent after a rejected nil Put")

	n := 7
	_, err = mm.Put("dog", &n)
	assert(err == nil, "expected Put(dog, &n) to succeed, got %v", err)
	v, ok := mm.Get("dog")
	assert(ok && v == &n, "expected Get(dog) to return the stored pointer")
}

func TestMinimalMapDefaultValueStorageReinterpretsNilPointerAsRemove(t *testing.T) {
	assert := newAsserter(t)

	items := []string{"ostrich", "dog", "snail", "centipede"}
	m := buildMinimal(t, items)

	zero := 0
	storage := NewStorageWithDefault[*int](m.Len(), &zero)
	mm := NewMinimalMap(m, storage)

	n := 9
	mm.Put("dog", &n)
	v, ok := mm.Get("dog")
	assert(ok && v == &n, "expected dog to hold &n before the nil Put")

	var nilPtr *int
	prev, err := mm.Put("dog", nilPtr)
	assert(err == nil, "expected a nil *int Put on default-value storage to be reinterpreted as Remove, got %v", err)
	assert(prev == &n, "expected Put to return the previous pointer, got %v", prev)

	v, ok = mm.Get("dog")
	assert(ok, "expected dog to remain present (default storage never absents)")
	assert(v == &zero, "expected dog's slot to reset to the default pointer, got %v", v)
}

func TestReplaceIfEqualAndContainsValue(t *testing.T) {
	assert := newAsserter(t)

	items := []string{"ostrich", "dog", "snail", "centipede"}
	m := buildMinimal(t, items)
	storage := NewStorage[int](m.Len())
	mm := NewMinimalMap(m, storage)
	mm.Put("dog", 5)

	ok, err := ReplaceIfEqual(mm, "dog", 5, 6)
	assert(err == nil && ok, "expected ReplaceIfEqual to succeed when current value matches")
	v, _ := mm.Get("dog")
	assert(v == 6, "expected dog==6 after ReplaceIfEqual, got %d", v)

	ok, err = ReplaceIfEqual(mm, "dog", 5, 7)
	assert(err == nil && !ok, "expected ReplaceIfEqual to fail when current value no longer matches")

	assert(ContainsValue(mm, 6), "expected ContainsValue(6) to be true")
	assert(!ContainsValue(mm, 999), "expected ContainsValue(999) to be false")
}
