package vela

// bitsPerWord is the number of slot bits stored in each Dirty word.
const bitsPerWord = 31

// Dirty is a bitmask of changed context slots. Slot i lives in word i/31
// at bit i%31. A first word of -1 marks a clean component.
type Dirty []int32

func cleanDirty(slots int) Dirty {
	words := (slots + bitsPerWord - 1) / bitsPerWord
	if words < 1 {
		words = 1
	}
	d := make(Dirty, words)
	d[0] = -1
	return d
}

// Clean reports whether no slot is marked.
func (d Dirty) Clean() bool { return len(d) == 0 || d[0] == -1 }

// Has reports whether slot i is marked.
func (d Dirty) Has(i int) bool {
	if d.Clean() || i < 0 {
		return false
	}
	w := i / bitsPerWord
	return w < len(d) && d[w]&(1<<(i%bitsPerWord)) != 0
}

// Any reports whether any of the given slots is marked.
func (d Dirty) Any(slots ...int) bool {
	for _, i := range slots {
		if d.Has(i) {
			return true
		}
	}
	return false
}

func (d Dirty) mark(i int) Dirty {
	w := i / bitsPerWord
	for len(d) <= w {
		d = append(d, 0)
	}
	d[w] |= 1 << (i % bitsPerWord)
	return d
}
