package nfa

// ByteClasses maps each byte value to its equivalence class.
//
// Two bytes share a class when no state of the program can tell them apart,
// so the lazy DFA only needs one transition per class instead of 256.
//
// Example for pattern [a-z]+:
//   - Class 0: bytes 0x00-0x60 (before 'a')
//   - Class 1: bytes 0x61-0x7a ('a' to 'z')
//   - Class 2: bytes 0x7b-0xff (after 'z')
type ByteClasses struct {
	classes [256]byte
}

// SingletonByteClasses creates ByteClasses where each byte is its own class.
func SingletonByteClasses() ByteClasses {
	var bc ByteClasses
	for i := 0; i < 256; i++ {
		bc.classes[i] = byte(i)
	}
	return bc
}

// Get returns the equivalence class for the given byte.
func (bc *ByteClasses) Get(b byte) byte {
	return bc.classes[b]
}

// AlphabetLen returns the number of distinct classes.
func (bc *ByteClasses) AlphabetLen() int {
	// classes are assigned in increasing order, so the last byte has the max
	return int(bc.classes[255]) + 1
}

// Representatives returns one byte per class, in class order.
func (bc *ByteClasses) Representatives() []byte {
	reps := make([]byte, 0, bc.AlphabetLen())
	for b := 0; b < 256; b++ {
		if b == 0 || bc.classes[b] != bc.classes[b-1] {
			reps = append(reps, byte(b))
		}
	}
	return reps
}

// Elements returns all bytes that belong to the given equivalence class.
func (bc *ByteClasses) Elements(class byte) []byte {
	var elems []byte
	for b := 0; b < 256; b++ {
		if bc.classes[b] == class {
			elems = append(elems, byte(b))
		}
	}
	return elems
}

// ByteClassSet records class boundaries while the program is built.
//
// For every consumed range [lo, hi], lo-1 and hi become boundaries. Walking
// the 256 bytes and bumping the class after each boundary yields the classes.
type ByteClassSet struct {
	bits [4]uint64
}

// NewByteClassSet creates an empty ByteClassSet with no boundaries.
func NewByteClassSet() *ByteClassSet {
	return &ByteClassSet{}
}

// SetRange marks a byte range [start, end] as having distinct transitions.
func (bcs *ByteClassSet) SetRange(start, end byte) {
	if start > 0 {
		bcs.setBit(start - 1)
	}
	bcs.setBit(end)
}

// SetLookBoundaries separates the bytes that assertions inspect: the
// newline byte and the ASCII word characters.
func (bcs *ByteClassSet) SetLookBoundaries() {
	bcs.SetRange('\n', '\n')
	bcs.SetRange('0', '9')
	bcs.SetRange('A', 'Z')
	bcs.SetRange('_', '_')
	bcs.SetRange('a', 'z')
}

func (bcs *ByteClassSet) setBit(b byte) {
	bcs.bits[b/64] |= 1 << (b % 64)
}

func (bcs *ByteClassSet) getBit(b byte) bool {
	return bcs.bits[b/64]&(1<<(b%64)) != 0
}

// ByteClasses converts the boundary set into a ByteClasses lookup table.
func (bcs *ByteClassSet) ByteClasses() ByteClasses {
	var bc ByteClasses
	class := byte(0)
	for b := 0; b < 256; b++ {
		bc.classes[b] = class
		if b < 255 && bcs.getBit(byte(b)) {
			class++
		}
	}
	return bc
}

// Merge combines another ByteClassSet into this one.
func (bcs *ByteClassSet) Merge(other *ByteClassSet) {
	for i := range bcs.bits {
		bcs.bits[i] |= other.bits[i]
	}
}
