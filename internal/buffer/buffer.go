package buffer

// Buffer accumulates byte sequences in a single contiguous slice. A sequence
// is grown by appending and completed by Finish, which pins it in place and
// starts a new one. The buffer never grows past maxSize, thereby limiting
// the total amount of memory all the sequences may occupy.
type Buffer struct {
	memory  []byte
	begin   int
	maxSize int
}

func New(initialSize, maxSize int) Buffer {
	return Buffer{
		memory:  make([]byte, 0, initialSize),
		maxSize: maxSize,
	}
}

// Append writes data to the current segment, returning false if the size
// limit would be exceeded. In that case the data is discarded.
func (b *Buffer) Append(elements []byte) (ok bool) {
	if len(b.memory)+len(elements) > b.maxSize {
		return false
	}

	b.memory = append(b.memory, elements...)
	return true
}

// AppendByte writes a single byte, checking the limit just as Append does.
func (b *Buffer) AppendByte(c byte) (ok bool) {
	if len(b.memory)+1 > b.maxSize {
		return false
	}

	b.memory = append(b.memory, c)
	return true
}

// SegmentLength returns the number of bytes the current segment occupies.
func (b *Buffer) SegmentLength() int {
	return len(b.memory) - b.begin
}

// Trunc truncates the last n bytes of the current segment. Previously
// completed segments stay intact.
func (b *Buffer) Trunc(n int) {
	if seglen := b.SegmentLength(); n > seglen {
		n = seglen
	}

	b.memory = b.memory[:len(b.memory)-n]
}

// Preview returns the current segment without completing it.
func (b *Buffer) Preview() []byte {
	return b.memory[b.begin:]
}

// Finish completes the current segment, returning its contents. The returned
// slice stays valid for the whole lifetime of the buffer.
func (b *Buffer) Finish() []byte {
	segment := b.memory[b.begin:]
	b.begin = len(b.memory)

	return segment
}

// Clear resets the pointers, so old values may be overridden by new ones.
// Segments returned before must not be used afterwards.
func (b *Buffer) Clear() {
	b.begin = 0
	b.memory = b.memory[:0]
}
