package via

// keyMap maps host key codes to the (row, col) matrix position the
// reference keyboard ROM expects, lifted directly from the original
// implementation's create_key_map! table.
var keyMap = map[uint32][2]byte{
	10: {4, 7}, // A
	11: {4, 1}, // B
	12: {6, 4}, // C
	13: {3, 2}, // D
	14: {2, 2}, // E
	15: {4, 3}, // F
	16: {5, 3}, // G
	17: {5, 4}, // H
	18: {2, 6}, // I
	19: {4, 5}, // J
	20: {4, 6}, // K
	21: {5, 6}, // L
	22: {6, 5}, // M
	23: {5, 5}, // N
	24: {3, 6}, // O
	25: {3, 7}, // P
	26: {1, 0}, // Q
	27: {3, 3}, // R
	28: {5, 1}, // S
	29: {2, 3}, // T
	30: {3, 5}, // U
	31: {6, 3}, // V
	32: {2, 1}, // W
	33: {4, 2}, // X
	34: {4, 4}, // Y
	35: {6, 1}, // Z
}

// KeyboardBuffer is a 16-slot ring buffer of host key codes, matching the
// real keyboard interface's fixed-depth rollover buffer.
type KeyboardBuffer struct {
	buffer       [16]uint32
	next         int
	writeEnabled bool
}

// Push enqueues key, wrapping the ring at 16 entries.
func (k *KeyboardBuffer) Push(key uint32) {
	k.buffer[k.next] = key
	k.next = (k.next + 1) & 0x0F
}

// Clear empties the buffer.
func (k *KeyboardBuffer) Clear() {
	k.next = 0
	k.buffer = [16]uint32{}
}

// Len reports the ring's write position: the number of keys pushed since
// the last Clear, modulo 16. IsDown only scans the first Len slots.
func (k *KeyboardBuffer) Len() int {
	return k.next
}

// IsDown reports whether any currently buffered key maps to the (row,
// col) encoded in rowCol (bits 0-2 column, bits 4-6 row, matching the
// probe byte written to Port A2).
func (k *KeyboardBuffer) IsDown(rowCol byte) bool {
	row := (rowCol >> 4) & 0x07
	col := rowCol & 0x07
	for i := 0; i < k.next; i++ {
		pos, ok := keyMap[k.buffer[i]]
		if ok && pos[0] == row && pos[1] == col {
			return true
		}
	}
	return false
}
