package interpret

import "github.com/ian-shakespeare/tapevm/pkg/array"

// checkpoint is a value copy of the state speculative execution may touch.
// The program counter is not part of it.
type checkpoint struct {
	loops   []loopFrame
	pointer int
	tape    []int
}

func (m *Machine) snapshot() checkpoint {
	return checkpoint{
		loops:   array.Clone(m.loops),
		pointer: m.pointer,
		tape:    array.Clone(m.tape),
	}
}

// restore may be called any number of times with the same checkpoint.
func (m *Machine) restore(c checkpoint) {
	m.loops = array.Clone(c.loops)
	m.pointer = c.pointer
	copy(m.tape, c.tape)
}

// speculate runs fn, then restores saved. It returns the cell value under
// the pointer as fn left it.
func (m *Machine) speculate(saved checkpoint, fn func() error) (int, error) {
	if err := fn(); err != nil {
		return 0, err
	}
	value := m.tape[m.pointer]
	m.restore(saved)
	return value, nil
}
