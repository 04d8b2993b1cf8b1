package emulator

import "fmt"

// StackSize is the number of return addresses the stack holds.
const StackSize = 16

// stack holds the return addresses of subroutine calls.
type stack struct {
	entries [StackSize]uint16
	size    int
}

func (s *stack) push(address uint16) error {
	if s.size == StackSize {
		return fmt.Errorf("%w: pushing return address 0x%04X", ErrStackOverflow, address)
	}
	s.entries[s.size] = address
	s.size++
	return nil
}

func (s *stack) pop() (uint16, error) {
	if s.size == 0 {
		return 0, ErrStackUnderflow
	}
	s.size--
	return s.entries[s.size], nil
}
