package bbcode

// State is the scan cursor over a single input buffer.
// The offset only moves forward; 0 <= offset <= length holds at all times.
type State struct {
	input  string
	length int
	offset int
}

// newState creates a cursor positioned at the start of input.
func newState(input string) *State {
	return &State{
		input:  input,
		length: len(input),
	}
}

// Valid reports whether there is input left to scan.
func (s *State) Valid() bool {
	return s.offset < s.length
}

// Finish moves the cursor to the end of input. Scanning stops afterwards.
func (s *State) Finish() {
	s.offset = s.length
}

// Offset returns the current byte offset.
func (s *State) Offset() int {
	return s.offset
}

// rest returns the unscanned remainder of the input.
func (s *State) rest() string {
	return s.input[s.offset:]
}

// advance moves the cursor n bytes forward, clamped to the end of input.
func (s *State) advance(n int) {
	s.offset += n
	if s.offset > s.length {
		s.offset = s.length
	}
}
