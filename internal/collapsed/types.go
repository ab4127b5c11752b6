package collapsed

// Stack represents a single collapsed call stack: an ordered list of frame
// names (root first, leaf last) and the number of samples observed for it.
type Stack struct {
	Frames []string
	Count  int
}

// Profile holds all the stacks parsed from one collapsed-stacks file.
type Profile struct {
	Stacks       []Stack
	TotalSamples int
}

// Leaf returns the innermost frame of a stack, the one that was actually
// executing when the sample was taken.
func (s *Stack) Leaf() string {
	if len(s.Frames) == 0 {
		return ""
	}
	return s.Frames[len(s.Frames)-1]
}
