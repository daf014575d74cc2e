package wizard

import "slices"

// Sequencer moves linearly through the wizard steps and remembers which ones were completed.
// The zero value starts at the first step.
type Sequencer struct {
	current   int
	completed map[Step]struct{}
}

// Current returns the step being shown.
func (s *Sequencer) Current() Step {
	return steps[s.current]
}

// Advance moves to the next step and marks the step being left as completed.
// It does nothing at the last step.
func (s *Sequencer) Advance() {
	if s.current >= len(steps)-1 {
		return
	}
	s.MarkComplete(steps[s.current])
	s.current++
}

// Retreat moves to the previous step. It does nothing at the first step
// and never clears completion marks.
func (s *Sequencer) Retreat() {
	if s.current <= 0 {
		return
	}
	s.current--
}

// JumpTo moves directly to step if it is the current step or has been completed,
// which is how a progress indicator lets the user revisit earlier steps.
// It reports whether the move was allowed.
func (s *Sequencer) JumpTo(step Step) bool {
	if !step.Valid() {
		return false
	}
	if step != s.Current() && !s.IsCompleted(step) {
		return false
	}
	s.current = slices.Index(steps[:], step)
	return true
}

// MarkComplete records step as completed. Marking a step twice is a no-op.
func (s *Sequencer) MarkComplete(step Step) {
	if !step.Valid() {
		return
	}
	if s.completed == nil {
		s.completed = make(map[Step]struct{}, len(steps))
	}
	s.completed[step] = struct{}{}
}

// IsCompleted reports whether step has been completed.
func (s *Sequencer) IsCompleted(step Step) bool {
	_, ok := s.completed[step]
	return ok
}

// CompletedSteps returns the completed steps in wizard order.
func (s *Sequencer) CompletedSteps() []Step {
	var out []Step
	for _, step := range steps {
		if s.IsCompleted(step) {
			out = append(out, step)
		}
	}
	return out
}

// AtEnd reports whether the sequencer is on the last step.
func (s *Sequencer) AtEnd() bool {
	return s.current == len(steps)-1
}

// Reset returns to the first step and forgets every completion mark.
func (s *Sequencer) Reset() {
	s.current = 0
	s.completed = nil
}
