package pencil

// Focused returns the component holding keyboard focus, or nil.
func (s *Scene) Focused() *Component {
	return s.focused
}

// Focus gives keyboard focus to shape if it is Focusable and attached to
// s. The previous holder is blurred first. It reports whether shape holds
// focus afterwards.
func (s *Scene) Focus(shape Shape) bool {
	c := shape.Base()
	if c == s.focused {
		return true
	}
	if _, ok := c.variant.(Focusable); !ok || c.Scene() != s {
		return false
	}
	s.Blur()
	s.focused = c
	c.variant.(Focusable).FocusChanged(true)
	c.Fire(&Event{Kind: EventFocus, Target: c})
	return s.focused == c
}

// Blur removes keyboard focus, firing EventBlur on the previous holder.
func (s *Scene) Blur() {
	prev := s.focused
	if prev == nil {
		return
	}
	s.focused = nil
	prev.variant.(Focusable).FocusChanged(false)
	prev.Fire(&Event{Kind: EventBlur, Target: prev})
}

// focusFromClick moves focus after a click on target: the nearest
// Focusable component among target and its ancestors takes it, and
// clicking anything else, or nothing, clears it.
func (s *Scene) focusFromClick(target *Component) {
	for n := target; n != nil; n = n.parent {
		if _, ok := n.variant.(Focusable); ok {
			s.Focus(n)
			return
		}
	}
	s.Blur()
}
