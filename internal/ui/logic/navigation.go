package logic

// Navigator handles selection movement and viewport management for a flat
// list of selectable items
type Navigator struct{}

// NewNavigator creates a new navigator
func NewNavigator() *Navigator {
	return &Navigator{}
}

// Move returns the index reached from index in direction ("up", "down",
// "home", "end") among total items. Movement stops at both ends.
func (n *Navigator) Move(index, total int, direction string) int {
	if total <= 0 {
		return 0
	}
	switch direction {
	case "up":
		index--
	case "down":
		index++
	case "home":
		index = 0
	case "end":
		index = total - 1
	}
	return clamp(index, 0, total-1)
}

// Scroll returns the viewport offset after a scroll in direction
// ("pageup", "pagedown", "halfup", "halfdown")
func (n *Navigator) Scroll(offset, height, totalLines int, direction string) int {
	if height < 1 {
		height = 1
	}
	half := max(height/2, 1)
	switch direction {
	case "pageup":
		offset -= height
	case "pagedown":
		offset += height
	case "halfup":
		offset -= half
	case "halfdown":
		offset += half
	}
	return clamp(offset, 0, max(totalLines-height, 0))
}

// EnsureVisible returns the smallest change to offset that puts line inside
// a viewport of the given height
func (n *Navigator) EnsureVisible(offset, height, line int) int {
	if height < 1 {
		height = 1
	}
	if line < offset {
		return max(line, 0)
	}
	if line >= offset+height {
		return line - height + 1
	}
	return offset
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
