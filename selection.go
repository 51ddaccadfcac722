package orbit

// StyleChange is an explicit visual intent produced by a selection or
// hover transition. The engine applies changes through the
// RenderSurface; the model itself never mutates visuals, which keeps
// the preserve/restore rules in one place.
type StyleChange struct {
	Index int
	State VisualState
}

// selectionModel tracks at most one hovered and one selected point.
// Selected takes visual precedence over hovered when they coincide:
// transitions never emit a restyle for the currently selected index
// except select/deselect themselves. -1 means no point.
type selectionModel struct {
	hovered  int
	selected int
	changes  []StyleChange // reused transition buffer
}

func newSelectionModel() selectionModel {
	return selectionModel{hovered: -1, selected: -1}
}

// visualFor returns the current visual priority of index i.
func (m *selectionModel) visualFor(i int) VisualState {
	switch i {
	case m.selected:
		return VisualSelected
	case m.hovered:
		return VisualHovered
	default:
		return VisualIdle
	}
}

// setHover moves the hover slot to i (-1 clears). The returned changes
// clear the old hover's transient styling and apply the new one's,
// skipping the selected point in both directions. The returned slice is
// valid until the next transition call.
func (m *selectionModel) setHover(i int) []StyleChange {
	if i == m.hovered {
		return nil
	}
	m.changes = m.changes[:0]
	old := m.hovered
	m.hovered = i
	if old >= 0 && old != m.selected {
		m.changes = append(m.changes, StyleChange{Index: old, State: VisualIdle})
	}
	if i >= 0 && i != m.selected {
		m.changes = append(m.changes, StyleChange{Index: i, State: VisualHovered})
	}
	return m.changes
}

// toggleSelect selects i, replacing any prior selection. Selecting the
// already-selected index, or -1, clears the selection. Hover
// bookkeeping is untouched; a deposed selection falls back to hovered
// styling when the pointer is still on it.
func (m *selectionModel) toggleSelect(i int) []StyleChange {
	if i == m.selected {
		i = -1
	}
	if i == m.selected {
		return nil
	}
	m.changes = m.changes[:0]
	old := m.selected
	m.selected = i
	if old >= 0 {
		m.changes = append(m.changes, StyleChange{Index: old, State: m.visualFor(old)})
	}
	if i >= 0 {
		m.changes = append(m.changes, StyleChange{Index: i, State: VisualSelected})
	}
	return m.changes
}

// pointRemoved realigns both slots with a compacted point sequence
// after index i was deleted: a slot equal to i empties, a slot greater
// than i shifts down by one.
func (m *selectionModel) pointRemoved(i int) {
	switch {
	case m.hovered == i:
		m.hovered = -1
	case m.hovered > i:
		m.hovered--
	}
	switch {
	case m.selected == i:
		m.selected = -1
	case m.selected > i:
		m.selected--
	}
}

// reset clears both slots without emitting changes. Used when the
// whole point set is replaced.
func (m *selectionModel) reset() {
	m.hovered = -1
	m.selected = -1
	m.changes = m.changes[:0]
}
