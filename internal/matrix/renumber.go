package matrix

import (
	"strconv"

	"keymatrix/pkg/geometry"
)

// RenumberState is the state of the hover-and-type renumber machine.
type RenumberState int

const (
	RenumberIdle RenumberState = iota
	RenumberHovering
	RenumberAccumulating
)

// renumberSession is the transient state of one renumber interaction:
// Idle -> Hovering(group) -> Accumulating(group, buffer) -> Idle.
type renumberSession struct {
	state  RenumberState
	dim    Dimension
	group  int
	buffer string
}

// ContinueHover tracks the pointer for the renumber machine. Entering
// Hovering requires the pointer to rest on the connecting line between
// two keys of one group, not on a key. Leaving the line while digits are
// pending auto-cancels the buffer: no mutation happens and re-entering
// the line starts clean.
//
// Hover classification is suspended while a draw sequence is in progress.
func (a *Annotator) ContinueHover(p geometry.Point2D) {
	if a.seq != nil {
		return
	}

	dim, n, ok := a.groupLineAt(p)
	if !ok {
		a.ren = renumberSession{}
		return
	}
	if a.ren.state != RenumberIdle && a.ren.dim == dim && a.ren.group == n {
		return // still on the same line, buffer intact
	}
	a.ren = renumberSession{state: RenumberHovering, dim: dim, group: n}
}

// HoveredGroup returns the group the renumber machine is resting on.
func (a *Annotator) HoveredGroup() (Dimension, int, bool) {
	if a.ren.state == RenumberIdle {
		return 0, 0, false
	}
	return a.ren.dim, a.ren.group, true
}

// RenumberBuffer returns the pending digit buffer, empty when none.
func (a *Annotator) RenumberBuffer() string {
	return a.ren.buffer
}

// RenumberState returns the current machine state.
func (a *Annotator) RenumberState() RenumberState {
	return a.ren.state
}

// RenumberKeypress appends a digit to the pending buffer while hovering a
// group line. Multi-digit indices accumulate ('1' then '0' yields "10").
// Non-digit runes are ignored and do not alter the buffer.
func (a *Annotator) RenumberKeypress(r rune) {
	if a.ren.state == RenumberIdle {
		return
	}
	if r < '0' || r > '9' {
		return
	}
	a.ren.buffer += string(r)
	a.ren.state = RenumberAccumulating
}

// RenumberCommit parses the buffer and renumbers the hovered group. When
// another group in the same dimension already holds the typed index the
// two groups swap indices; otherwise it is a simple rename. The buffer is
// cleared and the machine returns to Hovering over the (renumbered)
// group. With no pending buffer this is a no-op.
func (a *Annotator) RenumberCommit() {
	if a.ren.state != RenumberAccumulating || a.ren.buffer == "" {
		return
	}
	n, err := strconv.Atoi(a.ren.buffer)
	a.ren.buffer = ""
	a.ren.state = RenumberHovering
	if err != nil || n == a.ren.group {
		return
	}

	dim := a.ren.dim
	hovered := a.store.Group(dim, a.ren.group)
	holder := a.store.Group(dim, n)

	for _, k := range hovered {
		a.store.SetIndex(k, dim, n)
	}
	for _, k := range holder {
		a.store.SetIndex(k, dim, a.ren.group)
	}
	a.ren.group = n
}

// RenumberCancel discards the pending buffer without mutating anything,
// returning to Hovering with the original index intact.
func (a *Annotator) RenumberCancel() {
	if a.ren.state != RenumberAccumulating {
		return
	}
	a.ren.buffer = ""
	a.ren.state = RenumberHovering
}
