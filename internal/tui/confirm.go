package tui

import (
	"fmt"
	"strings"
)

// confirmState holds the data needed for the delete confirmation.
type confirmState struct {
	name   string
	phones int // Phone count frozen at confirm time.
}

// View renders the confirmation prompt.
func (cs confirmState) View() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Delete %s?", cs.name)

	switch cs.phones {
	case 0:
		b.WriteString("\n  The contact has no phones.")
	case 1:
		b.WriteString("\n  Its 1 phone will be removed too.")
	default:
		fmt.Fprintf(&b, "\n  Its %d phones will be removed too.", cs.phones)
	}
	return b.String()
}
