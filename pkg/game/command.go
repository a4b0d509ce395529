// Package game drives a running session: it interprets completed input
// lines against a World and carries the serializable session state.
package game

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jwebster45206/adventure-engine/pkg/world"
)

// OutcomeType classifies the result of dispatching one input line.
type OutcomeType string

const (
	OutcomeMoved      OutcomeType = "moved"
	OutcomeMoveFailed OutcomeType = "move_failed"
	OutcomeLooked     OutcomeType = "looked"
	OutcomeInventory  OutcomeType = "inventory"
	OutcomeHelp       OutcomeType = "help"
	OutcomeTerminated OutcomeType = "terminated"
	OutcomeUnknown    OutcomeType = "unknown"
)

// Move-failure reasons, stable strings for callers that branch on them.
const (
	ReasonNoCurrentLocation = "no current location"
	ReasonNoSuchExit        = "no such exit"
	ReasonDanglingExit      = "dangling exit"
	ReasonBlocked           = "requirements not met"
)

const helpText = "Available commands: go <direction>, look, inventory, help, quit"

// Outcome is the typed result of one interpreted command. Message is a
// short human-readable effect description for the caller to display.
type Outcome struct {
	Type      OutcomeType `json:"type"`
	Direction string      `json:"direction,omitempty"` // Set for moved and move_failed outcomes.
	Reason    string      `json:"reason,omitempty"`    // Set for move_failed outcomes.
	Input     string      `json:"input,omitempty"`     // Original line, set for unknown outcomes.
	Location  string      `json:"location,omitempty"`  // Destination id for moved outcomes.
	Message   string      `json:"message,omitempty"`
}

// Terminated reports whether the outcome ends the session loop.
func (o Outcome) Terminated() bool {
	return o.Type == OutcomeTerminated
}

// Handle dispatches one line of input against the world. Dispatch is
// first-match in priority order: the "go "/"move " prefix tests run
// before the exact tests because they carry an argument. Keywords are
// case-sensitive. All failures come back as outcomes; the world is
// unmodified on any failure path.
func Handle(w *world.World, line string) Outcome {
	switch {
	case strings.HasPrefix(line, "go "):
		return handleMove(w, line[len("go "):])
	case strings.HasPrefix(line, "move "):
		return handleMove(w, line[len("move "):])
	case line == "look" || line == "l":
		return Outcome{Type: OutcomeLooked, Message: w.DescribeLocation()}
	case line == "inventory" || line == "i":
		return Outcome{Type: OutcomeInventory, Message: w.DescribeInventory()}
	case line == "help":
		return Outcome{Type: OutcomeHelp, Message: helpText}
	case line == "quit" || line == "exit":
		return Outcome{Type: OutcomeTerminated, Message: "Thanks for playing!"}
	default:
		return Outcome{
			Type:    OutcomeUnknown,
			Input:   line,
			Message: fmt.Sprintf("Unknown command: %s", line),
		}
	}
}

func handleMove(w *world.World, direction string) Outcome {
	loc, first, err := w.MovePlayer(direction)
	if err != nil {
		return moveFailed(direction, err)
	}

	msg := fmt.Sprintf("You go %s.", direction)
	if first && loc.FirstVisitText != "" {
		msg += "\n\n" + loc.FirstVisitText
	}
	return Outcome{
		Type:      OutcomeMoved,
		Direction: direction,
		Location:  loc.ID,
		Message:   msg,
	}
}

func moveFailed(direction string, err error) Outcome {
	out := Outcome{Type: OutcomeMoveFailed, Direction: direction}
	switch {
	case errors.Is(err, world.ErrNoCurrentLocation):
		out.Reason = ReasonNoCurrentLocation
		out.Message = "You are nowhere. Something has gone wrong."
	case errors.Is(err, world.ErrNoSuchExit):
		out.Reason = ReasonNoSuchExit
		out.Message = fmt.Sprintf("You can't go %s from here.", direction)
	case errors.Is(err, world.ErrDanglingExit):
		out.Reason = ReasonDanglingExit
		out.Message = "That way leads nowhere."
	default:
		out.Reason = err.Error()
		out.Message = fmt.Sprintf("You can't go %s.", direction)
	}
	return out
}

// GateMove resolves the destination of a go/move line and reports
// whether its flag requirements fail. Movement itself never gates;
// callers that want gated movement run this check first and withhold
// the move when blocked. Non-movement lines, unknown directions and
// dangling exits are never blocked here — those fail inside Handle
// with their own reasons.
func GateMove(w *world.World, line string) (*world.Location, bool) {
	var direction string
	switch {
	case strings.HasPrefix(line, "go "):
		direction = line[len("go "):]
	case strings.HasPrefix(line, "move "):
		direction = line[len("move "):]
	default:
		return nil, false
	}

	current, ok := w.CurrentLocation()
	if !ok {
		return nil, false
	}
	exit, ok := current.FindExit(direction)
	if !ok {
		return nil, false
	}
	target, ok := w.LocationByID(exit.Target)
	if !ok {
		return nil, false
	}
	if w.CheckLocationRequirements(target) {
		return target, false
	}
	return target, true
}

// Blocked builds the move_failed outcome for a gated move that was
// withheld.
func Blocked(direction string) Outcome {
	return Outcome{
		Type:      OutcomeMoveFailed,
		Direction: direction,
		Reason:    ReasonBlocked,
		Message:   fmt.Sprintf("Something bars the way %s.", direction),
	}
}

// MoveDirection extracts the direction argument of a go/move line, or
// "" when the line is not a movement command.
func MoveDirection(line string) string {
	switch {
	case strings.HasPrefix(line, "go "):
		return line[len("go "):]
	case strings.HasPrefix(line, "move "):
		return line[len("move "):]
	}
	return ""
}
