// Package control is the summon/dismiss channel between the doggy host and
// outside controllers. Requests and responses are single JSON objects.
package control

import "fmt"

// Action names a control request.
type Action string

const (
	ActionSummon  Action = "summon"
	ActionDismiss Action = "dismiss"
	ActionStatus  Action = "check-status"
)

// aliases maps every accepted spelling to its action.
var aliases = map[string]Action{
	"summon":       ActionSummon,
	"summonDoggy":  ActionSummon,
	"dismiss":      ActionDismiss,
	"dismissDoggy": ActionDismiss,
	"check-status": ActionStatus,
	"checkDoggy":   ActionStatus,
	"status":       ActionStatus,
}

// Normalize resolves an action name or alias.
func Normalize(name string) (Action, bool) {
	a, ok := aliases[name]
	return a, ok
}

// Request is one JSON message from a controller.
type Request struct {
	Action string `json:"action"`
}

// Response answers a Request. Active is only set for status checks.
type Response struct {
	Success bool   `json:"success"`
	Active  *bool  `json:"active,omitempty"`
	Error   string `json:"error,omitempty"`
}

// IsActive reads the active flag of a status response.
func (r Response) IsActive() bool {
	return r.Active != nil && *r.Active
}

// Handler is the host side of the channel.
type Handler interface {
	Summon()
	Dismiss()
	Active() bool
}

// HandlerFunc answers one request.
type HandlerFunc func(Request) Response

// Dispatch applies req to h. Summon and dismiss are idempotent on the host,
// so repeating them always succeeds.
func Dispatch(h Handler, req Request) Response {
	action, ok := Normalize(req.Action)
	if !ok {
		return Response{Error: fmt.Sprintf("unknown action %q", req.Action)}
	}

	switch action {
	case ActionSummon:
		h.Summon()
		return Response{Success: true}
	case ActionDismiss:
		h.Dismiss()
		return Response{Success: true}
	default:
		active := h.Active()
		return Response{Success: true, Active: &active}
	}
}
