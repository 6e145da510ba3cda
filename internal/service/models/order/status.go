package order

import (
	"errors"
	"fmt"
)

// Status is the closed set of order lifecycle states.
type Status string

const (
	StatusNew       Status = "NEW"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
	StatusFulfilled Status = "FULFILLED"
)

var ErrUnknownStatus = errors.New("unknown order status")

// statusIDs maps each status to its stable dictionary id. The ids double as
// the historical progression rank, which is why CANCELLED sits between
// CONFIRMED and FULFILLED even though it is terminal.
var statusIDs = map[Status]int{
	StatusNew:       1,
	StatusConfirmed: 2,
	StatusCancelled: 3,
	StatusFulfilled: 4,
}

// transitions is the authoritative state machine: for each status, the set of
// statuses an order may move to next. Terminal states map to an empty set.
// Skipping ahead (NEW -> FULFILLED) is deliberately legal.
var transitions = map[Status][]Status{
	StatusNew:       {StatusConfirmed, StatusCancelled, StatusFulfilled},
	StatusConfirmed: {StatusCancelled, StatusFulfilled},
	StatusCancelled: {},
	StatusFulfilled: {},
}

// All returns every status in dictionary order.
func All() []Status {
	return []Status{StatusNew, StatusConfirmed, StatusCancelled, StatusFulfilled}
}

func (s Status) String() string {
	return string(s)
}

// ID returns the stable dictionary id of the status.
func (s Status) ID() int {
	return statusIDs[s]
}

// Terminal reports whether no further transition is permitted from s.
func (s Status) Terminal() bool {
	return len(transitions[s]) == 0
}

// CanTransitionTo reports whether moving from s to next is a legal
// forward transition.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

// StatusFromID resolves a dictionary id to a status.
func StatusFromID(id int) (Status, error) {
	for _, s := range All() {
		if statusIDs[s] == id {
			return s, nil
		}
	}

	return "", fmt.Errorf("%w: id %d", ErrUnknownStatus, id)
}

// ParseStatus resolves a status by name.
func ParseStatus(name string) (Status, error) {
	for _, s := range All() {
		if string(s) == name {
			return s, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, name)
}
