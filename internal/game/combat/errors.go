package combat

import "errors"

var (
	// ErrNotFighting is returned when the actor has no active encounter.
	ErrNotFighting = errors.New("combat: not fighting")
	// ErrNotYourTurn is returned when the actor is not at the front of the rotation.
	ErrNotYourTurn = errors.New("combat: not your turn")
	// ErrUnauthorized is returned when the ownership secret does not match.
	ErrUnauthorized = errors.New("combat: unauthorized")
	// ErrDead is returned when the actor has non-positive health.
	ErrDead = errors.New("combat: actor is dead")
	// ErrInvalidTarget is returned when a target is not in the current rotation.
	ErrInvalidTarget = errors.New("combat: invalid target")
	// ErrItemNotAvailable is returned when the actor does not carry enough of an item.
	ErrItemNotAvailable = errors.New("combat: item not available")
	// ErrNoOffhandWeapon is returned for an off-hand attack with an empty off hand.
	ErrNoOffhandWeapon = errors.New("combat: no off-hand weapon")
	// ErrInvalidAction is returned when an action is used in a slot that does not allow it.
	ErrInvalidAction = errors.New("combat: invalid action")
	// ErrTooFewParties is returned when an encounter would start with fewer than two parties.
	ErrTooFewParties = errors.New("combat: encounter needs at least two parties")
	// ErrDuplicateParticipant is returned when an encounter would list one character twice.
	ErrDuplicateParticipant = errors.New("combat: duplicate participant")
)
