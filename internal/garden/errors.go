package garden

import (
	"errors"
	"fmt"
	"time"

	"gardenkeeper/internal/catalog"
)

var (
	// ErrSpeciesNotFound re-exports the catalog sentinel so engine callers
	// can match every failure kind from one package.
	ErrSpeciesNotFound = catalog.ErrSpeciesNotFound

	ErrPlantNotFound     = errors.New("no plant in the garden matches that name")
	ErrInsufficientCoins = errors.New("not enough coins")
	ErrCooldownActive    = errors.New("cooldown active")
)

// CooldownError reports a care action attempted before its cooldown elapsed.
// It matches ErrCooldownActive under errors.Is.
type CooldownError struct {
	Action    string
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("%s is on cooldown for another %s", e.Action, e.Remaining)
}

func (e *CooldownError) Is(target error) bool {
	return target == ErrCooldownActive
}
