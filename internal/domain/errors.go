package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Lookup errors
	ErrMsgUserNotFound        = "user not found"
	ErrMsgTemplateNotFound    = "item template not found"
	ErrMsgInstanceNotFound    = "item instance not found"
	ErrMsgPoolNotFound        = "gacha pool not found"
	ErrMsgTechnologyNotFound  = "technology not found"
	ErrMsgListingNotFound     = "market listing not found"
	ErrMsgTitleNotFound       = "title not found"
	ErrMsgAchievementNotFound = "achievement not found"

	// Economy errors
	ErrMsgInsufficientFunds = "insufficient funds"
	ErrMsgInsufficientBait  = "insufficient bait"
	ErrMsgNotBuyable        = "item is not buyable"
	ErrMsgMaxPondCapacity   = "fish pond is already at maximum capacity"
	ErrMsgNothingToSell     = "nothing to sell"

	// Fishing errors
	ErrMsgOnCooldown    = "action on cooldown"
	ErrMsgNoRodEquipped = "no rod equipped"
	ErrMsgPondFull      = "fish pond is full"

	// Ownership errors
	ErrMsgNotOwned         = "item is not owned by user"
	ErrMsgAlreadyEquipped  = "item is already equipped"
	ErrMsgItemListed       = "item is listed on the market"
	ErrMsgNotTradable      = "item type cannot be traded"
	ErrMsgTitleNotOwned    = "title is not owned by user"
	ErrMsgCannotBuyOwnItem = "cannot buy your own listing"
	ErrMsgListingExpired   = "market listing has expired"

	// Technology errors
	ErrMsgAlreadyUnlocked       = "technology already unlocked"
	ErrMsgLevelTooLow           = "level too low"
	ErrMsgMissingPrerequisites  = "missing prerequisite technologies"
	ErrMsgTechnologyUnavailable = "technology requirements not met"

	// Sign-in errors
	ErrMsgAlreadySignedIn = "already signed in today"

	// Registration errors
	ErrMsgUserAlreadyExists = "user already exists"

	// Input errors
	ErrMsgInvalidInput    = "invalid input"
	ErrMsgInvalidAmount   = "amount must be positive"
	ErrMsgInvalidPlatform = "invalid platform"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrUserNotFound        = errors.New(ErrMsgUserNotFound)
	ErrTemplateNotFound    = errors.New(ErrMsgTemplateNotFound)
	ErrInstanceNotFound    = errors.New(ErrMsgInstanceNotFound)
	ErrPoolNotFound        = errors.New(ErrMsgPoolNotFound)
	ErrTechnologyNotFound  = errors.New(ErrMsgTechnologyNotFound)
	ErrListingNotFound     = errors.New(ErrMsgListingNotFound)
	ErrTitleNotFound       = errors.New(ErrMsgTitleNotFound)
	ErrAchievementNotFound = errors.New(ErrMsgAchievementNotFound)

	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)
	ErrInsufficientBait  = errors.New(ErrMsgInsufficientBait)
	ErrNotBuyable        = errors.New(ErrMsgNotBuyable)
	ErrMaxPondCapacity   = errors.New(ErrMsgMaxPondCapacity)
	ErrNothingToSell     = errors.New(ErrMsgNothingToSell)

	ErrNoRodEquipped = errors.New(ErrMsgNoRodEquipped)
	ErrPondFull      = errors.New(ErrMsgPondFull)

	ErrNotOwned            = errors.New(ErrMsgNotOwned)
	ErrAlreadyEquipped     = errors.New(ErrMsgAlreadyEquipped)
	ErrItemListed          = errors.New(ErrMsgItemListed)
	ErrNotTradable         = errors.New(ErrMsgNotTradable)
	ErrTitleNotOwned       = errors.New(ErrMsgTitleNotOwned)
	ErrCannotBuyOwnListing = errors.New(ErrMsgCannotBuyOwnItem)
	ErrListingExpired      = errors.New(ErrMsgListingExpired)

	ErrAlreadyUnlocked       = errors.New(ErrMsgAlreadyUnlocked)
	ErrLevelTooLow           = errors.New(ErrMsgLevelTooLow)
	ErrTechnologyUnavailable = errors.New(ErrMsgTechnologyUnavailable)

	ErrAlreadySignedIn   = errors.New(ErrMsgAlreadySignedIn)
	ErrUserAlreadyExists = errors.New(ErrMsgUserAlreadyExists)

	ErrInvalidInput    = errors.New(ErrMsgInvalidInput)
	ErrInvalidAmount   = fmt.Errorf("%w: %s", ErrInvalidInput, ErrMsgInvalidAmount)
	ErrInvalidPlatform = errors.New(ErrMsgInvalidPlatform)
)

// ErrOnCooldown is returned when an action is attempted before its cooldown elapsed.
type ErrOnCooldown struct {
	Action    string
	Remaining time.Duration
}

func (e ErrOnCooldown) Error() string {
	minutes := int(e.Remaining.Minutes())
	seconds := int(e.Remaining.Seconds()) % 60

	if minutes > 0 {
		return fmt.Sprintf("%s '%s': %dm %ds remaining", ErrMsgOnCooldown, e.Action, minutes, seconds)
	}
	return fmt.Sprintf("%s '%s': %ds remaining", ErrMsgOnCooldown, e.Action, seconds)
}

// Is allows errors.Is() to work with ErrOnCooldown
func (e ErrOnCooldown) Is(target error) bool {
	_, ok := target.(ErrOnCooldown)
	return ok
}

// ErrMissingPrerequisites lists the display names of technologies still required.
type ErrMissingPrerequisites struct {
	Missing []string
}

func (e ErrMissingPrerequisites) Error() string {
	return fmt.Sprintf("%s: %s", ErrMsgMissingPrerequisites, strings.Join(e.Missing, ", "))
}

// Is allows errors.Is() to work with ErrMissingPrerequisites
func (e ErrMissingPrerequisites) Is(target error) bool {
	_, ok := target.(ErrMissingPrerequisites)
	return ok
}
