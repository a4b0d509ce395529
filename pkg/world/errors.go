package world

import "errors"

// Sentinel errors returned by the model and parser. Callers match with
// errors.Is; none of these abort the process.
var (
	// ErrMalformed means the document was not valid JSON at the top level.
	ErrMalformed = errors.New("malformed world document")

	// ErrNoLocations means the world has an empty location table.
	ErrNoLocations = errors.New("world has no locations")

	// ErrNoStartLocation means start_location does not name a known location.
	ErrNoStartLocation = errors.New("start location not found")

	// ErrNoCurrentLocation means the player's current location id does not resolve.
	ErrNoCurrentLocation = errors.New("no current location")

	// ErrLocationNotFound means a location id lookup failed.
	ErrLocationNotFound = errors.New("location not found")

	// ErrNoSuchExit means the current location has no exit in the requested direction.
	ErrNoSuchExit = errors.New("no such exit")

	// ErrDanglingExit means an exit's target id does not resolve to a location.
	// Discovered lazily at traversal time, never at load time.
	ErrDanglingExit = errors.New("dangling exit")

	// ErrItemNotFound means an item id has no definition in the world catalog.
	ErrItemNotFound = errors.New("item not found")

	// ErrDuplicateItem means the player already holds the item.
	ErrDuplicateItem = errors.New("item already in inventory")

	// ErrInventoryFull means adding would exceed the inventory capacity.
	ErrInventoryFull = errors.New("inventory is full")

	// ErrItemNotHeld means the player does not hold the item.
	ErrItemNotHeld = errors.New("item not in inventory")

	// ErrItemNotUseable means the item definition does not allow use.
	ErrItemNotUseable = errors.New("item is not useable")

	// ErrUseRequirementsNotMet means the item's use gates are not satisfied.
	ErrUseRequirementsNotMet = errors.New("use requirements not met")
)
