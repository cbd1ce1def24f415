package records

import (
	"fmt"
	"strings"
)

// AllowedMove is the movement mode of a behavior.
type AllowedMove int

const (
	MoveNone AllowedMove = iota
	MoveHorizontalOnly
	MoveVerticalOnly
	MoveHorizontalVertical
	MoveDiagonalOnly
	MoveDiagonalHorizontal
	MoveDiagonalVertical
	MoveAll
	MoveMouseOver
	MoveSleep
	MoveDragged
)

var allowedMoveNames = []string{
	"None",
	"HorizontalOnly",
	"VerticalOnly",
	"HorizontalVertical",
	"DiagonalOnly",
	"DiagonalHorizontal",
	"DiagonalVertical",
	"All",
	"MouseOver",
	"Sleep",
	"Dragged",
}

// AllowedMoveNames returns the canonical names in numeric order.
func AllowedMoveNames() []string {
	return append([]string(nil), allowedMoveNames...)
}

func (m AllowedMove) String() string {
	if m < 0 || int(m) >= len(allowedMoveNames) {
		return fmt.Sprintf("AllowedMove(%d)", int(m))
	}
	return allowedMoveNames[m]
}

// ParseAllowedMove reads a movement name. Matching ignores case and
// underscores, so "horizontal_only" is MoveHorizontalOnly.
func ParseAllowedMove(s string) (AllowedMove, bool) {
	i := lookup(allowedMoveNames, s)
	return AllowedMove(i), i >= 0
}

// Location is where an effect is placed relative to its behavior's image.
type Location int

const (
	LocationTop Location = iota
	LocationBottom
	LocationLeft
	LocationRight
	LocationBottomRight
	LocationBottomLeft
	LocationTopRight
	LocationTopLeft
	LocationCenter
	LocationAny
	LocationAnyNotCenter
)

var locationNames = []string{
	"Top",
	"Bottom",
	"Left",
	"Right",
	"BottomRight",
	"BottomLeft",
	"TopRight",
	"TopLeft",
	"Center",
	"Any",
	"AnyNotCenter",
}

// LocationNames returns the canonical names in numeric order.
func LocationNames() []string {
	return append([]string(nil), locationNames...)
}

// String returns the canonical name, or "Not a Location" for a value outside
// the enumeration.
func (l Location) String() string {
	if l < 0 || int(l) >= len(locationNames) {
		return "Not a Location"
	}
	return locationNames[l]
}

// ParseLocation reads a location name, ignoring case and underscores.
func ParseLocation(s string) (Location, bool) {
	i := lookup(locationNames, s)
	return Location(i), i >= 0
}

func lookup(names []string, s string) int {
	key := normalizeName(s)
	for i, name := range names {
		if strings.ToLower(name) == key {
			return i
		}
	}
	return -1
}

func normalizeName(s string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "_", ""))
}
