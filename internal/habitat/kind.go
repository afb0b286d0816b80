package habitat

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

var ErrUnknownHabitat = errors.New(ErrMsgUnknownHabitat)

// Kind identifies one of the seven production sites on the island
type Kind int

const (
	FishingSpot Kind = iota
	FlowerGarden
	GravellyField
	HotSpring
	AntarcticBase
	SeagullNest
	AmusementPark

	// KindCount is the number of habitats in the game
	KindCount = int(AmusementPark) + 1
)

// All lists every habitat in enumeration order
var All = []Kind{
	FishingSpot,
	FlowerGarden,
	GravellyField,
	HotSpring,
	AntarcticBase,
	SeagullNest,
	AmusementPark,
}

var kindIDs = [KindCount]string{
	FishingSpot:   "FishingSpot",
	FlowerGarden:  "FlowerGarden",
	GravellyField: "GravellyField",
	HotSpring:     "HotSpring",
	AntarcticBase: "AntarcticBase",
	SeagullNest:   "SeagullNest",
	AmusementPark: "AmusementPark",
}

// Valid reports whether k is one of the known habitats
func (k Kind) Valid() bool {
	return k >= 0 && int(k) < KindCount
}

// String returns the habitat identifier, e.g. "FishingSpot"
func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindIDs[k]
}

// Name returns the in-game display name from the default table
func (k Kind) Name() string {
	if !k.Valid() {
		return k.String()
	}
	return DefaultTable[k].Name
}

func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownHabitat, int(k))
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseKind resolves an identifier or display name ("FishingSpot", "fishing spot").
// Unknown input yields ErrUnknownHabitat with the closest suggestion, if any.
func ParseKind(s string) (Kind, error) {
	norm := normalize(s)
	for _, k := range All {
		if norm == normalize(kindIDs[k]) {
			return k, nil
		}
	}

	if suggestion, ok := suggest(norm); ok {
		return 0, fmt.Errorf("%w: %q (did you mean %s?)", ErrUnknownHabitat, s, suggestion)
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownHabitat, s)
}

func suggest(norm string) (Kind, bool) {
	if len(norm) < 3 {
		return 0, false
	}

	best, bestDist := Kind(0), -1
	for _, k := range All {
		cand := normalize(kindIDs[k])
		dist := levenshtein.ComputeDistance(norm, cand)
		if dist > levenshteinLimit(len(cand)) {
			continue
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = k, dist
		}
	}
	return best, bestDist >= 0
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(s)
}
