package domain

import (
	"context"
	"math/rand/v2"
	"time"
)

// VesselKind identifies the type of cooking vessel.
type VesselKind int

const (
	VesselWok VesselKind = iota
	VesselPot
	VesselSteamer
)

// String returns a human-readable vessel kind.
func (k VesselKind) String() string {
	switch k {
	case VesselWok:
		return "wok"
	case VesselPot:
		return "pot"
	case VesselSteamer:
		return "steamer"
	default:
		return "unknown"
	}
}

// VesselKindFromString converts a vessel name to a VesselKind.
func VesselKindFromString(name string) (VesselKind, bool) {
	switch name {
	case "wok":
		return VesselWok, true
	case "pot":
		return VesselPot, true
	case "steamer":
		return VesselSteamer, true
	}
	return VesselWok, false
}

// Vessel is the cooking context an ingredient is added to. The core only
// reads it.
type Vessel interface {
	Kind() VesselKind
}

// FormRestrictor is an optional Vessel capability that rejects additional
// forms on top of the builder's own exclusions.
type FormRestrictor interface {
	RejectsForm(f Form) bool
}

// Actor is the participant cooking or eating a dish.
type Actor interface {
	ID() string
}

// SkillID names a learnable culinary skill.
type SkillID string

// SkillBiggerSize lets a cook use the full ingredient capacity of a vessel.
const SkillBiggerSize SkillID = "bigger_size"

// SkillQuery answers skill questions about an actor. Implementations live
// in the progression system.
type SkillQuery interface {
	HasLearnedSkill(actor Actor, skill SkillID) bool
}

// Preparation is a read-only view of an in-progress composite food.
type Preparation interface {
	Ingredients() []*Ingredient
	Seasonings() []*Seasoning
}

// Admitter is an optional Material capability that may veto an ingredient
// based on what the preparation already contains.
type Admitter interface {
	CanAddInto(p Preparation, ing *Ingredient) bool
}

// SpiceAdmitter is the Spice counterpart of Admitter.
type SpiceAdmitter interface {
	CanSeasonInto(p Preparation, s *Seasoning) bool
}

// RandomSource supplies the randomness used by trait assignment and
// model-type coin flips. *rand.Rand from math/rand/v2 satisfies it.
type RandomSource interface {
	IntN(n int) int
	Float32() float32
}

type processRandom struct{}

func (processRandom) IntN(n int) int   { return rand.IntN(n) }
func (processRandom) Float32() float32 { return rand.Float32() }

// DefaultRandom returns the process-wide unseeded random source.
func DefaultRandom() RandomSource { return processRandom{} }

// Position is a block position in the world a vessel stands at.
type Position struct {
	X, Y, Z int32
}

// Locator is an optional Vessel capability reporting where it stands.
type Locator interface {
	Position() Position
}

// SessionStore persists cooking sessions.
type SessionStore interface {
	Save(ctx context.Context, session *Session) error
	Load(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
	ListActive(ctx context.Context) ([]*Session, error)
	// Prune drops closed sessions last updated before cutoff.
	Prune(ctx context.Context, cutoff time.Time) (int, error)
}

// DishStore persists encoded dishes keyed by dish ID.
type DishStore interface {
	Put(ctx context.Context, id string, data []byte) error
	Get(ctx context.Context, id string) ([]byte, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]string, error)
}
