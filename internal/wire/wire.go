// Package wire frames food documents for transfer between processes. The
// payload document is carried untouched; only the envelope is added.
package wire

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/hammamikhairi/cuisine/internal/document"
	"github.com/hammamikhairi/cuisine/internal/domain"
)

// ErrNoPayload is returned when encoding an envelope without a payload.
var ErrNoPayload = errors.New("envelope has no payload")

type position struct {
	X int32 `bson:"x"`
	Y int32 `bson:"y"`
	Z int32 `bson:"z"`
}

func toPosition(p domain.Position) position {
	return position{X: p.X, Y: p.Y, Z: p.Z}
}

func (p position) toDomain() domain.Position {
	return domain.Position{X: p.X, Y: p.Y, Z: p.Z}
}

// Envelope addresses a food document to the entity at a position.
type Envelope struct {
	Pos     domain.Position
	Target  uuid.UUID
	Payload *document.Compound
}

type envelopeBSON struct {
	Pos     position `bson:"pos"`
	Target  string   `bson:"target"`
	Payload bson.Raw `bson:"payload"`
}

// Marshal encodes the envelope as BSON.
func (e Envelope) Marshal() ([]byte, error) {
	if e.Payload == nil {
		return nil, ErrNoPayload
	}
	payload, err := document.Marshal(e.Payload)
	if err != nil {
		return nil, err
	}
	data, err := bson.Marshal(envelopeBSON{
		Pos:     toPosition(e.Pos),
		Target:  e.Target.String(),
		Payload: payload,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding envelope: %w", err)
	}
	return data, nil
}

// UnmarshalEnvelope decodes an envelope produced by Envelope.Marshal.
func UnmarshalEnvelope(data []byte) (Envelope, error) {
	var raw envelopeBSON
	if err := bson.Unmarshal(data, &raw); err != nil {
		return Envelope{}, fmt.Errorf("decoding envelope: %w", err)
	}
	target, err := uuid.Parse(raw.Target)
	if err != nil {
		return Envelope{}, fmt.Errorf("envelope target: %w", err)
	}
	if len(raw.Payload) == 0 {
		return Envelope{}, ErrNoPayload
	}
	payload, err := document.Unmarshal(raw.Payload)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{Pos: raw.Pos.toDomain(), Target: target, Payload: payload}, nil
}

// IngredientUpdate reports one change to the contents of a vessel. A nil
// Ingredient means the slot named by Item was emptied.
type IngredientUpdate struct {
	Pos        domain.Position
	Item       string
	Ingredient *document.Compound
}

type ingredientUpdateBSON struct {
	Pos        position `bson:"pos"`
	Item       string   `bson:"item"`
	Ingredient bson.Raw `bson:"ingredient,omitempty"`
}

// Marshal encodes the update as BSON.
func (u IngredientUpdate) Marshal() ([]byte, error) {
	raw := ingredientUpdateBSON{Pos: toPosition(u.Pos), Item: u.Item}
	if u.Ingredient != nil {
		ing, err := document.Marshal(u.Ingredient)
		if err != nil {
			return nil, err
		}
		raw.Ingredient = ing
	}
	data, err := bson.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("encoding ingredient update: %w", err)
	}
	return data, nil
}

// UnmarshalIngredientUpdate decodes an update produced by
// IngredientUpdate.Marshal.
func UnmarshalIngredientUpdate(data []byte) (IngredientUpdate, error) {
	var raw ingredientUpdateBSON
	if err := bson.Unmarshal(data, &raw); err != nil {
		return IngredientUpdate{}, fmt.Errorf("decoding ingredient update: %w", err)
	}
	u := IngredientUpdate{Pos: raw.Pos.toDomain(), Item: raw.Item}
	if len(raw.Ingredient) > 0 {
		ing, err := document.Unmarshal(raw.Ingredient)
		if err != nil {
			return IngredientUpdate{}, err
		}
		u.Ingredient = ing
	}
	return u, nil
}
