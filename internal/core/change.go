package core

// Handle is an opaque sprite reference resolved by the asset layer.
// The zero Handle refers to no sprite.
type Handle uint16

// ChangeOp says what happened to an entity during a tick.
type ChangeOp uint8

const (
	OpCreated   ChangeOp = iota
	OpMoved              // Position or sprite changed
	OpDestroyed          // Killed or consumed in play
	OpRemoved            // Taken down for a rebuild of the field
)

func (o ChangeOp) String() string {
	switch o {
	case OpCreated:
		return "created"
	case OpMoved:
		return "moved"
	case OpDestroyed:
		return "destroyed"
	case OpRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// EntityKind classifies the entity a Change refers to.
type EntityKind uint8

const (
	EntityShip EntityKind = iota
	EntityEnemy
	EntityPlayerShot
	EntityEnemyShot
	EntityBlock
	EntityLife
)

func (k EntityKind) String() string {
	switch k {
	case EntityShip:
		return "ship"
	case EntityEnemy:
		return "enemy"
	case EntityPlayerShot:
		return "player_shot"
	case EntityEnemyShot:
		return "enemy_shot"
	case EntityBlock:
		return "block"
	case EntityLife:
		return "life"
	default:
		return "unknown"
	}
}

// Change is one entry of the per-tick draw list: an entity that appeared,
// moved (or changed sprite), was destroyed in play, or was removed when the
// field was rebuilt. IDs are unique per kind.
type Change struct {
	Op     ChangeOp
	Kind   EntityKind
	ID     int
	Sprite Handle
	X, Y   float64
}
