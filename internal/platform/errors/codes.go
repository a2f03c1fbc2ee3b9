// Package errors provides structured error handling with i18n support.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Turn input errors
	CodeInvalidTurnInput Code = "INVALID_TURN_INPUT"
	CodeInvalidTurnCap   Code = "INVALID_TURN_CAP"

	// Battle lifecycle errors
	CodeBattleNotActive     Code = "BATTLE_NOT_ACTIVE"
	CodeBattleInProgress    Code = "BATTLE_IN_PROGRESS"
	CodeInvalidArchetype    Code = "INVALID_ARCHETYPE"
	CodeInvalidDifficulty   Code = "INVALID_DIFFICULTY"
	CodeDifficultyRegressed Code = "DIFFICULTY_REGRESSED"
	CodeGameOver            Code = "GAME_OVER"

	// Player errors
	CodeEquipmentSlotMismatch Code = "EQUIPMENT_SLOT_MISMATCH"
	CodeItemNotOwned          Code = "ITEM_NOT_OWNED"
	CodeNegativeBalance       Code = "NEGATIVE_BALANCE"

	// Catalog errors
	CodeCatalogEmpty   Code = "CATALOG_EMPTY"
	CodeCatalogInvalid Code = "CATALOG_INVALID"
)

// Kind groups codes by how a caller should react.
type Kind int

const (
	// KindInternal is an unexpected failure.
	KindInternal Kind = iota
	// KindInvalidInput means the arguments were malformed; retrying with the
	// same input fails again.
	KindInvalidInput
	// KindPrecondition means the current state does not allow the operation.
	KindPrecondition
)

// Kind maps domain codes to their reaction group.
func (c Code) Kind() Kind {
	switch c {
	case CodeInvalidTurnInput,
		CodeInvalidTurnCap,
		CodeInvalidArchetype,
		CodeInvalidDifficulty,
		CodeEquipmentSlotMismatch,
		CodeItemNotOwned,
		CodeCatalogInvalid:
		return KindInvalidInput

	case CodeBattleNotActive,
		CodeBattleInProgress,
		CodeDifficultyRegressed,
		CodeGameOver,
		CodeNegativeBalance,
		CodeCatalogEmpty:
		return KindPrecondition

	default:
		return KindInternal
	}
}
