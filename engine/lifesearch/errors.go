package lifesearch

import "errors"

var (
	// ErrNoRule indicates a world configuration without a rule.
	ErrNoRule = errors.New("lifesearch: a rule is required")
	// ErrDimensions indicates a non-positive width, height or period.
	ErrDimensions = errors.New("lifesearch: width, height and period must be positive")
	// ErrSymmetry indicates an unknown symmetry group name.
	ErrSymmetry = errors.New("lifesearch: invalid symmetry")
	// ErrSymmetrySquare indicates a diagonal or rotational symmetry on a non-square world.
	ErrSymmetrySquare = errors.New("lifesearch: symmetry requires a square world")
	// ErrSymmetryTranslation indicates a symmetry incompatible with the translation.
	ErrSymmetryTranslation = errors.New("lifesearch: symmetry is incompatible with a nonzero translation")
	// ErrGetCell indicates a cell state read outside the stored block.
	ErrGetCell = errors.New("lifesearch: unable to get cell state")
	// ErrSetCell indicates an assignment the world cannot accept.
	ErrSetCell = errors.New("lifesearch: unable to set cell state")
)
