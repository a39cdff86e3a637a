package cmake

import "errors"

var (
	// ErrUnclosedBlock indicates a Begin directive without its matching End
	// when the file was finalized.
	ErrUnclosedBlock = errors.New("cmake: unclosed directive block")

	// ErrUnbalancedEnd indicates an End directive without a preceding Begin.
	ErrUnbalancedEnd = errors.New("cmake: end without begin")
)
