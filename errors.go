package downmix

// Error represents a downmix engine error code.
type Error int

// Error codes. All are recoverable: an unknown or unrepresentable
// layout prompts the user to force one explicitly, an undefined
// balance is a reportable view state, not a failure.
const (
	ErrNone                  Error = 0
	ErrUnknownLayout         Error = 1 // layout name not in the table
	ErrUnrepresentableLayout Error = 2 // channel set does not fit the 3x3 grid
	ErrBalanceUndefined      Error = 3 // channel weights sum to zero
	ErrUnknownChannel        Error = 4 // role not part of the active layout
	ErrNoLayout              Error = 5 // session has no layout yet
)

var errMessages = [...]string{
	"no error",
	"unknown channel layout",
	"channel layout not representable",
	"channel balance undefined (left and right weights sum to zero)",
	"channel not part of the layout",
	"no channel layout selected",
}

// Error implements the error interface.
func (e Error) Error() string {
	if e >= 0 && int(e) < len(errMessages) {
		return errMessages[e]
	}
	return "unknown error"
}
