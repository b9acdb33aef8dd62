package conveyor

// Role tells which class of belt an item or a failure originated from.
type Role uint8

const (
	// Inlet marks a belt whose items pass through the handler.
	Inlet Role = iota
	// Outlet marks a belt whose items are yielded verbatim.
	Outlet
)

func (r Role) String() string {
	switch r {
	case Inlet:
		return "inlet"
	case Outlet:
		return "outlet"
	}

	return "unknown"
}

// event carries one successfully pulled item together with the belt it
// came from. Events live for a single round: queued in arrival order by
// the pull driver, consumed and discarded by the round that drains them.
type event[T, C, U any] struct {
	inlet  *inletBelt[T, C]
	outlet *outletBelt[U]
	item   T
	out    U
	role   Role
}
