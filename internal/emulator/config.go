package emulator

// Quirks select between the behaviours of different CHIP-8 interpreter
// generations. The zero value is the behaviour of most modern interpreters.
type Quirks struct {
	// ShiftUsesVY makes SHR and SHL shift VY into VX, like the COSMAC VIP.
	ShiftUsesVY bool

	// LoadStoreIncrementsI makes LD [I], Vx and LD Vx, [I] leave I pointing
	// after the last transferred byte, like the COSMAC VIP.
	LoadStoreIncrementsI bool
}

// Config contains the machine settings.
type Config struct {
	Quirks Quirks
	Random RandomSource // source for RND, nil selects a math/rand based source
}
