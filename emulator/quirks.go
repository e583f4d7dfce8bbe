package emulator

/*
Quirks selects between behaviours that differ across CHIP-8 interpreters. The zero value is the behaviour of the
original COSMAC VIP table as commonly documented (Cowgod's reference):

	8xy6/8xyE shift Vx in place, Vy is ignored
	Bnnn jumps to nnn + V0
	0nnn (call RCA 1802 machine code) cannot be emulated and is reported as an unknown opcode
*/
type Quirks struct {
	// ShiftUsesVy makes 8xy6 and 8xyE shift Vy and store the result in Vx.
	ShiftUsesVy bool

	// JumpUsesVx makes Bxnn jump to xnn + Vx (SCHIP behaviour).
	JumpUsesVx bool

	// SysIsNop makes 0nnn a no-op instead of an error.
	SysIsNop bool
}
