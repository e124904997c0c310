package register

// Read reads a readable register with exactly one raw read.
//
//	cfg, err := register.Read[Config](dev)
func Read[R any, P ReadablePtr[R, A], A comparable](t Interface[A]) (R, error) {
	var reg R
	if err := t.ReadRegister(P(&reg)); err != nil {
		var zero R
		return zero, err
	}
	return reg, nil
}

// Write writes a writable register with exactly one raw write.
func Write[R any, P WritablePtr[R, A], A comparable](t Interface[A], reg R) error {
	return t.WriteRegister(P(&reg))
}

// Edit performs a read-modify-write of an editable register.
//
// The register is read once, f modifies the value in place and the result is
// written once. If the read fails, f is not called and nothing is written.
// f must not retain the pointer.
//
// The sequence is not atomic on the device. When t implements Sequencer the
// whole sequence runs inside one Exclusive call; otherwise other users of the
// same transport may interleave between the read and the write.
func Edit[R any, P EditablePtr[R, A], A comparable](t Interface[A], f func(*R)) error {
	if seq, ok := t.(Sequencer[A]); ok {
		return seq.Exclusive(func(tx Interface[A]) error {
			return edit[R, P, A](tx, f)
		})
	}
	return edit[R, P, A](t, f)
}

func edit[R any, P EditablePtr[R, A], A comparable](t Interface[A], f func(*R)) error {
	var reg R
	if err := t.ReadRegister(P(&reg)); err != nil {
		return err
	}
	f(&reg)
	return t.WriteRegister(P(&reg))
}
