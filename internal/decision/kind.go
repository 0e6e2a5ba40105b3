package decision

// Kind identifies an event of the decision stream.
type Kind int

const (
	// Guard opens a block taken when the candidate length equals the depth.
	// ElseIf and Else arms that follow it at the same level continue it
	Guard Kind = iota

	// If opens the first arm of a character comparison chain
	If

	// ElseIf opens a middle arm of a chain
	ElseIf

	// Else opens the unconditional last arm of a chain
	Else

	// End closes the block opened by Guard, If, ElseIf or Else
	End

	// Leaf resolves to a codepoint
	Leaf
)

// Opens reports whether events of this kind start a block.
func (k Kind) Opens() bool {
	switch k {
	case Guard, If, ElseIf, Else:
		return true
	case End, Leaf:
		return false
	default:
		panic("unreachable")
	}
}

// Continues reports whether the kind extends the preceding chain.
func (k Kind) Continues() bool { return k == ElseIf || k == Else }

func (k Kind) String() string {
	switch k {
	case Guard:
		return "guard"
	case If:
		return "if"
	case ElseIf:
		return "else-if"
	case Else:
		return "else"
	case End:
		return "end"
	case Leaf:
		return "leaf"
	default:
		panic("invalid kind")
	}
}

// branchKind picks the chain kind of the arm at position i among the n
// children of a node. The terminal child counts as a position: when it
// comes first, the arms continue the chain opened by the guard.
func branchKind(i, n int, strict bool) Kind {
	switch {
	case i == 0:
		return If
	case i == n-1 && !strict:
		return Else
	default:
		return ElseIf
	}
}
