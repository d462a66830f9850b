package config

// StateFlags is a closed set of boolean facts about current state,
// consumed by the prompt-template renderer to gate fragments without
// inspecting internals. FlagSession and FlagSessionEmpty are mutually
// exclusive by construction: an empty session sets only FlagSessionEmpty,
// which renderers must treat as the refined sub-case of "session present".
type StateFlags uint32

const (
	// FlagRole is set while a role collaborator is active.
	FlagRole StateFlags = 1 << iota
	// FlagSessionEmpty is set while a session is active with no history.
	FlagSessionEmpty
	// FlagSession is set while a session is active with history.
	FlagSession
	// FlagRAG is set while retrieval-augmented generation is active.
	FlagRAG
)

// Has reports whether every flag in other is set.
func (f StateFlags) Has(other StateFlags) bool {
	return f&other == other
}

// AssertState combines a flag set with a truth polarity: either all of
// the flags must be set, or all of them must be clear.
type AssertState struct {
	Flags   StateFlags
	Present bool
}

// AnyState returns an assertion every state satisfies.
func AnyState() AssertState {
	return AssertState{}
}

// Check evaluates the assertion against the current flag set.
func (a AssertState) Check(current StateFlags) bool {
	if a.Present {
		return current.Has(a.Flags)
	}
	return current&a.Flags == 0
}
