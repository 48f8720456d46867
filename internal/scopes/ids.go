package scopes

// ScopeID indexes a scope inside one Tree. Zero is "no scope".
type ScopeID uint32

const NoScopeID ScopeID = 0

func (id ScopeID) IsValid() bool { return id != NoScopeID }
