package toolchain

// Spec contains the metadata required to relocate one tool-chain's cache.
// Specs are constructed once at startup from the fixed table in defs.go and
// never mutated.
type Spec struct {
	// Name identifies the tool-chain (npm, pip, maven, ...).
	Name string

	// DetectCommands are executable names probed on PATH, in order.
	DetectCommands []string

	// DetectGlobs are filesystem patterns (may contain * and ** segments)
	// whose first match also counts as "installed". Templates may use {home}.
	DetectGlobs []string

	// EnvVar is the persistent environment variable the tool-chain honors.
	EnvVar string

	// ValueTemplate, when non-empty, renders the variable's value with the
	// {target} placeholder replaced by the target path. When empty the value
	// is the target path itself.
	ValueTemplate string

	// TargetTemplate renders the relocated cache directory. {root} is the
	// destination root chosen for the run; {user} is the current user name.
	TargetTemplate string

	// LegacyTemplates are candidate pre-migration cache directories, in
	// order. Only the first one that exists is migrated. {home} expands to
	// the user's home directory.
	LegacyTemplates []string

	// QueryCommand, when non-empty, is an external CLI invocation that
	// reports the tool-chain's effective cache path. Exactly one registry
	// entry defines it.
	QueryCommand []string
}

// Queryable reports whether the spec exposes an external cache-path query.
func (s Spec) Queryable() bool {
	return len(s.QueryCommand) > 0
}
