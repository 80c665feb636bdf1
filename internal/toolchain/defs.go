package toolchain

// specs is the fixed tool-chain table. Order only affects display; keep it
// roughly by ecosystem popularity so reports read naturally.
var specs = []Spec{
	{
		Name:            "npm",
		DetectCommands:  []string{"npm", "node"},
		DetectGlobs:     []string{"{home}/AppData/Roaming/npm*"},
		EnvVar:          "NPM_CONFIG_CACHE",
		TargetTemplate:  "{root}/packages/npm-cache",
		LegacyTemplates: []string{"{home}/AppData/Local/npm-cache", "{home}/.npm"},
		QueryCommand:    []string{"npm", "config", "get", "cache"},
	},
	{
		Name:            "pnpm",
		DetectCommands:  []string{"pnpm"},
		DetectGlobs:     []string{"{home}/AppData/Local/pnpm", "{home}/.local/share/pnpm"},
		EnvVar:          "PNPM_HOME",
		TargetTemplate:  "{root}/packages/pnpm",
		LegacyTemplates: []string{"{home}/AppData/Local/pnpm", "{home}/.local/share/pnpm"},
	},
	{
		Name:            "yarn",
		DetectCommands:  []string{"yarn"},
		DetectGlobs:     []string{"{home}/AppData/Local/Yarn"},
		EnvVar:          "YARN_CACHE_FOLDER",
		TargetTemplate:  "{root}/packages/yarn-cache",
		LegacyTemplates: []string{"{home}/AppData/Local/Yarn/Cache", "{home}/.cache/yarn"},
	},
	{
		Name:            "pip",
		DetectCommands:  []string{"pip", "pip3", "python"},
		DetectGlobs:     []string{"{home}/AppData/Local/pip"},
		EnvVar:          "PIP_CACHE_DIR",
		TargetTemplate:  "{root}/packages/pip-cache",
		LegacyTemplates: []string{"{home}/AppData/Local/pip/cache", "{home}/.cache/pip"},
	},
	{
		Name:            "maven",
		DetectCommands:  []string{"mvn"},
		DetectGlobs:     []string{"{home}/.m2"},
		EnvVar:          "MAVEN_OPTS",
		ValueTemplate:   "-Dmaven.repo.local={target}",
		TargetTemplate:  "{root}/packages/maven-repo",
		LegacyTemplates: []string{"{home}/.m2/repository"},
	},
	{
		Name:            "gradle",
		DetectCommands:  []string{"gradle"},
		DetectGlobs:     []string{"{home}/.gradle"},
		EnvVar:          "GRADLE_USER_HOME",
		TargetTemplate:  "{root}/packages/gradle-home",
		LegacyTemplates: []string{"{home}/.gradle"},
	},
	{
		Name:            "golang",
		DetectCommands:  []string{"go"},
		DetectGlobs:     []string{"{home}/go/pkg/mod"},
		EnvVar:          "GOMODCACHE",
		TargetTemplate:  "{root}/packages/go-mod-cache",
		LegacyTemplates: []string{"{home}/go/pkg/mod"},
	},
	{
		Name:            "cargo",
		DetectCommands:  []string{"cargo", "rustup"},
		DetectGlobs:     []string{"{home}/.cargo"},
		EnvVar:          "CARGO_HOME",
		TargetTemplate:  "{root}/packages/cargo-home",
		LegacyTemplates: []string{"{home}/.cargo"},
	},
	{
		Name:            "nuget",
		DetectCommands:  []string{"dotnet", "nuget"},
		DetectGlobs:     []string{"{home}/.nuget"},
		EnvVar:          "NUGET_PACKAGES",
		TargetTemplate:  "{root}/packages/nuget/{user}",
		LegacyTemplates: []string{"{home}/.nuget/packages"},
	},
	{
		Name:            "composer",
		DetectCommands:  []string{"composer"},
		DetectGlobs:     []string{"{home}/AppData/Local/Composer"},
		EnvVar:          "COMPOSER_CACHE_DIR",
		TargetTemplate:  "{root}/packages/composer-cache",
		LegacyTemplates: []string{"{home}/AppData/Local/Composer", "{home}/.cache/composer"},
	},
}

// Registry returns the ordered, fixed list of managed tool-chains.
func Registry() []Spec {
	out := make([]Spec, len(specs))
	copy(out, specs)
	return out
}

// Lookup returns the spec for the provided name.
func Lookup(name string) (Spec, bool) {
	for _, s := range specs {
		if s.Name == name {
			return s, true
		}
	}
	return Spec{}, false
}
