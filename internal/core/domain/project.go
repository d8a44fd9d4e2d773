package domain

// Release is one published version of a project as reported by the index.
type Release struct {
	// Version is the parsed release version.
	Version Version

	// RequiresPython is the interpreter constraint published for the release,
	// empty when the release admits every interpreter.
	RequiresPython SpecifierSet

	// Yanked marks releases withdrawn from normal resolution.
	Yanked bool

	// Hashes holds the artifact digests ("sha256:..."), used for lockfile
	// verification by installers.
	Hashes []string
}

// Project is the index's view of one package: its canonical name and every
// release the index knows about.
type Project struct {
	Name     string
	Releases []Release
}
