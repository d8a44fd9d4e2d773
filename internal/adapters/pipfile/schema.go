package pipfile

// document mirrors the manifest's TOML structure: named sources, runtime and
// development packages, and the required interpreter version.
type document struct {
	Source      []sourceDTO    `toml:"source,omitempty"`
	Packages    map[string]any `toml:"packages,omitempty"`
	DevPackages map[string]any `toml:"dev-packages,omitempty"`
	Requires    *requiresDTO   `toml:"requires,omitempty"`
}

type sourceDTO struct {
	Name      string `toml:"name"`
	URL       string `toml:"url"`
	VerifySSL bool   `toml:"verify_ssl"`
}

type requiresDTO struct {
	PythonVersion string `toml:"python_version,omitempty"`
}

// packageTable is the expanded entry form:
//
//	pywin32 = {version = "*", sys_platform = "== 'win32'"}
type packageTable struct {
	Version string `toml:"version,omitempty"`
	Markers string `toml:"markers,omitempty"`
	Index   string `toml:"index,omitempty"`
}

// platformKeys are the marker variables accepted as bare table keys. A bare
// key carries the operator and literal in its value:
// sys_platform = "== 'win32'".
var platformKeys = []string{"sys_platform", "os_name", "platform_system", "platform_machine", "python_version"}
