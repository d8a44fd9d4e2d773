package domain

import "runtime"

// Environment holds the marker variables a platform predicate is evaluated
// against. Field names follow the marker variable vocabulary.
type Environment struct {
	SysPlatform     string // e.g. "linux", "darwin", "win32"
	OSName          string // "posix" or "nt"
	PlatformSystem  string // e.g. "Linux", "Darwin", "Windows"
	PlatformMachine string // e.g. "x86_64", "aarch64"
	PythonVersion   string // the manifest's declared interpreter version
}

// CurrentEnvironment derives the marker environment from the running
// platform. pythonVersion comes from the manifest's requires section and may
// be empty.
func CurrentEnvironment(pythonVersion string) Environment {
	return environmentFor(runtime.GOOS, runtime.GOARCH, pythonVersion)
}

func environmentFor(goos, goarch, pythonVersion string) Environment {
	env := Environment{
		SysPlatform:   goos,
		OSName:        "posix",
		PythonVersion: pythonVersion,
	}

	switch goos {
	case "windows":
		env.SysPlatform = "win32"
		env.OSName = "nt"
		env.PlatformSystem = "Windows"
	case "darwin":
		env.PlatformSystem = "Darwin"
	case "linux":
		env.PlatformSystem = "Linux"
	default:
		env.PlatformSystem = goos
	}

	switch goarch {
	case "amd64":
		env.PlatformMachine = "x86_64"
	case "386":
		env.PlatformMachine = "i686"
	case "arm64":
		if goos == "darwin" {
			env.PlatformMachine = "arm64"
		} else {
			env.PlatformMachine = "aarch64"
		}
	default:
		env.PlatformMachine = goarch
	}

	return env
}

// lookup resolves a marker variable name. Unknown variables return ok=false
// and make the enclosing predicate evaluate false rather than error: a gate
// on a variable we cannot know must exclude, not crash.
func (e Environment) lookup(name string) (string, bool) {
	switch name {
	case "sys_platform":
		return e.SysPlatform, true
	case "os_name":
		return e.OSName, true
	case "platform_system":
		return e.PlatformSystem, true
	case "platform_machine":
		return e.PlatformMachine, true
	case "python_version":
		return e.PythonVersion, true
	default:
		return "", false
	}
}
