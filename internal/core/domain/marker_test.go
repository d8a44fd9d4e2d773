package domain_test

import (
	"errors"
	"testing"

	"go.velin.dev/pipfile/internal/core/domain"
)

func linuxEnv() domain.Environment {
	return domain.Environment{
		SysPlatform:     "linux",
		OSName:          "posix",
		PlatformSystem:  "Linux",
		PlatformMachine: "x86_64",
		PythonVersion:   "3.6",
	}
}

func TestParseMarker_Empty(t *testing.T) {
	m, err := domain.ParseMarker("")
	if err != nil {
		t.Fatalf("ParseMarker(\"\") error = %v", err)
	}
	if m != nil {
		t.Fatal("expected nil marker for empty expression")
	}
	if !m.Evaluate(linuxEnv()) {
		t.Error("nil marker must always hold")
	}
}

func TestMarker_Evaluate(t *testing.T) {
	tests := []struct {
		expr string
		want bool
	}{
		{"sys_platform == 'win32'", false},
		{"sys_platform == 'linux'", true},
		{"sys_platform != 'win32'", true},
		{`os_name == "posix"`, true},
		{"platform_system == 'Windows'", false},
		{"python_version == '3.6'", true},
		{"'linux' == sys_platform", true},
		{"sys_platform == 'win32' or sys_platform == 'linux'", true},
		{"sys_platform == 'linux' and platform_machine == 'i686'", false},
		{"sys_platform == 'win32' and os_name == 'nt' or python_version == '3.6'", true},
		// Unknown variables gate conservatively: exclude, don't crash.
		{"implementation_name == 'cpython'", false},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			m, err := domain.ParseMarker(tt.expr)
			if err != nil {
				t.Fatalf("ParseMarker(%q) error = %v", tt.expr, err)
			}
			if got := m.Evaluate(linuxEnv()); got != tt.want {
				t.Errorf("Evaluate(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestParseMarker_Invalid(t *testing.T) {
	for _, expr := range []string{
		"sys_platform ==",
		"sys_platform >= 'win32'",
		"sys_platform == 'win32' and",
		"sys_platform == win32",
		"sys_platform == 'win32",
	} {
		if _, err := domain.ParseMarker(expr); !errors.Is(err, domain.ErrInvalidMarker) {
			t.Errorf("ParseMarker(%q) error = %v, want ErrInvalidMarker", expr, err)
		}
	}
}

func TestMarker_String(t *testing.T) {
	expr := "sys_platform == 'win32'"
	m, err := domain.ParseMarker(expr)
	if err != nil {
		t.Fatal(err)
	}
	if m.String() != expr {
		t.Errorf("String() = %q, want %q", m.String(), expr)
	}
}
