package domain_test

import (
	"errors"
	"testing"

	"go.velin.dev/pipfile/internal/core/domain"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		in      string
		epoch   int
		release []int
		pre     bool
		dev     bool
	}{
		{in: "3.2.2", release: []int{3, 2, 2}},
		{in: "1.0", release: []int{1, 0}},
		{in: "2020.12", release: []int{2020, 12}},
		{in: "1!2.0", epoch: 1, release: []int{2, 0}},
		{in: "1.19.0rc1", release: []int{1, 19, 0}, pre: true},
		{in: "5.4.0b2", release: []int{5, 4, 0}, pre: true},
		{in: "1.0.dev3", release: []int{1, 0}, dev: true},
		{in: "1.0.post2", release: []int{1, 0}},
		{in: "v1.2.3", release: []int{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			v, err := domain.ParseVersion(tt.in)
			if err != nil {
				t.Fatalf("ParseVersion(%q) error = %v", tt.in, err)
			}
			if v.Epoch != tt.epoch {
				t.Errorf("epoch = %d, want %d", v.Epoch, tt.epoch)
			}
			if len(v.Release) != len(tt.release) {
				t.Fatalf("release = %v, want %v", v.Release, tt.release)
			}
			for i := range tt.release {
				if v.Release[i] != tt.release[i] {
					t.Errorf("release = %v, want %v", v.Release, tt.release)
				}
			}
			if v.HasPre != tt.pre {
				t.Errorf("HasPre = %v, want %v", v.HasPre, tt.pre)
			}
			if (v.Dev >= 0) != tt.dev {
				t.Errorf("Dev = %d, want dev=%v", v.Dev, tt.dev)
			}
		})
	}
}

func TestParseVersion_Invalid(t *testing.T) {
	for _, in := range []string{"", "abc", "1.2.x", "==1.0", "1.0-foo"} {
		if _, err := domain.ParseVersion(in); !errors.Is(err, domain.ErrInvalidVersion) {
			t.Errorf("ParseVersion(%q) error = %v, want ErrInvalidVersion", in, err)
		}
	}
}

func TestVersion_Compare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.0", "1.0.0", 0},
		{"1.0", "2.0", -1},
		{"3.2.2", "3.2.10", -1},
		{"1.0a1", "1.0", -1},
		{"1.0a1", "1.0b1", -1},
		{"1.0b2", "1.0rc1", -1},
		{"1.0rc1", "1.0", -1},
		{"1.0", "1.0.post1", -1},
		{"1.0.dev1", "1.0a1", -1},
		{"1.0.dev1", "1.0.dev2", -1},
		{"1!1.0", "2.0", 1},
		{"1.0.post1", "1.0.post2", -1},
	}

	for _, tt := range tests {
		a := domain.MustParseVersion(tt.a)
		b := domain.MustParseVersion(tt.b)
		if got := a.Compare(b); got != tt.want {
			t.Errorf("Compare(%s, %s) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
		if got := b.Compare(a); got != -tt.want {
			t.Errorf("Compare(%s, %s) = %d, want %d", tt.b, tt.a, got, -tt.want)
		}
	}
}

func TestVersion_IsPrerelease(t *testing.T) {
	if domain.MustParseVersion("1.0").IsPrerelease() {
		t.Error("1.0 reported as prerelease")
	}
	if !domain.MustParseVersion("1.0rc1").IsPrerelease() {
		t.Error("1.0rc1 not reported as prerelease")
	}
	if !domain.MustParseVersion("1.0.dev1").IsPrerelease() {
		t.Error("1.0.dev1 not reported as prerelease")
	}
}
