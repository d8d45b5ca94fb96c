package yamlutil_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-htmlreport/internal/yamlutil"
)

type testDefinition struct {
	Title  string            `yaml:"title"`
	Levels []int             `yaml:"levels"`
	Style  map[string]string `yaml:"style"`
}

func TestUnmarshalStrict_Input(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		dest    any
		wantErr error
		check   func(t *testing.T, v any)
	}{
		{
			name: "valid YAML",
			data: []byte("title: Weekly\nlevels: [1, 2]\nstyle:\n  font: Arial"),
			dest: &testDefinition{},
			check: func(t *testing.T, v any) {
				def := v.(*testDefinition)
				if def.Title != "Weekly" {
					t.Errorf("Title = %q, want %q", def.Title, "Weekly")
				}
				if len(def.Levels) != 2 || def.Levels[1] != 2 {
					t.Errorf("Levels = %v, want [1 2]", def.Levels)
				}
				if def.Style["font"] != "Arial" {
					t.Errorf("Style[font] = %q, want %q", def.Style["font"], "Arial")
				}
			},
		},
		{
			name:    "nil data",
			data:    nil,
			dest:    &testDefinition{},
			wantErr: yamlutil.ErrNilData,
		},
		{
			name:    "empty data",
			data:    []byte{},
			dest:    &testDefinition{},
			wantErr: yamlutil.ErrNilData,
		},
		{
			name:    "nil destination",
			data:    []byte("title: x"),
			dest:    nil,
			wantErr: yamlutil.ErrNilDestination,
		},
		{
			name:    "invalid YAML syntax",
			data:    []byte("title: [unclosed"),
			dest:    &testDefinition{},
			wantErr: errors.New("yamlutil:"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := yamlutil.UnmarshalStrict(tt.data, tt.dest)
			assertErr(t, err, tt.wantErr)
			if err == nil && tt.check != nil {
				tt.check(t, tt.dest)
			}
		})
	}
}

func TestUnmarshalStrict(t *testing.T) {
	t.Parallel()

	t.Run("known fields decode", func(t *testing.T) {
		t.Parallel()

		var def testDefinition
		if err := yamlutil.UnmarshalStrict([]byte("title: Q3"), &def); err != nil {
			t.Fatalf("UnmarshalStrict() error = %v", err)
		}
		if def.Title != "Q3" {
			t.Errorf("Title = %q, want %q", def.Title, "Q3")
		}
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		t.Parallel()

		var def testDefinition
		err := yamlutil.UnmarshalStrict([]byte("title: Q3\ntitel: typo"), &def)
		if err == nil {
			t.Fatal("expected error for unknown field")
		}
		if !strings.Contains(err.Error(), "yamlutil:") {
			t.Errorf("error %q should carry the yamlutil prefix", err)
		}
	})
}

func TestUnmarshalStrict_InputTooLarge(t *testing.T) {
	// Modifies the package-level MaxInputSize, so not parallel.
	orig := yamlutil.MaxInputSize
	defer func() { yamlutil.MaxInputSize = orig }()
	yamlutil.MaxInputSize = 8

	var def testDefinition
	err := yamlutil.UnmarshalStrict([]byte("title: too long for the limit"), &def)
	if !errors.Is(err, yamlutil.ErrInputTooLarge) {
		t.Errorf("UnmarshalStrict() error = %v, want ErrInputTooLarge", err)
	}
}

func TestMarshal(t *testing.T) {
	t.Parallel()

	out, err := yamlutil.Marshal(testDefinition{Title: "Weekly"})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.Contains(string(out), "title: Weekly") {
		t.Errorf("Marshal() = %q, want it to contain %q", out, "title: Weekly")
	}
}

func TestReadFileStrict(t *testing.T) {
	t.Parallel()

	t.Run("reads and decodes", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "report.yaml")
		if err := os.WriteFile(path, []byte("title: From disk\n"), 0o644); err != nil {
			t.Fatal(err)
		}

		var def testDefinition
		if err := yamlutil.ReadFileStrict(path, &def); err != nil {
			t.Fatalf("ReadFileStrict() error = %v", err)
		}
		if def.Title != "From disk" {
			t.Errorf("Title = %q, want %q", def.Title, "From disk")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		var def testDefinition
		err := yamlutil.ReadFileStrict(filepath.Join(t.TempDir(), "nope.yaml"), &def)
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("ReadFileStrict() error = %v, want os.ErrNotExist", err)
		}
	})
}

func assertErr(t *testing.T, got, want error) {
	t.Helper()

	switch {
	case want == nil && got != nil:
		t.Fatalf("unexpected error: %v", got)
	case want != nil && got == nil:
		t.Fatalf("expected error %v, got nil", want)
	case want != nil && !errors.Is(got, want) && !strings.Contains(got.Error(), want.Error()):
		t.Fatalf("error = %v, want %v", got, want)
	}
}
