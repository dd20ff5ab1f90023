package config

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func newViper(t *testing.T, yaml string) *viper.Viper {
	t.Helper()
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewBufferString(yaml)); err != nil {
		t.Fatalf("failed to read config: %v", err)
	}
	return v
}

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := FromViper(viper.New())
	if err != nil {
		t.Fatalf("FromViper() error = %v", err)
	}

	if cfg.Output != DefaultOutput {
		t.Errorf("Output = %q, want %q", cfg.Output, DefaultOutput)
	}
	if cfg.Flatten || cfg.Enhanced || cfg.Strict {
		t.Errorf("boolean settings should default to false, got %+v", cfg)
	}
	if cfg.TimeBudget != 0 {
		t.Errorf("TimeBudget = %d, want 0", cfg.TimeBudget)
	}
}

func TestFromViper_FileSettings(t *testing.T) {
	v := newViper(t, `
output: generated
environment: staging.json
flatten: true
enhanced: true
time-budget: 750
report: run.yaml
`)

	cfg, err := FromViper(v)
	if err != nil {
		t.Fatalf("FromViper() error = %v", err)
	}

	if cfg.Output != "generated" {
		t.Errorf("Output = %q, want %q", cfg.Output, "generated")
	}
	if cfg.Environment != "staging.json" {
		t.Errorf("Environment = %q, want %q", cfg.Environment, "staging.json")
	}
	if !cfg.Flatten || !cfg.Enhanced {
		t.Errorf("file booleans not applied: %+v", cfg)
	}
	if cfg.TimeBudget != 750 {
		t.Errorf("TimeBudget = %d, want 750", cfg.TimeBudget)
	}
	if cfg.Report != "run.yaml" {
		t.Errorf("Report = %q, want %q", cfg.Report, "run.yaml")
	}
}

func TestFromViper_TypeMismatch(t *testing.T) {
	v := newViper(t, "flatten: banana\n")

	if _, err := FromViper(v); err == nil {
		t.Error("FromViper() error = nil, want type error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		cfg         Config
		wantErr     bool
		wantWarning string
	}{
		{
			name: "zero value is valid",
			cfg:  Config{Output: "tests"},
		},
		{
			name:    "negative time budget",
			cfg:     Config{Output: "tests", TimeBudget: -1},
			wantErr: true,
		},
		{
			name:        "report with unrecognized extension",
			cfg:         Config{Output: "tests", Report: "out.txt"},
			wantWarning: "unrecognized extension",
		},
		{
			name: "report with json extension",
			cfg:  Config{Output: "tests", Report: "out.json"},
		},
		{
			name: "report with yml extension",
			cfg:  Config{Output: "tests", Report: "out.yml"},
		},
		{
			name:        "time budget without enhanced mode",
			cfg:         Config{Output: "tests", TimeBudget: 500},
			wantWarning: "no effect without enhanced",
		},
		{
			name: "time budget with enhanced mode",
			cfg:  Config{Output: "tests", TimeBudget: 500, Enhanced: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings, err := Validate(&tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantWarning == "" {
				if len(warnings) != 0 {
					t.Errorf("Validate() warnings = %v, want none", warnings)
				}
				return
			}
			found := false
			for _, w := range warnings {
				if strings.Contains(w, tt.wantWarning) {
					found = true
				}
			}
			if !found {
				t.Errorf("Validate() warnings = %v, want one containing %q", warnings, tt.wantWarning)
			}
		})
	}
}

func TestUnknownKeys(t *testing.T) {
	v := newViper(t, `
output: generated
color: always
retries: 3
`)

	got := UnknownKeys(v)
	want := []string{
		`unknown setting "color" (ignored)`,
		`unknown setting "retries" (ignored)`,
	}
	if len(got) != len(want) {
		t.Fatalf("UnknownKeys() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("UnknownKeys()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestUnknownKeys_KnownOnly(t *testing.T) {
	v := viper.New()
	v.SetDefault("output", DefaultOutput)

	if got := UnknownKeys(v); len(got) != 0 {
		t.Errorf("UnknownKeys() = %v, want none", got)
	}
}
