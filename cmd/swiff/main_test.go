package main

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/pterm/pterm"
)

func TestMain(m *testing.M) {
	pterm.DisableStyling()
	os.Exit(m.Run())
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCommands(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    []string
		wantErr string
	}{
		{
			name: "equal split",
			args: []string{"split", "equal", "--total", "100", "alice", "bob", "carol"},
			want: []string{"Split equally among 3 people", "$33.34", "$33.33", "Total: $100.00"},
		},
		{
			name: "custom split",
			args: []string{"split", "custom", "-t", "100", "alice=60", "bob=40"},
			want: []string{"Custom amounts for 2 people", "$60.00", "$40.00"},
		},
		{
			name:    "custom split short",
			args:    []string{"split", "custom", "-t", "100", "alice=60", "bob=30"},
			wantErr: "must equal bill total",
		},
		{
			name: "percent split in euros",
			args: []string{"split", "percent", "--total", "100", "--currency", "eur", "alice=50", "bob=50%"},
			want: []string{"€50.00", "50.00%"},
		},
		{
			name:    "missing total",
			args:    []string{"split", "equal", "alice"},
			wantErr: "total",
		},
		{
			name:    "bad assignment",
			args:    []string{"split", "custom", "-t", "10", "alice"},
			wantErr: "expected name=value",
		},
		{
			name: "simplify with payer",
			args: []string{"simplify", "--payer", "carol", "alice=30", "bob=30", "carol=30"},
			want: []string{"alice", "bob", "carol", "$30.00", "2 transfer(s)"},
		},
		{
			name: "simplify with paid amounts",
			args: []string{"simplify", "alice=30", "bob=30", "--paid", "alice=60"},
			want: []string{"bob", "$30.00", "1 transfer(s)"},
		},
		{
			name: "simplify already settled",
			args: []string{"simplify", "alice=30", "bob=30", "--paid", "alice=30", "--paid", "bob=30"},
			want: []string{"Everyone is settled up."},
		},
		{
			name:    "simplify without payer",
			args:    []string{"simplify", "alice=30"},
			wantErr: "--payer or --paid",
		},
		{
			name:    "unsupported currency",
			args:    []string{"split", "equal", "-t", "1", "--currency", "xyz", "alice"},
			wantErr: "unsupported currency",
		},
		{
			name: "currencies",
			args: []string{"currencies"},
			want: []string{"USD", "₹", "Canadian Dollar"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("error = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q:\n%s", w, out)
				}
			}
		})
	}
}

func TestCapitalize(t *testing.T) {
	if got := capitalize("invalid total"); got != "Invalid total" {
		t.Errorf("capitalize = %q, want %q", got, "Invalid total")
	}
	if got := capitalize(""); got != "" {
		t.Errorf("capitalize(\"\") = %q, want empty", got)
	}
}
