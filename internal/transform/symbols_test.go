package transform

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mapping.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

func TestSymbolMappingMap(t *testing.T) {
	m := SymbolMapping{"BTC/USD": "BTC-USD", "BRK.B": "BRK-B"}

	tests := []struct {
		in   string
		want string
	}{
		{"BTC/USD", "BTC-USD"},
		{"BRK.B", "BRK-B"},
		{"ETH/USD", "ETHUSD"},
		{"FOO BAR", "FOO-BAR"},
		{"AAPL", "AAPL"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := m.Map(tt.in); got != tt.want {
				t.Errorf("Map(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}

	var empty SymbolMapping
	if got := empty.Map("A/B C"); got != "AB-C" {
		t.Errorf("nil Map(%q) = %q, want %q", "A/B C", got, "AB-C")
	}
}

func TestLoadSymbolMapping(t *testing.T) {
	path := writeTempFile(t, `
symbol_mapping:
  BTC/USD: BTC-USD
  BRK.B: BRK-B
`)

	m, err := LoadSymbolMapping(path, nil)
	if err != nil {
		t.Fatalf("LoadSymbolMapping() error = %v", err)
	}
	if len(m) != 2 {
		t.Errorf("len = %d, want 2", len(m))
	}
	if m["BTC/USD"] != "BTC-USD" {
		t.Errorf("m[BTC/USD] = %q, want %q", m["BTC/USD"], "BTC-USD")
	}
}

func TestLoadSymbolMappingMissingFile(t *testing.T) {
	m, err := LoadSymbolMapping(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	if err != nil {
		t.Fatalf("LoadSymbolMapping() error = %v", err)
	}
	if len(m) != 0 {
		t.Errorf("len = %d, want 0", len(m))
	}
}

func TestLoadSymbolMappingNoKey(t *testing.T) {
	m, err := LoadSymbolMapping(writeTempFile(t, "other: 1\n"), nil)
	if err != nil {
		t.Fatalf("LoadSymbolMapping() error = %v", err)
	}
	if m == nil || len(m) != 0 {
		t.Errorf("m = %v, want empty non-nil", m)
	}
}

func TestLoadSymbolMappingMalformed(t *testing.T) {
	if _, err := LoadSymbolMapping(writeTempFile(t, "symbol_mapping: [unclosed\n"), nil); err == nil {
		t.Error("LoadSymbolMapping() error = nil for malformed YAML")
	}
}
