package transform

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// SymbolMapping maps Alpaca symbols to Ghostfolio symbols.
type SymbolMapping map[string]string

// Map returns the mapped symbol. Unmapped symbols have "/" removed and
// spaces replaced with "-".
func (m SymbolMapping) Map(symbol string) string {
	if mapped, ok := m[symbol]; ok {
		return mapped
	}
	return strings.ReplaceAll(strings.ReplaceAll(symbol, "/", ""), " ", "-")
}

type mappingFile struct {
	SymbolMapping SymbolMapping `yaml:"symbol_mapping"`
}

// LoadSymbolMapping reads the symbol_mapping table from a YAML file.
// A missing file yields an empty mapping.
func LoadSymbolMapping(path string, logger *slog.Logger) (SymbolMapping, error) {
	if logger == nil {
		logger = slog.Default()
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Warn("mapping file not found, using empty mapping", "path", path)
		return SymbolMapping{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read mapping file: %w", err)
	}

	var f mappingFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse mapping file: %w", err)
	}
	if f.SymbolMapping == nil {
		f.SymbolMapping = SymbolMapping{}
	}

	logger.Info("loaded symbol mapping", "path", path, "count", len(f.SymbolMapping))
	return f.SymbolMapping, nil
}
