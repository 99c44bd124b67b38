package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/alexisbeaulieu97/lumen/internal/theme"
	lumenerrors "github.com/alexisbeaulieu97/lumen/pkg/errors"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// ParseTheme loads a theme document from disk, validates it, and returns the resulting definition.
func ParseTheme(path string) (*theme.Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, lumenerrors.NewParseError(path, 0, err)
	}
	return DecodeTheme(path, data)
}

// DecodeTheme parses a theme document. source names the document in errors.
func DecodeTheme(source string, data []byte) (*theme.Definition, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))

	var def theme.Definition
	if err := dec.Decode(&def); err != nil {
		if errors.Is(err, io.EOF) {
			err = fmt.Errorf("empty theme document")
		}
		return nil, lumenerrors.NewParseError(source, extractLine(err), err)
	}

	if err := theme.Validate(&def); err != nil {
		return nil, err
	}

	return &def, nil
}

// LoadThemeDir parses every .yaml and .yml file in dir in name order. It
// stops at the first document that fails.
func LoadThemeDir(dir string) ([]*theme.Definition, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, lumenerrors.NewParseError(dir, 0, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".yaml", ".yml":
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(paths)

	defs := make([]*theme.Definition, 0, len(paths))
	for _, path := range paths {
		def, err := ParseTheme(path)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, nil
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	_, scanErr := fmt.Sscanf(matches[1], "%d", &line)
	if scanErr != nil {
		return 0
	}

	return line
}
