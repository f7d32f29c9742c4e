// Package config holds the strongly typed tree configuration. Dynamic
// updates arrive as loosely typed maps from whatever invokes the engine;
// Update validates every key and value and fails loudly on anything
// unknown instead of silently defaulting.
package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/treeline-dev/treeline/internal/column"
	"github.com/treeline-dev/treeline/internal/fsutil"
)

// ArgumentError reports a malformed configuration key or value.
type ArgumentError struct {
	Key    string
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Key, e.Reason)
}

// Config is the per-tree configuration.
type Config struct {
	Columns            []column.Kind
	ShowIgnoredFiles   bool
	RootMarker         string
	Sort               fsutil.SortPolicy
	AutoCd             bool
	AutoRecursiveLevel int
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		Columns: []column.Kind{
			column.KindMark,
			column.KindIndent,
			column.KindGit,
			column.KindIcon,
			column.KindFilename,
			column.KindSize,
			column.KindTime,
		},
		RootMarker: "[in]: ",
		Sort:       fsutil.SortByName,
	}
}

// ParseSort maps a sort policy name. The empty string means name order.
func ParseSort(s string) (fsutil.SortPolicy, error) {
	switch s {
	case "", "name":
		return fsutil.SortByName, nil
	case "size":
		return fsutil.SortBySize, nil
	case "time":
		return fsutil.SortByTime, nil
	}
	return 0, fmt.Errorf("unknown sort policy %q", s)
}

// Update applies a dynamic configuration map. All keys are validated; the
// first bad key aborts with an *ArgumentError and the config may be
// partially applied, matching action-abort semantics.
func (c *Config) Update(m map[string]any) error {
	for key, val := range m {
		if err := c.set(key, val); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) set(key string, val any) error {
	switch key {
	case "columns":
		s, err := asString(key, val)
		if err != nil {
			return err
		}
		kinds, err := column.ParseKinds(s)
		if err != nil {
			return &ArgumentError{Key: key, Reason: err.Error()}
		}
		c.Columns = kinds

	case "show_ignored_files":
		b, err := asBool(key, val)
		if err != nil {
			return err
		}
		c.ShowIgnoredFiles = b

	case "root_marker":
		s, err := asString(key, val)
		if err != nil {
			return err
		}
		c.RootMarker = s

	case "sort":
		s, err := asString(key, val)
		if err != nil {
			return err
		}
		policy, err := ParseSort(s)
		if err != nil {
			return &ArgumentError{Key: key, Reason: err.Error()}
		}
		c.Sort = policy

	case "auto_cd":
		b, err := asBool(key, val)
		if err != nil {
			return err
		}
		c.AutoCd = b

	case "auto_recursive_level":
		n, err := asInt(key, val)
		if err != nil {
			return err
		}
		if n < 0 {
			return &ArgumentError{Key: key, Reason: "must not be negative"}
		}
		c.AutoRecursiveLevel = n

	default:
		return &ArgumentError{Key: key, Reason: "unknown key"}
	}
	return nil
}

// Legacy transports deliver booleans and numbers as strings; accept both
// forms but nothing looser.

func asString(key string, val any) (string, error) {
	if s, ok := val.(string); ok {
		return s, nil
	}
	return "", &ArgumentError{Key: key, Reason: fmt.Sprintf("expected string, got %T", val)}
}

func asBool(key string, val any) (bool, error) {
	switch v := val.(type) {
	case bool:
		return v, nil
	case string:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return false, &ArgumentError{Key: key, Reason: fmt.Sprintf("not a boolean: %q", v)}
		}
		return b, nil
	}
	return false, &ArgumentError{Key: key, Reason: fmt.Sprintf("expected bool, got %T", val)}
}

func asInt(key string, val any) (int, error) {
	switch v := val.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case uint64:
		return int(v), nil
	case float64:
		return int(v), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, &ArgumentError{Key: key, Reason: fmt.Sprintf("not an integer: %q", v)}
		}
		return n, nil
	}
	return 0, &ArgumentError{Key: key, Reason: fmt.Sprintf("expected int, got %T", val)}
}
