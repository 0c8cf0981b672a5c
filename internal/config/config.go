// Package config loads the poolstore configuration file.
//
// The file is CUE. It is unified with the embedded #Config schema, which
// is closed and carries every default, so an empty file is a complete
// configuration and an unknown field is an error.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

//go:embed schema.cue
var schemaCUE string

// DefaultPath is read when no --config flag is given.
const DefaultPath = "poolstore.cue"

// Store drivers.
const (
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
	DriverRedis  = "redis"
)

// Config is the decoded configuration.
type Config struct {
	Store   StoreConfig   `json:"store"`
	Catalog CatalogConfig `json:"catalog"`
	Orders  OrdersConfig  `json:"orders"`
}

// StoreConfig selects the durable store.
type StoreConfig struct {
	Driver string      `json:"driver"`
	Path   string      `json:"path"`
	Redis  RedisConfig `json:"redis"`
}

// RedisConfig is used when Driver is "redis".
type RedisConfig struct {
	Addr   string `json:"addr"`
	Prefix string `json:"prefix"`
}

// CatalogConfig tunes browsing.
type CatalogConfig struct {
	PageSize            int    `json:"pageSize"`
	Locale              string `json:"locale"`
	RecentlyViewedLimit int    `json:"recentlyViewedLimit"`
}

// OrdersConfig tunes order numbering.
type OrdersConfig struct {
	FirstNumber int `json:"firstNumber"`
}

// Error is a configuration error with its CUE source position, if any.
type Error struct {
	Message string
	Pos     token.Pos
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Message)
	}
	return e.Message
}

// Default returns the schema defaults.
func Default() Config {
	cfg, err := Parse("", nil)
	if err != nil {
		panic(fmt.Sprintf("config: embedded schema is invalid: %v", err))
	}
	return cfg
}

// Load reads and validates the file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(path, data)
}

// LoadOrDefault is Load, except that a missing file yields Default.
func LoadOrDefault(path string) (Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Parse validates src against the schema. filename is used in error
// positions only.
func Parse(filename string, src []byte) (Config, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return Config{}, toError(err)
	}

	user := ctx.CompileBytes(src, cue.Filename(filename))
	if err := user.Err(); err != nil {
		return Config{}, toError(err)
	}

	value := schema.LookupPath(cue.ParsePath("#Config")).Unify(user)
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return Config{}, toError(err)
	}

	var cfg Config
	if err := value.Decode(&cfg); err != nil {
		return Config{}, toError(err)
	}
	return cfg, nil
}

// toError returns the first CUE error with its position.
func toError(err error) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return &Error{Message: err.Error()}
	}
	first := errs[0]
	e := &Error{Message: first.Error()}
	if positions := cueerrors.Positions(first); len(positions) > 0 {
		e.Pos = positions[0]
	}
	return e
}
