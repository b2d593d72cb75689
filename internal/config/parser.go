package config

import (
	"context"
	"fmt"
	"os"

	"github.com/tobyhq/tobyup/internal/platform"
	"github.com/tobyhq/tobyup/internal/release"
	lua "github.com/yuin/gopher-lua"
)

// Lua schema field names and globals.
const (
	luaGlobalTobyup      = "tobyup"
	luaFieldVersion      = "version"
	luaFieldInstallDir   = "install_dir"
	luaFieldRepo         = "repo"
	luaFieldKeyring      = "keyring"
	luaFieldUpdateShells = "update_profiles"
)

// Overrides holds the values a config file may set. Unset fields
// stay nil/empty so they never clobber defaults.
type Overrides struct {
	Version        string
	InstallDir     string
	Repo           string
	Keyring        string
	UpdateProfiles *bool
}

// Parser parses Lua config files with platform detection available
// to the config code.
type Parser struct {
	detector platform.Detector
}

// NewParser creates a new config parser with the given platform detector.
func NewParser(detector platform.Detector) *Parser {
	return &Parser{detector: detector}
}

// ParseError represents a config parsing error with friendly message.
type ParseError struct {
	Message string // User-friendly message
	Detail  string // Technical details (raw Lua error)
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Message, e.Detail)
}

// ParseString parses a Lua config from a string.
func (p *Parser) ParseString(ctx context.Context, luaCode string) (*Overrides, error) {
	L := newSandboxedVM()
	defer L.Close()

	// Inject the platform table so configs can branch on the host
	if p.detector != nil {
		platformInfo, err := p.detector.Detect(ctx)
		if err != nil {
			return nil, fmt.Errorf("platform detection failed: %w", err)
		}
		if err := platform.InjectPlatformTable(L, platformInfo); err != nil {
			return nil, fmt.Errorf("inject platform table: %w", err)
		}
	}

	if err := L.DoString(luaCode); err != nil {
		return nil, &ParseError{
			Message: "Lua syntax error",
			Detail:  err.Error(),
		}
	}

	return extractOverrides(L)
}

// ParseFile parses a Lua config file from disk.
func (p *Parser) ParseFile(ctx context.Context, path string) (*Overrides, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return p.ParseString(ctx, string(content))
}

// extractOverrides extracts the config from a Lua state.
// It expects a global "tobyup" table.
func extractOverrides(L *lua.LState) (*Overrides, error) {
	tobyupTable := L.GetGlobal(luaGlobalTobyup)
	if tobyupTable.Type() != lua.LTTable {
		return nil, &ParseError{
			Message: "missing or invalid 'tobyup' table",
			Detail:  fmt.Sprintf("expected table, got %s", tobyupTable.Type()),
		}
	}

	overrides := &Overrides{}
	table := tobyupTable.(*lua.LTable)

	if v := table.RawGetString(luaFieldVersion); v.Type() == lua.LTString {
		overrides.Version = v.String()
	}
	if v := table.RawGetString(luaFieldInstallDir); v.Type() == lua.LTString {
		overrides.InstallDir = v.String()
	}
	if v := table.RawGetString(luaFieldRepo); v.Type() == lua.LTString {
		overrides.Repo = v.String()
	}
	if v := table.RawGetString(luaFieldKeyring); v.Type() == lua.LTString {
		overrides.Keyring = v.String()
	}
	if v := table.RawGetString(luaFieldUpdateShells); v.Type() == lua.LTBool {
		b := lua.LVAsBool(v)
		overrides.UpdateProfiles = &b
	}

	return overrides, nil
}

// Load assembles the final configuration: built-in defaults, then the
// config file at path (skipped when path is empty or the file does
// not exist), then environment variables on top.
func Load(ctx context.Context, detector platform.Detector, path string) (*Config, error) {
	installDir, err := DefaultInstallDir()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		InstallDir:     installDir,
		Repo:           release.DefaultRepo,
		UpdateProfiles: true,
	}

	if path != "" {
		if _, statErr := os.Stat(path); statErr == nil {
			parser := NewParser(detector)
			overrides, err := parser.ParseFile(ctx, path)
			if err != nil {
				return nil, fmt.Errorf("config file %s: %w", path, err)
			}
			applyOverrides(cfg, overrides)
		}
	}

	applyEnv(cfg)

	cfg.InstallDir, err = ExpandPath(cfg.InstallDir)
	if err != nil {
		return nil, err
	}
	if cfg.Keyring != "" {
		cfg.Keyring, err = ExpandPath(cfg.Keyring)
		if err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyOverrides merges config-file values over the defaults.
func applyOverrides(cfg *Config, overrides *Overrides) {
	if overrides.Version != "" {
		cfg.Version = overrides.Version
	}
	if overrides.InstallDir != "" {
		cfg.InstallDir = overrides.InstallDir
	}
	if overrides.Repo != "" {
		cfg.Repo = overrides.Repo
	}
	if overrides.Keyring != "" {
		cfg.Keyring = overrides.Keyring
	}
	if overrides.UpdateProfiles != nil {
		cfg.UpdateProfiles = *overrides.UpdateProfiles
	}
}

// applyEnv merges environment variables over everything else.
func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvVersion); v != "" {
		cfg.Version = v
	}
	if v := os.Getenv(EnvInstallDir); v != "" {
		cfg.InstallDir = v
	}
	if v := os.Getenv(EnvToken); v != "" {
		cfg.Token = v
	} else if v := os.Getenv(EnvTokenAlt); v != "" {
		cfg.Token = v
	}
}
