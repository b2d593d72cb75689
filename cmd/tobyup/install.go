package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/tobyhq/tobyup/internal/binary"
	"github.com/tobyhq/tobyup/internal/config"
	"github.com/tobyhq/tobyup/internal/platform"
	"github.com/tobyhq/tobyup/internal/release"
	"github.com/tobyhq/tobyup/internal/shell"
)

// installOptions holds the parsed `tobyup install` flags.
type installOptions struct {
	version    string
	installDir string
	configPath string
	noProfile  bool
	dryRun     bool
	showHelp   bool
}

// parseInstallFlags parses the install subcommand arguments.
// Value flags accept both `--flag value` and `--flag=value`.
func parseInstallFlags(args []string) (*installOptions, error) {
	opts := &installOptions{}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		name, value, hasValue := strings.Cut(arg, "=")

		takeValue := func() (string, error) {
			if hasValue {
				return value, nil
			}
			i++
			if i >= len(args) {
				return "", fmt.Errorf("flag %s requires a value", name)
			}
			return args[i], nil
		}

		switch name {
		case "--help", "-h":
			opts.showHelp = true
		case "--no-profile":
			opts.noProfile = true
		case "--dry-run", "-n":
			opts.dryRun = true
		case "--version", "-v":
			v, err := takeValue()
			if err != nil {
				return nil, err
			}
			opts.version = v
		case "--install-dir":
			v, err := takeValue()
			if err != nil {
				return nil, err
			}
			opts.installDir = v
		case "--config":
			v, err := takeValue()
			if err != nil {
				return nil, err
			}
			opts.configPath = v
		default:
			return nil, fmt.Errorf("unknown flag: %s", arg)
		}
	}

	return opts, nil
}

// loadConfig assembles configuration from defaults, the config file,
// environment variables, and finally the command-line flags.
func loadConfig(ctx context.Context, detector platform.Detector, opts *installOptions) (*config.Config, error) {
	configPath := opts.configPath
	if configPath == "" {
		defaultPath, err := config.DefaultConfigPath()
		if err != nil {
			return nil, fmt.Errorf("locate config file: %w", err)
		}
		configPath = defaultPath
	}

	cfg, err := config.Load(ctx, detector, configPath)
	if err != nil {
		return nil, err
	}

	// Flags win over everything
	if opts.version != "" {
		cfg.Version = opts.version
	}
	if opts.installDir != "" {
		cfg.InstallDir, err = config.ExpandPath(opts.installDir)
		if err != nil {
			return nil, err
		}
	}
	if opts.noProfile {
		cfg.UpdateProfiles = false
	}

	return cfg, nil
}

// updateShellProfiles appends the PATH export block to existing
// shell profiles when the install dir is not already reachable.
func updateShellProfiles(installDir string) error {
	if shell.InstallDirOnPath(installDir, os.Getenv("PATH")) {
		fmt.Printf("✓ %s is already on your PATH\n", installDir)
		return nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("get home directory: %w", err)
	}

	results, err := shell.UpdateProfiles(home, installDir)
	if err != nil {
		return err
	}

	if len(results) == 0 {
		fmt.Printf("⚠  No shell profile found; add this to your shell rc file:\n")
		fmt.Printf("  export PATH=\"%s:$PATH\"\n", installDir)
		return nil
	}

	for _, result := range results {
		if result.Added {
			fmt.Printf("✓ Added %s to PATH in %s\n", installDir, result.Profile)
		} else if result.AlreadyPresent {
			fmt.Printf("✓ PATH entry already present in %s\n", result.Profile)
		}
	}

	return nil
}

// runInstall handles the `tobyup install` subcommand
func runInstall(args []string) error {
	opts, err := parseInstallFlags(args)
	if err != nil {
		return err
	}
	if opts.showHelp {
		printUsage()
		return nil
	}

	// Interruptible context with a ceiling for slow downloads
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, 10*time.Minute)
	defer cancel()

	detector := platform.NewDetector()

	cfg, err := loadConfig(ctx, detector, opts)
	if err != nil {
		return err
	}

	fmt.Println("Installing toby...")
	fmt.Println()

	// Step 1: Detect platform
	platformInfo, err := detector.Detect(ctx)
	if err != nil {
		return err
	}
	if distro := platformInfo.GetDistro(); distro != nil {
		fmt.Printf("✓ Detected %s (%s family, %s)\n", distro.ID, distro.Family, platformInfo.ArchTag)
	} else {
		fmt.Printf("✓ Detected %s\n", platformInfo)
	}

	// Step 2: Resolve release tag
	resolver := release.NewResolver(cfg.Repo, release.WithToken(cfg.Token))
	tag, err := resolver.Resolve(ctx, cfg.Version)
	if err != nil {
		return err
	}
	if cfg.Version != "" {
		fmt.Printf("✓ Using requested release %s\n", tag)
	} else {
		fmt.Printf("✓ Latest release is %s\n", tag)
	}

	if opts.dryRun {
		fmt.Println()
		fmt.Println("Dry run; would perform:")
		fmt.Printf("  download %s of %s for %s\n", binary.AssetName(platformInfo), cfg.Repo, platformInfo)
		fmt.Printf("  install %s into %s\n", binary.BinaryName, cfg.InstallDir)
		if cfg.UpdateProfiles {
			fmt.Println("  update shell profiles if needed")
		}
		return nil
	}

	// Step 3: Download, verify, extract, install
	manager, err := binary.NewManager(binary.Config{
		Repo:         cfg.Repo,
		InstallDir:   cfg.InstallDir,
		PlatformInfo: platformInfo,
		Token:        cfg.Token,
		KeyringPath:  cfg.Keyring,
		Logf: func(format string, a ...any) {
			fmt.Printf(format+"\n", a...)
		},
	})
	if err != nil {
		return fmt.Errorf("create binary manager: %w", err)
	}

	result, err := manager.Install(ctx, tag)
	if err != nil {
		return err
	}
	fmt.Printf("✓ Installed %s %s at %s (%s, verified: %s)\n",
		binary.BinaryName, result.Tag, result.Path,
		result.Duration.Round(time.Millisecond), result.Verified)

	// Step 4: Shell integration
	if cfg.UpdateProfiles {
		if err := updateShellProfiles(cfg.InstallDir); err != nil {
			// Non-fatal, the binary is already in place
			fmt.Printf("⚠  Shell profile update failed: %v\n", err)
			fmt.Println("\nYou can manually add this to your shell rc file:")
			fmt.Printf("  export PATH=\"%s:$PATH\"\n", cfg.InstallDir)
		}
	}

	fmt.Println()
	fmt.Printf("Run '%s --help' to get started.\n", binary.BinaryName)

	return nil
}
