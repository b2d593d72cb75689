package main

import (
	"fmt"
	"os"
)

// Version will be set at build time via -ldflags
var Version = "v0.0.1-alpha"

func main() {
	// Handle subcommands
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version":
			fmt.Printf("tobyup %s\n", Version)
			fmt.Println("Installer for the toby CLI")
			return
		case "install":
			// Handle tobyup install subcommand
			if err := runInstall(os.Args[2:]); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(exitCodeFor(err))
			}
			return
		case "help", "--help", "-h":
			printUsage()
			return
		default:
			fmt.Fprintf(os.Stderr, "Error: unknown command: %s\n", os.Args[1])
			printUsage()
			os.Exit(1)
		}
	}

	// Default: install, matching the one-liner curl | sh experience
	if err := runInstall(nil); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCodeFor(err))
	}
}

func printUsage() {
	fmt.Println("tobyup - installer for the toby CLI")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  tobyup                       Install the latest toby release")
	fmt.Println("  tobyup install [options]     Install a toby release")
	fmt.Println("  tobyup --version             Show installer version")
	fmt.Println()
	fmt.Println("Install options:")
	fmt.Println("  --version <tag>      Install a specific release (e.g. v1.6.1)")
	fmt.Println("  --install-dir <dir>  Install into <dir> instead of ~/.local/bin")
	fmt.Println("  --config <file>      Read config from <file> instead of ~/.config/tobyup/config.lua")
	fmt.Println("  --no-profile         Do not update shell profile files")
	fmt.Println("  --dry-run            Resolve and print what would happen, then stop")
	fmt.Println()
	fmt.Println("Environment:")
	fmt.Println("  TOBY_VERSION         Release tag to install")
	fmt.Println("  TOBY_INSTALL_DIR     Installation directory")
	fmt.Println("  GITHUB_TOKEN         Token for API calls and direct downloads")
}
