// Copyright 2025 XintLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@xintlabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"

	"github.com/xintlabs/xint/internal/errors"
	"github.com/xintlabs/xint/internal/policy"
	"github.com/xintlabs/xint/internal/ui"
)

// Version information (set via ldflags during build)
var (
	version = "dev"     // Version string
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// GlobalFlags holds the global CLI flags that apply to all commands.
type GlobalFlags struct {
	JSON    bool        // Output in JSON format (for applicable commands)
	NoColor bool        // Disable color output
	Verbose int         // Verbosity level: 0=normal, 1=-v (info), 2=-vv (debug)
	Quiet   bool        // Suppress non-essential output (progress, info messages)
	Policy  policy.Mode // Permission level granted to this invocation
}

// requiredPolicy maps each subcommand to the minimum policy mode it
// needs. Subcommands absent from the map run under read_only.
var requiredPolicy = map[string]policy.Mode{
	"bookmarks": policy.Engagement,
	"diff":      policy.Engagement,
}

// printVersion writes the version block shown by --version and the
// version subcommand.
func printVersion(w io.Writer) {
	fmt.Fprintf(w, "xint version %s\n", version)
	fmt.Fprintf(w, "commit: %s\n", commit)
	fmt.Fprintf(w, "built: %s\n", date)
}

// resolvePolicy applies the policy precedence: --policy flag, then
// XINT_POLICY, then policy.default from the project config, then
// read_only.
func resolvePolicy(flagValue, configPath string) (policy.Mode, error) {
	name := flagValue
	if name == "" {
		name = os.Getenv("XINT_POLICY")
	}
	if name == "" {
		name = loadConfigOrDefault(configPath).Policy.Default
	}
	if name == "" {
		return policy.ReadOnly, nil
	}
	return policy.Parse(name)
}

// logInfo outputs an informational message to stderr if verbose mode is enabled.
// Messages are suppressed if quiet mode is active.
func logInfo(globals GlobalFlags, format string, args ...interface{}) { //nolint:unused // Reserved for future use
	if !globals.Quiet && globals.Verbose >= 1 {
		fmt.Fprintf(os.Stderr, "[INFO] "+format+"\n", args...)
	}
}

// logDebug outputs a debug message to stderr if debug verbosity is enabled (-vv).
// Debug messages are shown regardless of quiet mode for troubleshooting.
func logDebug(globals GlobalFlags, format string, args ...interface{}) { //nolint:unused // Reserved for future use
	if globals.Verbose >= 2 {
		fmt.Fprintf(os.Stderr, "[DEBUG] "+format+"\n", args...)
	}
}

// main parses global flags, then dispatches to a command handler or
// starts the MCP server.
func main() {
	// Best-effort .env loading so API keys can live next to the project.
	_ = godotenv.Load()

	var (
		showVersion = flag.BoolP("version", "V", false, "Show version and exit")
		mcpMode     = flag.Bool("mcp", false, "Start as MCP server (JSON-RPC over stdio)")
		metricsAddr = flag.String("metrics-addr", "", "Expose Prometheus metrics on host:port (MCP mode)")
		policyName  = flag.String("policy", "", "Policy mode: read_only or engagement (default: read_only)")
		configPath  = flag.StringP("config", "c", "", "Path to .xint/project.yaml (default: discovered from CWD upward)")
		jsonOutput  = flag.Bool("json", false, "Output in JSON format (for applicable commands)")
		noColor     = flag.Bool("no-color", false, "Disable color output")
		verbose     = flag.CountP("verbose", "v", "Increase verbosity (-v for info, -vv for debug)")
		quiet       = flag.BoolP("quiet", "q", false, "Suppress non-essential output (progress, info messages)")
	)

	// Stop parsing at the first non-flag argument (the command name).
	// This allows subcommand-specific flags like "search --limit 5" to
	// be passed through to subcommand handlers instead of being
	// rejected by the global flag parser.
	flag.SetInterspersed(false)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `xint - X/Twitter intelligence gathering

xint collects, analyzes, and packages public X/Twitter data: searches,
profiles, threads, trends, and linked articles. It ships an interactive
terminal dashboard and an MCP server so AI agents can call the same
operations as tools.

Usage:
  xint <command> [options]

Commands:
  search        Search recent posts for a query
  trends        Show trending topics for a location
  profile       Fetch a profile summary
  thread        Expand a tweet into its full thread
  article       Extract and summarize a linked article
  report        Generate an AI analysis report on a topic
  watch         Poll a query for new matches
  diff          Compare two snapshots of a query (engagement)
  bookmarks     List account bookmarks (engagement)
  collections   List saved collections
  costs         Show accumulated spend against the budget
  cache         Show or clear the local response cache
  package       Manage remote intelligence packages
  tui           Start the interactive dashboard
  config        Show or create configuration
  version       Show version information

Global Options:
  --policy          Policy mode: read_only or engagement
  --json            Output in JSON format (for applicable commands)
  --no-color        Disable color output (respects NO_COLOR env var)
  -v, --verbose     Increase verbosity (-v for info, -vv for debug)
  -q, --quiet       Suppress non-essential output
  --mcp             Start as MCP server (JSON-RPC over stdio)
  --metrics-addr    Expose Prometheus metrics on host:port (MCP mode)
  -c, --config      Path to .xint/project.yaml
  -V, --version     Show version and exit

Examples:
  xint search --query "solar flare" --limit 10
  xint profile nasa
  xint thread 1234567890
  xint package query --ids pkg-1,pkg-2 --question "what changed?"
  xint --policy engagement bookmarks
  xint tui
  xint --mcp

Environment Variables:
  XINT_PACKAGE_API_BASE_URL  Package API root URL
  XINT_PACKAGE_API_KEY       Package API bearer token
  XINT_POLICY                Default policy mode
  XINT_TUI_THEME             Dashboard theme (classic|minimal|neon)

For detailed command help: xint <command> --help

`)
	}

	flag.Parse()

	if *showVersion {
		printVersion(os.Stdout)
		os.Exit(0)
	}

	// Check NO_COLOR environment variable
	if os.Getenv("NO_COLOR") != "" {
		*noColor = true
	}

	// Validate conflicting flags
	if *quiet && *verbose > 0 {
		fmt.Fprintf(os.Stderr, "Error: cannot use --quiet and --verbose together\n")
		os.Exit(1)
	}

	// JSON mode auto-enables quiet to prevent progress bars corrupting JSON output
	if *jsonOutput {
		*quiet = true
	}

	mode, err := resolvePolicy(*policyName, *configPath)
	if err != nil {
		errors.FatalError(errors.NewInputError(
			"Invalid policy mode",
			err.Error(),
			"Use --policy read_only or --policy engagement",
			nil,
		), *jsonOutput)
	}

	globals := GlobalFlags{
		JSON:    *jsonOutput,
		NoColor: *noColor,
		Verbose: *verbose,
		Quiet:   *quiet,
		Policy:  mode,
	}

	// Initialize color output based on flags
	ui.InitColors(globals.NoColor)

	// MCP mode takes precedence
	if *mcpMode {
		runMCPServer(*configPath, *metricsAddr, globals.Policy)
		return
	}

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(1)
	}

	command := args[0]
	cmdArgs := args[1:]

	if need, ok := requiredPolicy[command]; ok && !policy.IsAllowed(globals.Policy, need) {
		errors.FatalError(errors.NewPermissionError(
			fmt.Sprintf("Command '%s' requires %s policy", command, need),
			fmt.Sprintf("Current policy is %s", globals.Policy),
			fmt.Sprintf("Re-run with --policy %s", need),
			nil,
		), globals.JSON)
	}

	switch command {
	case "search":
		runSearch(cmdArgs, *configPath, globals)
	case "trends":
		runTrends(cmdArgs, *configPath, globals)
	case "profile":
		runProfile(cmdArgs, *configPath, globals)
	case "thread":
		runThread(cmdArgs, *configPath, globals)
	case "article":
		runArticle(cmdArgs, *configPath, globals)
	case "report":
		runReport(cmdArgs, *configPath, globals)
	case "watch":
		runWatch(cmdArgs, *configPath, globals)
	case "diff":
		runDiff(cmdArgs, *configPath, globals)
	case "bookmarks":
		runBookmarks(cmdArgs, *configPath, globals)
	case "collections":
		runCollections(cmdArgs, *configPath, globals)
	case "costs":
		runCosts(cmdArgs, *configPath, globals)
	case "cache":
		runCache(cmdArgs, *configPath, globals)
	case "package":
		runPackage(cmdArgs, *configPath, globals)
	case "tui":
		runTUI(cmdArgs, *configPath, globals)
	case "config":
		runConfigCmd(cmdArgs, *configPath, globals)
	case "version":
		printVersion(os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		flag.Usage()
		os.Exit(1)
	}
}
