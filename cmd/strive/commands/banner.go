package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/strive-code/strive/logger"
	"github.com/strive-code/strive/sym"
	"github.com/strive-code/strive/version"
)

const (
	ansiReset   = "\033[0m"
	ansiBold    = "\033[1m"
	ansiGreen   = "\033[32m"
	ansiYellow  = "\033[33m"
	ansiBlue    = "\033[34m"
	ansiMagenta = "\033[35m"
	ansiCyan    = "\033[36m"
	ansiWhite   = "\033[37m"
	ansiBgBlack = "\033[40m"
)

// striveArt spells the wordmark in block glyphs, one banner row each
var striveArt = []string{
	"███████ ████████ ██████  ██ ██    ██ ███████",
	"██         ██    ██   ██ ██ ██    ██ ██     ",
	"███████    ██    ██████  ██ ██    ██ █████  ",
	"     ██    ██    ██   ██ ██  ██  ██  ██     ",
	"███████    ██    ██   ██ ██   ████   ███████",
}

// printStartupBanner prints the user-friendly startup message
func printStartupBanner(verbosity int, dbPath string) {
	frame := ansiReset + ansiCyan + ansiBold

	fmt.Printf("\n%s%s", ansiCyan, ansiBold)
	fmt.Println("   ╔═══════════════════════════════════════════════════╗")
	fmt.Println("   ║                                                   ║")
	for _, line := range striveArt {
		fmt.Printf("   ║    %s%s%s%s%s   ║\n", ansiWhite, ansiBold, ansiBgBlack, line, frame)
	}
	fmt.Println("   ║                                                   ║")
	fmt.Printf("   ║   %s%s%s Transpile  %s%s%s Optimize  %s%s%s Reconstruct  %s%s%s Jobs  ║\n",
		ansiBlue, sym.Transpile, frame,
		ansiGreen, sym.Optimize, frame,
		ansiYellow, sym.Reconstruct, frame,
		ansiMagenta, sym.Jobs, frame)
	fmt.Println("   ║                                                   ║")
	fmt.Printf("   ╚═══════════════════════════════════════════════════╝%s\n\n", ansiReset)

	printInfoBox(verbosity, dbPath)

	if logger.ShouldLogAll(verbosity) {
		fmt.Printf("\n%s⚠ File contents will be dumped before and after transformation%s\n", ansiYellow, ansiReset)
	}
	fmt.Printf("\n%s%s✨ Per-file progress appears as workers finish%s\n", ansiYellow, ansiBold, ansiReset)
	fmt.Printf("%s💡 Press Ctrl+C to abort the job%s\n\n", ansiBlue, ansiReset)
}

// printInfoBox renders the version and verbosity summary. Rows past the
// first three only appear when the verbosity warrants them.
func printInfoBox(verbosity int, dbPath string) {
	info := version.Get()

	rows := [][2]string{
		{"Version:", fmt.Sprintf("%s (commit %s)", info.Version, info.Short())},
		{"Built:", info.BuildTime},
		{"Verbosity:", logger.LevelName(verbosity)},
	}
	if verbosity >= logger.VerbosityInfo {
		rows = append(rows, [2]string{"Showing:", logger.VerbosityDescription(verbosity)})
	}
	if logger.ShouldLogTrace(verbosity) {
		rows = append(rows, [2]string{"Output:", enabledCategoryList(verbosity)})
	}
	if dbPath != "" {
		rows = append(rows, [2]string{"Database:", dbPath})
	}

	fmt.Printf("%s%s┌─ Strive Info ───────────────────────────────────────┐%s\n", ansiGreen, ansiBold, ansiReset)
	for _, r := range rows {
		fmt.Printf("%s│%s %-10s %s\n", ansiGreen, ansiReset, r[0], r[1])
	}
	fmt.Printf("%s└─────────────────────────────────────────────────────┘%s\n", ansiGreen, ansiReset)
}

// enabledCategoryList renders the enabled output categories as a stable
// comma-separated list for the banner
func enabledCategoryList(verbosity int) string {
	categories := logger.EnabledCategories(verbosity)
	names := make([]string, 0, len(categories))
	for _, cat := range categories {
		names = append(names, logger.CategoryName(cat))
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
