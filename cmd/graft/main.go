package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"graft/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "graft",
	Short: "Graft source preprocessor",
	Long:  `Graft merges import directives across source files into one output and maps every output byte back to its origin`,
}

// main registers subcommands and persistent flags, then executes the root
// command. A failed command exits with status code 1.
func main() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Version

	// Добавляем команды
	rootCmd.AddCommand(mergeCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func useColor(cmd *cobra.Command, f *os.File) bool {
	colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(f))
}

func maxDiagnostics(cmd *cobra.Command) int {
	n, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil || n <= 0 {
		return 100
	}
	return n
}
