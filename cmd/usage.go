package cmd

import (
	"fmt"
	"strings"

	"github.com/GhostWriters/DialogStack/internal/version"
)

// GetUsage returns usage information as a string.
func GetUsage() string {
	var sb strings.Builder
	printStr := func(s string) {
		sb.WriteString(s + "\n")
	}

	appName := version.ApplicationName
	appCmd := version.CommandName

	printStr(fmt.Sprintf("Usage: %s [<Flags>]", appCmd))
	printStr("")
	printStr(fmt.Sprintf("%s [%s]", appName, version.Version))
	printStr("Runs the dialog stack demo in the terminal. With --serve, every SSH")
	printStr("session gets its own demo and its own dialog store.")
	printStr("")
	printStr("Flags:")
	printStr("")

	fs := NewFlagSet(&Options{})
	sb.WriteString(fs.FlagUsages())
	return sb.String()
}

// PrintHelp prints usage information.
func PrintHelp() {
	fmt.Print(GetUsage())
}
