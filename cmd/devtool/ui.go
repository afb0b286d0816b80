package main

import (
	"fmt"
)

const (
	colorGreen  = "\033[0;32m"
	colorRed    = "\033[0;31m"
	colorYellow = "\033[1;33m"
	colorBlue   = "\033[0;34m"
	colorReset  = "\033[0m"
)

func printStatus(color, symbol, format string, a ...any) {
	fmt.Printf(color+symbol+" "+format+colorReset+"\n", a...)
}

func PrintInfo(format string, a ...any)    { printStatus(colorBlue, "ℹ", format, a...) }
func PrintSuccess(format string, a ...any) { printStatus(colorGreen, "✓", format, a...) }
func PrintWarning(format string, a ...any) { printStatus(colorYellow, "⚠", format, a...) }
func PrintError(format string, a ...any)   { printStatus(colorRed, "✗", format, a...) }

func PrintHeader(title string) {
	fmt.Printf("\n%s=== %s ===%s\n", colorYellow, title, colorReset)
}
