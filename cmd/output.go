package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

var (
	okColor   = color.New(color.FgGreen)
	warnColor = color.New(color.FgYellow)
	errColor  = color.New(color.FgRed)
)

// Status lines go to stderr so report and summary output stay pipeable.

func infof(format string, a ...any) {
	okColor.Fprintf(os.Stderr, "✓ "+format+"\n", a...)
}

func warnf(format string, a ...any) {
	warnColor.Fprintf(os.Stderr, "⚠ "+format+"\n", a...)
}

func errorf(format string, a ...any) {
	errColor.Fprintf(os.Stderr, "✗ "+format+"\n", a...)
}

func debugf(format string, a ...any) {
	if !debug {
		return
	}
	fmt.Fprintf(os.Stderr, "[debug] "+format+"\n", a...)
}
