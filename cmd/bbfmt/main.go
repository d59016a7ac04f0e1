package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/open-cli-collective/bbfmt/internal/cmd/formatcmd"
	"github.com/open-cli-collective/bbfmt/internal/cmd/root"
)

func main() {
	cmd := root.NewCmdRoot()
	if err := cmd.Execute(); err != nil {
		// --check already reported which input would change
		if !errors.Is(err, formatcmd.ErrWouldReformat) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
