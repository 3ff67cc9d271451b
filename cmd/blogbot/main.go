package main

import (
	"fmt"
	"os"

	"github.com/lsimons/blogbot/cmd/blogbot/commands"
	"github.com/lsimons/blogbot/cmd/blogbot/internal/clierr"
)

func main() {
	if err := commands.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(clierr.ExitCodeOf(err))
	}
}
