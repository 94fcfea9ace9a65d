package main

import (
	"os"

	"github.com/penwyp/go-allan-plot/commands"
	"github.com/penwyp/go-allan-plot/internal/util"
)

func main() {
	err := commands.Execute()
	util.CloseLogger()

	if code := commands.ExitCode(err); code != 0 {
		os.Exit(code)
	}
}
