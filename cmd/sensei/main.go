package main

import (
	"os"

	"github.com/shalwin04/code-reviewer-sensei-sub001/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
