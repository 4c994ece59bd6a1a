package main

import (
	"os"

	"mregexp/internal/cmd"
)

func main() {
	os.Exit(cmd.Execute(os.Args[1:]))
}
