package main

import (
	"os"

	"github.com/sandeepkv93/tasktrack/cmd/tasktrack/cmd"
)

func main() {
	os.Exit(cmd.Execute(os.Args[1:], os.Stdout, os.Stderr, nil))
}
