package main

import (
	"fmt"
	"os"

	"github.com/jkim/ish/internal/config"
	"github.com/jkim/ish/internal/shell"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", os.Args[0], err)
		os.Exit(1)
	}

	sh := shell.New(os.Args[0], os.Stdin, os.Stdout, cfg)
	defer sh.Stop()

	os.Exit(sh.Run())
}
