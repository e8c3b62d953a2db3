package main

import (
	"os"

	"github.com/masmgr/git-chdiff/cmd"
)

func main() {
	os.Exit(cmd.Run(os.Args))
}
