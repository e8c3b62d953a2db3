// Command git-external-chdiff is a GIT_EXTERNAL_DIFF program that shows each
// changed file in the chdiff viewer.
//
//	git config diff.external git-external-chdiff
package main

import (
	"os"

	"github.com/masmgr/git-chdiff/cmd"
)

func main() {
	os.Exit(cmd.RunExternal(os.Args))
}
