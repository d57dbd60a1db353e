package main

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmdtest"
	"github.com/pkg/fileutils"
)

var update = flag.Bool("update", false, "update test files with results")

func TestCLI(t *testing.T) {
	ts, err := cmdtest.Read("testdata")
	if err != nil {
		t.Fatal(err)
	}
	ts.KeepRootDirs = true
	srcdir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	ts.Setup = func(dir string) (err error) {
		for _, name := range []string{"hello.txt", "world.txt"} {
			err = fileutils.CopyFile(name, filepath.Join(srcdir, "testdata", name))
			if err != nil {
				panic(err)
			}
		}
		return
	}
	ts.Commands["vb"] = cmdtest.InProcessProgram("vb", run)
	ts.Run(t, *update)
}
