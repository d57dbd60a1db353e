package volbase

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	. "github.com/stevegt/goadapt"
	"github.com/t7a/volbase/fsutil"
	"golang.org/x/sys/unix"
)

const testDirPrefix = "volbase"

func mkbuf(s string) []byte {
	tmp := []byte(s)
	return tmp
}

// test boolean condition
func tassert(t *testing.T, cond bool, txt string, args ...interface{}) {
	t.Helper() // cause file:line info to show caller
	if !cond {
		t.Fatalf(txt, args...)
	}
}

// testData is one throwaway directory with two volumes, two regular
// files of known content, and one of every exotic file type an insert
// must reject.
type testData struct {
	rootDir string

	volume1Dir string
	volume2Dir string

	regular1Path string
	regular2Path string

	regular1Contents []byte
	regular2Contents []byte

	regular1Hash Hash
	regular2Hash Hash

	character1Path string
	directory1Path string
	fifo1Path      string
	socket1Path    string
	symlink1Path   string
}

func setup(t *testing.T) (td *testData) {
	var err error
	var dir string

	debug := os.Getenv("DEBUG")
	if debug == "1" {
		dir, err = ioutil.TempDir("", testDirPrefix)
		Ck(err)
		fmt.Println(dir)
		// no cleanup
	} else {
		dir = t.TempDir()
		// automatically cleaned up
	}

	td = &testData{rootDir: dir}

	// volumes
	td.volume1Dir = filepath.Join(dir, "volume1")
	td.volume2Dir = filepath.Join(dir, "volume2")
	err = Create(td.volume1Dir, "")
	Ck(err)
	err = Create(td.volume2Dir, "")
	Ck(err)

	// regular files
	td.regular1Path = filepath.Join(dir, "regular1")
	td.regular2Path = filepath.Join(dir, "regular2")
	td.regular1Contents = mkbuf("hello")
	td.regular2Contents = mkbuf("你好")
	td.regular1Hash, err = HashBytes("sha256", td.regular1Contents)
	Ck(err)
	td.regular2Hash, err = HashBytes("sha256", td.regular2Contents)
	Ck(err)
	err = ioutil.WriteFile(td.regular1Path, td.regular1Contents, 0644)
	Ck(err)
	err = ioutil.WriteFile(td.regular2Path, td.regular2Contents, 0644)
	Ck(err)

	// special files
	td.character1Path = "/dev/null"
	td.directory1Path = filepath.Join(dir, "directory1")
	td.fifo1Path = filepath.Join(dir, "fifo1")
	td.socket1Path = filepath.Join(dir, "socket1")
	td.symlink1Path = filepath.Join(dir, "symlink1")
	err = os.Mkdir(td.directory1Path, 0755)
	Ck(err)
	err = fsutil.Mknod(td.fifo1Path, unix.S_IFIFO|0644, 0)
	Ck(err)
	err = fsutil.Mknod(td.socket1Path, unix.S_IFSOCK|0644, 0)
	Ck(err)
	err = os.Symlink("/etc/passwd", td.symlink1Path)
	Ck(err)

	return td
}

// openVolume opens a volume and registers cleanup.
func openVolume(t *testing.T, dir string) (v *Volume) {
	v, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { v.Close() })
	return v
}

// collect drains an All iterator into a slice.
func collect(t *testing.T, v *Volume) (hashes []Hash) {
	it, err := v.All()
	if err != nil {
		t.Fatal(err)
	}
	defer it.Close()
	for it.Next() {
		hashes = append(hashes, it.Hash())
	}
	if it.Err() != nil {
		t.Fatal(it.Err())
	}
	return
}

func TestGetGID(t *testing.T) {
	n := GetGID()
	if n == 0 {
		t.Fatalf("oh no n is 0")
	}
}
