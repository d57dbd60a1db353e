package volbase

import (
	"encoding/json"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/google/renameio"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	. "github.com/stevegt/goadapt"
	"github.com/t7a/volbase/fsutil"
	"golang.org/x/sys/unix"
)

const (
	// objectsDir is the single reserved subdirectory of a volume
	// root; every file in it is named by the hex hash of its
	// contents.
	objectsDir = "objects"

	// configName is the volume config file in the volume root.  It
	// records which digest algo names the objects.
	configName = "config.json"

	// maxConfigLen bounds the config read in Open; no config Create
	// writes comes anywhere near it, so anything longer is not ours.
	maxConfigLen = 1 << 16
)

// config is the persistent part of a volume, stored as JSON in the
// volume root at creation time.
type config struct {
	Algo string `json:"algo"`
}

// NotVolumeError is returned by Open when the directory exists but
// was not created by Create.
type NotVolumeError struct {
	Dir string
}

func (e *NotVolumeError) Error() string {
	return "not a volume: " + e.Dir
}

// Volume is a handle to an opened volume.  It owns one open
// descriptor to the volume's root directory, and every operation runs
// relative to that descriptor rather than the path, so the handle
// stays valid even if the directory is moved or unlinked after Open.
//
// A Volume may be shared between goroutines, and separate processes
// may hold handles on the same directory; see the package
// documentation for why that is safe.
type Volume struct {
	dir  *os.File
	algo string
}

// Create initializes a new volume at dir, which must not yet exist.
// The error from an existing dir propagates verbatim and satisfies
// os.IsExist.  An empty algo means sha256.
//
// The volume starts out with no objects; use Open to start inserting.
func Create(dir string, algo string) (err error) {
	defer Return(&err)

	if algo == "" {
		algo = "sha256"
	}
	// reject unknown algos before touching the disk
	_, err = newDigest(algo)
	Ck(err)

	err = os.Mkdir(dir, 0755)
	if err != nil {
		return err
	}
	err = os.Mkdir(filepath.Join(dir, objectsDir), 0755)
	if err != nil {
		return err
	}

	buf, err := json.Marshal(&config{Algo: algo})
	Ck(err)
	err = renameio.WriteFile(filepath.Join(dir, configName), buf, 0644)
	Ck(err)

	log.Debugf("created volume %s algo %s", dir, algo)
	return
}

// Open opens the volume at dir, which must have been created
// previously with Create.  The path is only used here; afterwards the
// returned handle is backed entirely by the open descriptor.
func Open(dir string) (v *Volume, err error) {
	defer Return(&err)

	flags := unix.O_RDONLY | unix.O_DIRECTORY | unix.O_CLOEXEC
	dh, err := fsutil.OpenAt(nil, dir, flags, 0)
	if err != nil {
		return nil, err
	}

	// read the config through the directory handle, not the path
	cfgfh, err := fsutil.OpenAt(dh, configName, unix.O_RDONLY|unix.O_CLOEXEC|unix.O_NOFOLLOW, 0)
	if os.IsNotExist(err) {
		dh.Close()
		return nil, &NotVolumeError{Dir: dir}
	}
	if err != nil {
		dh.Close()
		return nil, err
	}
	// don't let a replaced config file make Open buffer arbitrary
	// amounts; a truncated read fails the unmarshal below
	buf, err := ioutil.ReadAll(io.LimitReader(cfgfh, maxConfigLen))
	cfgfh.Close()
	if err != nil {
		dh.Close()
		return nil, err
	}

	var cfg config
	err = json.Unmarshal(buf, &cfg)
	if err != nil {
		dh.Close()
		return nil, errors.Wrapf(err, "malformed %s in %s", configName, dir)
	}
	_, err = newDigest(cfg.Algo)
	if err != nil {
		dh.Close()
		return nil, err
	}

	return &Volume{dir: dh, algo: cfg.Algo}, nil
}

// Algo returns the digest algo objects in this volume are named by.
func (v *Volume) Algo() string {
	return v.algo
}

// Close releases the volume's directory descriptor.  Objects already
// stored are unaffected.  Handles returned by Get stay usable.
func (v *Volume) Close() error {
	return v.dir.Close()
}
