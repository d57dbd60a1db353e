package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/docopt/docopt-go"
	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	log "github.com/sirupsen/logrus"
	vb "github.com/t7a/volbase"
)

func init() {
	var debug string
	debug = os.Getenv("DEBUG")
	if debug == "1" {
		log.SetLevel(log.DebugLevel)
	}
	logrus.SetReportCaller(true)
	formatter := &logrus.TextFormatter{
		CallerPrettyfier: caller(),
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyFile: "caller",
		},
	}
	formatter.TimestampFormat = "15:04:05.999999999"
	logrus.SetFormatter(formatter)
}

// caller returns string presentation of log caller which is formatted as
// `/path/to/file.go:line_number`. e.g. `/internal/app/api.go:25`
// https://stackoverflow.com/questions/63658002/is-it-possible-to-wrap-logrus-logger-functions-without-losing-the-line-number-pr
func caller() func(*runtime.Frame) (function string, file string) {
	return func(f *runtime.Frame) (function string, file string) {
		p, _ := os.Getwd()
		return "", fmt.Sprintf("%s:%d gid %d", strings.TrimPrefix(f.File, p), f.Line, vb.GetGID())
	}
}

type Opts struct {
	Init  bool
	Put   bool
	Get   bool
	Ls    bool
	Cat   bool
	Watch bool
	Dir   string   `docopt:"<dir>"`
	Dirs  []string `docopt:"<dirs>"`
	File  string   `docopt:"<file>"`
	Hash  string   `docopt:"<hash>"`
	Algo  string   `docopt:"--algo"`
}

func main() {
	// see https://github.com/google/go-cmdtest
	os.Exit(run())
}

func run() (rc int) {

	usage := `volbase

Usage:
  vb init <dir> [--algo=<algo>]
  vb put <dir> [<file>]
  vb get <dir> <hash>
  vb ls <dirs>...
  vb cat <hash> <dirs>...
  vb watch <dir>

Options:
  -h --help      Show this screen.
  --version      Show version.
  --algo=<algo>  Digest algorithm for init [default: sha256].
`
	parser := &docopt.Parser{OptionsFirst: false}
	o, _ := parser.ParseArgs(usage, os.Args[1:], "0.0")
	var opts Opts
	err := o.Bind(&opts)
	if err != nil {
		log.Error(err)
		return 22
	}
	log.Debug(opts)

	switch true {
	case opts.Init:
		err := vb.Create(opts.Dir, opts.Algo)
		if err != nil {
			log.Error(err)
			return 42
		}
	case opts.Put:
		hash, err := put(opts.Dir, opts.File)
		if err != nil {
			log.Error(err)
			return 42
		}
		fmt.Println(hash)
	case opts.Get:
		err := cat([]string{opts.Dir}, opts.Hash)
		if err != nil {
			log.Error(err)
			return 42
		}
	case opts.Ls:
		err := ls(opts.Dirs)
		if err != nil {
			log.Error(err)
			return 42
		}
	case opts.Cat:
		err := cat(opts.Dirs, opts.Hash)
		if err != nil {
			log.Error(err)
			return 42
		}
	case opts.Watch:
		err := watch(opts.Dir)
		if err != nil {
			log.Error(err)
			return 42
		}
	}
	return 0
}

// put inserts the named file, or stdin when file is empty, and
// returns the object hash.
func put(dir, file string) (hash vb.Hash, err error) {
	v, err := vb.Open(dir)
	if err != nil {
		return
	}
	defer v.Close()

	if file == "" {
		return v.InsertReader(os.Stdin)
	}
	return v.InsertPath(file)
}

// openVolumes opens an ordered list of volumes for a union query.
func openVolumes(dirs []string) (volumes []*vb.Volume, close func(), err error) {
	close = func() {
		for _, v := range volumes {
			v.Close()
		}
	}
	for _, dir := range dirs {
		v, err := vb.Open(dir)
		if err != nil {
			close()
			return nil, nil, err
		}
		volumes = append(volumes, v)
	}
	return volumes, close, nil
}

// cat writes the object's bytes to stdout from the first volume that
// has it.
func cat(dirs []string, text string) (err error) {
	hash, err := vb.ParseHash(text)
	if err != nil {
		return
	}
	volumes, close, err := openVolumes(dirs)
	if err != nil {
		return
	}
	defer close()

	obj, err := vb.UnionGet(volumes, hash)
	if err != nil {
		return
	}
	if obj == nil {
		return fmt.Errorf("not found: %s", hash)
	}
	defer obj.Close()
	_, err = io.Copy(os.Stdout, obj)
	return
}

// ls prints one hash per line for every object in every volume, in
// volume order, duplicates included.
func ls(dirs []string) (err error) {
	volumes, close, err := openVolumes(dirs)
	if err != nil {
		return
	}
	defer close()

	it := vb.UnionAll(volumes)
	defer it.Close()
	for it.Next() {
		fmt.Println(it.Hash())
	}
	return it.Err()
}

// watch prints the hash of every object that appears in the volume,
// until interrupted.
func watch(dir string) (err error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return
	}
	defer watcher.Close()

	err = watcher.Add(filepath.Join(dir, "objects"))
	if err != nil {
		return
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Create == 0 {
				continue
			}
			hash, err := vb.ParseHash(filepath.Base(event.Name))
			if err != nil {
				// not an object
				continue
			}
			fmt.Println(hash)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error(err)
		}
	}
}
