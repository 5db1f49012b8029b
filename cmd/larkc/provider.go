package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
)

// fileProvider resolves fragment paths against a list of directories,
// mapping the dotted path a.b to the file a/b.lark. A leading dot
// (relative import) is treated the same way; the importing file's
// directory is always the first search root.
type fileProvider struct {
	dirs []string
}

func (p *fileProvider) Locate(path string) ([]byte, error) {
	comps := strings.Split(strings.TrimPrefix(path, "."), ".")
	name := filepath.Join(comps...) + ".lark"

	for _, dir := range p.dirs {
		full := filepath.Join(dir, name)
		content, e := os.ReadFile(full)
		if e == nil {
			log.Debugf("fragment %s found at %s", path, full)
			return content, nil
		}
		if !os.IsNotExist(e) {
			return nil, e
		}
	}
	return nil, fmt.Errorf("no %s in any include directory", name)
}
