package tree

import (
	"os"
	"path/filepath"

	"resultscope/internal/errs"
)

// FilesKey holds the regular files of a crawled directory. It joins away in
// Path.String, so a found file's path is its real location.
const FilesKey = "."

// Crawl describes the directory at root as a tree. The single top-level key
// is root itself (slash-separated). Subdirectories become nodes, regular
// files a LeafList under FilesKey. Entries are in name order; symlinks are
// not followed.
func Crawl(root string) (Node, error) {
	info, err := os.Stat(root)
	if err != nil {
		return Node{}, errs.Load(err, "crawl")
	}
	if !info.IsDir() {
		return Node{}, errs.Load(nil, "crawl %s: not a directory", root)
	}
	sub, err := crawlDir(root)
	if err != nil {
		return Node{}, err
	}
	return NewNode(Entry{Key: filepath.ToSlash(filepath.Clean(root)), Value: Branch(sub)})
}

func crawlDir(dir string) (Node, error) {
	des, err := os.ReadDir(dir)
	if err != nil {
		return Node{}, errs.Load(err, "crawl")
	}
	var files []string
	var dirs []Entry
	for _, de := range des {
		switch {
		case de.IsDir():
			child, err := crawlDir(filepath.Join(dir, de.Name()))
			if err != nil {
				return Node{}, err
			}
			dirs = append(dirs, Entry{Key: de.Name(), Value: Branch(child)})
		case de.Type().IsRegular():
			files = append(files, de.Name())
		}
	}
	entries := make([]Entry, 0, len(dirs)+1)
	if len(files) > 0 {
		entries = append(entries, Entry{Key: FilesKey, Value: LeafList(files...)})
	}
	return NewNode(append(entries, dirs...)...)
}
