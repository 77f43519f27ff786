package chatmsg

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// languageFolder is where bundled language files live inside Config.Resources.
const languageFolder = "lang"

// source records where a document was read from so it can be reloaded.
type source struct {
	path    string
	bundled bool
}

func (s source) String() string {
	switch {
	case s.path == "":
		return "<stream>"
	case s.bundled:
		return "bundled:" + s.path
	default:
		return s.path
	}
}

func (s source) read(resources fs.FS) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if s.bundled {
		if resources == nil {
			return nil, errors.Wrapf(ErrResourceNotFound, "%s", s)
		}
		data, err = fs.ReadFile(resources, s.path)
	} else {
		data, err = os.ReadFile(s.path)
	}
	if errors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrapf(ErrResourceNotFound, "%s", s)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", s)
	}
	return data, nil
}

// fileNames 返回语言对应的候选文件名
// 配置了 allow-list 时使用映射的文件名，否则尝试 <lang>.yml 和 <lang>.yaml
func (c *Catalog) fileNames(lang string) []string {
	if name, ok := c.languages[lang]; ok && name != "" {
		return []string{name}
	}
	switch strings.ToLower(filepath.Ext(lang)) {
	case ".yml", ".yaml":
		return []string{lang}
	}
	return []string{lang + ".yml", lang + ".yaml"}
}

// resolve finds the file for lang: first under Config.Dir on disk, then
// under lang/ in Config.Resources.
func (c *Catalog) resolve(lang string) (source, error) {
	if lang == "" || strings.ContainsAny(lang, `/\`) || strings.Contains(lang, "..") {
		return source{}, errors.Wrapf(ErrUnknownLanguage, "language %q", lang)
	}

	names := c.fileNames(lang)
	if c.dir != "" {
		for _, name := range names {
			p := filepath.Join(c.dir, name)
			if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
				return source{path: p}, nil
			}
		}
	}
	if c.resources != nil {
		for _, name := range names {
			p := path.Join(languageFolder, name)
			if fi, err := fs.Stat(c.resources, p); err == nil && !fi.IsDir() {
				return source{path: p, bundled: true}, nil
			}
		}
	}
	return source{}, errors.Wrapf(ErrResourceNotFound, "language %s (tried %s)", lang, strings.Join(names, ", "))
}
