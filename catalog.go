package chatmsg

import (
	"io"
	"io/fs"
	"log/slog"
	"sync"

	"github.com/pkg/errors"
)

// Catalog 持有当前激活语言的文档
//
// Load 系列方法会整体替换文档，读者看到的要么是旧文档，要么是新文档
type Catalog struct {
	mu      sync.RWMutex
	current *catalogState
	changed chan struct{} // 每次切换后关闭并重建

	dir       string
	resources fs.FS
	languages map[string]string
	logger    *slog.Logger
}

type catalogState struct {
	language string
	doc      Document
	src      source
}

// NewCatalog 创建一个空的 Catalog，需要调用 Load* 才能使用
func NewCatalog(cfg Config) *Catalog {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Catalog{
		dir:       cfg.Dir,
		resources: cfg.Resources,
		languages: cfg.Languages,
		logger:    logger,
	}
}

var (
	defaultCatalog     *Catalog
	defaultCatalogOnce sync.Once
)

// Default returns the process wide catalog. It is created on first use,
// with the settings of the first NewDefault call, or empty when Default
// itself comes first. Prefer passing a *Bundle explicitly where possible.
func Default() *Catalog {
	return defaultWith(Config{})
}

func defaultWith(cfg Config) *Catalog {
	defaultCatalogOnce.Do(func() {
		defaultCatalog = NewCatalog(cfg)
	})
	return defaultCatalog
}

// Lookup returns the node at key.
func (c *Catalog) Lookup(key string) (Node, bool) {
	st := c.state()
	if st == nil {
		return nil, false
	}
	n, ok := st.doc[key]
	return n, ok
}

// Language returns the active language identifier, "" before the first load.
func (c *Catalog) Language() string {
	if st := c.state(); st != nil {
		return st.language
	}
	return ""
}

// Keys returns every key path of the active document in lexical order.
func (c *Catalog) Keys() []string {
	if st := c.state(); st != nil {
		return st.doc.Keys()
	}
	return nil
}

// Load parses r and makes it the active document for lang.
// A document loaded this way cannot be reloaded.
func (c *Catalog) Load(lang string, r io.Reader) error {
	if err := c.checkLanguage(lang); err != nil {
		return err
	}
	doc, err := DecodeDocument(r)
	if err != nil {
		return errors.Wrapf(err, "load language %s", lang)
	}
	c.swap(nil, &catalogState{language: lang, doc: doc})
	return nil
}

// LoadFile loads lang from a file on disk.
func (c *Catalog) LoadFile(lang, path string) error {
	if err := c.checkLanguage(lang); err != nil {
		return err
	}
	return c.loadSource(lang, source{path: path})
}

// LoadLanguage resolves lang to a file (see resolve) and loads it.
func (c *Catalog) LoadLanguage(lang string) error {
	if err := c.checkLanguage(lang); err != nil {
		return err
	}
	src, err := c.resolve(lang)
	if err != nil {
		return err
	}
	return c.loadSource(lang, src)
}

// Reload re-reads the active language from where it was loaded. When
// another load replaces the language meanwhile, the reloaded document is
// dropped.
func (c *Catalog) Reload() error {
	return c.reload(c.state())
}

func (c *Catalog) reload(st *catalogState) error {
	if st == nil {
		return ErrNoActiveLanguage
	}
	if st.src.path == "" {
		return errors.Wrapf(ErrNotReloadable, "reload %s", st.language)
	}
	doc, err := c.readDocument(st.language, st.src)
	if err != nil {
		return err
	}
	if !c.swap(st, &catalogState{language: st.language, doc: doc, src: st.src}) {
		c.logger.Info("reload superseded", "language", st.language, "source", st.src.String())
	}
	return nil
}

func (c *Catalog) loadSource(lang string, src source) error {
	doc, err := c.readDocument(lang, src)
	if err != nil {
		return err
	}
	c.swap(nil, &catalogState{language: lang, doc: doc, src: src})
	return nil
}

func (c *Catalog) readDocument(lang string, src source) (Document, error) {
	data, err := src.read(c.resources)
	if err != nil {
		return nil, errors.Wrapf(err, "load language %s", lang)
	}
	doc, err := ParseDocument(data)
	if err != nil {
		return nil, errors.Wrapf(err, "load language %s from %s", lang, src)
	}
	return doc, nil
}

func (c *Catalog) checkLanguage(lang string) error {
	if c.languages == nil {
		return nil
	}
	if _, ok := c.languages[lang]; !ok {
		return errors.Wrapf(ErrUnknownLanguage, "language %q", lang)
	}
	return nil
}

func (c *Catalog) state() *catalogState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// watchState returns the active state and a channel closed by the next swap.
func (c *Catalog) watchState() (*catalogState, <-chan struct{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.changed == nil {
		c.changed = make(chan struct{})
	}
	return c.current, c.changed
}

// swap installs st. A non-nil expect makes it a compare-and-swap: nothing
// changes unless expect is still the active state.
func (c *Catalog) swap(expect, st *catalogState) bool {
	c.mu.Lock()
	if expect != nil && c.current != expect {
		c.mu.Unlock()
		return false
	}
	c.current = st
	if c.changed != nil {
		close(c.changed)
	}
	c.changed = make(chan struct{})
	c.mu.Unlock()

	resetPatternCache()
	c.logger.Info("language loaded", "language", st.language, "source", st.src.String(), "keys", len(st.doc))
	return true
}
