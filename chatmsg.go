// Package chatmsg loads per-language message files and compiles their
// templates into plain text or chat components for a game server.
package chatmsg

import (
	"io/fs"
	"log/slog"

	"github.com/pkg/errors"
)

// Config 定义 chatmsg 的基础配置
type Config struct {
	// 启动时加载的语言，例如 "en_US"
	DefaultLanguage string

	// 磁盘上的语言文件目录，优先于 Resources
	Dir string

	// 随插件打包的资源，语言文件位于 lang/<file>
	Resources fs.FS

	// 可选的语言白名单：语言 -> 文件名
	// 为 nil 时任何语言都可以加载，文件名为 <lang>.yml 或 <lang>.yaml
	Languages map[string]string

	DispatchMode DispatchMode

	Logger  *slog.Logger
	Metrics *Metrics
}

// Bundle wires a Catalog, a Compiler and a Dispatcher together. It is the
// object command handlers and listeners receive.
type Bundle struct {
	cfg        Config
	catalog    *Catalog
	compiler   *Compiler
	dispatcher *Dispatcher
}

// New creates a Bundle with its own Catalog. Nothing is loaded until Init
// is called.
func New(cfg Config, host Host) *Bundle {
	cfg = withDefaults(cfg)
	return newBundle(cfg, host, NewCatalog(cfg))
}

// NewDefault creates a Bundle backed by the process wide catalog returned
// by Default. The catalog settings in cfg (Dir, Resources, Languages) only
// take effect when this call creates that catalog.
func NewDefault(cfg Config, host Host) *Bundle {
	cfg = withDefaults(cfg)
	return newBundle(cfg, host, defaultWith(cfg))
}

func withDefaults(cfg Config) Config {
	if cfg.DefaultLanguage == "" {
		cfg.DefaultLanguage = "en_US"
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return cfg
}

func newBundle(cfg Config, host Host, catalog *Catalog) *Bundle {
	return &Bundle{
		cfg:        cfg,
		catalog:    catalog,
		compiler:   NewCompiler(catalog, cfg.Logger),
		dispatcher: NewDispatcher(host, cfg.DispatchMode, cfg.Metrics, cfg.Logger),
	}
}

// Init loads the default language.
func (b *Bundle) Init() error {
	if err := b.catalog.LoadLanguage(b.cfg.DefaultLanguage); err != nil {
		return errors.Wrap(err, "init messages")
	}
	return nil
}

// Reload re-reads the active language.
func (b *Bundle) Reload() error {
	return b.catalog.Reload()
}

// SetLanguage switches the active language.
func (b *Bundle) SetLanguage(lang string) error {
	return b.catalog.LoadLanguage(lang)
}

func (b *Bundle) Catalog() *Catalog {
	return b.catalog
}

func (b *Bundle) Compiler() *Compiler {
	return b.compiler
}

func (b *Bundle) Dispatcher() *Dispatcher {
	return b.dispatcher
}

// FromKey compiles the message stored under key.
func (b *Bundle) FromKey(key string, params ...any) (*Message, bool) {
	return b.compiler.FromKey(key, params...)
}

// FromLiteral compiles text directly.
func (b *Bundle) FromLiteral(text string, params ...any) *Message {
	return b.compiler.FromLiteral(text, params...)
}

// Send compiles key and sends it to r. sent is false when the key does not
// exist.
func (b *Bundle) Send(r Recipient, key string, params ...any) (sent bool, err error) {
	msg, ok := b.compiler.FromKey(key, params...)
	if !ok {
		b.cfg.Logger.Debug("message key not found", "key", key, "language", b.catalog.Language())
		return false, nil
	}
	if err := b.dispatcher.Send(r, msg); err != nil {
		return false, err
	}
	return true, nil
}

// Broadcast compiles key and sends it to every player.
func (b *Bundle) Broadcast(key string, params ...any) (sent bool, err error) {
	msg, ok := b.compiler.FromKey(key, params...)
	if !ok {
		b.cfg.Logger.Debug("message key not found", "key", key, "language", b.catalog.Language())
		return false, nil
	}
	if err := b.dispatcher.Broadcast(msg); err != nil {
		return false, err
	}
	return true, nil
}
