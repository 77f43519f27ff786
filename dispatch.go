package chatmsg

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/pkg/errors"
)

// Recipient is anything a message can be sent to: a player or the console.
type Recipient interface {
	Name() string
	SendMessage(text string) error
}

// RichTextCapable is implemented by recipients that can render chat
// components, typically players.
type RichTextCapable interface {
	SupportsRichText() bool
}

// Host is the chat boundary of the game server.
type Host interface {
	SendRichText(r Recipient, msg RichText) error
	SendPlainText(r Recipient, text string) error
	BroadcastRichText(msg RichText) error
}

// Console runs a command as the server console.
type Console interface {
	DispatchCommand(command string) error
}

// CommandHost implements Host on top of the tellraw console command.
type CommandHost struct {
	console Console
}

func NewCommandHost(console Console) *CommandHost {
	return &CommandHost{console: console}
}

func (h *CommandHost) SendRichText(r Recipient, msg RichText) error {
	return h.console.DispatchCommand("tellraw " + r.Name() + " " + msg.String())
}

func (h *CommandHost) SendPlainText(r Recipient, text string) error {
	return r.SendMessage(text)
}

func (h *CommandHost) BroadcastRichText(msg RichText) error {
	return h.console.DispatchCommand("tellraw @a " + msg.String())
}

// DispatchMode controls how many host calls a message takes.
type DispatchMode int

const (
	// DispatchCombined sends a whole message in one call.
	DispatchCombined DispatchMode = iota
	// DispatchPerLine sends one call per line, for hosts that cannot
	// render embedded line breaks.
	DispatchPerLine
)

func (m DispatchMode) String() string {
	switch m {
	case DispatchCombined:
		return "combined"
	case DispatchPerLine:
		return "per-line"
	default:
		return fmt.Sprintf("DispatchMode(%d)", int(m))
	}
}

// ParseDispatchMode parses "combined" (or "") and "per-line".
func ParseDispatchMode(s string) (DispatchMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "combined":
		return DispatchCombined, nil
	case "per-line", "per_line", "perline":
		return DispatchPerLine, nil
	default:
		return DispatchCombined, fmt.Errorf("unknown dispatch mode %q", s)
	}
}

// Dispatcher picks the output form for a recipient and hands it to the host.
type Dispatcher struct {
	host    Host
	mode    DispatchMode
	metrics *Metrics
	logger  *slog.Logger
}

// NewDispatcher creates a Dispatcher. metrics may be nil.
func NewDispatcher(host Host, mode DispatchMode, metrics *Metrics, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{host: host, mode: mode, metrics: metrics, logger: logger}
}

// Send delivers m to r: rich text when r can render it, plain text otherwise.
// An empty message makes no host call, whatever the dispatch mode.
func (d *Dispatcher) Send(r Recipient, m *Message) error {
	if m.Len() == 0 {
		d.logger.Debug("skip empty message", "recipient", r.Name())
		return nil
	}
	rich := false
	if rc, ok := r.(RichTextCapable); ok {
		rich = rc.SupportsRichText()
	}

	for _, part := range d.parts(m) {
		var (
			channel string
			err     error
		)
		if rich {
			channel = channelRich
			err = d.host.SendRichText(r, part.RichText())
		} else {
			channel = channelPlain
			err = d.host.SendPlainText(r, part.PlainText())
		}
		d.metrics.observe(channel, err)
		if err != nil {
			d.logger.Error("send message", "recipient", r.Name(), "channel", channel, "error", err)
			return errors.Wrapf(err, "send %s message to %s", channel, r.Name())
		}
	}
	return nil
}

// Broadcast sends the rich form of m to every connected player. Like Send
// it skips empty messages.
func (d *Dispatcher) Broadcast(m *Message) error {
	if m.Len() == 0 {
		d.logger.Debug("skip empty broadcast")
		return nil
	}
	for _, part := range d.parts(m) {
		err := d.host.BroadcastRichText(part.RichText())
		d.metrics.observe(channelBroadcast, err)
		if err != nil {
			d.logger.Error("broadcast message", "error", err)
			return errors.Wrap(err, "broadcast message")
		}
	}
	return nil
}

func (d *Dispatcher) parts(m *Message) []*Message {
	if d.mode == DispatchPerLine {
		return m.Lines()
	}
	return []*Message{m}
}
