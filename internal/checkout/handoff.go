package checkout

import (
	"fmt"
	"io"

	"github.com/atotto/clipboard"
	"github.com/pkg/browser"
	"go.uber.org/zap"
)

func init() {
	// The TUI owns the terminal; browser launchers must not write to it.
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
}

// Result describes how far the handoff got.
type Result struct {
	Link   string
	Opened bool
	Copied bool
	Err    error
}

// NeedsManualCopy reports whether the user must copy the link by hand.
func (r Result) NeedsManualCopy() bool { return !r.Opened && !r.Copied }

// Handoff opens the checkout link, falling back to the clipboard.
type Handoff struct {
	Open   func(url string) error
	Copy   func(text string) error
	Logger *zap.Logger
}

// NewHandoff uses the system browser and clipboard.
func NewHandoff(logger *zap.Logger) Handoff {
	return Handoff{Open: browser.OpenURL, Copy: clipboard.WriteAll, Logger: logger}
}

// Send tries to open link. When that fails the message and link are copied to the
// clipboard. It never panics.
func (h Handoff) Send(order Order) (res Result) {
	res.Link = order.Link
	logger := h.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	defer func() {
		if r := recover(); r != nil {
			res.Err = fmt.Errorf("checkout handoff panicked: %v", r)
			logger.Error("checkout handoff panicked", zap.Any("panic", r))
		}
	}()

	if h.Open != nil {
		err := h.Open(order.Link)
		if err == nil {
			res.Opened = true
			logger.Info("checkout link opened", zap.Int("items", order.Count))
			return res
		}
		res.Err = fmt.Errorf("open link: %w", err)
		logger.Warn("checkout link failed to open", zap.Error(err))
	}

	if h.Copy != nil {
		if err := h.Copy(order.Message + "\n\n" + order.Link); err != nil {
			res.Err = fmt.Errorf("copy to clipboard: %w", err)
			logger.Warn("clipboard fallback failed", zap.Error(err))
			return res
		}
		res.Copied = true
		res.Err = nil
		logger.Info("checkout copied to clipboard")
	}
	return res
}

// OpenLink opens a plain link, copying it to the clipboard when no browser can be
// started. It never panics.
func (h Handoff) OpenLink(link string) (res Result) {
	res.Link = link
	logger := h.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	defer func() {
		if r := recover(); r != nil {
			res.Err = fmt.Errorf("open link panicked: %v", r)
			logger.Error("open link panicked", zap.Any("panic", r))
		}
	}()

	if h.Open != nil {
		err := h.Open(link)
		if err == nil {
			res.Opened = true
			logger.Info("link opened", zap.String("link", link))
			return res
		}
		res.Err = fmt.Errorf("open link: %w", err)
		logger.Warn("link failed to open", zap.String("link", link), zap.Error(err))
	}

	if h.Copy != nil {
		if err := h.Copy(link); err != nil {
			res.Err = fmt.Errorf("copy to clipboard: %w", err)
			logger.Warn("clipboard fallback failed", zap.Error(err))
			return res
		}
		res.Copied = true
		res.Err = nil
		logger.Info("link copied to clipboard")
	}
	return res
}
