package logging

import (
	"context"
	"errors"
	"log/slog"
)

// Fanout delivers each record to every sink enabled for its level.
type Fanout struct {
	sinks []slog.Handler
}

// NewFanout builds a Fanout over the non-nil handlers.
func NewFanout(sinks ...slog.Handler) *Fanout {
	f := &Fanout{sinks: make([]slog.Handler, 0, len(sinks))}
	for _, h := range sinks {
		if h != nil {
			f.sinks = append(f.sinks, h)
		}
	}
	return f
}

func (f *Fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f.sinks {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// Handle reaches every sink even when an earlier one fails. The sink
// errors are joined.
func (f *Fanout) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range f.sinks {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f *Fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return f
	}
	return f.derive(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

func (f *Fanout) WithGroup(name string) slog.Handler {
	if name == "" {
		return f
	}
	return f.derive(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}

func (f *Fanout) derive(fn func(slog.Handler) slog.Handler) *Fanout {
	out := &Fanout{sinks: make([]slog.Handler, len(f.sinks))}
	for i, h := range f.sinks {
		out.sinks[i] = fn(h)
	}
	return out
}

// AttrProvider returns attributes describing the current session.
type AttrProvider func() []slog.Attr

// providerHandler appends the provider's attributes to records that pass
// the inner handler's level check. Attributes with an empty value are left
// out so on-foot records stay short.
type providerHandler struct {
	inner    slog.Handler
	provider AttrProvider
}

func withProvider(inner slog.Handler, p AttrProvider) slog.Handler {
	if p == nil {
		return inner
	}
	return &providerHandler{inner: inner, provider: p}
}

func (h *providerHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *providerHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, a := range h.provider() {
		if a.Key == "" || isEmpty(a.Value) {
			continue
		}
		r.AddAttrs(a)
	}
	return h.inner.Handle(ctx, r)
}

func isEmpty(v slog.Value) bool {
	switch v.Kind() {
	case slog.KindString:
		return v.String() == ""
	case slog.KindAny:
		return v.Any() == nil
	}
	return false
}

func (h *providerHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &providerHandler{inner: h.inner.WithAttrs(attrs), provider: h.provider}
}

func (h *providerHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &providerHandler{inner: h.inner.WithGroup(name), provider: h.provider}
}
