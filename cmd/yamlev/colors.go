package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	yamlevent "github.com/yaml/go-yamlevent"
)

type colors struct {
	enabled    bool
	structural func(string, ...any) string
	scalar     func(string, ...any) string
	anchor     func(string, ...any) string
	tag        func(string, ...any) string
	pos        func(string, ...any) string
}

func newColors(w io.Writer, force bool) *colors {
	enabled := force
	if !enabled {
		if f, ok := w.(*os.File); ok {
			enabled = isatty.IsTerminal(f.Fd())
		}
	}
	return &colors{
		enabled:    enabled,
		structural: color.RGB(128, 128, 128).SprintfFunc(),
		scalar:     color.RGB(128, 216, 236).SprintfFunc(),
		anchor:     color.RGB(196, 96, 16).SprintfFunc(),
		tag:        color.RGB(74, 92, 138).SprintfFunc(),
		pos:        color.BlueString,
	}
}

func (c *colors) render(ev *yamlevent.Event) string {
	if !c.enabled {
		return ev.String()
	}
	switch ev.Type {
	case yamlevent.Scalar:
		s := c.scalar("%s", fmt.Sprintf("%s(value=%q", ev.Type, ev.Value.String()))
		if ev.Anchor != nil {
			s += c.anchor(", anchor=%s", ev.Anchor)
		}
		if ev.Tag != nil {
			s += c.tag(", tag=%s", ev.Tag)
		}
		return s + c.scalar(")")
	case yamlevent.Alias:
		return c.anchor("%s", ev.String())
	case yamlevent.SequenceStart, yamlevent.MappingStart:
		s := c.structural("%s(", ev.Type.String())
		if ev.Anchor != nil {
			s += c.anchor("anchor=%s", ev.Anchor)
		}
		if ev.Tag != nil {
			s += c.tag(" tag=%s", ev.Tag)
		}
		return s + c.structural(")")
	default:
		return c.structural("%s", ev.String())
	}
}

func (c *colors) mark(s string) string {
	if !c.enabled {
		return s
	}
	return c.pos("%s", s)
}
