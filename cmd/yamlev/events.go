package main

import (
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"

	yamlevent "github.com/yaml/go-yamlevent"
)

func events(cfg *EventsConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Events.Parse(cc, args)
	if err != nil {
		cfg.Events.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	colors := newColors(cc.Out, cfg.Color)
	if len(args) == 0 {
		return dumpEvents(cfg.MainConfig, cc.Out, os.Stdin, colors)
	}
	for i, file := range args {
		if len(args) > 1 {
			fmt.Fprintf(cc.Out, "%s== %s\n", sep(i), file)
		}
		if err := dumpFile(cfg.MainConfig, cc.Out, file, colors); err != nil {
			return fmt.Errorf("error dumping %s: %w", file, err)
		}
	}
	return nil
}

func sep(i int) string {
	if i == 0 {
		return ""
	}
	return "\n"
}

func dumpFile(cfg *MainConfig, w io.Writer, file string, colors *colors) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()
	return dumpEvents(cfg, w, f, colors)
}

func dumpEvents(cfg *MainConfig, w io.Writer, r io.Reader, colors *colors) error {
	dec := yamlevent.NewDecoder(cfg.newParser(r))
	defer dec.Close()
	depth := 0
	for {
		ev, err := dec.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		switch ev.Type {
		case yamlevent.SequenceEnd, yamlevent.MappingEnd,
			yamlevent.DocumentEnd, yamlevent.StreamEnd:
			depth--
		}
		indent := ""
		for i := 0; i < depth; i++ {
			indent += "  "
		}
		line := colors.render(ev)
		if cfg.Marks && ev.Start.Line > 0 {
			line += colors.mark(fmt.Sprintf("  @%d:%d", ev.Start.Line, ev.Start.Column))
		}
		fmt.Fprintf(w, "%s%s\n", indent, line)
		switch ev.Type {
		case yamlevent.SequenceStart, yamlevent.MappingStart,
			yamlevent.DocumentStart, yamlevent.StreamStart:
			depth++
		}
	}
}
