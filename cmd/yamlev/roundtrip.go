package main

import (
	"io"
	"os"

	"github.com/scott-cotton/cli"

	yamlevent "github.com/yaml/go-yamlevent"
	"github.com/yaml/go-yamlevent/engine/yaml3"
)

func roundtrip(cfg *RoundtripConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Roundtrip.Parse(cc, args)
	if err != nil {
		cfg.Roundtrip.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return roundtripReader(cfg, cc.Out, os.Stdin)
	}
	for _, file := range args {
		if err := roundtripFile(cfg, cc.Out, file); err != nil {
			return err
		}
	}
	return nil
}

func roundtripFile(cfg *RoundtripConfig, w io.Writer, file string) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()
	return roundtripReader(cfg, w, f)
}

func roundtripReader(cfg *RoundtripConfig, w io.Writer, r io.Reader) error {
	dec := yamlevent.NewDecoder(cfg.newParser(r))
	defer dec.Close()
	var events []*yamlevent.Event
	for {
		ev, err := dec.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		events = append(events, ev)
	}
	var opts []yaml3.EmitterOption
	if cfg.Indent > 0 {
		opts = append(opts, yaml3.Indent(cfg.Indent))
	}
	return yamlevent.EmitAll(w, events, opts...)
}
