package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/scott-cotton/cli"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	yamlevent "github.com/yaml/go-yamlevent"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires exactly two files", cli.ErrUsage)
	}
	from, err := eventLines(cfg.MainConfig, args[0])
	if err != nil {
		return fmt.Errorf("error reading %s: %w", args[0], err)
	}
	to, err := eventLines(cfg.MainConfig, args[1])
	if err != nil {
		return fmt.Errorf("error reading %s: %w", args[1], err)
	}
	diffCfg := diffpatch.New()
	diffs := diffCfg.DiffMain(from, to, true)
	same := true
	for _, d := range diffs {
		if d.Type != diffpatch.DiffEqual {
			same = false
			break
		}
	}
	if same {
		return nil
	}
	colors := newColors(cc.Out, cfg.Color)
	for _, d := range diffs {
		prefix, paint := "  ", colors.structural
		switch d.Type {
		case diffpatch.DiffInsert:
			prefix, paint = "+ ", colors.scalar
		case diffpatch.DiffDelete:
			prefix, paint = "- ", colors.anchor
		}
		for _, line := range splitLines(d.Text) {
			if colors.enabled {
				fmt.Fprintln(cc.Out, paint("%s%s", prefix, line))
			} else {
				fmt.Fprintln(cc.Out, prefix+line)
			}
		}
	}
	return cli.ExitCodeErr(1)
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// eventLines renders the event stream of file one event per line, for
// line-based diffing.
func eventLines(cfg *MainConfig, file string) (string, error) {
	f, err := os.Open(file)
	if err != nil {
		return "", err
	}
	defer f.Close()
	dec := yamlevent.NewDecoder(cfg.newParser(f))
	defer dec.Close()
	var b strings.Builder
	for {
		ev, err := dec.Next()
		if err == io.EOF {
			return b.String(), nil
		}
		if err != nil {
			return "", err
		}
		b.WriteString(ev.String())
		b.WriteByte('\n')
	}
}
