package main

import (
	"io"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/yaml/go-yamlevent/engine"
	"github.com/yaml/go-yamlevent/engine/goccy"
	"github.com/yaml/go-yamlevent/engine/yaml3"
)

type MainConfig struct {
	Color bool `cli:"name=color desc='force color output'"`
	Goccy bool `cli:"name=g aliases=goccy desc='parse with the goccy engine'"`
	Marks bool `cli:"name=m aliases=marks desc='show event positions'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) newParser(r io.Reader) engine.Parser {
	if cfg.Goccy {
		return goccy.NewParser(r)
	}
	return yaml3.NewParser(r)
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

type EventsConfig struct {
	*MainConfig
	Events *cli.Command
}

type RoundtripConfig struct {
	*MainConfig
	Indent int `cli:"name=indent desc='output indentation width'"`

	Roundtrip *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Diff *cli.Command
}
