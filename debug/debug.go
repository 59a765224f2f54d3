// Package debug gates trace output for the bridge hot paths via
// environment flags, checked once at startup.
package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Events bool
	Emit   bool
	Engine bool
}

var d *debug

func init() {
	d = &debug{}
	d.Events = boolEnv("YEV_DEBUG_EVENTS")
	d.Emit = boolEnv("YEV_DEBUG_EMIT")
	d.Engine = boolEnv("YEV_DEBUG_ENGINE")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

// Events reports whether decoded events are traced.
func Events() bool {
	return d.Events
}

// Emit reports whether emitted events are traced.
func Emit() bool {
	return d.Emit
}

// Engine reports whether engine-level calls are traced.
func Engine() bool {
	return d.Engine
}
