package main

import (
	"context"
	"log/slog"

	"github.com/alecthomas/kong"
	"github.com/pkg/profile"
)

type profileConfig struct {
	Mode string `default:""  enum:",cpu,mem" help:"Enable profiling."      placeholder:"MODE"`
	Dir  string `default:"." help:"Profile output directory." type:"path"`
}

func (profileConfig) group() kong.Group {
	return kong.Group{Key: "profile", Title: "Profiling"}
}

// start starts profiling if configured. The result stops it.
func (c profileConfig) start(ctx context.Context, log *slog.Logger) (stop func()) {
	var mode func(*profile.Profile)
	switch c.Mode {
	case "cpu":
		mode = profile.CPUProfile
	case "mem":
		mode = profile.MemProfile
	default:
		return func() {}
	}
	log.DebugContext(ctx, "profile start",
		slog.String("mode", c.Mode),
		slog.String("dir", c.Dir),
	)
	p := profile.Start(mode, profile.ProfilePath(c.Dir), profile.Quiet, profile.NoShutdownHook)
	return func() {
		p.Stop()
		log.DebugContext(ctx, "profile stop", slog.String("mode", c.Mode))
	}
}
