package modules

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"homescout/pkg/probe"
)

type ProbeServer struct {
	ListenAddress string
	AppName       string
	AppVersion    string
}

func (p ProbeServer) Run(ctx context.Context, g *errgroup.Group) {
	probeServer := probe.NewServer(p.ListenAddress, probe.Options{
		Name:    p.AppName,
		Version: p.AppVersion,
	})

	g.Go(func() error {
		if err := probeServer.Run(ctx); err != nil {
			return fmt.Errorf("probeServer.Run: %w", err)
		}

		return nil
	})
}
