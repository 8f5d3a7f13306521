package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	logging "github.com/ipfs/go-log/v2"

	"github.com/filecoin-project/venus-lite/app/node"
	"github.com/filecoin-project/venus-lite/pkg/repo"
)

var log = logging.Logger("main")

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "venus-lite: %s\n", err)
		os.Exit(1)
	}
}

func run() error {
	apiAddr := flag.String("api", "", "address to serve the JSON-RPC API on (defaults to the repo config)")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Info("shutting down")
		cancel()
	}()

	rep := repo.NewInMemoryRepo()

	nd, err := node.New(ctx, rep)
	if err != nil {
		return err
	}
	defer nd.Stop(ctx)

	addr := rep.Config().API.Address
	if *apiAddr != "" {
		addr = *apiAddr
	}

	return nd.RunRPC(ctx, addr)
}
