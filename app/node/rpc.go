package node

import (
	"context"
	"net/http"

	"github.com/filecoin-project/go-jsonrpc"
)

// RunRPC serves the chain and state query API over JSON-RPC at addr,
// blocking until the context is cancelled.
func (node *Node) RunRPC(ctx context.Context, addr string) error {
	rpcServer := jsonrpc.NewServer()
	rpcServer.Register("Filecoin", node.chainSubmodule.API())

	mux := http.NewServeMux()
	mux.Handle("/rpc/v0", rpcServer)

	srv := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		<-ctx.Done()
		_ = srv.Shutdown(context.Background())
	}()

	log.Infof("serving JSON-RPC at %s", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
