package metrics

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"git.sr.ht/~spc/go-log"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	Path            = "/metrics"
	shutdownTimeout = 5 * time.Second
)

func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Serve exposes the recorder on addr until ctx is done.
func (r *Recorder) Serve(ctx context.Context, addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return r.ServeListener(ctx, listener)
}

func (r *Recorder) ServeListener(ctx context.Context, listener net.Listener) error {
	mux := http.NewServeMux()
	mux.Handle(Path, r.Handler())
	server := &http.Server{Handler: mux, ReadHeaderTimeout: shutdownTimeout}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Errorf("cannot stop metrics server: %v", err)
		}
	}()

	log.Infof("serving metrics on http://%s%s", listener.Addr(), Path)
	err := server.Serve(listener)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
