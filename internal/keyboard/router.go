package keyboard

import (
	"errors"
	"fmt"
	"io"

	"git.sr.ht/~spc/go-log"

	"github.com/project-flotta/sys-metrics-sim/internal/host"
)

const MaxHosts = 26

var (
	ErrExitRequested = errors.New("exit requested")
	ErrTooManyHosts  = fmt.Errorf("keyboard control supports at most %d hosts", MaxHosts)

	// ExitKeys always end the process, whatever is bound to them.
	ExitKeys = []string{"c-c", "c-d"}
)

type Handler func(key string)

// Router maps key names to handlers. It is not safe for concurrent use,
// Dispatch is expected to run on the goroutine that owns the hosts.
type Router struct {
	handlers map[string]Handler
	unbound  Handler
}

func NewRouter() *Router {
	return &Router{handlers: map[string]Handler{}}
}

func (r *Router) On(key string, handler Handler) {
	r.handlers[key] = handler
}

// OnUnbound sets the handler for keys without a binding.
func (r *Router) OnUnbound(handler Handler) {
	r.unbound = handler
}

func (r *Router) Dispatch(key string) error {
	for _, exit := range ExitKeys {
		if key == exit {
			return ErrExitRequested
		}
	}

	handler, ok := r.handlers[key]
	if !ok {
		handler = r.unbound
	}
	if handler == nil {
		log.Tracef("ignoring key %s", key)
		return nil
	}
	handler(key)
	return nil
}

// BindHosts gives host i the keys 'a'+i to increment and its shifted
// letter to decrement. Any other key prints the status of every host.
func BindHosts(r *Router, hosts []*host.Host, out io.Writer) error {
	if len(hosts) > MaxHosts {
		return fmt.Errorf("%w, got %d", ErrTooManyHosts, len(hosts))
	}

	printStatus := func(h *host.Host) {
		// raw mode terminals do not translate \n
		fmt.Fprintf(out, "%s\r\n", h)
	}

	for i, h := range hosts {
		h := h
		letter := string(rune('a' + i))
		r.On(letter, func(string) {
			h.Inc()
			printStatus(h)
		})
		r.On("s-"+letter, func(string) {
			h.Dec()
			printStatus(h)
		})
	}

	r.OnUnbound(func(string) {
		for _, h := range hosts {
			printStatus(h)
		}
	})
	return nil
}

// Help describes the bindings installed by BindHosts.
func Help(hosts []*host.Host) string {
	if len(hosts) == 0 {
		return "press ctrl-c to exit"
	}
	last := string(rune('a' + len(hosts) - 1))
	return fmt.Sprintf("press a-%s to increase a host, shift to decrease, any other key for status, ctrl-c to exit", last)
}
