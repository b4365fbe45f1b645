package adapter

import (
	"github.com/getmockd/mockhttp/pkg/mock"
)

// ProfileCallback is the profile name NewCallback activates.
const ProfileCallback = "callback"

// Callback delivers dispatch outcomes asynchronously, for client code
// written around success and error handlers.
type Callback struct {
	dispatcher Dispatcher
}

// NewCallback creates a Callback for d.
func NewCallback(d Dispatcher) *Callback {
	activate(d, ProfileCallback)
	return &Callback{dispatcher: d}
}

// Go dispatches req and, on a new goroutine, invokes exactly one of
// onSuccess or onError. Go returns immediately; the returned channel is
// closed once the callback has returned. Either callback may be nil.
func (c *Callback) Go(req mock.Request, onSuccess func(*mock.Response), onError func(error)) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		resp, err := c.dispatcher.Dispatch(req)
		if err != nil {
			if onError != nil {
				onError(err)
			}
			return
		}
		if onSuccess != nil {
			onSuccess(resp)
		}
	}()
	return done
}

// Do is the synchronous form of Go: it blocks until the callback returns.
func (c *Callback) Do(req mock.Request, onSuccess func(*mock.Response), onError func(error)) {
	<-c.Go(req, onSuccess, onError)
}
