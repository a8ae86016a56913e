package fileservice

import (
	"context"

	"github.com/google/uuid"
)

// Operation is a Request running on its own goroutine so a shell can stay responsive
// and cancel it.
type Operation struct {
	ID      string
	Command Command
	cancel  context.CancelFunc
	done    chan struct{}
	result  Result
}

// Start executes req in the background. Cancelling ctx or calling Cancel stops it
// at the next context check.
func (s *Service) Start(ctx context.Context, req Request) *Operation {
	o := &Operation{
		ID:      uuid.NewString(),
		Command: req.Command,
		done:    make(chan struct{}),
	}
	ctx, o.cancel = context.WithCancel(ctx)
	go func() {
		defer o.cancel()
		o.result = s.Execute(ctx, req)
		close(o.done)
	}()
	return o
}

func (o *Operation) Cancel() {
	o.cancel()
}

func (o *Operation) Done() <-chan struct{} {
	return o.done
}

// Wait blocks until the operation finishes and returns its result.
func (o *Operation) Wait() Result {
	<-o.done
	return o.result
}
