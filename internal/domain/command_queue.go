package domain

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// ErrQueueClosed is returned for commands submitted after Close.
var ErrQueueClosed = errors.New("command queue is closed")

type queuedCommand struct {
	ctx  context.Context
	run  func(ctx context.Context) error
	done chan error
}

// CommandQueue runs submitted commands one at a time on a single worker, so no two
// commands ever interleave their store reads and publications.
type CommandQueue struct {
	commands chan queuedCommand
	stop     chan struct{}
	stopped  chan struct{}
	once     sync.Once
}

// NewCommandQueue starts the worker.
func NewCommandQueue() *CommandQueue {
	q := &CommandQueue{
		commands: make(chan queuedCommand),
		stop:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}

	go q.work()

	return q
}

// Do runs fn on the worker and waits for its result. A command whose context ends
// before it starts is not run.
func (q *CommandQueue) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	command := queuedCommand{ctx: ctx, run: fn, done: make(chan error, 1)}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-q.stop:
		return ErrQueueClosed
	case q.commands <- command:
	}

	return <-command.done
}

// Close stops the worker after the running command finished.
func (q *CommandQueue) Close() {
	q.once.Do(func() {
		close(q.stop)
	})

	<-q.stopped
}

func (q *CommandQueue) work() {
	defer close(q.stopped)

	for {
		select {
		case <-q.stop:
			return
		case command := <-q.commands:
			if err := command.ctx.Err(); err != nil {
				command.done <- err
				continue
			}

			command.done <- q.run(command)
		}
	}
}

func (q *CommandQueue) run(command queuedCommand) (err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Command panicked", "panic", r)
			err = errors.New("command panicked")
		}
	}()

	return command.run(command.ctx)
}

// Submit runs fn on q and returns its value.
func Submit[T any](ctx context.Context, q *CommandQueue, fn func(ctx context.Context) (T, error)) (T, error) {
	var result T

	err := q.Do(ctx, func(ctx context.Context) error {
		value, err := fn(ctx)
		result = value

		return err
	})

	return result, err
}
