package domain

import (
	"context"
	"fmt"

	"fixtura.dev/pkg/fixtura/internal/adapter"
	m "fixtura.dev/pkg/fixtura/internal/model"
	fxpkg "fixtura.dev/pkg/fixtura/pkg"
)

// SessionQuery resolves the source-location metadata of a root's active session: the
// latest ConfigurationStarted, unless a ConfigurationEnded came after it.
type SessionQuery interface {
	DocumentFilePath(ctx context.Context, root fxpkg.Maybe[string]) (string, error)
	ProjectName(ctx context.Context, root fxpkg.Maybe[string]) (string, error)
	InvocationSpan(ctx context.Context, root fxpkg.Maybe[string]) (m.InvocationSpan, error)
	ActiveSession(ctx context.Context, root string) (fxpkg.Maybe[m.ConfigurationStartedEvent], error)
}

type sessionQuery struct {
	store adapter.EventStore
}

// NewSessionQuery creates a SessionQuery reading from store.
func NewSessionQuery(store adapter.EventStore) SessionQuery {
	return &sessionQuery{store: store}
}

func (q *sessionQuery) DocumentFilePath(ctx context.Context, root fxpkg.Maybe[string]) (string, error) {
	started, err := q.resolve(ctx, root, m.DocumentNotResolved)
	if err != nil {
		return "", err
	}

	if started.DocumentFilePath == "" {
		return "", m.NewFailure(m.DocumentNotResolved, "session of root %q has no document", started.RootPath)
	}

	return started.DocumentFilePath, nil
}

func (q *sessionQuery) ProjectName(ctx context.Context, root fxpkg.Maybe[string]) (string, error) {
	started, err := q.resolve(ctx, root, m.ProjectNameNotSet)
	if err != nil {
		return "", err
	}

	if started.ProjectName == "" {
		return "", m.NewFailure(m.ProjectNameNotSet, "session of root %q has no project name", started.RootPath)
	}

	return started.ProjectName, nil
}

func (q *sessionQuery) InvocationSpan(ctx context.Context, root fxpkg.Maybe[string]) (m.InvocationSpan, error) {
	started, err := q.resolve(ctx, root, m.DocumentNotResolved)
	if err != nil {
		return m.InvocationSpan{}, err
	}

	return started.InvocationSpan, nil
}

func (q *sessionQuery) ActiveSession(ctx context.Context, root string) (fxpkg.Maybe[m.ConfigurationStartedEvent], error) {
	last, err := q.store.FindLastForRoot(ctx, root, m.EventConfigurationStarted, m.EventConfigurationEnded)
	if err != nil {
		return fxpkg.None[m.ConfigurationStartedEvent](), fmt.Errorf("find session of %q: %w", root, err)
	}

	event, ok := last.Get()
	if !ok {
		return fxpkg.None[m.ConfigurationStartedEvent](), nil
	}

	started, ok := event.(m.ConfigurationStartedEvent)
	if !ok {
		return fxpkg.None[m.ConfigurationStartedEvent](), nil
	}

	return fxpkg.Some(started), nil
}

func (q *sessionQuery) resolve(ctx context.Context, root fxpkg.Maybe[string], code m.FailureCode) (m.ConfigurationStartedEvent, error) {
	rootPath, ok := root.Get()
	if !ok {
		return m.ConfigurationStartedEvent{}, m.NewFailure(code, "fixture item has no root path")
	}

	active, err := q.ActiveSession(ctx, rootPath)
	if err != nil {
		return m.ConfigurationStartedEvent{}, err
	}

	started, ok := active.Get()
	if !ok {
		return m.ConfigurationStartedEvent{}, m.NewFailure(code, "root %q has no active configuration session", rootPath)
	}

	return started, nil
}
