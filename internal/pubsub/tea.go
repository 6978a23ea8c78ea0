package pubsub

import (
	"context"
	"slices"

	tea "github.com/charmbracelet/bubbletea"
)

// ListenCmd waits for the next event on ch and delivers it as a tea.Msg.
// It yields nil once ctx is done or ch is closed.
func ListenCmd[T any](ctx context.Context, ch <-chan Event[T]) tea.Cmd {
	return listenFiltered(ctx, ch, nil)
}

func listenFiltered[T any](ctx context.Context, ch <-chan Event[T], types []EventType) tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case <-ctx.Done():
				return nil
			case event, ok := <-ch:
				if !ok {
					return nil
				}
				if len(types) > 0 && !slices.Contains(types, event.Type) {
					continue
				}
				return event
			}
		}
	}
}

// ContinuousListener holds one subscription across Bubble Tea updates. The
// model calls Listen again after each delivered event.
type ContinuousListener[T any] struct {
	ctx   context.Context
	ch    <-chan Event[T]
	types []EventType
}

// NewContinuousListener subscribes to sub until ctx ends. When types are
// given, events of other types are skipped without waking the model.
func NewContinuousListener[T any](ctx context.Context, sub Subscriber[T], types ...EventType) *ContinuousListener[T] {
	return &ContinuousListener[T]{
		ctx:   ctx,
		ch:    sub.Subscribe(ctx),
		types: types,
	}
}

// Listen returns the command that waits for the next matching event.
func (l *ContinuousListener[T]) Listen() tea.Cmd {
	return listenFiltered(l.ctx, l.ch, l.types)
}
