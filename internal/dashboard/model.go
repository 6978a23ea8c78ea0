// Package dashboard implements the live registry dashboard TUI.
//
// The dashboard shows:
//   - the number of registered plates, like the summary tile of the gate app
//   - a toast "plate entered (HH:MM:SS)" whenever a new entry arrives,
//     hidden again after the configured notification TTL
//   - the most recent entry events and, optionally, the blacklist
//
// It reloads on changes published by the local store and on refresh signals
// from the database file watcher, which covers writes by other sessions.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/platekeeper/internal/keys"
	"github.com/zjrosen/platekeeper/internal/log"
	"github.com/zjrosen/platekeeper/internal/plates/application"
	"github.com/zjrosen/platekeeper/internal/plates/domain"
	"github.com/zjrosen/platekeeper/internal/presentation"
	"github.com/zjrosen/platekeeper/internal/pubsub"
	"github.com/zjrosen/platekeeper/internal/ui/toaster"
)

// Source supplies the data shown on the dashboard.
type Source interface {
	Snapshot(ctx context.Context) (application.Snapshot, error)
	RecentEntries(ctx context.Context, limit int) ([]*domain.EntryEvent, error)
	Blacklist(ctx context.Context) ([]*domain.BlacklistRecord, error)
}

// Config holds configuration for creating a dashboard Model.
type Config struct {
	Source Source
	// Changes delivers mutations made through this process. Nil disables it.
	Changes pubsub.Subscriber[domain.Change]
	// Refresh delivers watcher signals for writes by other sessions. Nil disables it.
	Refresh <-chan struct{}
	// NotificationTTL is how long an entry toast stays visible.
	NotificationTTL time.Duration
	ShowBlacklist   bool
	// RecentEntries caps the entry table. Zero hides the table.
	RecentEntries int
	// LoadTimeout bounds each reload.
	LoadTimeout time.Duration
}

// snapshotMsg carries the result of one reload.
type snapshotMsg struct {
	snap      application.Snapshot
	entries   []*domain.EntryEvent
	blacklist []*domain.BlacklistRecord
	err       error
}

// refreshSignalMsg is sent when the database file watcher fires.
type refreshSignalMsg struct{}

// Model holds the dashboard state.
type Model struct {
	source      Source
	listener    *pubsub.ContinuousListener[domain.Change]
	refresh     <-chan struct{}
	ctx         context.Context
	cancel      context.CancelFunc
	ttl         time.Duration
	recentLimit int
	loadTimeout time.Duration

	snapshot      application.Snapshot
	blacklist     []*domain.BlacklistRecord
	showBlacklist bool
	entries       table.Model
	// lastAnnounced is the id of the newest entry already shown as a toast.
	lastAnnounced int64
	loaded        bool
	err           error

	toast    toaster.Model
	keys     keys.KeyMap
	help     help.Model
	showHelp bool

	width  int
	height int
}

// New creates a dashboard model.
func New(cfg Config) Model {
	ctx, cancel := context.WithCancel(context.Background())

	var listener *pubsub.ContinuousListener[domain.Change]
	if cfg.Changes != nil {
		listener = pubsub.NewContinuousListener(ctx, cfg.Changes)
	}

	loadTimeout := cfg.LoadTimeout
	if loadTimeout <= 0 {
		loadTimeout = 10 * time.Second
	}

	return Model{
		source:        cfg.Source,
		listener:      listener,
		refresh:       cfg.Refresh,
		ctx:           ctx,
		cancel:        cancel,
		ttl:           cfg.NotificationTTL,
		recentLimit:   cfg.RecentEntries,
		loadTimeout:   loadTimeout,
		showBlacklist: cfg.ShowBlacklist,
		entries:       newEntryTable(),
		toast:         toaster.New(),
		keys:          keys.DefaultKeyMap(),
		help:          help.New(),
	}
}

func newEntryTable() table.Model {
	return table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 6},
			{Title: "Plate", Width: 12},
			{Title: "Time", Width: 10},
			{Title: "Age", Width: 8},
		}),
		table.WithFocused(true),
		table.WithHeight(5),
	)
}

// Init loads the first snapshot and starts listening for changes.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.load(), m.listen(), m.waitRefresh())
}

// Close stops the change subscriptions.
func (m Model) Close() {
	m.cancel()
}

// Update handles messages and returns the updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case snapshotMsg:
		return m.applySnapshot(msg)

	case pubsub.Event[domain.Change]:
		log.Debug(log.CatUI, "dashboard change", "collection", msg.Payload.Collection, "type", msg.Type)
		return m, tea.Batch(m.load(), m.listen())

	case refreshSignalMsg:
		return m, tea.Batch(m.load(), m.waitRefresh())

	case toaster.DismissMsg:
		m.toast = m.toast.Update(msg)
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.cancel()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Refresh):
		return m, m.load()
	case key.Matches(msg, m.keys.ToggleBlacklist):
		m.showBlacklist = !m.showBlacklist
		return m, nil
	case key.Matches(msg, m.keys.Dismiss):
		m.toast = m.toast.Hide()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil
	}

	var cmd tea.Cmd
	m.entries, cmd = m.entries.Update(msg)
	return m, cmd
}

func (m Model) applySnapshot(msg snapshotMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		log.ErrorErr(log.CatUI, "dashboard reload failed", msg.err)
		m.err = msg.err
		return m, nil
	}

	m.err = nil
	m.snapshot = msg.snap
	m.blacklist = msg.blacklist
	m.entries.SetRows(entryRows(msg.entries, time.Now()))
	m.loaded = true

	last := msg.snap.LastEntry
	if last == nil || last.ID() == m.lastAnnounced {
		return m, nil
	}
	m.lastAnnounced = last.ID()

	var cmd tea.Cmd
	m.toast, cmd = m.toast.Show(entryNotice(last), toaster.StyleSuccess, m.ttl)
	return m, cmd
}

func entryNotice(e *domain.EntryEvent) string {
	return fmt.Sprintf("🚗 %s entered (%s)", e.Plate(), presentation.FormatClock(e.Timestamp()))
}

func entryRows(events []*domain.EntryEvent, now time.Time) []table.Row {
	rows := make([]table.Row, len(events))
	for i, e := range events {
		rows[i] = table.Row{
			fmt.Sprint(e.ID()),
			e.Plate().String(),
			presentation.FormatClock(e.Timestamp()),
			presentation.FormatRelativeTimeFrom(e.Timestamp(), now),
		}
	}
	return rows
}

// load reads a fresh snapshot off the update loop.
func (m Model) load() tea.Cmd {
	source, limit, timeout := m.source, m.recentLimit, m.loadTimeout
	parent := m.ctx
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, timeout)
		defer cancel()

		var msg snapshotMsg
		if msg.snap, msg.err = source.Snapshot(ctx); msg.err != nil {
			return msg
		}
		if limit > 0 {
			if msg.entries, msg.err = source.RecentEntries(ctx, limit); msg.err != nil {
				return msg
			}
		}
		// Loaded even when hidden so toggling needs no reload
		msg.blacklist, msg.err = source.Blacklist(ctx)
		return msg
	}
}

func (m Model) listen() tea.Cmd {
	if m.listener == nil {
		return nil
	}
	return m.listener.Listen()
}

func (m Model) waitRefresh() tea.Cmd {
	if m.refresh == nil {
		return nil
	}
	ctx, ch := m.ctx, m.refresh
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-ch:
			if !ok {
				return nil
			}
			return refreshSignalMsg{}
		}
	}
}
