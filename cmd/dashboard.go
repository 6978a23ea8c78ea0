package cmd

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/zjrosen/platekeeper/internal/dashboard"
	"github.com/zjrosen/platekeeper/internal/log"
	"github.com/zjrosen/platekeeper/internal/plates/application"
	"github.com/zjrosen/platekeeper/internal/plates/domain"
	"github.com/zjrosen/platekeeper/internal/pubsub"
	"github.com/zjrosen/platekeeper/internal/watcher"
)

var noAutoRefresh bool

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Open the live registry dashboard",
	Long: `Show the number of registered plates, the newest entry events and the
blacklist, updated as plates are registered and vehicles pass the gate.

Writes by other platekeeper sessions sharing the database are picked up
through a file watcher unless --no-auto-refresh is given.`,
	Args:        cobra.NoArgs,
	RunE:        runDashboard,
	Annotations: map[string]string{annotationTUI: "true"},
}

func init() {
	dashboardCmd.Flags().BoolVar(&noAutoRefresh, "no-auto-refresh", false,
		"disable refresh when another session writes to the database")
	rootCmd.AddCommand(dashboardCmd)
}

// dashboardSource serves the blacklist from the list cache and everything
// else straight from the service.
type dashboardSource struct {
	*application.RegistryService
	lists *application.ListCache
}

func (s dashboardSource) Blacklist(ctx context.Context) ([]*domain.BlacklistRecord, error) {
	return s.lists.Blacklist(ctx)
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// The dashboard hears about a change only after the list cache dropped
	// the stale snapshot.
	relay := pubsub.NewBroker[domain.Change]()
	defer relay.Close()
	reg.lists.Watch(ctx, reg.db.Broker(), relay)

	var refresh chan struct{}
	if cfg.AutoRefresh && !noAutoRefresh {
		refresh = startWatcher(ctx, reg.db.Path(), reg.lists)
	}

	model := dashboard.New(dashboard.Config{
		Source:          dashboardSource{RegistryService: reg.svc, lists: reg.lists},
		Changes:         relay,
		Refresh:         refresh,
		NotificationTTL: cfg.Dashboard.NotificationTTL,
		ShowBlacklist:   cfg.Dashboard.ShowBlacklist,
		RecentEntries:   cfg.Dashboard.RecentEntries,
		LoadTimeout:     cfg.Timeout,
	})
	defer model.Close()

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running dashboard: %w", err)
	}
	return nil
}

// startWatcher forwards debounced database writes to the returned channel
// after invalidating the list cache. It returns nil when the watcher cannot
// start; the dashboard then only sees local changes.
func startWatcher(ctx context.Context, dbPath string, lists *application.ListCache) chan struct{} {
	wcfg := watcher.DefaultConfig(dbPath)
	wcfg.DebounceDur = cfg.AutoRefreshDebounce

	w, err := watcher.New(wcfg)
	if err != nil {
		log.ErrorErr(log.CatWatcher, "watcher unavailable", err, "path", dbPath)
		return nil
	}
	signals, err := w.Start()
	if err != nil {
		_ = w.Stop()
		log.ErrorErr(log.CatWatcher, "watcher unavailable", err, "path", dbPath)
		return nil
	}

	refresh := make(chan struct{}, 1)
	go func() {
		defer func() { _ = w.Stop() }()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-signals:
				if !ok {
					return
				}
				lists.InvalidateAll(ctx)
				select {
				case refresh <- struct{}{}:
				default:
				}
			}
		}
	}()
	return refresh
}
