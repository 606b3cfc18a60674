package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/briandowns/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"wallet-console/pkg/monitor"
	"wallet-console/pkg/status"
	"wallet-console/pkg/view"
)

var (
	watchStatus   bool
	watchInterval int
	statusTUI     bool
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the wallet startup status",
	Long: `Probe the configured node and show what the wallet loading screen would
display: connecting, reconnecting, waiting for block sync, syncing with a
percentage, loading wallet data, or nothing once everything is ready.

Examples:
  wallet-console status
  wallet-console status --watch
  wallet-console status --watch --interval 10
  wallet-console status --tui`,
	Args: cobra.NoArgs,
	Run:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().BoolVarP(&watchStatus, "watch", "w", false, "Watch status updates continuously")
	statusCmd.Flags().IntVar(&watchInterval, "interval", 0, "Polling interval in seconds (defaults to poll_interval)")
	statusCmd.Flags().BoolVar(&statusTUI, "tui", false, "Render the loading screen in the terminal UI")
}

type statusOutput struct {
	State        string          `json:"state"`
	Percentage   string          `json:"percentage,omitempty"`
	ThemePending bool            `json:"theme_pending"`
	Ready        bool            `json:"ready"`
	Snapshot     status.Snapshot `json:"snapshot"`
}

func runStatus(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	a := mustLoadApp()
	defer a.Close()

	mon, err := a.monitor()
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	// Messages are built in, so the catalog is available immediately.
	mon.SetLocaleLoaded(true)

	interval := a.cfg.PollInterval
	if watchInterval > 0 {
		interval = time.Duration(watchInterval) * time.Second
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch {
	case statusTUI:
		runStatusTUI(ctx, mon, interval)
	case watchStatus:
		watchLifecycle(ctx, mon, interval, jsonOutput)
	default:
		checkLifecycle(ctx, mon, jsonOutput)
	}
}

func checkLifecycle(ctx context.Context, mon *monitor.Monitor, jsonOutput bool) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	if !jsonOutput {
		s.Suffix = " Probing node..."
		s.Start()
	}

	mon.SetThemeLoaded(true)
	snap := mon.Poll(ctx)
	if !jsonOutput {
		s.Stop()
	}

	if jsonOutput {
		printStatusJSON(snap)
		return
	}
	displayLifecycle(snap)
}

func watchLifecycle(ctx context.Context, mon *monitor.Monitor, interval time.Duration, jsonOutput bool) {
	if !jsonOutput {
		fmt.Printf("\nWatching wallet status\n")
		fmt.Printf("Checking every %s. Press Ctrl+C to stop.\n\n", interval)
	}

	err := mon.Watch(ctx, interval, func(snap status.Snapshot) {
		if jsonOutput {
			printStatusJSON(snap)
		} else {
			displayLifecycle(snap)
		}
		mon.SetThemeLoaded(true)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		printError(err)
		os.Exit(1)
	}
}

func runStatusTUI(ctx context.Context, mon *monitor.Monitor, interval time.Duration) {
	p := tea.NewProgram(view.NewLoadingModel(!watchStatus), tea.WithContext(ctx))

	go func() {
		_ = mon.Watch(ctx, interval, func(snap status.Snapshot) {
			p.Send(view.SnapshotMsg(snap))
			mon.SetThemeLoaded(true)
		})
	}()

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		printError(err)
		os.Exit(1)
	}
}

func printStatusJSON(snap status.Snapshot) {
	v := status.Evaluate(snap)
	out := statusOutput{
		State:        v.State.Kind.String(),
		ThemePending: v.Style.ThemePending,
		Ready:        v.Ready,
		Snapshot:     snap,
	}
	if v.State.Kind == status.Syncing {
		out.Percentage = v.State.FormattedPercentage()
	}
	jsonData, _ := json.Marshal(out)
	fmt.Println(string(jsonData))
}

func displayLifecycle(snap status.Snapshot) {
	v := status.Evaluate(snap)
	stamp := color.HiBlackString(time.Now().Format("15:04:05"))

	headline := v.State.Headline()
	if headline == "" {
		if v.Ready {
			fmt.Printf("  %s  %s\n", stamp, color.GreenString("Ready"))
		} else {
			fmt.Printf("  %s  %s\n", stamp, color.HiBlackString("..."))
		}
		return
	}

	fmt.Printf("  %s  %s\n", stamp, colorForState(v.State.Kind)("%s", headline))
}

func colorForState(kind status.Kind) func(format string, a ...interface{}) string {
	switch kind {
	case status.Connecting, status.WaitingForSyncStart:
		return color.CyanString
	case status.Reconnecting:
		return color.RedString
	case status.Syncing, status.LoadingWalletData:
		return color.YellowString
	default:
		return fmt.Sprintf
	}
}
