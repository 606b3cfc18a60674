package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/briandowns/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"wallet-console/pkg/dialog"
	"wallet-console/pkg/parser"
	"wallet-console/pkg/send"
	"wallet-console/pkg/types"
	"wallet-console/pkg/view"
)

var (
	noConfirm bool
	sendTUI   bool
)

var sendCmd = &cobra.Command{
	Use:   "send <amount> [token] to <address>",
	Short: "Quote and confirm a transfer from the active wallet",
	Long: `Validate the receiver address, estimate the network fee for the active
wallet and ask for confirmation.

Examples:
  wallet-console send 0.5 to 0x52908400098527886E0F7030069857D2E4169EE7
  wallet-console send 1 SOL to 9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin --yes
  wallet-console send --tui
  wallet-console send 0.5 to 0x5290... --tui`,
	Run: runSend,
}

func init() {
	rootCmd.AddCommand(sendCmd)

	sendCmd.Flags().BoolVarP(&noConfirm, "yes", "y", false, "Skip confirmation prompt")
	sendCmd.Flags().BoolVar(&sendTUI, "tui", false, "Fill in the transfer in the terminal UI")
}

func runSend(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	var sendReq *parser.SendCommand
	if len(args) > 0 {
		var err error
		sendReq, err = parser.ParseSendCommand(strings.Join(args, " "))
		if err != nil {
			printError(err)
			os.Exit(1)
		}
	} else if !sendTUI {
		printError(fmt.Errorf("missing transfer, expected 'send <amount> [token] to <address>' or --tui"))
		os.Exit(1)
	}

	a := mustLoadApp()
	defer a.Close()

	active, err := a.wallets.Active()
	if err != nil {
		printError(fmt.Errorf("%w (add one with 'wallet-console wallet add')", send.ErrNoActiveWallet))
		os.Exit(1)
	}
	if sendReq != nil && sendReq.Symbol != "" && !strings.EqualFold(sendReq.Symbol, parser.NormalizeSymbol(active.Symbol)) {
		printError(fmt.Errorf("wallet %s sends %s, not %s", active.Name, active.Symbol, sendReq.Symbol))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	coord := a.coordinator()

	if sendTUI {
		runSendTUI(ctx, coord, a.dialogs, sendReq)
		return
	}

	// Validate before spending a network round trip
	if v := coord.ValidateAddress(sendReq.Receiver.String()); !v.Valid {
		printError(fmt.Errorf("invalid receiver %s: %s", sendReq.Receiver, v.Reason))
		os.Exit(1)
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	if !jsonOutput {
		s.Suffix = " Estimating network fee..."
		s.Start()
	}

	result, err := quoteOnce(ctx, coord, sendReq)
	if !jsonOutput {
		s.Stop()
	}
	if err != nil {
		printError(err)
		if send.IsRetryable(err) {
			color.Yellow("The network is unavailable, try again in a moment.\n")
		}
		os.Exit(1)
	}

	quote := result.Quote
	if jsonOutput {
		printQuoteJSON(active, quote, "quote_generated")
	} else {
		displayFeeQuote(active, quote)
	}

	// Ask for confirmation
	if !noConfirm && !jsonOutput {
		confirmed := false
		a.dialogs.On(send.ConfirmationDialog, func(name string) {
			defer a.dialogs.Close(name)
			confirmed = dialog.Confirm(os.Stdin, os.Stdout, "Proceed with send?")
		})
		coord.OpenConfirmationDialog()

		if !confirmed {
			fmt.Println("\nSend cancelled.")
			os.Exit(0)
		}
	}

	if jsonOutput {
		printQuoteJSON(active, quote, "confirmed")
		return
	}
	printSuccess(color.GreenString("✓ Transfer of %s %s to %s confirmed",
		quote.Request.Amount.String(), quote.Symbol, quote.Request.Receiver))
}

// quoteOnce requests a single fee quote and waits for it
func quoteOnce(ctx context.Context, coord *send.Coordinator, req *parser.SendCommand) (send.Result, error) {
	p, err := coord.QuoteFee(ctx, req.Receiver, req.Amount)
	if err != nil {
		return send.Result{}, err
	}

	result, accepted, err := coord.Await(ctx, p)
	if err != nil {
		return send.Result{}, err
	}
	if !accepted {
		return send.Result{}, fmt.Errorf("fee quote was superseded")
	}
	if result.Err != nil {
		return send.Result{}, result.Err
	}
	return result, nil
}

func runSendTUI(ctx context.Context, coord *send.Coordinator, dialogs *dialog.Registry, req *parser.SendCommand) {
	var receiver, amount string
	if req != nil {
		receiver = req.Receiver.String()
		amount = req.Amount.String()
	}

	model := view.NewSendModel(ctx, coord, dialogs, receiver, amount)
	final, err := tea.NewProgram(model, tea.WithContext(ctx)).Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		printError(err)
		os.Exit(1)
	}

	m, ok := final.(view.SendModel)
	if !ok {
		return
	}
	if err := m.Err(); err != nil {
		printError(err)
		os.Exit(1)
	}
	if !m.Confirmed() {
		fmt.Println("\nSend cancelled.")
		return
	}

	q, _ := m.Quote()
	printSuccess(color.GreenString("✓ Transfer of %s %s to %s confirmed",
		q.Quote.Request.Amount.String(), q.Quote.Symbol, q.Quote.Request.Receiver))
}

func printQuoteJSON(w *types.Wallet, q types.FeeQuote, state string) {
	output := map[string]interface{}{
		"wallet":   w.Name,
		"receiver": q.Request.Receiver,
		"amount":   q.Request.Amount.String(),
		"fee":      q.Fee.String(),
		"total":    q.Total().String(),
		"symbol":   q.Symbol,
		"source":   q.Source,
		"status":   state,
	}
	if q.Detail != "" {
		output["detail"] = q.Detail
	}
	jsonData, _ := json.MarshalIndent(output, "", "  ")
	fmt.Println(string(jsonData))
}

func displayFeeQuote(w *types.Wallet, q types.FeeQuote) {
	fmt.Println("\n" + strings.Repeat("=", 60))
	color.Green("                      SEND QUOTE")
	fmt.Println(strings.Repeat("=", 60))

	fmt.Printf("\n  From:      %s (%s)\n", color.CyanString(w.Name), w.Address)
	fmt.Printf("  To:        %s\n", color.CyanString(q.Request.Receiver.String()))
	fmt.Printf("  Amount:    %s %s\n", q.Request.Amount.String(), color.YellowString(q.Symbol))
	fmt.Printf("  Fee:       %s %s\n", q.Fee.String(), color.YellowString(q.Symbol))
	if q.Detail != "" {
		fmt.Printf("             %s\n", color.HiBlackString(q.Detail))
	}
	fmt.Printf("  Total:     %s %s\n", q.Total().String(), color.YellowString(q.Symbol))
	fmt.Printf("  Estimator: %s\n", q.Source)

	fmt.Println("\n" + strings.Repeat("=", 60) + "\n")
}
