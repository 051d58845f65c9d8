package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/internal/auditlog"
	"github.com/tally-dev/tally/internal/config"
	"github.com/tally-dev/tally/internal/export"
	"github.com/tally-dev/tally/internal/importer"
	"github.com/tally-dev/tally/internal/logger"
	"github.com/tally-dev/tally/internal/pipeline"
	"github.com/tally-dev/tally/internal/report"
)

func newProcessCommand() *cobra.Command {
	var workspace string
	var statementsDir string

	cmd := &cobra.Command{
		Use:   "process",
		Short: "Journal the latest statements and export the results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, err := filepath.Abs(workspace)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			return runProcess(absDir, statementsDir)
		},
	}

	cmd.Flags().StringVarP(&workspace, "workspace", "w", ".", "workspace directory")
	cmd.Flags().StringVar(&statementsDir, "statements", "", "statement directory override (defaults to the newest DD-MM-YYYY drop)")

	return cmd
}

func runProcess(workspace, statementsDir string) error {
	cfg, err := config.Load(filepath.Join(workspace, "tally.yaml"))
	if err != nil {
		return err
	}

	log := logger.New()
	p, err := pipeline.New(cfg, log)
	if err != nil {
		return err
	}

	if statementsDir == "" {
		root := filepath.Join(workspace, "statements")
		latest, err := importer.LatestStatementDir(root)
		if err != nil {
			return err
		}
		statementsDir = filepath.Join(root, latest)
	}
	fmt.Printf("Using statements from %s\n", statementsDir)

	result, err := p.Run(statementsDir)
	if err != nil {
		return err
	}

	exportsDir := filepath.Join(workspace, "exports")
	if err := os.MkdirAll(exportsDir, 0o755); err != nil {
		return fmt.Errorf("creating exports dir: %w", err)
	}

	txPath := filepath.Join(exportsDir, cfg.Export.TransactionsFile)
	if err := export.WriteTransactionDocument(txPath, result.Transactions); err != nil {
		return err
	}
	acctPath := filepath.Join(exportsDir, cfg.Export.AccountsFile)
	if err := export.WriteAccountDocument(acctPath, result.Accounts); err != nil {
		return err
	}
	fmt.Printf("Exported %d transactions to %s\n", len(result.Transactions), txPath)
	fmt.Printf("Exported %d accounts to %s\n", len(result.Accounts), acctPath)

	if len(result.Anomalies) > 0 {
		entries := make([]auditlog.Entry, 0, len(result.Anomalies))
		now := time.Now()
		for _, a := range result.Anomalies {
			entries = append(entries, auditlog.Entry{
				Timestamp:   now,
				RecordID:    a.RecordID,
				Description: a.Description,
				DebitTotal:  a.DebitTotal,
				CreditTotal: a.CreditTotal,
			})
		}
		if err := auditlog.Append(workspace, entries); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to write anomaly log: %v\n", err)
		}
	}

	fmt.Println()
	return report.Write(os.Stdout, p.Registry(), result.Balances, result.Records, result.Balanced)
}
