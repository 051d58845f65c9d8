package commands

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/internal/config"
	"github.com/tally-dev/tally/internal/importer"
	"github.com/tally-dev/tally/internal/ledger"
	"github.com/tally-dev/tally/internal/logger"
	"github.com/tally-dev/tally/internal/model"
	"github.com/tally-dev/tally/internal/pipeline"
)

func newVerifyCommand() *cobra.Command {
	var workspace string
	var statementsDir string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check the accounting identity over raw statement rows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, err := filepath.Abs(workspace)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			return runVerify(absDir, statementsDir)
		},
	}

	cmd.Flags().StringVarP(&workspace, "workspace", "w", ".", "workspace directory")
	cmd.Flags().StringVar(&statementsDir, "statements", "", "statement directory override (defaults to the newest DD-MM-YYYY drop)")

	return cmd
}

func runVerify(workspace, statementsDir string) error {
	cfg, err := config.Load(filepath.Join(workspace, "tally.yaml"))
	if err != nil {
		return err
	}

	p, err := pipeline.New(cfg, logger.New())
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

	pool, err := p.LoadPool(statementsDir)
	if err != nil {
		return err
	}

	balanced, balances := ledger.VerifyRaw(p.Registry(), pool)

	fmt.Printf("Loaded %d transactions from %s\n\n", len(pool), statementsDir)
	for _, acct := range p.Registry().All() {
		bal, ok := balances[acct.Key]
		if !ok {
			continue
		}
		if acct.Type == model.AccountTypeLiability {
			bal = bal.Neg()
		}
		fmt.Printf("  %-20s $%s\n", acct.Name, bal.StringFixed(2))
	}

	if !balanced {
		return errors.New("double-entry accounting is NOT balanced")
	}
	fmt.Println("\nDouble-entry accounting is balanced")
	return nil
}
