package commands

import (
	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/internal/export"
	"github.com/tally-dev/tally/internal/merge"
)

func newMergeCommand() *cobra.Command {
	var (
		txPath      string
		acctPath    string
		upTxPath    string
		upAcctPath  string
		outTxPath   string
		outAcctPath string
	)

	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Merge exported data with an Up Bank API export",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMerge(txPath, acctPath, upTxPath, upAcctPath, outTxPath, outAcctPath)
		},
	}

	cmd.Flags().StringVar(&txPath, "transactions", "combined_transactions.json", "local transactions export")
	cmd.Flags().StringVar(&acctPath, "accounts", "combined_accounts.json", "local accounts export")
	cmd.Flags().StringVar(&upTxPath, "up-transactions", "", "Up Bank transactions export (required)")
	cmd.Flags().StringVar(&upAcctPath, "up-accounts", "", "Up Bank accounts export (required)")
	cmd.Flags().StringVar(&outTxPath, "out-transactions", "merged_transactions.json", "merged transactions output")
	cmd.Flags().StringVar(&outAcctPath, "out-accounts", "merged_accounts.json", "merged accounts output")
	_ = cmd.MarkFlagRequired("up-transactions")
	_ = cmd.MarkFlagRequired("up-accounts")

	return cmd
}

func runMerge(txPath, acctPath, upTxPath, upAcctPath, outTxPath, outAcctPath string) error {
	ours, err := merge.LoadTransactions(txPath)
	if err != nil {
		return err
	}
	theirs, err := merge.LoadTransactions(upTxPath)
	if err != nil {
		return err
	}
	ourAccts, err := merge.LoadAccounts(acctPath)
	if err != nil {
		return err
	}
	theirAccts, err := merge.LoadAccounts(upAcctPath)
	if err != nil {
		return err
	}

	mergedTx := merge.Transactions(ours.Data, theirs.Data)
	mergedAccts := merge.Accounts(ourAccts.Data, theirAccts.Data)

	if err := export.WriteTransactionDocument(outTxPath, mergedTx); err != nil {
		return err
	}
	return export.WriteAccountDocument(outAcctPath, mergedAccts)
}
