// Package pipeline wires the batch run: load statements, normalize and
// classify rows, journal them, replay balances, verify the ledger and
// project the exports. It is strictly sequential; the journal builder needs
// the whole pool before the first record can be emitted.
package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/tally-dev/tally/internal/accounts"
	"github.com/tally-dev/tally/internal/classify"
	"github.com/tally-dev/tally/internal/config"
	"github.com/tally-dev/tally/internal/export"
	"github.com/tally-dev/tally/internal/importer"
	"github.com/tally-dev/tally/internal/journal"
	"github.com/tally-dev/tally/internal/ledger"
	"github.com/tally-dev/tally/internal/model"
	"github.com/tally-dev/tally/internal/normalize"
)

// Pipeline holds the collaborators for one batch run.
type Pipeline struct {
	cfg     *config.Config
	reg     *accounts.Registry
	cls     *classify.Classifier
	parsers *importer.Registry
	log     zerolog.Logger
}

// Result is everything a batch run produces.
type Result struct {
	Pool         []model.RawTransaction
	Records      []model.JournalRecord
	Balances     model.BalanceSnapshot
	Balanced     bool
	Anomalies    []journal.Anomaly
	Transactions []export.Transaction
	Accounts     []export.Account
}

// New builds a Pipeline from config, validating the account registry up
// front.
func New(cfg *config.Config, log zerolog.Logger) (*Pipeline, error) {
	accts, err := cfg.LedgerAccounts()
	if err != nil {
		return nil, err
	}
	refs, err := cfg.ReferenceTable()
	if err != nil {
		return nil, err
	}
	reg, err := accounts.NewRegistry(accts, refs)
	if err != nil {
		return nil, fmt.Errorf("building account registry: %w", err)
	}

	return &Pipeline{
		cfg:     cfg,
		reg:     reg,
		cls:     classify.New(cfg.CategoryTable(), cfg.TransferMarkers),
		parsers: importer.DefaultRegistry(),
		log:     log,
	}, nil
}

// Registry exposes the validated account registry.
func (p *Pipeline) Registry() *accounts.Registry {
	return p.reg
}

// LoadPool reads every configured statement file under dir into raw
// transactions. Zero-amount rows never enter the pool; missing statement
// files are logged and skipped so one absent account does not sink the
// batch.
func (p *Pipeline) LoadPool(dir string) ([]model.RawTransaction, error) {
	var pool []model.RawTransaction
	for _, stmt := range p.cfg.Statements {
		key, err := model.ParseAccountKey(stmt.Account)
		if err != nil {
			return nil, fmt.Errorf("statement %s: %w", stmt.File, err)
		}

		format := stmt.Format
		if format == "" {
			format = "commbank"
		}
		parser := p.parsers.Get(format)
		if parser == nil {
			return nil, fmt.Errorf("statement %s: unknown format %q", stmt.File, format)
		}

		path := filepath.Join(dir, stmt.File)
		f, err := os.Open(path)
		if errors.Is(err, fs.ErrNotExist) {
			p.log.Warn().Str("file", stmt.File).Msg("statement file missing, skipping")
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("opening statement %s: %w", stmt.File, err)
		}

		rows, err := parser.Parse(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("parsing statement %s: %w", stmt.File, err)
		}

		for _, row := range rows {
			tx, ok := p.normalizeRow(key, row)
			if !ok {
				continue
			}
			pool = append(pool, tx)
		}
	}
	return pool, nil
}

// normalizeRow turns one raw statement line into a pool transaction. Rows
// whose amount parses to zero are dropped here, before the pool exists.
func (p *Pipeline) normalizeRow(key model.AccountKey, row importer.Row) (model.RawTransaction, bool) {
	amount := normalize.ParseAmount(row.Amount)
	if amount.IsZero() {
		return model.RawTransaction{}, false
	}

	desc := normalize.CleanDescription(row.Description)
	return model.RawTransaction{
		Account:     key,
		Date:        normalize.ParseDate(row.Date),
		Amount:      amount,
		Description: desc,
		Category:    p.cls.Categorize(desc),
		IsTransfer:  p.cls.IsTransfer(desc),
		AccountRef:  p.cls.ExtractAccountReference(desc),
		Balance:     normalize.ParseAmount(row.Balance),
	}, true
}

// Run executes the full batch over the statements in dir.
func (p *Pipeline) Run(dir string) (*Result, error) {
	pool, err := p.LoadPool(dir)
	if err != nil {
		return nil, err
	}
	return p.RunPool(pool)
}

// RunPool executes the batch over an already-loaded pool.
func (p *Pipeline) RunPool(pool []model.RawTransaction) (*Result, error) {
	builder := journal.NewBuilder(p.reg, p.log)
	builder.AddAll(pool)
	records := builder.Build()

	led := ledger.New(p.reg)
	led.Replay(records)

	exp := export.NewExporter(p.reg)
	balances := led.Snapshot()

	return &Result{
		Pool:         pool,
		Records:      records,
		Balances:     balances,
		Balanced:     led.Verify(),
		Anomalies:    builder.Anomalies(),
		Transactions: exp.Transactions(records),
		Accounts:     exp.Accounts(balances),
	}, nil
}
