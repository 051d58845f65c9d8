package config

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/tally-dev/tally/internal/classify"
	"github.com/tally-dev/tally/internal/model"
)

// Config represents the top-level tally.yaml configuration.
type Config struct {
	Accounts        []AccountConfig   `yaml:"accounts"`
	References      map[string]string `yaml:"references"`
	Categories      []CategoryConfig  `yaml:"categories"`
	TransferMarkers []string          `yaml:"transfer_markers"`
	Statements      []StatementConfig `yaml:"statements"`
	Export          ExportConfig      `yaml:"export"`
}

// AccountConfig declares one ledger account.
type AccountConfig struct {
	Key             string `yaml:"key"`
	Name            string `yaml:"name"`
	Type            string `yaml:"type"`
	ExternalID      string `yaml:"external_id,omitempty"`
	ExternalSubtype string `yaml:"external_subtype,omitempty"`
}

// CategoryConfig pairs a category with its match keywords. List order is the
// match precedence.
type CategoryConfig struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// StatementConfig maps an account to its statement CSV file name.
type StatementConfig struct {
	Account string `yaml:"account"`
	File    string `yaml:"file"`
	Format  string `yaml:"format,omitempty"` // parser name, default commbank
}

// ExportConfig names the JSON export targets.
type ExportConfig struct {
	TransactionsFile string `yaml:"transactions_file"`
	AccountsFile     string `yaml:"accounts_file"`
}

// Load reads a tally.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// LedgerAccounts converts the configured accounts to model values.
func (c *Config) LedgerAccounts() ([]model.LedgerAccount, error) {
	out := make([]model.LedgerAccount, 0, len(c.Accounts))
	for _, a := range c.Accounts {
		key, err := model.ParseAccountKey(a.Key)
		if err != nil {
			return nil, fmt.Errorf("account %q: %w", a.Name, err)
		}
		typ, err := model.ParseAccountType(a.Type)
		if err != nil {
			return nil, fmt.Errorf("account %q: %w", a.Name, err)
		}
		out = append(out, model.LedgerAccount{
			Key:             key,
			Name:            a.Name,
			Type:            typ,
			ExternalID:      a.ExternalID,
			ExternalSubtype: a.ExternalSubtype,
		})
	}
	return out, nil
}

// ReferenceTable converts the masked-reference map to account keys.
func (c *Config) ReferenceTable() (map[string]model.AccountKey, error) {
	out := make(map[string]model.AccountKey, len(c.References))
	for ref, name := range c.References {
		key, err := model.ParseAccountKey(name)
		if err != nil {
			return nil, fmt.Errorf("reference %q: %w", ref, err)
		}
		out[ref] = key
	}
	return out, nil
}

// CategoryTable converts the category list for the classifier, preserving
// order.
func (c *Config) CategoryTable() []classify.Category {
	out := make([]classify.Category, 0, len(c.Categories))
	for _, cat := range c.Categories {
		out = append(out, classify.Category{Name: cat.Name, Keywords: cat.Keywords})
	}
	return out
}

// Default returns a Config with the standard account set, reference table
// and category keywords. External ids are generated fresh.
func Default() *Config {
	return &Config{
		Accounts: []AccountConfig{
			{Key: "credit_card", Name: "Credit Card", Type: "liability", ExternalID: uuid.NewString(), ExternalSubtype: "TRANSACTIONAL"},
			{Key: "debit", Name: "Debit Account", Type: "asset", ExternalID: uuid.NewString(), ExternalSubtype: "TRANSACTIONAL"},
			{Key: "emergency_fund", Name: "Emergency Fund", Type: "asset", ExternalID: uuid.NewString(), ExternalSubtype: "SAVER"},
			{Key: "old_credit_card", Name: "Old Credit Card", Type: "liability", ExternalID: uuid.NewString(), ExternalSubtype: "TRANSACTIONAL"},
			{Key: "saver", Name: "Savings Account", Type: "asset", ExternalID: uuid.NewString(), ExternalSubtype: "SAVER"},
			{Key: "expense", Name: "Expenses", Type: "expense"},
			{Key: "income", Name: "Income", Type: "income"},
			{Key: "transfer", Name: "Internal Transfers", Type: "equity"},
		},
		References: map[string]string{
			"xx5784": "credit_card",
			"xx9070": "debit",
			"xx1893": "emergency_fund",
			"xx1212": "old_credit_card",
			"xx2467": "saver",
		},
		Categories: []CategoryConfig{
			{Name: "groceries", Keywords: []string{"WOOLWORTHS", "COLES", "IGA", "ALDI", "SPUDSHED", "WA GROWERS", "COSTCO"}},
			{Name: "dining", Keywords: []string{"MCDONALDS", "SUBWAY", "HUNGRY JACKS", "NANDOS", "GUZMAN Y GOMEZ", "KFC", "ZAMBRERO", "BOOST JUICE", "MUFFIN BREAK", "CHICKEN TREAT", "CAFE", "RESTAURANT", "FOOD", "MUZZ BUZZ", "BASKIN", "BAKERY", "PIZZ"}},
			{Name: "shopping", Keywords: []string{"KMART", "TARGET", "MYER", "DAVID JONES", "BIG W", "BUNNINGS", "OFFICEWORKS", "JB HI-FI", "HARVEY NORMAN", "IKEA", "RED DOT", "PETBARN", "PET CIRCLE"}},
			{Name: "transport", Keywords: []string{"FUEL", "PETROL", "BP ", "CALTEX", "SHELL", "UBER", "TRANSPORT", "TAXI", "PARKING", "CAR", "AUTO", "DEPARTMENT OF TRANSPOR"}},
			{Name: "utilities", Keywords: []string{"ORIGIN ENERGY", "SYNERGY", "WATER CORPORATION", "INTERNET", "PHONE", "OPTUS", "TELSTRA", "VODAFONE", "NBN", "Aussie Broadband", "Superloop"}},
			{Name: "health", Keywords: []string{"CHEMIST", "PHARMACY", "DOCTOR", "MEDICAL", "DENTAL", "HEALTH", "HOSPITAL"}},
			{Name: "entertainment", Keywords: []string{"CINEMA", "MOVIE", "THEATRE", "NETFLIX", "SPOTIFY", "APPLE.COM", "GOOGLE PLAY", "AMAZON", "STEAM", "PATREON", "DISCORD", "APPLE MUSIC", "DISNEY+"}},
			{Name: "fitness", Keywords: []string{"GYM", "FITNESS", "SPORT", "SWIM", "GOLDSGYM"}},
			{Name: "income", Keywords: []string{"PAYMENT RECEIVED", "SALARY", "INCOME", "DIVIDEND", "INTEREST", "REFUND", "TAX RETURN", "CASH DEPOSIT", "DIRECT CREDIT"}},
			{Name: "transfers", Keywords: []string{"TRANSFER", "BPAY", "PAY ANYONE", "NETBANK"}},
		},
		TransferMarkers: []string{"TRANSFER TO", "TRANSFER FROM", "BPAY", "NETBANK", "COMMBANK APP"},
		Statements: []StatementConfig{
			{Account: "credit_card", File: "CBA_CC.csv"},
			{Account: "debit", File: "CBA_DEBIT.csv"},
			{Account: "emergency_fund", File: "CBA_EMERGENCY_FUND.csv"},
			{Account: "old_credit_card", File: "CBA_OLD_CC.csv"},
			{Account: "saver", File: "CBA_SAVER.csv"},
		},
		Export: ExportConfig{
			TransactionsFile: "combined_transactions.json",
			AccountsFile:     "combined_accounts.json",
		},
	}
}
