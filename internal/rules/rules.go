// Package rules loads and persists the merchant-classification rule set: an
// ordered list of keyword-to-subcategory pairs consulted by the classifier.
package rules

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/FelipeFreitasGit/Controle-Financeiro/internal/ledger"
)

// Defaults is the built-in mapping used when no rules file exists yet. It is
// written back to disk on first load so users have a file to edit.
func Defaults() []ledger.Rule {
	return []ledger.Rule{
		{Keyword: "IFOOD", Subcategory: "Alimentação"},
		{Keyword: "RAPPI", Subcategory: "Alimentação"},
		{Keyword: "UBER", Subcategory: "Transporte"},
		{Keyword: "99APP", Subcategory: "Transporte"},
		{Keyword: "POSTO", Subcategory: "Combustível"},
		{Keyword: "AMAZON", Subcategory: "Varejo Online"},
		{Keyword: "MERCADOLIVRE", Subcategory: "Varejo Online"},
		{Keyword: "AMAZON PRIME", Subcategory: "Assinaturas"},
		{Keyword: "NETFLIX", Subcategory: "Assinaturas"},
		{Keyword: "SPOTIFY", Subcategory: "Assinaturas"},
		{Keyword: "FARMACIA", Subcategory: "Saúde"},
		{Keyword: "DROGARIA", Subcategory: "Saúde"},
		{Keyword: "SUPERMERCADO", Subcategory: "Supermercado"},
		{Keyword: "MERCADO", Subcategory: "Supermercado"},
	}
}

// Load reads the rules file. A missing file is not an error: the defaults are
// persisted to path and returned. A file that exists but cannot be decoded is
// surfaced as an explicit error, unlike the transaction store's silent
// recovery, because losing the rule set would silently misclassify every
// subsequent import.
func Load(path string) ([]ledger.Rule, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		defaults := Defaults()
		if err := Save(path, defaults); err != nil {
			return nil, fmt.Errorf("persist default rules: %w", err)
		}
		return defaults, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read rules file %s: %w", path, err)
	}

	var loaded []ledger.Rule
	if err := json.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("decode rules file %s: %w", path, err)
	}
	return loaded, nil
}

// Save writes the rule set to path, creating parent directories as needed.
func Save(path string, rules []ledger.Rule) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create rules directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(rules, "", "  ")
	if err != nil {
		return fmt.Errorf("encode rules: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write rules file %s: %w", path, err)
	}
	return nil
}
