package system

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/julianstephens/leitstand/internal/auth"
	"github.com/julianstephens/leitstand/internal/cli"
	"github.com/julianstephens/leitstand/internal/constants"
	"github.com/julianstephens/leitstand/internal/keyring"
	"github.com/julianstephens/leitstand/internal/storage/postgres"
)

var accounts = map[string]keyring.Account{
	"openai":   keyring.OpenAIKey,
	"database": keyring.ConnectionString,
}

func parseAccount(name string) (keyring.Account, error) {
	account, ok := accounts[strings.ToLower(name)]
	if !ok {
		return "", fmt.Errorf("unknown key %q (expected openai or database)", name)
	}
	return account, nil
}

// KeySetCmd stores a secret in the OS keyring
type KeySetCmd struct {
	Name   string `arg:"" enum:"openai,database" help:"Which secret to store (openai, database)."`
	Secret string `arg:"" optional:"" help:"Secret value; prompted without echo when omitted."`
}

func (cmd *KeySetCmd) Run(ctx *cli.Context) error {
	account, err := parseAccount(cmd.Name)
	if err != nil {
		return err
	}

	secret := cmd.Secret
	if secret == "" {
		secret, err = auth.PromptPassword(os.Stderr, "Secret", false)
		if err != nil {
			return err
		}
	}
	secret = strings.TrimSpace(secret)

	if account == keyring.ConnectionString {
		if err := postgres.ValidateConnString(secret); err != nil {
			if !errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return fmt.Errorf("invalid connection string: %w", err)
			}
			ctx.Println("⚠️  Warning: Connection string contains embedded credentials.")
			ctx.Println("   It will be stored as-is in the encrypted OS keyring.")
		}
	}

	if err := keyring.Set(account, secret); err != nil {
		return err
	}

	ctx.Printf("✓ %s stored successfully in OS keyring\n", cmd.Name)
	if account == keyring.ConnectionString {
		ctx.Printf("  Set 'database: %s' in the config to use it\n", constants.KeyringDatabase)
	}
	return nil
}

// KeyDeleteCmd removes a secret from the OS keyring
type KeyDeleteCmd struct {
	Name string `arg:"" enum:"openai,database" help:"Which secret to delete (openai, database)."`
}

func (cmd *KeyDeleteCmd) Run(ctx *cli.Context) error {
	account, err := parseAccount(cmd.Name)
	if err != nil {
		return err
	}
	if err := keyring.Delete(account); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("no %s secret found in keyring", cmd.Name)
		}
		return err
	}
	ctx.Printf("✓ %s deleted from OS keyring\n", cmd.Name)
	return nil
}

// KeyStatusCmd checks the availability of the OS keyring and the stored secrets
type KeyStatusCmd struct{}

func (cmd *KeyStatusCmd) Run(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		ctx.Println("❌ OS keyring is not available on this system")
		return keyring.ErrKeyringUnavailable
	}
	ctx.Println("✓ OS keyring is available")

	for _, name := range []string{"openai", "database"} {
		_, err := keyring.Get(accounts[name])
		switch {
		case err == nil:
			ctx.Printf("✓ %s is stored in keyring\n", name)
		case errors.Is(err, keyring.ErrNotFound):
			ctx.Printf("ℹ No %s stored in keyring\n", name)
		default:
			return err
		}
	}
	return nil
}
