package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/synthscan/synthscan/internal/cryptox"
)

// StoreKey prompts for a detector API key and a passphrase, seals the key in
// the keyring file, and switches the running client to it immediately.
func (a *App) StoreKey(ctx context.Context) error {
	key, err := getSecret(os.Stdout, "Enter API key: ")
	if err != nil {
		return err
	}
	defer cryptox.Wipe(key)
	if len(key) == 0 {
		fmt.Println("Nothing stored.")
		return nil
	}

	pass, err := getSecret(os.Stdout, "Enter passphrase: ")
	if err != nil {
		return err
	}
	defer cryptox.Wipe(pass)
	if len(pass) == 0 {
		fmt.Println("A passphrase is required.")
		return nil
	}

	if err := a.keys.Store(string(key), string(pass)); err != nil {
		a.log.Error(ctx, "failed to store api key", "error", err)
		fmt.Println("Could not store the API key.")
		return err
	}

	if a.setAPIKey != nil {
		a.setAPIKey(string(key))
	}

	fmt.Println("API key stored.")
	return nil
}
