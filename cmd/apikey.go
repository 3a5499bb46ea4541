// Copyright (c) 2025 The pg-human Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JelteF/pg-human/internal/keychain"
	"github.com/JelteF/pg-human/internal/terminal"
)

var (
	clearAPIKey bool
)

// apikeyCmd stores the completion API key in the OS keychain. The typed key
// is wiped from the terminal afterwards so it does not linger in scrollback.
var apikeyCmd = &cobra.Command{
	Use:   "apikey",
	Short: "Store the completion API key in the OS keychain",
	Long: `The apikey command prompts for the API key of your completion provider and
stores it securely in the OS keychain. The key is read from the keychain on
every 'pghuman suggest', 'pghuman run' or 'pghuman exec' invocation unless
PGHUMAN_API_KEY or OPENAI_API_KEY is set in the environment.

Use --clear to remove a previously stored key.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		km, err := keychain.GetManager()
		if err != nil {
			fmt.Println("❌ Secure storage is not available on this system.")
			fmt.Println("   You can still set PGHUMAN_API_KEY in the environment.")
			return err
		}

		if clearAPIKey {
			if err := km.ClearAPIKey(); err != nil {
				fmt.Println("❌ Failed to remove the stored API key.")
				return err
			}
			fmt.Println("✅ Stored API key removed.")
			return nil
		}

		reader := bufio.NewReader(os.Stdin)
		promptText := "Enter completion API key: "
		fmt.Print(promptText)
		key, _ := reader.ReadString('\n')
		key = strings.TrimSpace(key)

		terminal.ClearPreviousLines(len(promptText) + len(key))

		if key == "" {
			return errors.New("API key is required")
		}

		if err := km.SaveAPIKey(key); err != nil {
			fmt.Println("❌ Failed to save the API key securely.")
			return err
		}

		fmt.Println("✅ API key saved!")
		fmt.Println("   You're ready to run 'pghuman suggest'")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(apikeyCmd)
	apikeyCmd.Flags().BoolVar(&clearAPIKey, "clear", false, "Remove the stored API key instead of saving one")
}
