// Command constellation-tx sends a currency transaction to a local
// metagraph's Currency L1 node, or generates a fresh key pair.
//
// Usage:
//
//	constellation-tx
//	constellation-tx --config other_config.json
//	constellation-tx --generate-keypair
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	constellation "github.com/dag-labs/metagraph-signer"
)

// config mirrors the JSON config file read by the send flow: the signing
// key, transfer parameters, and the node to submit against.
type config struct {
	PrivateKey    string  `json:"private_key"`
	Destination   string  `json:"destination"`
	Amount        float64 `json:"amount"`
	Fee           float64 `json:"fee"`
	CurrencyL1URL string  `json:"currency_l1_url"`
}

var (
	configPath      string
	generateKeypair bool
)

var rootCmd = &cobra.Command{
	Use:   "constellation-tx",
	Short: "Send a currency transaction to a local metagraph",
	RunE: func(cmd *cobra.Command, args []string) error {
		if generateKeypair {
			return runGenerateKeypair()
		}
		return runSendTransaction(configPath)
	},
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "../config.json", "path to config file")
	rootCmd.Flags().BoolVar(&generateKeypair, "generate-keypair", false, "generate a new keypair and exit")
}

func runGenerateKeypair() error {
	keyPair, err := constellation.GenerateKeyPair()
	if err != nil {
		return fmt.Errorf("generating key pair: %w", err)
	}

	fmt.Println("Generated new keypair:")
	fmt.Printf("  Private Key: %s\n", keyPair.PrivateKey)
	fmt.Printf("  Public Key:  %s\n", keyPair.PublicKey)
	fmt.Printf("  DAG Address: %s\n", keyPair.Address)
	fmt.Println()
	fmt.Println("Save the private key to your config.json to use it for transactions.")
	return nil
}

func runSendTransaction(path string) error {
	ctx := context.Background()

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config file not found: %s (%w)", path, err)
	}

	var cfg config
	if err := json.Unmarshal(content, &cfg); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}

	if cfg.PrivateKey == "YOUR_64_CHAR_HEX_PRIVATE_KEY_HERE" {
		return fmt.Errorf("please set your private key in config.json (run with --generate-keypair to create one)")
	}
	if !constellation.IsValidPrivateKey(cfg.PrivateKey) {
		return fmt.Errorf("private key must be 64 hex characters, got %d", len(cfg.PrivateKey))
	}

	keyPair, err := constellation.KeyPairFromPrivateKey(cfg.PrivateKey)
	if err != nil {
		return fmt.Errorf("deriving keypair: %w", err)
	}
	source := keyPair.Address

	fmt.Printf("Source Address: %s\n", source)
	fmt.Printf("Destination:    %s\n", cfg.Destination)
	fmt.Printf("Amount:         %v tokens\n", cfg.Amount)
	fmt.Printf("Fee:            %v tokens\n", cfg.Fee)
	fmt.Printf("Currency L1:    %s\n", cfg.CurrencyL1URL)
	fmt.Println()

	client, err := constellation.NewCurrencyL1Client(constellation.NetworkConfig{L1URL: cfg.CurrencyL1URL})
	if err != nil {
		return fmt.Errorf("creating client: %w", err)
	}

	fmt.Println("Checking node health...")
	if !client.CheckHealth(ctx) {
		return fmt.Errorf("Currency L1 node is not responding")
	}
	fmt.Println("Node is healthy!")
	fmt.Println()

	fmt.Printf("Fetching last reference for %s...\n", source)
	lastRef, err := client.GetLastReference(ctx, source)
	if err != nil {
		return fmt.Errorf("getting last reference: %w", err)
	}
	fmt.Printf("Last Reference Hash:    %s\n", lastRef.Hash)
	fmt.Printf("Last Reference Ordinal: %d\n", lastRef.Ordinal)
	fmt.Println()

	fmt.Println("Creating transaction...")
	tx, err := constellation.CreateCurrencyTransaction(
		constellation.TransferParams{Destination: cfg.Destination, Amount: cfg.Amount, Fee: cfg.Fee},
		cfg.PrivateKey,
		*lastRef,
	)
	if err != nil {
		return fmt.Errorf("creating transaction: %w", err)
	}
	fmt.Println("Transaction created successfully!")

	fmt.Println("Verifying transaction signature...")
	if result := constellation.VerifyCurrencyTransaction(tx); !result.IsValid {
		return fmt.Errorf("transaction signature verification failed")
	}
	fmt.Println("Signature verified!")
	fmt.Println()

	fmt.Println("Submitting transaction to network...")
	response, err := client.PostTransaction(ctx, tx)
	if err != nil {
		return fmt.Errorf("submitting transaction: %w", err)
	}
	fmt.Println("Transaction submitted!")
	fmt.Printf("Transaction Hash: %s\n", response.Hash)
	fmt.Println()

	fmt.Println("Checking transaction status...")
	pending, err := client.GetPendingTransaction(ctx, response.Hash)
	if err != nil {
		fmt.Printf("Could not check status: %v\n", err)
	} else if pending == nil {
		fmt.Println("Transaction not found in pending pool (may already be confirmed)")
	} else {
		fmt.Printf("Status: %s\n", pending.Status)
	}

	fmt.Println()
	fmt.Println("Done!")
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
