package constellation

import (
	"context"
	"fmt"
)

// CurrencyL1Client talks to a metagraph's Currency L1 node: the endpoint
// that accepts signed CurrencyTransaction envelopes and tracks an
// account's transaction chain.
//
// Example:
//
//	client, err := NewCurrencyL1Client(NetworkConfig{L1URL: "http://localhost:9010"})
//	if err != nil {
//	    return err
//	}
//
//	lastRef, err := client.GetLastReference(ctx, sourceAddress)
//	tx, err := CreateCurrencyTransaction(params, privateKeyHex, *lastRef)
//	response, err := client.PostTransaction(ctx, tx)
//	pending, err := client.GetPendingTransaction(ctx, response.Hash)
type CurrencyL1Client struct {
	transport *httpClient
}

// NewCurrencyL1Client returns a CurrencyL1Client for config.L1URL, or
// ErrL1URLRequired if it is unset.
func NewCurrencyL1Client(config NetworkConfig) (*CurrencyL1Client, error) {
	if config.L1URL == "" {
		return nil, ErrL1URLRequired
	}
	return &CurrencyL1Client{transport: newHTTPClient(config.L1URL, config.Timeout)}, nil
}

// GetLastReference fetches address's last accepted TransactionReference.
// Chaining a new currency transaction requires this as its Parent.
func (c *CurrencyL1Client) GetLastReference(ctx context.Context, address string) (*TransactionReference, error) {
	var ref TransactionReference
	path := fmt.Sprintf("/transactions/last-reference/%s", address)
	if err := c.transport.get(ctx, path, &ref); err != nil {
		return nil, err
	}
	return &ref, nil
}

// PostTransaction submits a signed CurrencyTransaction to the L1 network
// and returns the transaction hash the node assigned it.
func (c *CurrencyL1Client) PostTransaction(ctx context.Context, transaction *CurrencyTransaction) (*PostTransactionResponse, error) {
	var response PostTransactionResponse
	if err := c.transport.post(ctx, "/transactions", transaction, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// GetPendingTransaction polls for hash's status in the node's pending pool.
// A nil, nil return means the hash isn't pending — it was either already
// accepted into a snapshot or never submitted.
func (c *CurrencyL1Client) GetPendingTransaction(ctx context.Context, hash string) (*PendingTransaction, error) {
	var pending PendingTransaction
	path := fmt.Sprintf("/transactions/%s", hash)
	if err := c.transport.get(ctx, path, &pending); err != nil {
		if netErr, ok := err.(*NetworkError); ok && netErr.StatusCode == 404 {
			return nil, nil
		}
		return nil, err
	}
	return &pending, nil
}

// CheckHealth reports whether the Currency L1 node is reachable and ready
// to accept transactions.
func (c *CurrencyL1Client) CheckHealth(ctx context.Context) bool {
	var ignored interface{}
	return c.transport.get(ctx, "/node/health", &ignored) == nil
}
