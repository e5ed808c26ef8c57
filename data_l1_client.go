package constellation

import "context"

// DataL1Client talks to a metagraph's Data L1 node: the endpoint custom
// metagraph state updates (signed generic envelopes, via CreateSignedObject
// with isDataUpdate=true) are submitted to, as opposed to CurrencyL1Client's
// token transfers.
//
// Example:
//
//	client, err := NewDataL1Client(NetworkConfig{DataL1URL: "http://localhost:8080"})
//	if err != nil {
//	    return err
//	}
//
//	feeInfo, err := client.EstimateFee(ctx, signedUpdate)
//	result, err := client.PostData(ctx, signedUpdate)
type DataL1Client struct {
	transport *httpClient
}

// NewDataL1Client returns a DataL1Client for config.DataL1URL, or
// ErrDataL1URLRequired if it is unset.
func NewDataL1Client(config NetworkConfig) (*DataL1Client, error) {
	if config.DataL1URL == "" {
		return nil, ErrDataL1URLRequired
	}
	return &DataL1Client{transport: newHTTPClient(config.DataL1URL, config.Timeout)}, nil
}

// EstimateFee asks the node what fee a data submission would require.
// Some metagraphs charge for data updates; call this before PostData to
// learn the required fee.
func (c *DataL1Client) EstimateFee(ctx context.Context, signedUpdate interface{}) (*EstimateFeeResponse, error) {
	var response EstimateFeeResponse
	if err := c.transport.post(ctx, "/data/estimate-fee", signedUpdate, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// PostData submits a signed DataUpdate envelope to the Data L1 node.
func (c *DataL1Client) PostData(ctx context.Context, signedUpdate interface{}) (*PostDataResponse, error) {
	var response PostDataResponse
	if err := c.transport.post(ctx, "/data", signedUpdate, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// CheckHealth reports whether the Data L1 node is reachable and ready to
// accept data submissions.
func (c *DataL1Client) CheckHealth(ctx context.Context) bool {
	var ignored interface{}
	return c.transport.get(ctx, "/node/health", &ignored) == nil
}
