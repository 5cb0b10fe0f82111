package verifier

import (
	"context"

	"github.com/pkg/errors"
)

// Client provides a high-level API for verifying files of signatures.
type Client struct {
	verifier *Verifier
	parser   CaseParser
}

// NewClient creates a new client with default settings.
func NewClient() *Client {
	return &Client{
		verifier: New(DefaultConfig()),
		parser:   &JSONParser{},
	}
}

// WithVerifier sets a custom verifier.
func (c *Client) WithVerifier(v *Verifier) *Client {
	c.verifier = v
	return c
}

// WithParser sets a custom case parser.
func (c *Client) WithParser(parser CaseParser) *Client {
	c.parser = parser
	return c
}

// VerifyFile reads cases from source with the client's parser and verifies
// them as a batch.
func (c *Client) VerifyFile(ctx context.Context, source string) ([]Result, error) {
	cases, err := c.parser.ParseCases(source)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse cases")
	}
	return c.VerifyCases(ctx, cases)
}

// VerifyCases verifies in-memory cases. Use this when the cases come from
// your own parser or API.
func (c *Client) VerifyCases(ctx context.Context, cases []*Case) ([]Result, error) {
	if len(cases) == 0 {
		return nil, errors.New("no cases to verify")
	}
	return c.verifier.VerifyBatch(ctx, cases)
}
