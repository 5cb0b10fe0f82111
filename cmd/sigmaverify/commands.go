package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mahdiidarabi/sigma-proofs/pkg/dlog"
	"github.com/mahdiidarabi/sigma-proofs/pkg/sigma"
	"github.com/mahdiidarabi/sigma-proofs/pkg/verifier"
)

func parseCommand(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "parse",
		Short: "Prints the unchecked tree of a proof as JSON",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			in, err := parseProofFlags(c.Flags())
			if err != nil {
				return err
			}
			tree, err := verifier.Verify(in.Proposition, in.Proof)
			if err != nil {
				return err
			}
			a.log.Debug("proof parsed",
				zap.Stringer("proposition", in.Proposition),
				zap.Int("proofBytes", len(in.Proof)),
			)
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(viewOf(tree))
		},
	}
	AddProofFlags(c.Flags())
	return c
}

func verifyCommand(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "verify",
		Short: "Checks a signature of a message",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			flags := c.Flags()
			in, err := parseProofFlags(flags)
			if err != nil {
				return err
			}
			maxProof, err := flags.GetInt(MaxProofKey)
			if err != nil {
				return err
			}

			v := verifier.New(a.config().WithMaxProofSize(maxProof))
			ok, err := v.VerifySignature(in.Proposition, in.Proof, in.Message)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("invalid")
				return errInvalid
			}
			fmt.Println("valid")
			return nil
		},
	}
	AddVerifyFlags(c.Flags())
	return c
}

func batchCommand(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "batch",
		Short: "Verifies every case of a JSON or CSV file",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			flags := c.Flags()
			source, err := flags.GetString(CasesKey)
			if err != nil {
				return err
			}
			if source == "" {
				return errors.Errorf("--%s is required", CasesKey)
			}
			format, err := flags.GetString(FormatKey)
			if err != nil {
				return err
			}
			parser, err := parserFor(format)
			if err != nil {
				return err
			}
			workers, err := flags.GetInt(WorkersKey)
			if err != nil {
				return err
			}
			maxProof, err := flags.GetInt(MaxProofKey)
			if err != nil {
				return err
			}

			cfg := a.config().WithNumWorkers(workers).WithMaxProofSize(maxProof)
			client := verifier.NewClient().
				WithParser(parser).
				WithVerifier(verifier.New(cfg))

			results, err := client.VerifyFile(c.Context(), source)
			if err != nil {
				return err
			}

			failed := 0
			for _, r := range results {
				name := r.Name
				if name == "" {
					name = fmt.Sprintf("#%d", r.Index)
				}
				switch {
				case r.Err != nil:
					failed++
					fmt.Printf("%-20s error (%s): %v\n", name, verifier.ErrorKind(r.Err), r.Err)
				case r.Valid:
					fmt.Printf("%-20s valid\n", name)
				default:
					failed++
					fmt.Printf("%-20s invalid\n", name)
				}
			}
			fmt.Printf("\n%d/%d valid\n", len(results)-failed, len(results))
			if failed > 0 {
				return errInvalid
			}
			return nil
		},
	}
	AddBatchFlags(c.Flags())
	return c
}

// treeView is the JSON shape of an unchecked tree.
type treeView struct {
	Type        string      `json:"type"`
	Proposition string      `json:"proposition,omitempty"`
	Challenge   string      `json:"challenge,omitempty"`
	Response    string      `json:"response,omitempty"`
	Children    []*treeView `json:"children,omitempty"`
}

func viewOf(tree sigma.UncheckedTree) *treeView {
	switch n := tree.(type) {
	case *sigma.UncheckedSchnorr:
		return &treeView{
			Type:        "schnorr",
			Proposition: n.Proposition.String(),
			Challenge:   n.Challenge.String(),
			Response:    hex.EncodeToString(dlog.ScalarToBytes(n.SecondMessage.Z)),
		}
	case *sigma.CandUnchecked:
		return &treeView{Type: "and", Challenge: n.Challenge.String(), Children: viewsOf(n.Children)}
	case *sigma.CorUnchecked:
		return &treeView{Type: "or", Challenge: n.Challenge.String(), Children: viewsOf(n.Children)}
	}
	return &treeView{Type: "noProof"}
}

func viewsOf(children []sigma.UncheckedSigmaTree) []*treeView {
	out := make([]*treeView, len(children))
	for i, c := range children {
		out[i] = viewOf(c)
	}
	return out
}
