// Package verifier checks Sigma-protocol signatures.
//
// A signature is valid when its proof parses against the proposition and
// the Fiat-Shamir hash of the recomputed commitments, followed by the
// message, equals the root challenge of the proof.
//
// # Quick Start
//
//	import "github.com/mahdiidarabi/sigma-proofs/pkg/verifier"
//
//	prop, err := verifier.ParseProposition("anyOf(proveDlog(02...), proveDlog(03...))")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	v := verifier.New(verifier.DefaultConfig())
//	ok, err := v.VerifySignature(prop, proof, message)
//
// # Batches
//
// Files of cases (JSON or CSV, hex-encoded proof and message) are verified
// concurrently through a Client:
//
//	client := verifier.NewClient().
//	    WithParser(&verifier.CSVParser{}).
//	    WithVerifier(verifier.New(verifier.DefaultConfig().WithNumWorkers(8)))
//
//	results, err := client.VerifyFile(ctx, "cases.csv")
//
// # Observability
//
// Config.Logger takes a zap logger and Config.Metrics the prometheus
// collectors built by NewMetrics. Both are optional.
package verifier
