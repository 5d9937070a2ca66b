// Package virgocx implements a client for the VirgoCX REST API.
//
// The package includes:
//   - Client: one method per API endpoint, handling parameter assembly,
//     signing, and response decoding
//   - Protocol: request building, envelope validation, and enum mapping of
//     response fields
//   - Normalizer: conversion from raw payloads to canonical types
//
// Authenticated requests carry the account's API key and an MD5 signature
// computed over the sorted parameter set; credentials are supplied through
// an opaque handle and never appear in client state.
//
// Example usage:
//
//	client, err := virgocx.New(core.DefaultConfig(),
//		virgocx.WithCredentials(apiKey, apiSecret))
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	ticker, err := client.Ticker(ctx, "BTC/CAD")
package virgocx
