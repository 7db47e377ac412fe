// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package identity derives the opaque voter identity used for the
one-vote-per-voter check.

The default policy hashes the client's network address with a
deployment-secret salt (HMAC-SHA256, truncated). The aggregator never
sees the raw address, only the hash, so voter records stay
pseudonymous.

GenerateID produces random hex ids for things that are not voters,
such as websocket connection ids used in logs.
*/
package identity
