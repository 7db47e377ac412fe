// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles configuration from CLI flags and environment
variables.

# Settings

Required:

  - DATABASE_URL (-d): database connection string
  - VOTER_HASH_SALT (--voter-salt): secret for voter identity hashing

Optional:

  - PORT (-p): server port (default: 5000)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - ALLOWED_ORIGIN (--origin): CORS/websocket origin (default: *)

CLI flags take precedence over environment variables.
*/
package cliparse
