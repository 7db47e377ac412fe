// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helpers.

# Middleware

  - WithLogging: request/completion logging with slog
  - CORS: allows cross-origin requests from the configured frontend

# Helpers

  - JSONResponse: writes JSON with status code
  - ErrorResponse: writes a models.ErrorResponse
  - ParseJSONBody: decodes a request body
  - GetClientIP: extracts client IP (X-Forwarded-For, X-Real-IP, RemoteAddr)
*/
package middleware
