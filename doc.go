// Package authapi is a minimal credential-authentication backend: user
// sign-in, password recovery via one-time code, authenticated password
// change, token refresh, and profile retrieval behind a single JSON
// HTTP boundary.
//
// Two pieces carry the actual logic:
//   - AuthFlows, the flow engine. Every operation is one pass of
//     presence checks, store lookup, state mutation and token
//     issuance, in that fixed order, so error precedence stays
//     deterministic.
//   - Classify, the centralized error classifier. Flows raise tagged
//     signals (see Kind) and never build responses themselves; the
//     fiber error handler funnels every failure through Classify into
//     the uniform {message, status, errorCode} envelope.
//
// Everything else is a collaborator: a bun-backed UserStore, an HS256
// TokenService with a fixed 12 hour lifetime, a fire-and-forget Mailer
// for recovery codes, and the jwtware middleware that feeds the access
// gate.
package authapi
