// Package ghostfolio provides a client for the Ghostfolio REST API.
//
// Endpoints used:
//   - POST   /api/v1/auth/anonymous      exchange a security token for a bearer token
//   - GET    /api/v1/info                public instance info
//   - GET    /api/v1/account             list accounts
//   - POST   /api/v1/account             create an account
//   - PUT    /api/v1/account/{id}        update an account
//   - GET    /api/v1/platform            list platforms
//   - GET    /api/v1/order?accounts=     list activities
//   - DELETE /api/v1/order?accounts=     delete every activity of an account
//   - DELETE /api/v1/order/{id}          delete one activity
//   - POST   /api/v1/import[?dryRun=]    import activities
//
// Reads, updates and deletes retry on 5xx and 429. Imports are never
// retried: a failed import may have partially applied.
package ghostfolio
