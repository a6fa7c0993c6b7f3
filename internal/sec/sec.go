// Package sec provides authentication primitives for the web application.
//
// # Authentication
//
// Authentication uses HTTP Basic Auth. Credentials are validated against
// bcrypt password hashes held in the configured credential store; the
// comparison is resistant to timing side-channels. Every request to every
// endpoint, including the dashboard page, passes through [Authenticate].
//
// IMPORTANT: Basic Auth transmits credentials in base64 encoding (not
// encrypted). TLS must be used in production to protect credentials in
// transit.
//
// # Components
//
//   - [Authenticate]: Validates Basic Auth credentials against the store
//   - [GetIdentity], [SetIdentity]: Context accessors for the caller identity
//   - [HashPassword], [ComparePassword]: bcrypt password hashing utilities
package sec
