// Package auth provides JWT token issuance/verification and bcrypt
// password hashing for the account service.
package auth
