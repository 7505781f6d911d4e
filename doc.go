// Package identity is an embeddable identity and session engine: credential
// verification, trust escalation, permission grants, and signed dual-purpose
// webtoken issuance. It is transport-agnostic; HTTP/RPC layers bind to the
// exported services and translate structured errors into response codes.
//
// Trust ladder:
//   - Authenticate accepts any Credential and yields an Authenticated
//     snapshot: identity proven once, by password or by a valid user token.
//   - AuthenticateSession accepts only password-bearing credentials and
//     yields a SessionIdentity, the sole type exposing mutation, deletion,
//     and webtoken issuance. A bare bearer token can never reach it.
//   - AsAdmin upgrades either of the above to Admin by proving membership in
//     the "admin" permission. Membership checks fail closed.
//
// Webtokens:
//   - CreateWebtoken issues an RS512-signed pair: a user token (sub "user",
//     two days) and a renewal token (sub "renewal", seven days). Each subject
//     is rejected under the other's verification predicate. Renew verifies
//     the renewal token, re-checks the account, and issues a brand-new pair;
//     there is no server-side revocation list.
//
// Persistence goes through RepositoryManager. Uniqueness invariants (username,
// permission name, one grant per pair, single-use verification codes) are
// delegated to the store's constraints and surfaced as conflict errors.
package identity
