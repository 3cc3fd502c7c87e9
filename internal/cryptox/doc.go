// Package cryptox holds the client-side cryptography of gophsync.
//
// It covers three concerns:
//
//   - Key derivation: DeriveKey turns (password, salt) into a 32-byte Key with
//     Argon2id. GenerateSalt produces the 32-byte random salt that has to be
//     persisted alongside the account so the key can be re-derived later.
//   - Payload sealing: Seal and Open wrap AES-256-GCM and XChaCha20-Poly1305
//     behind the Algorithm enum. Sealed blobs carry a one-byte algorithm
//     header, so Open does not need to be told which cipher was used.
//   - Login verifiers: MakeVerifier derives a value that is sent to the server
//     in place of the password.
//
// A Key can only be obtained from DeriveKey (or by cloning an existing Key),
// which keeps "every key went through the KDF" a property of the type.
package cryptox
