// Package common contains shared constants and sentinel errors used across
// gophsync components.
package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// ObjectNameHeaderName is the gRPC metadata key carrying the object name
// of an uploaded blob.
const ObjectNameHeaderName = "x-object-name"
