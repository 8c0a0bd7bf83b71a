package common

// AuthorizationHeaderName is the HTTP header used to carry the access token
// on outbound requests to the backend.
const AuthorizationHeaderName = "Authorization"

// KeyPrefix namespaces every persisted key so the client can coexist with
// other data in the same local store.
const KeyPrefix = "wayfarer_"
