package common

// AuthorizationHeaderName carries the bearer token on webhook requests.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the JWT in the authorization header.
const BearerPrefix = "Bearer "
