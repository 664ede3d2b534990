package common

// AuthorizationHeaderName is the HTTP header carrying the access token as
// "Bearer <token>" on authorized requests.
const AuthorizationHeaderName = "Authorization"

// RefreshTokenCookieName is the httpOnly cookie carrying the refresh token
// between the browser and the auth endpoints.
const RefreshTokenCookieName = "refresh_token"
