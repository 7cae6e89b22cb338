package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// ProfileCollection is the document collection holding user profiles,
// keyed by user id.
const ProfileCollection = "usuarios"
