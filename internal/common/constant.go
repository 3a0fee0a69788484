package common

const (
	// AuthorizationHeaderName carries the bearer token on protected requests.
	AuthorizationHeaderName = "Authorization"

	// BearerPrefix precedes the token inside the Authorization header.
	BearerPrefix = "Bearer "

	// UploadsURLPrefix is the public path under which attachments are served.
	UploadsURLPrefix = "/uploads"

	// Multipart field names for the two medicine attachments.
	FieldProfileImage  = "profileImage"
	FieldDocumentProof = "documentProof"
)
