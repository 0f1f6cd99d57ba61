package common

const (
	// MaxContactRequestBody limits form bodies accepted by the contact endpoint.
	MaxContactRequestBody = 64 << 10
	// MaxEventListLimit caps the page size of admin audit queries.
	MaxEventListLimit = 500
)
