package domain

import (
	"strconv"

	kadena "github.com/kdx-labs/mintdeck/business/kadena/domain"
)

// OwnedToken is a token held by the connected account. Freshly minted
// tokens stay unrevealed until the collection's artwork drop.
type OwnedToken struct {
	TokenID  int64
	Revealed bool
}

type rawToken struct {
	TokenID  kadena.PactInt `json:"token-id"`
	Revealed bool           `json:"revealed"`
}

// ImageURI returns the token's artwork location under uriRoot.
func (t OwnedToken) ImageURI(uriRoot string) string {
	return uriRoot + strconv.FormatInt(t.TokenID, 10) + ".gif"
}

// MetadataURI returns the token's metadata location under uriRoot.
func (t OwnedToken) MetadataURI(uriRoot string) string {
	return uriRoot + strconv.FormatInt(t.TokenID, 10) + ".json"
}
