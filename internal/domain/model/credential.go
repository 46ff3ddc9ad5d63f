package model

// Credentials holds the API credential pair shown on the my.telegram.org
// "API development tools" page. ID is the api_id and Hash is the api_hash.
type Credentials struct {
	ID   string
	Hash string
}

// Valid returns true when both halves of the pair are non-empty.
func (c Credentials) Valid() bool {
	return c.ID != "" && c.Hash != ""
}
