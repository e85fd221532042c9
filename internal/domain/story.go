package domain

// Story is derived from a scan of a wallet's stories directory; it is never persisted.
type Story struct {
	ID        string    `json:"id"`
	Address   string    `json:"address"`
	Filename  string    `json:"filename"`
	MediaURL  string    `json:"mediaUrl"`
	Type      MediaType `json:"type"`
	Timestamp int64     `json:"timestamp"`
}

// StoryID is a pure function of wallet and filename.
func StoryID(wallet, filename string) string {
	return wallet + "-" + filename
}

type StoryItem struct {
	Story
	Viewed bool `json:"viewed"`
}

type StoryGroup struct {
	Address  string      `json:"address"`
	Username string      `json:"username,omitempty"`
	Own      bool        `json:"own"`
	Stories  []StoryItem `json:"stories"`
	Unviewed int         `json:"unviewed"`
}
