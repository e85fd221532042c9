package domain

// Envelope is the JSON document persisted for every encrypted blob and comment.
type Envelope struct {
	IV           string `json:"iv"`
	Data         string `json:"data"`
	OriginalName string `json:"originalName,omitempty"`
	UploadTime   string `json:"uploadTime,omitempty"`
	Wallet       string `json:"wallet,omitempty"`
	Personal     bool   `json:"personal,omitempty"`
}

// Media is a decrypted blob.
type Media struct {
	Data        []byte
	ContentType string
	Envelope    Envelope
}
