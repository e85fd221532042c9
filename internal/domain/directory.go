package domain

import (
	"math/big"
	"time"
)

// DirectoryEntry is one row of the user directory built from UsernameSet events.
type DirectoryEntry struct {
	Address      string    `json:"address"`
	Username     string    `json:"username"`
	PostCount    int       `json:"postCount"`
	UpdatedBlock uint64    `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

type UsernameEvent struct {
	Address     string
	Username    string
	BlockNumber uint64
	TxHash      string
	LogIndex    uint
}

// Tip is a token Transfer observed on the companion token contract.
type Tip struct {
	TxHash      string    `json:"txHash"`
	LogIndex    uint      `json:"logIndex"`
	From        string    `json:"from"`
	To          string    `json:"to"`
	Amount      *big.Int  `json:"amount"`
	BlockNumber uint64    `json:"blockNumber"`
	CreatedAt   time.Time `json:"createdAt"`
}

type TipSummary struct {
	Address       string `json:"address"`
	Count         int    `json:"count"`
	TotalReceived string `json:"totalReceived"`
}

// OrphanBlob is a post blob with no matching ledger record.
type OrphanBlob struct {
	Wallet   string
	Filename string
}

// SweepReport is the outcome of comparing post blobs with the ledger.
// Orphans are blobs nobody posted; Missing are ledger posts whose blob is gone.
type SweepReport struct {
	Orphans []OrphanBlob
	Missing []Post
}
