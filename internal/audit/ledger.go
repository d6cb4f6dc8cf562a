package audit

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/nexusdebate/pkg/models"
)

// Ledger accepts a content hash and returns a receipt confirming it
// was durably recorded. Implementations may be a real distributed
// ledger or an in-memory simulation; the core only needs the receipt.
type Ledger interface {
	Submit(ctx context.Context, contentHash string) (models.Receipt, error)
}

// SimulatedLedger fabricates receipts locally. It exists so the rest
// of the system can be exercised without any chain infrastructure; the
// transaction id and block number are derived from the content hash,
// not random, to keep runs reproducible.
type SimulatedLedger struct {
	SubmitDelay time.Duration
	BaseBlock   int64
	clock       func() time.Time
}

// NewSimulatedLedger returns a ledger simulation with the given
// cosmetic submission delay.
func NewSimulatedLedger(submitDelay time.Duration) *SimulatedLedger {
	return &SimulatedLedger{
		SubmitDelay: submitDelay,
		BaseBlock:   15234567,
		clock:       time.Now,
	}
}

// Submit simulates a ledger write.
func (l *SimulatedLedger) Submit(ctx context.Context, contentHash string) (models.Receipt, error) {
	if l.SubmitDelay > 0 {
		t := time.NewTimer(l.SubmitDelay)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctx.Done():
			return models.Receipt{}, ctx.Err()
		}
	}

	txSum := sha256.Sum256([]byte(contentHash))
	txHash := "0x" + hex.EncodeToString(txSum[:])[:40]

	// Spread simulated transactions across a small block range.
	offset := int64(binary.BigEndian.Uint16(txSum[:2])) % 1000

	return models.Receipt{
		TxHash:      txHash,
		BlockNumber: l.BaseBlock + offset,
		ContentHash: contentHash,
		ExplorerURL: fmt.Sprintf("https://neoscan.io/transaction/%s", txHash),
		Timestamp:   l.clock(),
	}, nil
}
