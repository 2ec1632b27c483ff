// Package paycode issues the presentational payment code and the correlation
// identifier of a daily charge.
package paycode

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"

	"github.com/Amaral-Gabriel/daily-loan-pay/pkg/utils"
)

// Generator renders a scannable payment code for a key
type Generator interface {
	Generate(key string) (string, error)
}

// TransactionIDs issues correlation identifiers for the payment network
type TransactionIDs interface {
	Next(loanID uuid.UUID) string
}

// Key is the deterministic code material of a loan's charge for a date
func Key(loanID uuid.UUID, date time.Time) string {
	return fmt.Sprintf("daily-loan-%s-%s", loanID, utils.CompactDate(date))
}

// QRGenerator renders PNG QR codes as data URLs
type QRGenerator struct {
	size  int
	level qrcode.RecoveryLevel
}

func NewQRGenerator() *QRGenerator {
	return &QRGenerator{size: 256, level: qrcode.Medium}
}

func (g *QRGenerator) Generate(key string) (string, error) {
	png, err := qrcode.Encode(key, g.level, g.size)
	if err != nil {
		return "", fmt.Errorf("encode qr code: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// SnowflakeIDs issues TXN-<loan>-<snowflake> identifiers.
// Snowflake ids are time ordered and unique per node even within one millisecond.
type SnowflakeIDs struct {
	node *snowflake.Node
}

func NewSnowflakeIDs(nodeID int64) (*SnowflakeIDs, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("create snowflake node %d: %w", nodeID, err)
	}
	return &SnowflakeIDs{node: node}, nil
}

func (s *SnowflakeIDs) Next(loanID uuid.UUID) string {
	return fmt.Sprintf("TXN-%s-%s", loanID, s.node.Generate())
}
