package storage

import (
	"context"

	"vote-tally/models"
)

// SummaryWriter is the interface any output backend must satisfy.
type SummaryWriter interface {
	Name() string
	WriteLegislators(ctx context.Context, stats *models.LegislatorStats) error
	WriteBills(ctx context.Context, stats *models.BillStats) error
	Close() error
}
