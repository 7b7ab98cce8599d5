package paypack

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StaticClient simulates a gateway that approves everything. Used in dev mode
// and tests.
type StaticClient struct{}

// Execute approves the movement with a synthetic reference.
func (StaticClient) Execute(_ context.Context, _ string, _ decimal.Decimal, _ string) (Outcome, error) {
	return Outcome{Reference: uuid.NewString(), Status: "successful"}, nil
}
