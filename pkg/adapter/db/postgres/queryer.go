package postgres

import (
	"context"

	"github.com/momeni/job-alerts/pkg/core/repo"
	"gorm.io/gorm"
)

// Queryer constrains the generic query functions of the repository
// packages to the connection and transaction types of this adapter.
type Queryer interface {
	*Conn | *Tx
	repo.Queryer

	GORM(ctx context.Context) *gorm.DB
}
