package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// deleteOrphansQuery only touches the attributes the panel writes, so rows
// provisioned by other tools sharing radcheck survive.
const deleteOrphansQuery = `
	DELETE FROM radcheck r
	 WHERE r.attribute IN ('Cleartext-Password', 'Auth-Type', 'Session-Timeout')
	   AND r.op = ':='
	   AND NOT EXISTS (SELECT 1 FROM clients c WHERE c.username = r.username)
`

// StartOrphanCleaner periodically deletes panel-written radcheck rows whose
// username no client owns. Such rows are what a half-applied create or
// delete leaves behind. removed may be nil.
func StartOrphanCleaner(
	ctx context.Context,
	db *sql.DB,
	interval time.Duration,
	log *zap.Logger,
	removed prometheus.Counter,
) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				res, err := db.ExecContext(ctx, deleteOrphansQuery)
				if err != nil {
					log.Error("failed to clean orphan radcheck rows", zap.Error(err))
					continue
				}
				if rows, _ := res.RowsAffected(); rows > 0 {
					log.Info("cleaned orphan radcheck rows", zap.Int64("removed", rows))
					if removed != nil {
						removed.Add(float64(rows))
					}
				}
			}
		}
	}()
}
