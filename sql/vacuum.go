package sql

import "fmt"

// Vacuum rebuilds the database file, reclaiming space left by cleared ballots.
func Vacuum(db Executor) error {
	if _, err := db.Exec("vacuum", nil, nil); err != nil {
		return fmt.Errorf("vacuum %w", err)
	}
	return nil
}
