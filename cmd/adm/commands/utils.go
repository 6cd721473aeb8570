package commands

import (
	"database/sql"
	"fmt"
)

// getDatabaseInfo returns a short connection description for log output
func getDatabaseInfo(db *sql.DB) string {
	if db == nil {
		return "Not connected"
	}

	var dbName string
	if err := db.QueryRow("SELECT current_database()").Scan(&dbName); err != nil {
		return "Connected (unknown database)"
	}

	return fmt.Sprintf("Connected to %s", dbName)
}
