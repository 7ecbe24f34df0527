package utils

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// GenerateRunID generates a run ID with a timestamp prefix and a UUID
// suffix, identifying one process-wide TaskManager lifetime.
func GenerateRunID() string {
	timestamp := time.Now().Format("20060102-150405")
	return fmt.Sprintf("run-%s-%s", timestamp, uuid.NewString())
}

// GenerateCycleID generates an ID for one push/pull cycle, stamped onto
// cycle-completion log lines.
func GenerateCycleID() string {
	return uuid.NewString()
}
