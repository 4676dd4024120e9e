package kvstore

import (
	"fmt"

	"github.com/shirou/gopsutil/disk"
	"github.com/sirupsen/logrus"
)

const bytesPerGB = 1024 * 1024 * 1024

// checkFreeSpace refuses to open the store when the filesystem holding
// path has less than minimumGB of free space left. Badger keeps
// appending value log files, running a chain node into a full disk
// corrupts more than just the newest record.
func checkFreeSpace(path string, minimumGB int, log *logrus.Logger) error {
	if minimumGB <= 0 {
		return nil
	}

	usage, err := disk.Usage(path)
	if err != nil {
		return fmt.Errorf("error retrieving disk usage for %s: %w", path, err)
	}

	log.WithFields(logrus.Fields{
		"path":   path,
		"freeGB": float64(usage.Free) / bytesPerGB,
		"usedGB": float64(usage.Used) / bytesPerGB,
	}).Info("Store disk usage")

	if usage.Free < uint64(minimumGB)*bytesPerGB {
		return fmt.Errorf("not enough free space at %s: %d GB required, %.2f GB available",
			path, minimumGB, float64(usage.Free)/bytesPerGB)
	}

	return nil
}
