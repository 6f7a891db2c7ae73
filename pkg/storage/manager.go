package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/hpfoods/hpfoods-api/config"
)

var (
	managerMu   sync.RWMutex
	disks       = map[string]Disk{}
	defaultDisk = "local"
)

// Connect boots the local disk and, when S3_BUCKET is set, the s3 disk.
// STORAGE_DISK picks the default.
func Connect(ctx context.Context) error {
	local, err := NewLocal(config.StorageLocalRoot(), config.StorageURL())
	if err != nil {
		return err
	}
	RegisterDisk("local", local)

	if bucket := config.StorageS3Bucket(); bucket != "" {
		d, err := NewS3(ctx, S3Options{
			Bucket:   bucket,
			Region:   config.StorageS3Region(),
			Key:      config.StorageS3Key(),
			Secret:   config.StorageS3Secret(),
			Endpoint: config.StorageS3Endpoint(),
			URL:      config.StorageS3URL(),
		})
		if err != nil {
			return err
		}
		RegisterDisk("s3", d)
	}

	name := config.StorageDefault()
	if _, err := Use(name); err != nil {
		return err
	}
	managerMu.Lock()
	defaultDisk = name
	managerMu.Unlock()
	return nil
}

// RegisterDisk plugs d in under name, replacing any previous disk.
func RegisterDisk(name string, d Disk) {
	managerMu.Lock()
	disks[name] = d
	managerMu.Unlock()
}

// Use returns the named disk.
func Use(name string) (Disk, error) {
	managerMu.RLock()
	d, ok := disks[name]
	managerMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("storage: disk %q is not configured", name)
	}
	return d, nil
}

// Default returns the disk selected by STORAGE_DISK. It panics when
// Connect has not run.
func Default() Disk {
	managerMu.RLock()
	name := defaultDisk
	managerMu.RUnlock()

	d, err := Use(name)
	if err != nil {
		panic(err)
	}
	return d
}
