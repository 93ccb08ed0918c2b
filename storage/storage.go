package storage

import (
	"io"
	"log"
	"net/http"

	"server/config"
	"server/db"
)

type StorageAPI interface {
	GetFullPath(path string) string
	GetSize(path string) int64
	Save(path string, reader io.Reader) (int64, error)
	Load(path string, writer io.Writer) (int64, error)
	Serve(path string, request *http.Request, writer http.ResponseWriter)
	Delete(path string) error
	GetTotalSpace() uint64
	GetFreeSpace() uint64
	GetBucket() *Bucket
}

var (
	cachedStorage []StorageAPI
)

func Init() {
	db.Instance.AutoMigrate(&Bucket{})

	cachedStorage = []StorageAPI{}
	var buckets []Bucket
	err := db.Instance.Find(&buckets).Error
	if err != nil {
		panic(err)
	}
	if len(buckets) == 0 && config.DEFAULT_BUCKET_DIR != "" {
		bucket := Bucket{
			Name:        "headshots",
			StorageType: StorageTypeFile,
			Path:        config.DEFAULT_BUCKET_DIR,
		}
		if err = bucket.Create(); err != nil {
			panic(err)
		}
		buckets = append(buckets, bucket)
	}
	log.Printf("Storage Buckets found: %d\n", len(buckets))
	for _, bucket := range buckets {
		if bucket.StorageType == StorageTypeFile {
			cachedStorage = append(cachedStorage, NewDiskStorage(&bucket))
		} else if bucket.StorageType == StorageTypeS3 {
			cachedStorage = append(cachedStorage, NewS3Storage(&bucket))
		} else {
			log.Printf("Storage type unavailable for Bucket %d", bucket.ID)
		}
	}
}

func StorageFrom(bucket *Bucket) StorageAPI {
	for _, s := range cachedStorage {
		if s.GetBucket().ID == bucket.ID {
			return s
		}
	}
	return nil
}

// GetDefaultStorage returns nil when no bucket is configured - headshot
// uploads are rejected in that case, nothing else needs storage
func GetDefaultStorage() StorageAPI {
	for _, s := range cachedStorage {
		if s.GetBucket().StorageType == StorageTypeFile {
			return s
		}
	}
	for _, s := range cachedStorage {
		return s
	}
	return nil
}
