package storage

import (
	"os"
	"strings"

	"server/db"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

type StorageType uint8

const (
	StorageTypeFile StorageType = 0
	StorageTypeS3   StorageType = 1
)
const (
	StorageLocationHeadshots = "/headshots"
	StorageLocationThumbs    = "/thumbs"
)

type Bucket struct {
	ID            uint64 `gorm:"primaryKey"`
	CreatedAt     int
	UpdatedAt     int
	Name          string `gorm:"type:varchar(200)"`
	StorageType   StorageType
	Path          string // Path on a drive or a prefix in a S3 bucket
	Region        string `gorm:"type:varchar(50)"`
	Endpoint      string `gorm:"type:varchar(300)"` // For S3-compatible stores; empty means AWS
	AuthDetails   string // Authentication details. In case of S3 bucket - "key:secret"
	SSEEncryption string `gorm:"type:varchar(50)"`
}

func (b *Bucket) Create() error {
	err := db.Instance.Create(b).Error
	if err != nil {
		return err
	}
	if b.StorageType == StorageTypeFile {
		// Pre-create locations on disk
		if err = os.MkdirAll(b.Path+StorageLocationHeadshots, 0777); err != nil {
			return err
		}
		if err = os.MkdirAll(b.Path+StorageLocationThumbs, 0777); err != nil {
			return err
		}
	}
	return nil
}

func (b *Bucket) CreateSVC() *s3.S3 {
	keySecret := strings.SplitN(b.AuthDetails, ":", 2)
	if len(keySecret) != 2 {
		keySecret = []string{"", ""}
	}
	cfg := aws.Config{
		Region:      aws.String(b.Region),
		Credentials: credentials.NewStaticCredentials(keySecret[0], keySecret[1], ""),
	}
	if b.Endpoint != "" {
		cfg.Endpoint = aws.String(b.Endpoint)
		cfg.S3ForcePathStyle = aws.Bool(true)
	}
	return s3.New(session.Must(session.NewSession(&cfg)))
}

// GetRemotePath prepends the bucket prefix (if any) to an object path
func (b *Bucket) GetRemotePath(path string) string {
	if b.Path == "" {
		return strings.TrimPrefix(path, "/")
	}
	return strings.TrimPrefix(b.Path+"/"+strings.TrimPrefix(path, "/"), "/")
}
