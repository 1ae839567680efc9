// README: Saved-trip backup upload to an S3 bucket.
package export

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectPutter is the part of *s3.Client the uploader needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type BackupUploader struct {
	client ObjectPutter
	bucket string
	prefix string
}

func NewBackupUploader(client ObjectPutter, bucket, prefix string) *BackupUploader {
	return &BackupUploader{client: client, bucket: bucket, prefix: prefix}
}

// Upload stores data under prefix/key and returns the object key.
func (u *BackupUploader) Upload(ctx context.Context, key string, data []byte) (string, error) {
	objectKey := path.Join(u.prefix, key)
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(objectKey),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("upload backup %s: %w", objectKey, err)
	}
	return objectKey, nil
}
