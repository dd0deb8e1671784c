package provider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/huongpham911/cloudwin-sub002/internal/model"
)

// ObjectStore talks to the provider's S3-compatible data plane using a
// tenant's access key pair. Clients are built per call so one tenant's keys
// never outlive the call that needed them.
type ObjectStore struct {
	// endpointPattern contains one %s placeholder for the region,
	// e.g. "https://%s.digitaloceanspaces.com".
	endpointPattern string
}

func NewObjectStore(endpointPattern string) *ObjectStore {
	return &ObjectStore{endpointPattern: endpointPattern}
}

func (o *ObjectStore) client(t model.Tenant, region string) *s3.Client {
	return s3.New(s3.Options{
		BaseEndpoint: aws.String(fmt.Sprintf(o.endpointPattern, region)),
		Region:       region,
		Credentials:  credentials.NewStaticCredentialsProvider(t.AccessKey, t.SecretKey, ""),
		UsePathStyle: true,
	})
}

// classifyS3 maps an S3 SDK error to a CallError.
func classifyS3(op string, err error) *CallError {
	if errors.Is(err, context.DeadlineExceeded) {
		return newCallError(op, KindTimeout, 0, err)
	}
	msg := err.Error()
	if strings.Contains(msg, "AccessDenied") ||
		strings.Contains(msg, "InvalidAccessKeyId") ||
		strings.Contains(msg, "SignatureDoesNotMatch") {
		return newCallError(op, KindUnauthorized, 0, err)
	}
	return newCallError(op, KindNetwork, 0, err)
}

// ListObjects lists objects in a bucket under an optional key prefix,
// exhausting pagination before returning.
func (o *ObjectStore) ListObjects(ctx context.Context, t model.Tenant, region, bucket, prefix string) ([]model.ObjectFile, error) {
	client := o.client(t, region)

	input := &s3.ListObjectsV2Input{Bucket: aws.String(bucket)}
	if prefix != "" {
		input.Prefix = aws.String(prefix)
	}

	var files []model.ObjectFile
	paginator := s3.NewListObjectsV2Paginator(client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, classifyS3("list objects", err)
		}
		for _, obj := range page.Contents {
			f := model.ObjectFile{
				Key:       aws.ToString(obj.Key),
				SizeBytes: aws.ToInt64(obj.Size),
				ETag:      strings.Trim(aws.ToString(obj.ETag), `"`),
			}
			if obj.LastModified != nil {
				f.LastModified = *obj.LastModified
			}
			files = append(files, f)
		}
	}
	return files, nil
}

// DeleteObject removes one object from a bucket.
func (o *ObjectStore) DeleteObject(ctx context.Context, t model.Tenant, region, bucket, key string) error {
	client := o.client(t, region)
	_, err := client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return classifyS3("delete object", err)
	}
	return nil
}

// PutObject uploads one object into a bucket and returns its stored shape.
func (o *ObjectStore) PutObject(ctx context.Context, t model.Tenant, region, bucket, key string, body io.Reader, contentType string) (*model.ObjectFile, error) {
	client := o.client(t, region)

	input := &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	out, err := client.PutObject(ctx, input)
	if err != nil {
		return nil, classifyS3("put object", err)
	}

	return &model.ObjectFile{
		Key:         key,
		ETag:        strings.Trim(aws.ToString(out.ETag), `"`),
		ContentType: contentType,
	}, nil
}
