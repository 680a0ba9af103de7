package s3

//go:generate go run go.uber.org/mock/mockgen -source=./s3.go -destination=./mocks/s3_mock.go -package=mocks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"hotel/config"
	"hotel/infras/otel"
	"hotel/shared/constant"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

const (
	otelAttrObjectKey = "object_key"
	otelAttrBucket    = "bucket"
	s3Region          = "auto"
)

var ErrNotConfigured = errors.New("object storage is not configured")

// Object is a file ready to be stored.
type Object struct {
	Directory   string
	Name        string
	ContentType string
	Body        io.Reader
}

type S3 interface {
	Upload(ctx context.Context, object Object) (url string, err error)
	Delete(ctx context.Context, url string) error
	ObjectKeyFromURL(url string) (objectKey string)
}

type s3Impl struct {
	Client *s3.Client
	Config *config.Config
	otel   otel.Otel
}

// Upload stores the object under directory/name and returns its public URL.
func (svc *s3Impl) Upload(ctx context.Context, object Object) (url string, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".Upload")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if svc.Client == nil {
		return constant.Empty, ErrNotConfigured
	}

	bucket := svc.Config.External.S3.BucketName
	objectKey := path.Join(object.Directory, object.Name)

	scope.SetAttributes(map[string]any{
		otelAttrObjectKey: objectKey,
		otelAttrBucket:    bucket,
	})

	buf := bytes.NewBuffer(nil)
	if _, err = buf.ReadFrom(object.Body); err != nil {
		return constant.Empty, fmt.Errorf("failed to read file: %w", err)
	}

	fileReader := bytes.NewReader(buf.Bytes())

	_, err = svc.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(objectKey),
		Body:          fileReader,
		ContentType:   aws.String(object.ContentType),
		ContentLength: aws.Int64(fileReader.Size()),
	})
	if err != nil {
		log.Error().Err(err).Str("key", objectKey).Msg("failed to upload file to S3")

		return constant.Empty, fmt.Errorf("failed to upload file to S3: %w", err)
	}

	return svc.publicURL(bucket, objectKey), nil
}

// Delete removes the object behind a URL previously returned by Upload.
func (svc *s3Impl) Delete(ctx context.Context, url string) (err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if svc.Client == nil {
		return ErrNotConfigured
	}

	objectKey := svc.ObjectKeyFromURL(url)
	if objectKey == constant.Empty {
		return fmt.Errorf("url %q does not belong to bucket %s", url, svc.Config.External.S3.BucketName)
	}

	scope.SetAttribute(otelAttrObjectKey, objectKey)

	_, err = svc.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(svc.Config.External.S3.BucketName),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		log.Error().Err(err).Str("key", objectKey).Msg("failed to delete file from S3")

		return fmt.Errorf("failed to delete file from S3: %w", err)
	}

	return nil
}

// ObjectKeyFromURL reverses publicURL. Unknown URLs yield an empty key.
func (svc *s3Impl) ObjectKeyFromURL(url string) (objectKey string) {
	bucket := svc.Config.External.S3.BucketName

	for _, prefix := range []string{
		strings.TrimSuffix(svc.Config.External.S3.PublicDomain, "/") + "/",
		fmt.Sprintf("%s/%s/", strings.TrimSuffix(svc.Config.External.S3.APIEndpoint, "/"), bucket),
	} {
		if prefix != "/" && strings.HasPrefix(url, prefix) {
			return strings.TrimPrefix(url, prefix)
		}
	}

	return constant.Empty
}

func (svc *s3Impl) publicURL(bucket, objectKey string) string {
	if publicDomain := svc.Config.External.S3.PublicDomain; publicDomain != "" {
		return fmt.Sprintf("%s/%s", strings.TrimSuffix(publicDomain, "/"), objectKey)
	}

	return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(svc.Config.External.S3.APIEndpoint, "/"), bucket, objectKey)
}

func New(config *config.Config, otel otel.Otel) S3 {
	svc := &s3Impl{
		Config: config,
		otel:   otel,
	}

	endpoint := config.External.S3.APIEndpoint
	if endpoint == "" {
		log.Warn().Msg("S3 endpoint not configured, room image upload disabled")

		return svc
	}

	staticProvider := credentials.NewStaticCredentialsProvider(
		config.External.S3.AccessKeyID,
		config.External.S3.SecretAccessKey,
		"",
	)

	cfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithCredentialsProvider(staticProvider),
		awsConfig.WithRegion(s3Region),
	)
	if err != nil {
		log.Error().Err(err).Msg("Error loading AWS configuration")

		return svc
	}

	svc.Client = s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})

	return svc
}
