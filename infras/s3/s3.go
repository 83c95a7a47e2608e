package s3

//go:generate go run go.uber.org/mock/mockgen -source=./s3.go -destination=./mocks/s3_mock.go -package=mocks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"path"
	"slices"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"

	"seatdesk/config"
	"seatdesk/infras/otel"
	"seatdesk/shared/constant"
)

const (
	otelAttrObjectKey   = "object_key"
	otelAttrBucket      = "bucket"
	otelAttrContentType = "content_type"

	sniffLength = 512
	region      = "auto"
)

// ImageContentTypes are the sniffed types accepted for member photos.
var ImageContentTypes = []string{"image/jpeg", "image/png", "image/webp"}

var ErrUnsupportedContentType = errors.New("unsupported content type")

// S3 stores member photos in the configured bucket. Object keys are
// "<directory>/<file name>" and public URLs are "<public domain>/<object key>".
type S3 interface {
	UploadFile(ctx context.Context, directory string, file multipart.File, fileHeader *multipart.FileHeader, fileName string) (objectKey, url string, err error)
	DeleteFile(ctx context.Context, objectKey string) error
	ObjectKeyFromURL(url string) (objectKey string)
}

type s3Impl struct {
	Client *s3.Client
	Config *config.Config
	otel   otel.Otel
}

// UploadFile sniffs the body rather than trusting the multipart header and
// rejects anything that is not an image with ErrUnsupportedContentType.
func (svc *s3Impl) UploadFile(ctx context.Context, directory string, file multipart.File, fileHeader *multipart.FileHeader, fileName string) (objectKey, url string, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".UploadFile")
	defer scope.End()
	defer scope.TraceIfError(err)

	buf := bytes.NewBuffer(make([]byte, 0, fileHeader.Size))
	if _, err = buf.ReadFrom(file); err != nil {
		return constant.Empty, constant.Empty, fmt.Errorf("failed to read file: %w", err)
	}

	contentType := detectContentType(buf.Bytes())
	if !slices.Contains(ImageContentTypes, contentType) {
		return constant.Empty, constant.Empty, fmt.Errorf("%w: %s", ErrUnsupportedContentType, contentType)
	}

	bucket := svc.Config.External.S3.BucketName
	objectKey = path.Join(directory, fileName)

	scope.SetAttributes(map[string]any{
		otelAttrObjectKey:   objectKey,
		otelAttrBucket:      bucket,
		otelAttrContentType: contentType,
	})

	body := bytes.NewReader(buf.Bytes())

	_, err = svc.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(objectKey),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(body.Size()),
	})
	if err != nil {
		log.Error().Err(err).Str(otelAttrObjectKey, objectKey).Msg("failed to upload file to S3")

		return constant.Empty, constant.Empty, fmt.Errorf("failed to upload file to S3: %w", err)
	}

	return objectKey, publicURL(svc.Config.External.S3.PublicDomain, objectKey), nil
}

func (svc *s3Impl) DeleteFile(ctx context.Context, objectKey string) (err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".DeleteFile")
	defer scope.End()
	defer scope.TraceIfError(err)

	bucket := svc.Config.External.S3.BucketName

	scope.SetAttributes(map[string]any{
		otelAttrObjectKey: objectKey,
		otelAttrBucket:    bucket,
	})

	_, err = svc.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		log.Error().Err(err).Str(otelAttrObjectKey, objectKey).Msg("failed to delete file from S3")

		return fmt.Errorf("failed to delete file from S3: %w", err)
	}

	return nil
}

// ObjectKeyFromURL accepts URLs under the public domain as well as path
// style URLs on the API endpoint. Anything else yields an empty key.
func (svc *s3Impl) ObjectKeyFromURL(url string) string {
	s3Config := svc.Config.External.S3

	return objectKeyFromURL(url, s3Config.PublicDomain, s3Config.APIEndpoint, s3Config.BucketName)
}

func objectKeyFromURL(url, publicDomain, apiEndpoint, bucket string) string {
	prefixes := []string{
		strings.TrimSuffix(apiEndpoint, "/") + "/" + bucket + "/",
		strings.TrimSuffix(publicDomain, "/") + "/",
	}

	for _, prefix := range prefixes {
		if prefix == "/" {
			continue
		}

		if key, ok := strings.CutPrefix(url, prefix); ok && key != constant.Empty {
			return key
		}
	}

	return constant.Empty
}

func publicURL(publicDomain, objectKey string) string {
	return strings.TrimSuffix(publicDomain, "/") + "/" + objectKey
}

func detectContentType(data []byte) string {
	if len(data) > sniffLength {
		data = data[:sniffLength]
	}

	return http.DetectContentType(data)
}

func New(config *config.Config, otel otel.Otel) S3 {
	s3Config := config.External.S3

	staticProvider := credentials.NewStaticCredentialsProvider(
		s3Config.AccessKeyID,
		s3Config.SecretAccessKey,
		"",
	)

	cfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithCredentialsProvider(staticProvider),
		awsConfig.WithRegion(region),
	)
	if err != nil {
		log.Err(err).Msg("Error loading AWS configuration")
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s3Config.APIEndpoint)
		o.UsePathStyle = true
	})

	return &s3Impl{
		Client: client,
		Config: config,
		otel:   otel,
	}
}
