package sthree

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/aws/aws-sdk-go/service/s3/s3manager/s3manageriface"
	"go.uber.org/zap"
)

// Option for the S3 store
type Option func(*s3Store)

// Region of the bucket
func Region(region string) Option {
	return func(s *s3Store) {
		if region != "" {
			s.awsConfig.Region = aws.String(region)
		}
	}
}

// Endpoint of an S3-compatible service (e.g. minio). Path-style addressing is used.
func Endpoint(endpoint string) Option {
	return func(s *s3Store) {
		if endpoint != "" {
			s.awsConfig.Endpoint = aws.String(endpoint)
			s.awsConfig.S3ForcePathStyle = aws.Bool(true)
		}
	}
}

// StaticCredentials to sign requests. When not set, the default AWS credential chain applies.
func StaticCredentials(accessKeyID, secretAccessKey string) Option {
	return func(s *s3Store) {
		if accessKeyID != "" {
			s.awsConfig.Credentials = credentials.NewStaticCredentials(accessKeyID, secretAccessKey, "")
		}
	}
}

// Client replaces the S3 API client
func Client(client s3iface.S3API) Option {
	return func(s *s3Store) {
		s.client = client
	}
}

// Uploader replaces the multipart uploader
func Uploader(uploader s3manageriface.UploaderAPI) Option {
	return func(s *s3Store) {
		s.uploader = uploader
	}
}

// Logger for the S3 store
func Logger(l *zap.Logger) Option {
	return func(s *s3Store) {
		if l != nil {
			s.l = l
		}
	}
}
