// Package s3 provides an AWS S3 layer
package s3

import (
	"errors"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	s3 "github.com/fclairamb/afero-s3"
	"github.com/spf13/afero"

	"github.com/portside/ftpd/models"
)

// ErrMissingBucket is returned if an S3 bucket wasn't specified.
var ErrMissingBucket = errors.New("missing bucket")

// LoadFs loads a file system from an access description
func LoadFs(access *models.Access) (afero.Fs, error) {
	bucket := access.Params["bucket"]
	if bucket == "" {
		return nil, ErrMissingBucket
	}

	conf := &aws.Config{
		Region: aws.String(access.Params["region"]),
	}

	if endpoint := access.Params["endpoint"]; endpoint != "" {
		conf.Endpoint = aws.String(endpoint)
		conf.S3ForcePathStyle = aws.Bool(true)
	}

	if key := access.Params["access_key"]; key != "" {
		conf.Credentials = credentials.NewStaticCredentials(key, access.Params["secret"], "")
	}

	sess, err := session.NewSession(conf)
	if err != nil {
		return nil, err
	}

	return s3.NewFs(bucket, sess), nil
}
