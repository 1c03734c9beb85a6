// Package objectstore turns stored avatar references into URLs a browser can
// load.
package objectstore

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/gravadigital/community-api/internal/config"
	"github.com/gravadigital/community-api/internal/logger"
)

// Presigner is the part of the minio client the resolver needs
type Presigner interface {
	PresignedGetObject(ctx context.Context, bucketName, objectName string, expires time.Duration, reqParams url.Values) (*url.URL, error)
}

// AvatarResolver resolves the avatar_url column. Absolute URLs are returned
// as they are; anything else is an object key in the avatars bucket and gets
// a presigned GET URL.
type AvatarResolver struct {
	client Presigner
	bucket string
	expiry time.Duration
	log    *log.Logger
}

// NewAvatarResolver connects to the configured object store. Without an
// endpoint the resolver still passes absolute URLs through and blanks keys.
func NewAvatarResolver(cfg *config.Config) (*AvatarResolver, error) {
	r := &AvatarResolver{
		bucket: cfg.Avatars.Bucket,
		expiry: cfg.Avatars.URLExpiry,
		log:    logger.Client("avatars"),
	}

	if strings.TrimSpace(cfg.Avatars.Endpoint) == "" {
		r.log.Warn("MINIO_ENDPOINT not set, avatar object keys will not resolve")
		return r, nil
	}

	client, err := minio.New(cfg.Avatars.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Avatars.AccessKey, cfg.Avatars.SecretKey, ""),
		Secure: cfg.Avatars.UseSSL,
		Region: cfg.Avatars.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object store client: %w", err)
	}
	r.client = client

	r.log.Info("Avatar resolver ready", "endpoint", cfg.Avatars.Endpoint, "bucket", r.bucket, "expiry", r.expiry)
	return r, nil
}

// NewAvatarResolverWithClient builds a resolver around an existing client
func NewAvatarResolverWithClient(client Presigner, bucket string, expiry time.Duration) *AvatarResolver {
	return &AvatarResolver{
		client: client,
		bucket: bucket,
		expiry: expiry,
		log:    logger.Client("avatars"),
	}
}

// Resolve returns a loadable URL for raw, or "" when there is none. Presign
// failures are logged and yield "" so one bad avatar never fails a page.
func (r *AvatarResolver) Resolve(ctx context.Context, raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || isAbsoluteURL(raw) {
		return raw
	}

	if r == nil || r.client == nil {
		return ""
	}

	key := strings.TrimPrefix(raw, "/")
	key = strings.TrimPrefix(key, r.bucket+"/")

	u, err := r.client.PresignedGetObject(ctx, r.bucket, key, r.expiry, nil)
	if err != nil {
		r.log.Warn("Failed to presign avatar", "key", key, "error", err)
		return ""
	}
	return u.String()
}

func isAbsoluteURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
