package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	sc "github.com/dmitrijs2005/gophauth/internal/server/config"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
)

// avatarExtensions lists accepted upload content types.
var avatarExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// AvatarStorage hands out direct-upload URLs for avatar images.
type AvatarStorage interface {
	PresignUpload(ctx context.Context, key, contentType string, validity time.Duration) (string, error)
	ObjectURL(key string) string
}

// AvatarUpload tells the client where to PUT the image and what the avatar
// URL will be once it is there.
type AvatarUpload struct {
	UploadURL string
	AvatarURL string
	ExpiresAt time.Time
	User      models.Profile
}

// S3AvatarStorage presigns PUTs against an S3-compatible endpoint (MinIO in
// development) and builds path-style object URLs.
type S3AvatarStorage struct {
	config *sc.Config
}

func NewS3AvatarStorage(config *sc.Config) *S3AvatarStorage {
	return &S3AvatarStorage{config: config}
}

func (s *S3AvatarStorage) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return newS3PresignClient(client), nil
}

func (s *S3AvatarStorage) PresignUpload(ctx context.Context, key, contentType string, validity time.Duration) (string, error) {
	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return "", err
	}

	bucket := s.config.S3Bucket
	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		ContentType: &contentType,
	}, s3.WithPresignExpires(validity))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}

func (s *S3AvatarStorage) ObjectURL(key string) string {
	return strings.TrimRight(s.config.S3BaseEndpoint, "/") + "/" + s.config.S3Bucket + "/" + key
}

// AvatarKey builds the object key for a fresh avatar of userID.
func AvatarKey(userID, ext string) string {
	return fmt.Sprintf("avatars/%s/%s%s", userID, uuid.New(), ext)
}

// RequestAvatarUpload presigns an upload for a new avatar image and points
// the user's avatar at the future object.
func (s *UserService) RequestAvatarUpload(ctx context.Context, userID, contentType string) (*AvatarUpload, error) {
	ext, ok := avatarExtensions[strings.ToLower(strings.TrimSpace(contentType))]
	if !ok {
		v := &common.ValidationError{}
		v.Add("contentType", "Avatar must be a JPEG, PNG, GIF or WebP image")
		return nil, v
	}
	contentType = strings.ToLower(strings.TrimSpace(contentType))

	key := AvatarKey(userID, ext)
	expiresAt := s.now().Add(s.avatarUploadValidity)

	uploadURL, err := s.avatars.PresignUpload(ctx, key, contentType, s.avatarUploadValidity)
	if err != nil {
		return nil, s.internal(ctx, "avatar: presign", err)
	}

	avatarURL := s.avatars.ObjectURL(key)
	user, err := s.repomanager.Users(s.db).Update(ctx, userID, models.UserUpdate{Avatar: &avatarURL})
	if err != nil {
		return nil, s.authErr(ctx, "avatar: update", err)
	}

	s.logger.Info(ctx, "avatar upload issued", "user_id", userID, "key", key)
	return &AvatarUpload{
		UploadURL: uploadURL,
		AvatarURL: avatarURL,
		ExpiresAt: expiresAt,
		User:      user.Sanitize(),
	}, nil
}
