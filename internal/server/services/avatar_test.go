package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/gophauth/internal/common"
	sc "github.com/dmitrijs2005/gophauth/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func s3TestConfig() *sc.Config {
	return &sc.Config{
		S3Region:       "us-east-1",
		S3RootUser:     "minioadmin",
		S3RootPassword: "minioadmin",
		S3BaseEndpoint: "http://127.0.0.1:9000/",
		S3Bucket:       "avatars",
	}
}

func stubPresignSeams(t *testing.T) {
	t.Helper()
	origLoad := loadDefaultAWSConfig
	origNewS3 := newS3ClientFromConfig
	origNewPre := newS3PresignClient
	origPut := presignPutObject
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNewS3
		newS3PresignClient = origNewPre
		presignPutObject = origPut
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			if err := fn(&lo); err != nil {
				t.Fatalf("load options fn error: %v", err)
			}
		}
		if lo.Region != "us-east-1" {
			t.Fatalf("region not applied: %q", lo.Region)
		}
		return aws.Config{}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		var opts s3.Options
		for _, fn := range optFns {
			fn(&opts)
		}
		if opts.BaseEndpoint == nil || *opts.BaseEndpoint != "http://127.0.0.1:9000/" {
			t.Fatalf("BaseEndpoint not applied")
		}
		if !opts.UsePathStyle {
			t.Fatalf("path style not enabled")
		}
		return &s3.Client{}
	}
	newS3PresignClient = func(c *s3.Client) *s3.PresignClient { return &s3.PresignClient{} }
}

func TestS3AvatarStorage_PresignUpload(t *testing.T) {
	stubPresignSeams(t)

	var gotBucket, gotKey, gotType string
	var gotExpires time.Duration
	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		gotBucket, gotKey, gotType = *in.Bucket, *in.Key, *in.ContentType
		var po s3.PresignOptions
		for _, fn := range optFns {
			fn(&po)
		}
		gotExpires = po.Expires
		return &v4.PresignedHTTPRequest{URL: "http://127.0.0.1:9000/avatars/k?X-Amz-Signature=abc", Method: http.MethodPut}, nil
	}

	st := NewS3AvatarStorage(s3TestConfig())
	url, err := st.PresignUpload(context.Background(), "avatars/u1/k.png", "image/png", 10*time.Minute)
	require.NoError(t, err)

	assert.Contains(t, url, "X-Amz-Signature")
	assert.Equal(t, "avatars", gotBucket)
	assert.Equal(t, "avatars/u1/k.png", gotKey)
	assert.Equal(t, "image/png", gotType)
	assert.Equal(t, 10*time.Minute, gotExpires)
}

func TestS3AvatarStorage_Errors(t *testing.T) {
	stubPresignSeams(t)
	st := NewS3AvatarStorage(s3TestConfig())

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return nil, errors.New("sign-fail")
	}
	_, err := st.PresignUpload(context.Background(), "k", "image/png", time.Minute)
	require.EqualError(t, err, "sign-fail")

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("load-fail")
	}
	_, err = st.PresignUpload(context.Background(), "k", "image/png", time.Minute)
	require.EqualError(t, err, "load-fail")
}

func TestS3AvatarStorage_ObjectURL(t *testing.T) {
	st := NewS3AvatarStorage(s3TestConfig())
	assert.Equal(t, "http://127.0.0.1:9000/avatars/avatars/u1/x.png", st.ObjectURL("avatars/u1/x.png"))
}

func TestAvatarKey(t *testing.T) {
	k := AvatarKey("u-1", ".png")
	assert.True(t, strings.HasPrefix(k, "avatars/u-1/"))
	assert.True(t, strings.HasSuffix(k, ".png"))
	assert.NotEqual(t, k, AvatarKey("u-1", ".png"))
}

func TestRequestAvatarUpload(t *testing.T) {
	svc, _, _ := newTestService(t)
	reg := register(t, svc, "Alice", "alice@example.com", "secret1")
	fa := &fakeAvatars{}
	svc.avatars = fa

	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	up, err := svc.RequestAvatarUpload(context.Background(), reg.User.ID, " Image/PNG ")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(fa.gotKey, "avatars/"+reg.User.ID+"/"))
	assert.Equal(t, "image/png", fa.gotType)
	assert.Equal(t, 15*time.Minute, fa.gotTTL)
	assert.Equal(t, fixed.Add(15*time.Minute), up.ExpiresAt)
	assert.Contains(t, up.UploadURL, fa.gotKey)
	assert.Equal(t, fa.ObjectURL(fa.gotKey), up.AvatarURL)
	assert.Equal(t, up.AvatarURL, up.User.Avatar)
}

func TestRequestAvatarUpload_Errors(t *testing.T) {
	svc, _, _ := newTestService(t)
	reg := register(t, svc, "Alice", "alice@example.com", "secret1")
	ctx := context.Background()

	_, err := svc.RequestAvatarUpload(ctx, reg.User.ID, "application/pdf")
	require.ErrorIs(t, err, common.ErrorValidation)

	_, err = svc.RequestAvatarUpload(ctx, "ghost", "image/png")
	require.ErrorIs(t, err, common.ErrorUnauthorized)

	svc.avatars = &fakeAvatars{presignErr: errors.New("s3 down")}
	_, err = svc.RequestAvatarUpload(ctx, reg.User.ID, "image/jpeg")
	require.ErrorIs(t, err, common.ErrorInternal)
}
