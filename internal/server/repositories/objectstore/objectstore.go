// Package objectstore is a Store kept in an S3-compatible bucket as one JSON
// document per user: users/<email>.json holds the credential and
// people/<email>.json the person collection.
package objectstore

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/Harshinireddy05/DayntTech/internal/common"
	sc "github.com/Harshinireddy05/DayntTech/internal/server/config"
	"github.com/Harshinireddy05/DayntTech/internal/server/models"
	"github.com/Harshinireddy05/DayntTech/internal/server/repositories"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

const (
	usersPrefix  = "users/"
	peoplePrefix = "people/"
	jsonSuffix   = ".json"
)

// Client is the part of *s3.Client the store uses.
type Client interface {
	s3.ListObjectsV2APIClient
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadBucket(ctx context.Context, in *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	CreateBucket(ctx context.Context, in *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
}

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) Client {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

type Store struct {
	mu     sync.Mutex
	client Client
	bucket string
}

// New builds an S3 client from the server configuration, makes sure the
// bucket exists and returns the store.
func New(ctx context.Context, c *sc.Config) (*Store, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(c.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			c.S3RootUser,
			c.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(c.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	s := NewWithClient(client, c.S3Bucket)
	if err := s.ensureBucket(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// NewWithClient wraps an existing client. The bucket must already exist.
func NewWithClient(client Client, bucket string) *Store {
	return &Store{client: client, bucket: bucket}
}

func (s *Store) ensureBucket(ctx context.Context) error {
	if _, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)}); err == nil {
		return nil
	}
	_, err := s.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(s.bucket)})
	if err != nil && !hasCode(err, "BucketAlreadyOwnedByYou", "BucketAlreadyExists") {
		return fmt.Errorf("create bucket %s: %w", s.bucket, err)
	}
	return nil
}

func (s *Store) ListPeople(ctx context.Context, email string) ([]models.Person, error) {
	var people []models.Person
	if err := s.getJSON(ctx, peopleKey(email), &people); err != nil {
		return nil, err
	}
	return repositories.ClonePeople(people), nil
}

func (s *Store) SavePeople(ctx context.Context, email string, people []models.Person) error {
	return s.putJSON(ctx, peopleKey(email), repositories.ClonePeople(people), false)
}

func (s *Store) ListUsers(ctx context.Context) ([]models.Credential, error) {
	p := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(usersPrefix),
	})

	out := []models.Credential{}
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list users: %w", err)
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if !strings.HasSuffix(key, jsonSuffix) {
				continue
			}
			var c models.Credential
			if err := s.getJSON(ctx, key, &c); err != nil {
				if errors.Is(err, common.ErrorNotFound) {
					continue
				}
				return nil, err
			}
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (s *Store) AddUser(ctx context.Context, cred models.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var existing models.Credential
	err := s.getJSON(ctx, userKey(cred.Email), &existing)
	switch {
	case err == nil:
		return common.ErrorAlreadyExists
	case !errors.Is(err, common.ErrorNotFound):
		return err
	}
	return s.putJSON(ctx, userKey(cred.Email), cred, true)
}

func (s *Store) FindUser(ctx context.Context, email string) (*models.Credential, error) {
	var c models.Credential
	if err := s.getJSON(ctx, userKey(email), &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Store) Close() error { return nil }

func (s *Store) getJSON(ctx context.Context, key string, v any) error {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("get %s: %w", key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return fmt.Errorf("read %s: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

// putJSON writes v under key. With createOnly the write is conditional on
// the key being absent, and a lost race reports common.ErrorAlreadyExists.
func (s *Store) putJSON(ctx context.Context, key string, v any, createOnly bool) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	in := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	}
	if createOnly {
		in.IfNoneMatch = aws.String("*")
	}

	if _, err := s.client.PutObject(ctx, in); err != nil {
		if createOnly && hasCode(err, "PreconditionFailed") {
			return common.ErrorAlreadyExists
		}
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

// Object names carry the hex-encoded email so an address can never add path
// segments to a key.
func userKey(email string) string {
	return usersPrefix + hex.EncodeToString([]byte(email)) + jsonSuffix
}

func peopleKey(email string) string {
	return peoplePrefix + hex.EncodeToString([]byte(email)) + jsonSuffix
}

func isNotFound(err error) bool {
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	return hasCode(err, "NotFound", "NoSuchKey")
}

func hasCode(err error, codes ...string) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	for _, c := range codes {
		if apiErr.ErrorCode() == c {
			return true
		}
	}
	return false
}

var _ repositories.Store = (*Store)(nil)
