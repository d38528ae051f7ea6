package objectstore

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Harshinireddy05/DayntTech/internal/common"
	sc "github.com/Harshinireddy05/DayntTech/internal/server/config"
	"github.com/Harshinireddy05/DayntTech/internal/server/models"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	mu       sync.Mutex
	objects  map[string][]byte
	buckets  map[string]bool
	getErr   error
	pageSize int
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}, buckets: map[string]bool{}, pageSize: 1}
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	data, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := aws.ToString(in.Key)
	if aws.ToString(in.IfNoneMatch) == "*" {
		if _, ok := f.objects[key]; ok {
			return nil, &smithy.GenericAPIError{Code: "PreconditionFailed"}
		}
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[key] = data
	return &s3.PutObjectOutput{}, nil
}

// ListObjectsV2 pages pageSize keys at a time so the paginator is exercised.
func (f *fakeS3) ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var keys []string
	for k := range f.objects {
		if strings.HasPrefix(k, aws.ToString(in.Prefix)) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	start := 0
	if tok := aws.ToString(in.ContinuationToken); tok != "" {
		start = sort.SearchStrings(keys, tok)
	}
	end := min(start+f.pageSize, len(keys))

	out := &s3.ListObjectsV2Output{IsTruncated: aws.Bool(end < len(keys))}
	for _, k := range keys[start:end] {
		out.Contents = append(out.Contents, types.Object{Key: aws.String(k)})
	}
	if end < len(keys) {
		out.NextContinuationToken = aws.String(keys[end])
	}
	return out, nil
}

func (f *fakeS3) HeadBucket(ctx context.Context, in *s3.HeadBucketInput, _ ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.buckets[aws.ToString(in.Bucket)] {
		return nil, &types.NotFound{}
	}
	return &s3.HeadBucketOutput{}, nil
}

func (f *fakeS3) CreateBucket(ctx context.Context, in *s3.CreateBucketInput, _ ...func(*s3.Options)) (*s3.CreateBucketOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.buckets[aws.ToString(in.Bucket)] = true
	return &s3.CreateBucketOutput{}, nil
}

func TestPeople_RoundTrip(t *testing.T) {
	fake := newFakeS3()
	s := NewWithClient(fake, "bucket")
	ctx := context.Background()

	_, err := s.ListPeople(ctx, "a@x.com")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	people := []models.Person{{ID: 1, Name: "Ada", DateOfBirth: models.NewDate(1990, time.May, 1)}}
	require.NoError(t, s.SavePeople(ctx, "a@x.com", people))
	assert.Contains(t, string(fake.objects[peopleKey("a@x.com")]), `"dateOfBirth":"1990-05-01"`)

	got, err := s.ListPeople(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, people, got)
}

func TestPeople_EmptyCollectionIsStoredAsArray(t *testing.T) {
	fake := newFakeS3()
	s := NewWithClient(fake, "bucket")
	ctx := context.Background()

	require.NoError(t, s.SavePeople(ctx, "a@x.com", nil))
	assert.Equal(t, "[]", string(fake.objects[peopleKey("a@x.com")]))

	got, err := s.ListPeople(ctx, "a@x.com")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestUsers_AddFindList(t *testing.T) {
	s := NewWithClient(newFakeS3(), "bucket")
	ctx := context.Background()

	for _, e := range []string{"c@x.com", "a@x.com", "b@x.com"} {
		require.NoError(t, s.AddUser(ctx, models.Credential{Email: e, PasswordHash: "h-" + e}))
	}
	assert.ErrorIs(t, s.AddUser(ctx, models.Credential{Email: "a@x.com"}), common.ErrorAlreadyExists)

	c, err := s.FindUser(ctx, "b@x.com")
	require.NoError(t, err)
	assert.Equal(t, "h-b@x.com", c.PasswordHash)

	_, err = s.FindUser(ctx, "ghost@x.com")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	all, err := s.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"a@x.com", "b@x.com", "c@x.com"}, []string{all[0].Email, all[1].Email, all[2].Email})
}

func TestAddUser_ConditionalWriteLost(t *testing.T) {
	fake := newFakeS3()
	s := NewWithClient(fake, "bucket")

	err := s.putJSON(context.Background(), userKey("a@x.com"), models.Credential{Email: "a@x.com"}, true)
	require.NoError(t, err)
	err = s.putJSON(context.Background(), userKey("a@x.com"), models.Credential{Email: "a@x.com"}, true)
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestGet_BackendErrorIsWrapped(t *testing.T) {
	fake := newFakeS3()
	fake.getErr = errors.New("connection reset")
	s := NewWithClient(fake, "bucket")

	_, err := s.FindUser(context.Background(), "a@x.com")
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrorNotFound)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestNew_CreatesBucketWithConfiguredEndpoint(t *testing.T) {
	fake := newFakeS3()

	origLoad, origNew := loadDefaultAWSConfig, newS3ClientFromConfig
	t.Cleanup(func() { loadDefaultAWSConfig, newS3ClientFromConfig = origLoad, origNew })

	var region string
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*config.LoadOptions) error) (aws.Config, error) {
		var lo config.LoadOptions
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		region = lo.Region
		return aws.Config{}, nil
	}
	var endpoint string
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) Client {
		var o s3.Options
		for _, fn := range optFns {
			fn(&o)
		}
		endpoint = aws.ToString(o.BaseEndpoint)
		return fake
	}

	c := &sc.Config{}
	c.LoadDefaults()

	s, err := New(context.Background(), c)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "us-east-1", region)
	assert.Equal(t, "http://127.0.0.1:9000/", endpoint)
	assert.True(t, fake.buckets["peoplehub"])
}

func TestNew_ConfigError(t *testing.T) {
	orig := loadDefaultAWSConfig
	t.Cleanup(func() { loadDefaultAWSConfig = orig })

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*config.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("load-fail")
	}

	c := &sc.Config{}
	c.LoadDefaults()
	_, err := New(context.Background(), c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load-fail")
}

func TestKeys_EncodeEmail(t *testing.T) {
	assert.Equal(t, "users/6140782e636f6d.json", userKey("a@x.com"))
	assert.Equal(t, "people/6140782e636f6d.json", peopleKey("a@x.com"))

	for _, email := range []string{"../users/victim@x.com", "a/b@x.com", `..\x@x.com`} {
		u := strings.TrimSuffix(strings.TrimPrefix(userKey(email), usersPrefix), jsonSuffix)
		p := strings.TrimSuffix(strings.TrimPrefix(peopleKey(email), peoplePrefix), jsonSuffix)
		assert.NotContains(t, u, "/", email)
		assert.NotContains(t, p, "/", email)
		assert.NotContains(t, u, ".", email)
	}
}

func TestAddUser_PathLikeEmailDoesNotTouchOtherUsers(t *testing.T) {
	fake := newFakeS3()
	s := NewWithClient(fake, "bucket")
	ctx := context.Background()

	require.NoError(t, s.AddUser(ctx, models.Credential{Email: "victim@x.com", PasswordHash: "victim"}))
	require.NoError(t, s.AddUser(ctx, models.Credential{Email: "../users/victim@x.com", PasswordHash: "attacker"}))
	require.NoError(t, s.SavePeople(ctx, "../people/victim@x.com", nil))

	c, err := s.FindUser(ctx, "victim@x.com")
	require.NoError(t, err)
	assert.Equal(t, "victim", c.PasswordHash)

	_, err = s.ListPeople(ctx, "victim@x.com")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
