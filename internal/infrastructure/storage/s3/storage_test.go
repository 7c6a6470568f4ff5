package s3

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/kirillkom/resume-screener/internal/core/domain"
)

type objectAPIFake struct {
	objects map[string][]byte
	putErr  error
	getErr  error
}

func (f *objectAPIFake) PutObject(_ context.Context, in *awss3.PutObjectInput, _ ...func(*awss3.Options)) (*awss3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	raw, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	if aws.ToInt64(in.ContentLength) != int64(len(raw)) {
		return nil, errors.New("content length mismatch")
	}
	f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)] = raw
	return &awss3.PutObjectOutput{}, nil
}

func (f *objectAPIFake) GetObject(_ context.Context, in *awss3.GetObjectInput, _ ...func(*awss3.Options)) (*awss3.GetObjectOutput, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	raw, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &awss3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(raw))}, nil
}

func TestSaveOpenRoundTrip(t *testing.T) {
	fake := &objectAPIFake{objects: map[string][]byte{}}
	s := newWithClient(fake, "resumes", "https://cdn.example.com/")

	if err := s.Save(context.Background(), "id_cv.pdf", bytes.NewBufferString("%PDF")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	rc, err := s.Open(context.Background(), "id_cv.pdf")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer rc.Close()
	raw, _ := io.ReadAll(rc)
	if string(raw) != "%PDF" {
		t.Fatalf("unexpected body %q", raw)
	}
	if got := s.URL("id_cv.pdf"); got != "https://cdn.example.com/id_cv.pdf" {
		t.Fatalf("unexpected url %q", got)
	}
}

func TestOpenMissingKeyIsNotFound(t *testing.T) {
	s := newWithClient(&objectAPIFake{objects: map[string][]byte{}}, "resumes", "")
	if _, err := s.Open(context.Background(), "nope.pdf"); !domain.IsKind(err, domain.ErrDocumentNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestTransportErrorsAreTemporary(t *testing.T) {
	fake := &objectAPIFake{objects: map[string][]byte{}, putErr: errors.New("timeout"), getErr: errors.New("timeout")}
	s := newWithClient(fake, "resumes", "")
	if err := s.Save(context.Background(), "k.pdf", bytes.NewBufferString("x")); !domain.IsKind(err, domain.ErrTemporary) {
		t.Fatalf("expected temporary on put, got %v", err)
	}
	if _, err := s.Open(context.Background(), "k.pdf"); !domain.IsKind(err, domain.ErrTemporary) {
		t.Fatalf("expected temporary on get, got %v", err)
	}
}

func TestNewRequiresBucket(t *testing.T) {
	if _, err := New(context.Background(), Config{}); !domain.IsKind(err, domain.ErrConfig) {
		t.Fatalf("expected config error, got %v", err)
	}
}
