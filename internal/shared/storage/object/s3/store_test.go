package s3

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

func TestApplyPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
		key    string
		want   string
	}{
		{name: "no prefix", prefix: "", key: "ns/AAPL_research.pdf", want: "ns/AAPL_research.pdf"},
		{name: "simple prefix", prefix: "exports", key: "ns/AAPL_research.pdf", want: "exports/ns/AAPL_research.pdf"},
		{name: "prefix and key slashes", prefix: "/exports/", key: "/ns/a.md", want: "exports/ns/a.md"},
		{name: "empty key", prefix: "exports", key: "", want: "exports"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := applyPrefix(tt.prefix, tt.key); got != tt.want {
				t.Fatalf("applyPrefix(%q, %q) = %q, want %q", tt.prefix, tt.key, got, tt.want)
			}
		})
	}
}

func TestApplyEncryption(t *testing.T) {
	kms := &Store{kmsKeyID: "key-1"}
	in := &s3.PutObjectInput{}
	kms.applyEncryption(in)
	if in.ServerSideEncryption != s3types.ServerSideEncryptionAwsKms || in.SSEKMSKeyId == nil || *in.SSEKMSKeyId != "key-1" {
		t.Fatalf("expected kms encryption, got %+v", in)
	}

	plain := &Store{}
	in = &s3.PutObjectInput{}
	plain.applyEncryption(in)
	if in.ServerSideEncryption != s3types.ServerSideEncryptionAes256 {
		t.Fatalf("expected AES256, got %q", in.ServerSideEncryption)
	}
}
