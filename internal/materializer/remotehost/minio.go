package remotehost

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type minioHost struct {
	client  *minio.Client
	bucket  string
	prefix  string
	baseURL string
}

// newMinioHost 创建 MinIO 远程主机
func newMinioHost(opts *Options) (*minioHost, error) {
	if opts.Endpoint == "" {
		return nil, fmt.Errorf("minio endpoint is required")
	}
	if opts.Bucket == "" {
		return nil, fmt.Errorf("minio bucket is required")
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          256,
		MaxIdleConnsPerHost:   16,
		IdleConnTimeout:       time.Minute,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 10 * time.Second,
		DisableCompression:    true,
	}

	if opts.UseSSL {
		transport.TLSClientConfig = &tls.Config{
			MinVersion: tls.VersionTLS12,
		}
	}

	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:     credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure:    opts.UseSSL,
		Transport: transport,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize MinIO client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, opts.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check if bucket '%s' exists: %w", opts.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, opts.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket '%s': %w", opts.Bucket, err)
		}
		log.Printf("Successfully created bucket: %s", opts.Bucket)
	}

	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		scheme := "http"
		if opts.UseSSL {
			scheme = "https"
		}
		baseURL = fmt.Sprintf("%s://%s/%s", scheme, opts.Endpoint, opts.Bucket)
	}

	return &minioHost{
		client:  client,
		bucket:  opts.Bucket,
		prefix:  opts.Prefix,
		baseURL: baseURL,
	}, nil
}

// Upload 上传缩略图字节到 MinIO
func (h *minioHost) Upload(ctx context.Context, key string, contentType string, data []byte) (string, string, error) {
	objectName := objectKey(h.prefix, key)

	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := h.client.PutObject(ctx, h.bucket, objectName, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to upload object '%s' to minio: %w", objectName, err)
	}

	return objectName, h.baseURL + "/" + objectName, nil
}

// Destroy 删除远程缩略图
func (h *minioHost) Destroy(ctx context.Context, publicID string) error {
	err := h.client.RemoveObject(ctx, h.bucket, publicID, minio.RemoveObjectOptions{})
	if err != nil {
		errResponse := minio.ToErrorResponse(err)
		if errResponse.Code == "NoSuchKey" {
			return nil
		}
		return fmt.Errorf("failed to delete object '%s' from minio: %w", publicID, err)
	}

	return nil
}

// Health 检查 bucket 连通性
func (h *minioHost) Health(ctx context.Context) error {
	_, err := h.client.BucketExists(ctx, h.bucket)
	return err
}

// Name 返回主机名称
func (h *minioHost) Name() string {
	return fmt.Sprintf("minio:%s/%s", h.client.EndpointURL().Host, h.bucket)
}
