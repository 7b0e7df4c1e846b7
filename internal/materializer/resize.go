package materializer

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"

	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/semaphore"
)

// 缩略图输出统一为 JPEG
const thumbnailMIMEType = "image/jpeg"

const jpegQuality = 85

// Resizer 生成缩略图字节。解码在受限并发下执行，避免批量上传时内存打满。
type Resizer struct {
	width int
	sem   *semaphore.Weighted
}

// NewResizer 创建缩放器
func NewResizer(width int, maxConcurrent int) *Resizer {
	if width <= 0 {
		width = 300
	}
	if maxConcurrent <= 0 {
		maxConcurrent = 4
	}
	return &Resizer{
		width: width,
		sem:   semaphore.NewWeighted(int64(maxConcurrent)),
	}
}

// Width 返回目标宽度
func (r *Resizer) Width() int {
	return r.width
}

// Thumbnail 解码图片并缩放到目标宽度，高度按纵横比缩放。
// 原图宽度不超过目标宽度时只重新编码，不放大。
func (r *Resizer) Thumbnail(ctx context.Context, data []byte) ([]byte, error) {
	if err := r.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer r.sem.Release(1)

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := src.Bounds()
	srcW, srcH := bounds.Dx(), bounds.Dy()
	if srcW <= 0 || srcH <= 0 {
		return nil, fmt.Errorf("invalid image dimensions: %dx%d", srcW, srcH)
	}

	dstW, dstH := srcW, srcH
	if srcW > r.width {
		dstW = r.width
		dstH = srcH * r.width / srcW
		if dstH < 1 {
			dstH = 1
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}

	return buf.Bytes(), nil
}
