package gateway

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"forkful/models"
)

func (g *Gateway) UploadImage(ctx context.Context, filename string, src io.Reader) (*models.UploadResponse, error) {
	var out models.UploadResponse
	if err := g.uploadMultipart(ctx, "/upload/image", "image", filename, src, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *Gateway) DeleteImage(ctx context.Context, publicID string) (*models.MessageResponse, error) {
	var out models.MessageResponse
	if err := g.do(ctx, http.MethodDelete, "/upload/image/"+url.PathEscape(publicID), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
