package gateway

import (
	"context"
	"net/http"
	"net/url"

	"forkful/models"
)

func (g *Gateway) ListComments(ctx context.Context, recipeID string) (*models.CommentsResponse, error) {
	var out models.CommentsResponse
	path := "/recipes/" + url.PathEscape(recipeID) + "/comments"
	if err := g.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	if out.Comments == nil {
		out.Comments = []models.Comment{}
	}
	return &out, nil
}

func (g *Gateway) CreateComment(ctx context.Context, recipeID, text string) (*models.CommentResponse, error) {
	body := map[string]string{"text": text}
	var out models.CommentResponse
	path := "/recipes/" + url.PathEscape(recipeID) + "/comments"
	if err := g.do(ctx, http.MethodPost, path, nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *Gateway) DeleteComment(ctx context.Context, recipeID, commentID string) (*models.MessageResponse, error) {
	var out models.MessageResponse
	path := "/recipes/" + url.PathEscape(recipeID) + "/comments/" + url.PathEscape(commentID)
	if err := g.do(ctx, http.MethodDelete, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
