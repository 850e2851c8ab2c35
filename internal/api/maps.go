package api

import (
	"context"
	"net/http"
	"net/url"
)

// UploadMap stores a GeoJSON document on the server.
func (c *Client) UploadMap(ctx context.Context, name string, data []byte) (*Upload, error) {
	query := url.Values{}
	if name != "" {
		query.Set("name", name)
	}

	var resp Upload
	if err := c.send(ctx, http.MethodPost, apiPrefix+"/maps", query, data, "application/geo+json", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetMap returns the metadata of an upload.
func (c *Client) GetMap(ctx context.Context, id string) (*Upload, error) {
	var resp Upload
	if err := c.get(ctx, apiPrefix+"/maps/"+escapePath(id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteMap removes an upload.
func (c *Client) DeleteMap(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, apiPrefix+"/maps/"+escapePath(id), nil, nil, "", nil)
}

// Join joins an upload with the state table on column. An empty column
// uses the server's guess.
func (c *Client) Join(ctx context.Context, id, column string) (*JoinResponse, error) {
	var resp JoinResponse
	if err := c.get(ctx, apiPrefix+"/maps/"+escapePath(id)+"/join", columnQuery(column), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// MapSVG renders the choropleth of an upload.
func (c *Client) MapSVG(ctx context.Context, id, column string) ([]byte, error) {
	return c.doWithRetry(ctx, apiPrefix+"/maps/"+escapePath(id)+"/map.svg", columnQuery(column))
}

func columnQuery(column string) url.Values {
	if column == "" {
		return nil
	}
	return url.Values{"column": {column}}
}
