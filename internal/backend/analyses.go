package backend

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"net/url"
	"time"

	"golang.org/x/crypto/blake2b"

	"github.com/astrelina/helia/internal/models"
)

// AnalysisUpload describes one lab-analysis file to push to the backend.
type AnalysisUpload struct {
	Title      string
	FileName   string
	RecordDate time.Time
	UserID     string
	Content    io.Reader
}

func (c *Client) FetchAnalyses(ctx context.Context, userID string) ([]models.Analysis, error) {
	analyses := make([]models.Analysis, 0)
	err := c.getJSON(ctx, "fetch analyses", "/analysis/user/"+url.PathEscape(userID), &analyses)
	if err != nil {
		return nil, err
	}
	return analyses, nil
}

// UploadAnalysis sends the file as multipart form data. The body is hashed
// while it is buffered so the backend can verify the upload arrived intact.
func (c *Client) UploadAnalysis(ctx context.Context, upload AnalysisUpload) (models.Analysis, error) {
	hasher, err := blake2b.New256(nil)
	if err != nil {
		return models.Analysis{}, &TransportError{Op: "upload analysis", Err: err}
	}
	var buffered bytes.Buffer
	if _, err := io.Copy(io.MultiWriter(&buffered, hasher), upload.Content); err != nil {
		return models.Analysis{}, &TransportError{Op: "upload analysis", Err: fmt.Errorf("read file: %w", err)}
	}

	var created models.Analysis
	resp, err := c.rest.R().
		SetContext(ctx).
		SetFileReader("file", upload.FileName, bytes.NewReader(buffered.Bytes())).
		SetFormData(map[string]string{
			"title":      upload.Title,
			"recordDate": upload.RecordDate.Format(time.RFC3339),
			"userId":     upload.UserID,
		}).
		SetHeader("X-Content-Digest", "blake2b="+hex.EncodeToString(hasher.Sum(nil))).
		SetResult(&created).
		ForceContentType("application/json").
		Post("/analysis/upload")
	if err := examine("upload analysis", resp, err); err != nil {
		return models.Analysis{}, err
	}
	return created, nil
}

func (c *Client) DeleteAnalysis(ctx context.Context, id string) error {
	return c.deleteJSON(ctx, "delete analysis", "/analysis/"+url.PathEscape(id))
}

// DownloadAnalysis streams the stored file. The caller owns the returned
// body and must close it.
func (c *Client) DownloadAnalysis(ctx context.Context, id string) (io.ReadCloser, error) {
	resp, err := c.rest.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get("/analysis/file/" + url.PathEscape(id))
	if err != nil {
		return nil, &TransportError{Op: "download analysis", Err: err}
	}
	if resp.IsError() {
		resp.RawBody().Close()
		return nil, &TransportError{Op: "download analysis", Status: resp.StatusCode()}
	}
	return resp.RawBody(), nil
}
