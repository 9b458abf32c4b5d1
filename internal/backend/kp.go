package backend

import (
	"context"
	"net/url"
	"time"

	"github.com/astrelina/helia/internal/models"
)

// FetchHistoricalKp loads measured geomagnetic values for the inclusive
// [start, end] day range.
func (c *Client) FetchHistoricalKp(ctx context.Context, start time.Time, end time.Time) ([]models.KpIndexEntry, error) {
	query := url.Values{}
	query.Set("start", start.Format("2006-01-02"))
	query.Set("end", end.Format("2006-01-02"))

	entries := make([]models.KpIndexEntry, 0)
	err := c.getJSON(ctx, "fetch historical kp", "/kp-index?"+query.Encode(), &entries)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *Client) FetchForecastKp(ctx context.Context) ([]models.KpIndexEntry, error) {
	entries := make([]models.KpIndexEntry, 0)
	err := c.getJSON(ctx, "fetch forecast kp", "/kp-index/forecast", &entries)
	if err != nil {
		return nil, err
	}
	return entries, nil
}
