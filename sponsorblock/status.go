package sponsorblock

import (
	"context"
	"encoding/json"
	"time"
)

// APIStatus reports the health and version information of the API server.
type APIStatus struct {
	// Uptime of the server process.
	Uptime time.Duration
	// Commit is the SHA-1 of the revision the server is running.
	Commit string
	// DBVersion is the database schema version.
	DBVersion int
	// StartTime is when the server received the status request.
	StartTime time.Time
	// ProcessTime is how long the server took to answer it.
	ProcessTime time.Duration
	// LoadAverage holds the server's 5- and 15-minute load averages.
	LoadAverage [2]float64
}

// rawAPIStatus is the wire form of a /status response.
type rawAPIStatus struct {
	Uptime      float64   `json:"uptime"`
	Commit      string    `json:"commit"`
	DB          int       `json:"db"`
	StartTime   int64     `json:"startTime"`
	ProcessTime float64   `json:"processTime"`
	LoadAvg     []float64 `json:"loadavg"`
}

// FetchAPIStatus fetches the API server's status. Errors are *ServiceError,
// *DecodeError, or *TransportError.
func (c *Client) FetchAPIStatus(ctx context.Context) (*APIStatus, error) {
	body, err := c.get(ctx, c.config.BaseURL+"/status")
	if err != nil {
		return nil, err
	}
	if body == nil {
		return nil, &ServiceError{StatusCode: 404}
	}

	var raw rawAPIStatus
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &DecodeError{Err: err}
	}

	status := &APIStatus{
		Uptime:      time.Duration(raw.Uptime * float64(time.Second)),
		Commit:      raw.Commit,
		DBVersion:   raw.DB,
		StartTime:   time.UnixMilli(raw.StartTime).UTC(),
		ProcessTime: time.Duration(raw.ProcessTime * float64(time.Millisecond)),
	}
	// The API reports two load averages; tolerate fewer.
	for i := 0; i < len(raw.LoadAvg) && i < 2; i++ {
		status.LoadAverage[i] = raw.LoadAvg[i]
	}
	return status, nil
}
