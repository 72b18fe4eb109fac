package remote

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/theapemachine/qbench"
	"github.com/theapemachine/qbench/simulator"
)

// Client is a qbench.Simulator that runs circuits on a remote Server.
type Client struct {
	endpoint   string
	httpClient *http.Client
	limiter    *RateLimiter
}

type ClientOption func(*Client)

// WithHTTPClient replaces the default client, which times out after a minute.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(client *Client) {
		client.httpClient = httpClient
	}
}

// WithRateLimit allows burst requests at once and one more per refill period.
func WithRateLimit(burst int, refill time.Duration) ClientOption {
	return func(client *Client) {
		client.limiter = NewRateLimiter(burst, refill)
	}
}

func NewClient(endpoint string, opts ...ClientOption) *Client {
	client := &Client{
		endpoint:   strings.TrimRight(endpoint, "/"),
		httpClient: &http.Client{Timeout: time.Minute},
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Simulate posts the circuit and returns the remote histogram.
func (client *Client) Simulate(
	ctx context.Context, circuit qbench.Circuit, noise qbench.NoiseModel, shots int,
) (qbench.Histogram, error) {
	req, err := newRequest(ctx, circuit, noise, shots)
	if err != nil {
		return nil, err
	}

	body, err := SerializeMessage(req)
	if err != nil {
		return nil, errors.Wrap(err, "remote: encoding request")
	}

	if client.limiter != nil {
		if err := client.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	httpReq, err := http.NewRequestWithContext(
		ctx, http.MethodPost, client.endpoint+"/simulate", bytes.NewReader(body),
	)
	if err != nil {
		return nil, errors.Wrap(err, "remote: building request")
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := client.httpClient.Do(httpReq)
	if err != nil {
		return nil, errors.Wrap(err, "remote: posting circuit")
	}
	defer resp.Body.Close()

	out, err := DecodeMessage[SimulateResponse](resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "remote: decoding response (%d)", resp.StatusCode)
	}

	if resp.StatusCode != http.StatusOK || out.Error != "" {
		return nil, errors.Errorf("remote: simulation %s failed (%d): %s", req.ID, resp.StatusCode, out.Error)
	}

	if out.Counts == nil {
		out.Counts = qbench.Histogram{}
	}

	return out.Counts, nil
}

// Health reports whether the server answers its health check.
func (client *Client) Health(ctx context.Context) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, client.endpoint+"/healthz", nil)
	if err != nil {
		return err
	}

	resp, err := client.httpClient.Do(httpReq)
	if err != nil {
		return errors.Wrap(err, "remote: health check")
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("remote: health check returned %d", resp.StatusCode)
	}

	return nil
}

func newRequest(
	ctx context.Context, circuit qbench.Circuit, noise qbench.NoiseModel, shots int,
) (*SimulateRequest, error) {
	req := &SimulateRequest{
		ID:       uuid.NewString(),
		Qubits:   circuit.Qubits,
		Gates:    make([][][2]float64, len(circuit.Gates)),
		Measured: circuit.Measured,
		Shots:    shots,
	}

	switch v := noise.(type) {
	case nil:
	case simulator.NoiseModel:
		req.Noise = &v
	case *simulator.NoiseModel:
		req.Noise = v
	default:
		return nil, errors.Errorf("remote: cannot send noise model %T", noise)
	}

	for i, gate := range circuit.Gates {
		unitary, ok := gate.(simulator.Unitary)
		if !ok {
			return nil, errors.Errorf("remote: gate %d (%T) has no matrix", i, gate)
		}
		req.Gates[i] = encodeMatrix(unitary.Matrix())
	}

	if stream, ok := qbench.StreamFrom(ctx); ok {
		req.Stream = &stream
	}

	return req, nil
}
