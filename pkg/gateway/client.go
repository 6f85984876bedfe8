package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/farmsight-ag/farmsight/pkg/apperrors"
	"github.com/farmsight-ag/farmsight/pkg/models"
)

// Client is the console's only route to the resource backend. It owns no
// cache and performs no retries; every call round-trips. Failures are mapped
// into the apperrors taxonomy at this boundary so callers never inspect HTTP
// status codes themselves.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// New creates a gateway client for the backend at baseURL (including the
// /api/v1 prefix). A nil httpClient gets a 10 second timeout default; the
// transport's timeout is the only one applied.
func New(baseURL string, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger,
	}
}

// errorBody is the backend's error envelope.
type errorBody struct {
	Error   string               `json:"error"`
	Message string               `json:"message"`
	Fields  []apperrors.FieldError `json:"fields,omitempty"`
}

// do issues one request and decodes a 2xx body into out (when non-nil).
// Non-2xx responses are mapped: 404 to ErrNotFound, 422 to ServerRejection,
// anything else to TransportError.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	op := fmt.Sprintf("%s %s", method, path)

	var reqBody *bytes.Buffer
	if body != nil {
		reqBody = &bytes.Buffer{}
		if err := json.NewEncoder(reqBody).Encode(body); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}

	var req *http.Request
	var err error
	if reqBody != nil {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	}
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &apperrors.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &apperrors.TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
		}
		return nil

	case resp.StatusCode == http.StatusNotFound:
		var eb errorBody
		if err := json.NewDecoder(resp.Body).Decode(&eb); err == nil && eb.Message != "" {
			return fmt.Errorf("%s: %w", eb.Message, apperrors.ErrNotFound)
		}
		return apperrors.ErrNotFound

	case resp.StatusCode == http.StatusUnprocessableEntity:
		var eb errorBody
		if err := json.NewDecoder(resp.Body).Decode(&eb); err != nil {
			return &apperrors.TransportError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode validation response: %w", err)}
		}
		return &apperrors.ServerRejection{StatusCode: resp.StatusCode, Fields: eb.Fields}

	default:
		c.logger.Warn("Backend request failed",
			zap.String("op", op),
			zap.Int("status", resp.StatusCode))
		return &apperrors.TransportError{Op: op, StatusCode: resp.StatusCode}
	}
}

// --- Farms ---

// ListFarms returns every farm, in the backend's creation order.
func (c *Client) ListFarms(ctx context.Context) ([]models.Farm, error) {
	var farms []models.Farm
	if err := c.do(ctx, http.MethodGet, "/farms", nil, &farms); err != nil {
		return nil, err
	}
	return farms, nil
}

// GetFarm returns one farm with its fields embedded.
func (c *Client) GetFarm(ctx context.Context, id int64) (*models.Farm, error) {
	var farm models.Farm
	if err := c.do(ctx, http.MethodGet, "/farms/"+strconv.FormatInt(id, 10), nil, &farm); err != nil {
		return nil, err
	}
	return &farm, nil
}

// CreateFarm submits a new farm; the server assigns id and created_at.
func (c *Client) CreateFarm(ctx context.Context, in models.FarmInput) (*models.Farm, error) {
	var farm models.Farm
	if err := c.do(ctx, http.MethodPost, "/farms", in, &farm); err != nil {
		return nil, err
	}
	return &farm, nil
}

// UpdateFarm fully replaces a farm's attributes.
func (c *Client) UpdateFarm(ctx context.Context, id int64, in models.FarmInput) (*models.Farm, error) {
	var farm models.Farm
	if err := c.do(ctx, http.MethodPut, "/farms/"+strconv.FormatInt(id, 10), in, &farm); err != nil {
		return nil, err
	}
	return &farm, nil
}

// --- Fields ---

// ListFields returns fields, optionally scoped to one farm.
func (c *Client) ListFields(ctx context.Context, farmID *int64) ([]models.Field, error) {
	path := "/fields"
	if farmID != nil {
		path += "?" + url.Values{"farm_id": {strconv.FormatInt(*farmID, 10)}}.Encode()
	}
	var fields []models.Field
	if err := c.do(ctx, http.MethodGet, path, nil, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// GetField returns one field with its crop cycles embedded.
func (c *Client) GetField(ctx context.Context, id int64) (*models.Field, error) {
	var field models.Field
	if err := c.do(ctx, http.MethodGet, "/fields/"+strconv.FormatInt(id, 10), nil, &field); err != nil {
		return nil, err
	}
	return &field, nil
}

// CreateField submits a new field under the farm named in the input.
func (c *Client) CreateField(ctx context.Context, in models.FieldInput) (*models.Field, error) {
	var field models.Field
	if err := c.do(ctx, http.MethodPost, "/fields", in, &field); err != nil {
		return nil, err
	}
	return &field, nil
}

// UpdateField fully replaces a field's attributes. The farm association is
// immutable; the server rejects changes to it.
func (c *Client) UpdateField(ctx context.Context, id int64, in models.FieldInput) (*models.Field, error) {
	var field models.Field
	if err := c.do(ctx, http.MethodPut, "/fields/"+strconv.FormatInt(id, 10), in, &field); err != nil {
		return nil, err
	}
	return &field, nil
}

// --- Crop cycles ---

// ListCropCycles returns crop cycles, optionally scoped to one field.
func (c *Client) ListCropCycles(ctx context.Context, fieldID *int64) ([]models.CropCycle, error) {
	path := "/crop-cycles"
	if fieldID != nil {
		path += "?" + url.Values{"field_id": {strconv.FormatInt(*fieldID, 10)}}.Encode()
	}
	var cycles []models.CropCycle
	if err := c.do(ctx, http.MethodGet, path, nil, &cycles); err != nil {
		return nil, err
	}
	return cycles, nil
}

// GetCropCycle returns one crop cycle.
func (c *Client) GetCropCycle(ctx context.Context, id int64) (*models.CropCycle, error) {
	var cycle models.CropCycle
	if err := c.do(ctx, http.MethodGet, "/crop-cycles/"+strconv.FormatInt(id, 10), nil, &cycle); err != nil {
		return nil, err
	}
	return &cycle, nil
}

// CreateCropCycle submits a new crop cycle under the field named in the input.
func (c *Client) CreateCropCycle(ctx context.Context, in models.CropCycleInput) (*models.CropCycle, error) {
	var cycle models.CropCycle
	if err := c.do(ctx, http.MethodPost, "/crop-cycles", in, &cycle); err != nil {
		return nil, err
	}
	return &cycle, nil
}

// UpdateCropCycle fully replaces a crop cycle's attributes. The field
// association is immutable; the server rejects changes to it.
func (c *Client) UpdateCropCycle(ctx context.Context, id int64, in models.CropCycleInput) (*models.CropCycle, error) {
	var cycle models.CropCycle
	if err := c.do(ctx, http.MethodPut, "/crop-cycles/"+strconv.FormatInt(id, 10), in, &cycle); err != nil {
		return nil, err
	}
	return &cycle, nil
}
