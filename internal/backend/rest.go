package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"refnet-client/internal/logger"
	"refnet-client/internal/order"
)

// Outbound budget towards the backend. The screens only ever issue a
// handful of sequential calls, so a small steady rate with a burst for
// pull-to-refresh is plenty.
const (
	outboundRate  = rate.Limit(10)
	outboundBurst = 20
)

type restClient struct {
	baseURL    string
	apiKey     string
	token      string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewREST returns the REST implementation of Service. token is the
// backend-issued access token of the signed-in user; it rides along as a
// bearer credential on every call.
func NewREST(baseURL, apiKey, token string) Service {
	if apiKey == "" {
		logger.L().Warn("backend API key is empty")
	}

	return &restClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		token:   token,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		limiter: rate.NewLimiter(outboundRate, outboundBurst),
	}
}

// do issues one JSON request and decodes the reply into out (skipped when
// out is nil). Non-2xx replies surface as *StatusError with the body kept
// for the log line.
func (c *restClient) do(ctx context.Context, operation, method, path string, body, out interface{}) error {
	log := logger.FromCtx(ctx).With(
		zap.String("operation", operation),
		zap.String("path", path),
	)

	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			log.Error("failed to marshal request body", zap.Error(err))
			return err
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		log.Error("failed creating request", zap.Error(err))
		return err
	}

	req.Header.Set("apikey", c.apiKey)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	requestsTotal.WithLabelValues(operation).Inc()
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		requestErrorsTotal.WithLabelValues(operation).Inc()
		log.Error("backend request failed", zap.Error(err))
		return err
	}
	defer resp.Body.Close()

	requestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		requestErrorsTotal.WithLabelValues(operation).Inc()
		log.Error("failed to read response body", zap.Error(err))
		return fmt.Errorf("failed to read backend response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		requestErrorsTotal.WithLabelValues(operation).Inc()
		log.Error("backend returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", bodyBytes),
		)
		return &StatusError{Operation: operation, Status: resp.StatusCode, Body: string(bodyBytes)}
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(bodyBytes, out); err != nil {
		log.Error("failed decoding backend response", zap.Error(err))
		return err
	}

	return nil
}

func (c *restClient) CheckUser(ctx context.Context, email string) (order.Customer, error) {
	var customer order.Customer
	path := "/customers?email=" + url.QueryEscape(email)

	if err := c.do(ctx, "check_user", http.MethodGet, path, nil, &customer); err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.Status == http.StatusNotFound {
			return order.Customer{}, ErrCustomerNotFound
		}
		return order.Customer{}, err
	}

	return customer, nil
}

func (c *restClient) CustomerOrders(ctx context.Context, userID uint) ([]order.Order, error) {
	var orders []order.Order
	path := fmt.Sprintf("/customers/%d/orders", userID)

	if err := c.do(ctx, "customer_orders", http.MethodGet, path, nil, &orders); err != nil {
		return nil, err
	}

	return orders, nil
}

func (c *restClient) RequestedServices(ctx context.Context, userID uint) ([]order.ServiceRequest, error) {
	var services []order.ServiceRequest
	path := fmt.Sprintf("/customers/%d/services", userID)

	if err := c.do(ctx, "requested_services", http.MethodGet, path, nil, &services); err != nil {
		return nil, err
	}

	return services, nil
}

func (c *restClient) SubmitFeedback(ctx context.Context, fb order.Feedback) (FeedbackResult, error) {
	var reply string
	if err := c.do(ctx, "submit_feedback", http.MethodPost, "/feedback", fb, &reply); err != nil {
		return FeedbackResult{}, err
	}

	result := feedbackResultFromReply(reply)
	if result.Rejected() {
		logger.FromCtx(ctx).Warn("feedback rejected by backend",
			zap.String("order_id", fb.OrderID),
			zap.String("reply", reply),
		)
	}

	return result, nil
}

func (c *restClient) Orders(ctx context.Context) ([]order.Order, error) {
	var orders []order.Order
	if err := c.do(ctx, "orders", http.MethodGet, "/orders", nil, &orders); err != nil {
		return nil, err
	}

	return orders, nil
}

func (c *restClient) Drivers(ctx context.Context) ([]order.Driver, error) {
	var drivers []order.Driver
	if err := c.do(ctx, "drivers", http.MethodGet, "/drivers", nil, &drivers); err != nil {
		return nil, err
	}

	return drivers, nil
}

func (c *restClient) AssignDriver(ctx context.Context, orderID string, driverID uint) error {
	body := map[string]interface{}{
		"driver_id": driverID,
	}
	path := fmt.Sprintf("/orders/%s/assign", url.PathEscape(orderID))

	if err := c.do(ctx, "assign_driver", http.MethodPost, path, body, nil); err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.Status == http.StatusNotFound {
			return ErrOrderNotFound
		}
		return err
	}

	return nil
}
