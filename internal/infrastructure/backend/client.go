package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/skillforge/checkout-service/internal/config"
	"github.com/skillforge/checkout-service/internal/domain/checkout"
	domainErrors "github.com/skillforge/checkout-service/internal/domain/errors"
	"github.com/skillforge/checkout-service/internal/infrastructure/monitoring"
	"github.com/skillforge/checkout-service/internal/pkg/logger"
)

// Client talks to the LMS backend API. Every response arrives in the
// backend's envelope; transport failures and auth rejections are
// normalized into domain errors so callers never see raw HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logger.Logger
}

func NewClient(cfg config.BackendConfig, log *logger.Logger) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
		logger: log,
	}
}

// envelope is the backend's uniform response wrapper.
type envelope struct {
	Success  bool            `json:"success"`
	Message  string          `json:"message"`
	Response json.RawMessage `json:"response"`
}

type enrollmentResponse struct {
	ID             string                 `json:"_id"`
	CreatedAtDate  time.Time              `json:"_createdAtDate"`
	SubTotalAmount float64                `json:"subTotalAmount"`
	Taxes          float64                `json:"taxes"`
	DiscountAmount float64                `json:"discountAmount"`
	TotalAmount    float64                `json:"totalAmount"`
	UserDetails    userDetailsResponse    `json:"userDetails"`
	Details        []enrollmentCourseItem `json:"enrollmentDetails"`
}

type userDetailsResponse struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	PhoneCode   string `json:"phoneCode"`
	PhoneNumber string `json:"phoneNumber"`
}

type enrollmentCourseItem struct {
	CourseID   string  `json:"courseId"`
	CourseName string  `json:"courseName"`
	Price      float64 `json:"price"`
}

func (c *Client) CreateEnrollment(ctx context.Context, token string, courseIDs []string) (*checkout.Hold, error) {
	end := monitoring.TimeUpstreamRequest("backend", "create_enrollment")

	body := map[string]interface{}{"courseIds": courseIDs}
	env, err := c.do(ctx, http.MethodPost, "/enrollment", token, body)
	if err != nil {
		end("error")
		return nil, err
	}

	var resp enrollmentResponse
	if err := json.Unmarshal(env.Response, &resp); err != nil {
		end("error")
		return nil, fmt.Errorf("failed to decode enrollment response: %w", err)
	}

	hold, err := mapEnrollment(&resp, courseIDs)
	if err != nil {
		end("error")
		return nil, err
	}

	end("ok")
	return hold, nil
}

func mapEnrollment(resp *enrollmentResponse, courseIDs []string) (*checkout.Hold, error) {
	hold, err := checkout.NewHold(resp.ID, resp.CreatedAtDate, courseIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domainErrors.ErrHoldCreationFailed, err)
	}

	hold.SubTotalAmount = resp.SubTotalAmount
	hold.Taxes = resp.Taxes
	hold.DiscountAmount = resp.DiscountAmount
	hold.TotalAmount = resp.TotalAmount
	hold.Buyer = checkout.BuyerDetails{
		FirstName: resp.UserDetails.FirstName,
		LastName:  resp.UserDetails.LastName,
		Email:     resp.UserDetails.Email,
		PhoneCode: resp.UserDetails.PhoneCode,
		Phone:     resp.UserDetails.PhoneNumber,
	}
	for _, item := range resp.Details {
		hold.Courses = append(hold.Courses, checkout.HoldCourse{
			CourseID: item.CourseID,
			Title:    item.CourseName,
			Price:    item.Price,
		})
	}

	return hold, nil
}

func (c *Client) CreatePaymentIntent(ctx context.Context, token, holdID string) (string, error) {
	end := monitoring.TimeUpstreamRequest("backend", "create_payment_intent")

	body := map[string]interface{}{"enrollmentId": holdID}
	env, err := c.do(ctx, http.MethodPost, "/payment/create-payment-intent", token, body)
	if err != nil {
		end("error")
		return "", err
	}

	var resp struct {
		ClientSecret string `json:"clientSecret"`
	}
	if err := json.Unmarshal(env.Response, &resp); err != nil {
		end("error")
		return "", fmt.Errorf("failed to decode payment intent response: %w", err)
	}
	if resp.ClientSecret == "" {
		end("error")
		return "", domainErrors.ErrPaymentSessionFailed
	}

	end("ok")
	return resp.ClientSecret, nil
}

func (c *Client) VerifyToken(ctx context.Context, token string) (bool, error) {
	end := monitoring.TimeUpstreamRequest("backend", "verify_token")

	_, err := c.do(ctx, http.MethodGet, "/auth/verify", token, nil)
	if err != nil {
		if err == domainErrors.ErrUnauthorized {
			end("rejected")
			return false, nil
		}
		end("error")
		return false, err
	}

	end("ok")
	return true, nil
}

func (c *Client) SendOTP(ctx context.Context, token, channel, value string) (string, error) {
	end := monitoring.TimeUpstreamRequest("backend", "send_otp")

	body := map[string]interface{}{"channel": channel, "value": value}
	env, err := c.do(ctx, http.MethodPost, "/auth/send-otp", token, body)
	if err != nil {
		end("error")
		return "", err
	}

	end("ok")
	return env.Message, nil
}

func (c *Client) VerifyOTP(ctx context.Context, token, channel, value, code string) error {
	end := monitoring.TimeUpstreamRequest("backend", "verify_otp")

	body := map[string]interface{}{"channel": channel, "value": value, "code": code}
	if _, err := c.do(ctx, http.MethodPost, "/auth/verify-otp", token, body); err != nil {
		end("error")
		return err
	}

	end("ok")
	return nil
}

func (c *Client) Logout(ctx context.Context, token string) error {
	end := monitoring.TimeUpstreamRequest("backend", "logout")

	if _, err := c.do(ctx, http.MethodGet, "/auth/logout", token, nil); err != nil {
		end("error")
		return err
	}

	end("ok")
	return nil
}

func (c *Client) do(ctx context.Context, method, path, token string, body interface{}) (*envelope, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Backend request failed", "error", err, "method", method, "path", path)
		return nil, domainErrors.ErrBackendUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, domainErrors.ErrUnauthorized
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		c.logger.Error("Backend returned server error", "status", resp.StatusCode, "method", method, "path", path)
		return nil, domainErrors.ErrBackendUnavailable
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domainErrors.ErrBackendUnavailable
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("failed to decode backend envelope: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest || !env.Success {
		if env.Message != "" {
			return nil, fmt.Errorf("backend rejected request: %s", env.Message)
		}
		return nil, fmt.Errorf("backend rejected request with status %d", resp.StatusCode)
	}

	return &env, nil
}
