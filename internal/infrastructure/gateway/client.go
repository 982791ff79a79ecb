package gateway

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/lernhub/checkout-recon/internal/config"
	domain "github.com/lernhub/checkout-recon/internal/domain/gateway"
	"github.com/lernhub/checkout-recon/internal/domain/models"
	apperrors "github.com/lernhub/checkout-recon/internal/errors"
	"github.com/lernhub/checkout-recon/pkg/log"
	"github.com/rs/zerolog"
)

// Client talks to the payment gateway's status API over HTTP.
type Client struct {
	http   *resty.Client
	logger *zerolog.Logger
}

func NewClient(cfg config.Gateway) (*Client, error) {
	timeout, err := strconv.Atoi(cfg.TimeoutSeconds)
	if err != nil {
		return nil, fmt.Errorf("strconv.Atoi: %w", err)
	}

	l := log.GetLogger()
	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(time.Duration(timeout) * time.Second).
		SetHeader("Accept", "application/json")

	return &Client{http: httpClient, logger: &l}, nil
}

type transactionStatusResponse struct {
	Status    string `json:"status"`
	Confirmed bool   `json:"confirmed"`
}

func (c *Client) PollTransactionStatus(ctx context.Context, transactionID string) (*domain.TransactionStatus, error) {
	var body transactionStatusResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&body).
		SetPathParam("id", transactionID).
		Get("/api/transactions/{id}/status")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, apperrors.NewGatewayError(resp.StatusCode(), string(resp.Body()))
	}

	status := models.PaymentStatus(body.Status)
	if _, ok := models.ValidPaymentStatuses[status]; !ok {
		c.logger.Warn().
			Str("transaction_id", transactionID).
			Str("status", body.Status).
			Msg("gateway returned unrecognized status")
		status = models.PaymentStatusPending
	}

	return &domain.TransactionStatus{Status: status, Confirmed: body.Confirmed}, nil
}

type pageStateResponse struct {
	Abandoned bool `json:"abandoned"`
}

func (c *Client) CheckPageAbandoned(ctx context.Context, pageRequestUID string) (bool, error) {
	var body pageStateResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&body).
		SetPathParam("uid", pageRequestUID).
		Get("/api/pages/{uid}/state")
	if err != nil {
		return false, err
	}
	if resp.IsError() {
		return false, apperrors.NewGatewayError(resp.StatusCode(), string(resp.Body()))
	}
	return body.Abandoned, nil
}
