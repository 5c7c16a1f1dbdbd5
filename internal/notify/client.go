// Package notify sends an optional ntfy-style push after an export finishes.
// Delivery is best-effort: a failed push never fails the export.
package notify

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"kakao_order_sheets/internal/config"
	"kakao_order_sheets/internal/retry"
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	topic      string
	enabled    bool
}

func NewClient(baseURL, topic string, enabled bool) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
		topic:      topic,
		enabled:    enabled,
	}
}

// NotifyExport announces a completed export. Errors are logged and dropped.
func (c *Client) NotifyExport(ctx context.Context, customers int, target string) {
	if !c.enabled {
		return
	}
	message := fmt.Sprintf("주문서 내보내기 완료: 주문자 %d명 → %s", customers, target)
	if err := c.send(ctx, message); err != nil {
		log.Warn().Err(err).Msg("Export notification failed")
		return
	}
	log.Debug().Str("target", target).Msg("Export notification sent")
}

func (c *Client) send(ctx context.Context, message string) error {
	_, err := retry.WithRetry(ctx, config.DefaultResilienceConfig.Notify, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, c.post(ctx, message)
	})
	return err
}

func (c *Client) post(ctx context.Context, message string) error {
	url := fmt.Sprintf("%s/%s", c.baseURL, c.topic)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBufferString(message))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "text/plain")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}
	return nil
}
