package messaging

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/imobiliariaxyz/bot-corretor/internal/conversation"
	"github.com/imobiliariaxyz/bot-corretor/internal/gateway/evolution"
	"github.com/imobiliariaxyz/bot-corretor/internal/observability/metrics"
	"github.com/imobiliariaxyz/bot-corretor/pkg/logging"
)

const defaultReplyDelay = 1500 * time.Millisecond

// Gateway is the outbound surface the composer needs from the
// Evolution client.
type Gateway interface {
	SendText(ctx context.Context, number, text string) (*evolution.SendResponse, error)
	SendButtons(ctx context.Context, req evolution.ButtonsRequest) (*evolution.SendResponse, error)
	SendList(ctx context.Context, req evolution.ListRequest) (*evolution.SendResponse, error)
	SendImage(ctx context.Context, number, url, caption string) (*evolution.SendResponse, error)
	SendLocation(ctx context.Context, req evolution.LocationRequest) (*evolution.SendResponse, error)
}

// Composer realizes reply plans against the gateway. Consecutive sends
// are paced so multi-message replies read naturally, and rich formats
// the gateway refuses are degraded to numbered plain text.
type Composer struct {
	gateway Gateway
	delay   time.Duration
	sleep   func(ctx context.Context, d time.Duration) error
	logger  *logging.Logger
	metrics *metrics.BotMetrics
}

// ComposerConfig collects Composer collaborators.
type ComposerConfig struct {
	Gateway Gateway
	Delay   time.Duration
	Logger  *logging.Logger
	Metrics *metrics.BotMetrics
}

// NewComposer creates a Composer.
func NewComposer(cfg ComposerConfig) *Composer {
	if cfg.Gateway == nil {
		panic("messaging: ComposerConfig.Gateway is required")
	}
	if cfg.Delay <= 0 {
		cfg.Delay = defaultReplyDelay
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	return &Composer{
		gateway: cfg.Gateway,
		delay:   cfg.Delay,
		sleep:   sleepCtx,
		logger:  cfg.Logger,
		metrics: cfg.Metrics,
	}
}

// Dispatch sends the plan in order. It stops at the first action that
// fails even after degrading, so the engine can treat the turn as
// failed without a half-delivered session mutation.
func (c *Composer) Dispatch(ctx context.Context, to string, plan []conversation.Reply) error {
	for i, reply := range plan {
		if i > 0 {
			if err := c.sleep(ctx, c.delay); err != nil {
				return err
			}
		}
		if err := c.dispatchOne(ctx, to, reply); err != nil {
			return err
		}
	}
	return nil
}

func (c *Composer) dispatchOne(ctx context.Context, to string, reply conversation.Reply) error {
	kind, err := c.sendRich(ctx, to, reply)
	if err == nil {
		c.metrics.ObserveOutbound(kind, "sent")
		return nil
	}
	if kind == "text" || !evolution.IsRejected(err) {
		c.metrics.ObserveOutbound(kind, "failed")
		return err
	}

	c.logger.Warn("gateway rejected rich message, degrading to text",
		"to", to,
		"kind", kind,
		"error", err.Error(),
	)
	c.metrics.ObserveDegraded(kind)

	if _, textErr := c.gateway.SendText(ctx, to, degradeToText(reply)); textErr != nil {
		c.metrics.ObserveOutbound(kind, "failed")
		return fmt.Errorf("messaging: degrade of %s failed: %w", kind, textErr)
	}
	c.metrics.ObserveOutbound(kind, "degraded")
	return nil
}

func (c *Composer) sendRich(ctx context.Context, to string, reply conversation.Reply) (string, error) {
	switch r := reply.(type) {
	case conversation.TextReply:
		_, err := c.gateway.SendText(ctx, to, r.Text)
		return "text", err
	case conversation.ButtonsReply:
		req := evolution.ButtonsRequest{
			Number:      to,
			Title:       r.Title,
			Description: r.Description,
		}
		for _, b := range r.Buttons {
			req.Buttons = append(req.Buttons, evolution.ButtonOption{DisplayText: b.Label, ID: b.ID})
		}
		_, err := c.gateway.SendButtons(ctx, req)
		return "buttons", err
	case conversation.ListReply:
		req := evolution.ListRequest{
			Number:      to,
			Title:       r.Title,
			Description: r.Description,
			ButtonText:  r.ButtonText,
		}
		for _, section := range r.Sections {
			rows := make([]evolution.ListRow, 0, len(section.Rows))
			for _, row := range section.Rows {
				rows = append(rows, evolution.ListRow{Title: row.Title, Description: row.Description, RowID: row.ID})
			}
			req.Sections = append(req.Sections, evolution.ListSection{Title: section.Title, Rows: rows})
		}
		_, err := c.gateway.SendList(ctx, req)
		return "list", err
	case conversation.ImageReply:
		_, err := c.gateway.SendImage(ctx, to, r.URL, r.Caption)
		return "image", err
	case conversation.LocationReply:
		_, err := c.gateway.SendLocation(ctx, evolution.LocationRequest{
			Number:    to,
			Latitude:  r.Latitude,
			Longitude: r.Longitude,
			Name:      r.Name,
			Address:   r.Address,
		})
		return "location", err
	default:
		return "unknown", fmt.Errorf("messaging: unsupported reply type %T", reply)
	}
}

// degradeToText renders a rich reply as numbered plain text so the
// conversation can continue on gateways without interactive messages.
func degradeToText(reply conversation.Reply) string {
	var sb strings.Builder
	switch r := reply.(type) {
	case conversation.ButtonsReply:
		writeHeader(&sb, r.Title, r.Description)
		for i, b := range r.Buttons {
			fmt.Fprintf(&sb, "%d - %s\n", i+1, b.Label)
		}
		sb.WriteString("\nResponda com o número da opção desejada.")
	case conversation.ListReply:
		writeHeader(&sb, r.Title, r.Description)
		option := 0
		for _, section := range r.Sections {
			for _, row := range section.Rows {
				option++
				if row.Description != "" {
					fmt.Fprintf(&sb, "%d - %s (%s)\n", option, row.Title, row.Description)
					continue
				}
				fmt.Fprintf(&sb, "%d - %s\n", option, row.Title)
			}
		}
		sb.WriteString("\nResponda com o número da opção desejada.")
	case conversation.ImageReply:
		if r.Caption != "" {
			sb.WriteString(r.Caption)
			sb.WriteString("\n\n")
		}
		sb.WriteString("🖼️ Foto: ")
		sb.WriteString(r.URL)
	case conversation.LocationReply:
		fmt.Fprintf(&sb, "📍 %s\n%s\nhttps://maps.google.com/?q=%f,%f", r.Name, r.Address, r.Latitude, r.Longitude)
	case conversation.TextReply:
		sb.WriteString(r.Text)
	}
	return sb.String()
}

func writeHeader(sb *strings.Builder, title, description string) {
	if title != "" {
		sb.WriteString("*")
		sb.WriteString(title)
		sb.WriteString("*\n")
	}
	if description != "" {
		sb.WriteString(description)
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
