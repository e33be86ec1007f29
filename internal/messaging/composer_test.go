package messaging

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imobiliariaxyz/bot-corretor/internal/conversation"
	"github.com/imobiliariaxyz/bot-corretor/internal/gateway/evolution"
)

type sentCall struct {
	kind string
	text string
}

type fakeGateway struct {
	calls      []sentCall
	listErr    error
	buttonsErr error
	textErr    error
}

func (g *fakeGateway) SendText(ctx context.Context, number, text string) (*evolution.SendResponse, error) {
	if g.textErr != nil {
		return nil, g.textErr
	}
	g.calls = append(g.calls, sentCall{kind: "text", text: text})
	return &evolution.SendResponse{}, nil
}

func (g *fakeGateway) SendButtons(ctx context.Context, req evolution.ButtonsRequest) (*evolution.SendResponse, error) {
	if g.buttonsErr != nil {
		return nil, g.buttonsErr
	}
	g.calls = append(g.calls, sentCall{kind: "buttons"})
	return &evolution.SendResponse{}, nil
}

func (g *fakeGateway) SendList(ctx context.Context, req evolution.ListRequest) (*evolution.SendResponse, error) {
	if g.listErr != nil {
		return nil, g.listErr
	}
	g.calls = append(g.calls, sentCall{kind: "list"})
	return &evolution.SendResponse{}, nil
}

func (g *fakeGateway) SendImage(ctx context.Context, number, url, caption string) (*evolution.SendResponse, error) {
	g.calls = append(g.calls, sentCall{kind: "image", text: caption})
	return &evolution.SendResponse{}, nil
}

func (g *fakeGateway) SendLocation(ctx context.Context, req evolution.LocationRequest) (*evolution.SendResponse, error) {
	g.calls = append(g.calls, sentCall{kind: "location"})
	return &evolution.SendResponse{}, nil
}

func newTestComposer(gateway Gateway) (*Composer, *[]time.Duration) {
	composer := NewComposer(ComposerConfig{Gateway: gateway, Delay: 1500 * time.Millisecond})
	var slept []time.Duration
	composer.sleep = func(ctx context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}
	return composer, &slept
}

func TestDispatchPacesBetweenSends(t *testing.T) {
	gateway := &fakeGateway{}
	composer, slept := newTestComposer(gateway)

	err := composer.Dispatch(context.Background(), "554899", []conversation.Reply{
		conversation.TextReply{Text: "primeira"},
		conversation.TextReply{Text: "segunda"},
		conversation.TextReply{Text: "terceira"},
	})

	require.NoError(t, err)
	assert.Len(t, gateway.calls, 3)
	require.Len(t, *slept, 2, "no pause before the first send")
	assert.Equal(t, 1500*time.Millisecond, (*slept)[0])
}

func TestDispatchDegradesRejectedListToNumberedText(t *testing.T) {
	gateway := &fakeGateway{listErr: &evolution.APIError{StatusCode: http.StatusBadRequest}}
	composer, _ := newTestComposer(gateway)

	err := composer.Dispatch(context.Background(), "554899", []conversation.Reply{
		conversation.ListReply{
			Title:       "Menu Principal",
			Description: "Escolha:",
			Sections: []conversation.ListSection{{
				Rows: []conversation.ListRow{
					{ID: "buy", Title: "Comprar Imóvel", Description: "Encontre o seu"},
					{ID: "sell", Title: "Vender Imóvel"},
				},
			}},
		},
	})

	require.NoError(t, err)
	require.Len(t, gateway.calls, 1)
	assert.Equal(t, "text", gateway.calls[0].kind)
	assert.Contains(t, gateway.calls[0].text, "1 - Comprar Imóvel (Encontre o seu)")
	assert.Contains(t, gateway.calls[0].text, "2 - Vender Imóvel")
	assert.Contains(t, gateway.calls[0].text, "Responda com o número")
}

func TestDispatchDegradesRejectedButtons(t *testing.T) {
	gateway := &fakeGateway{buttonsErr: &evolution.APIError{StatusCode: http.StatusBadRequest}}
	composer, _ := newTestComposer(gateway)

	err := composer.Dispatch(context.Background(), "554899", []conversation.Reply{
		conversation.ButtonsReply{
			Title:   "Comprar",
			Buttons: []conversation.Button{{ID: "buy_house", Label: "Casa"}},
		},
	})

	require.NoError(t, err)
	require.Len(t, gateway.calls, 1)
	assert.Contains(t, gateway.calls[0].text, "1 - Casa")
}

func TestDispatchDoesNotDegradeServerErrors(t *testing.T) {
	gateway := &fakeGateway{listErr: &evolution.APIError{StatusCode: http.StatusInternalServerError}}
	composer, _ := newTestComposer(gateway)

	err := composer.Dispatch(context.Background(), "554899", []conversation.Reply{
		conversation.ListReply{Title: "Menu"},
	})

	require.Error(t, err)
	assert.Empty(t, gateway.calls)
}

func TestDispatchFailsWhenDegradeAlsoFails(t *testing.T) {
	gateway := &fakeGateway{
		buttonsErr: &evolution.APIError{StatusCode: http.StatusBadRequest},
		textErr:    errors.New("connection refused"),
	}
	composer, _ := newTestComposer(gateway)

	err := composer.Dispatch(context.Background(), "554899", []conversation.Reply{
		conversation.ButtonsReply{Title: "Comprar"},
	})

	assert.Error(t, err)
}

func TestDispatchStopsAtFirstFailure(t *testing.T) {
	gateway := &fakeGateway{textErr: errors.New("gateway down")}
	composer, _ := newTestComposer(gateway)

	err := composer.Dispatch(context.Background(), "554899", []conversation.Reply{
		conversation.TextReply{Text: "primeira"},
		conversation.TextReply{Text: "segunda"},
	})

	require.Error(t, err)
	assert.Empty(t, gateway.calls)
}

func TestDispatchHonorsContextDuringPacing(t *testing.T) {
	gateway := &fakeGateway{}
	composer := NewComposer(ComposerConfig{Gateway: gateway, Delay: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := composer.Dispatch(ctx, "554899", []conversation.Reply{
		conversation.TextReply{Text: "primeira"},
		conversation.TextReply{Text: "segunda"},
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, gateway.calls, 1)
}

func TestDegradeImageKeepsCaptionAndURL(t *testing.T) {
	text := degradeToText(conversation.ImageReply{
		URL:     "https://cdn.example.com/casa.jpg",
		Caption: "Casa com vista",
	})

	assert.Contains(t, text, "Casa com vista")
	assert.Contains(t, text, "https://cdn.example.com/casa.jpg")
}
