package conversation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/imobiliariaxyz/bot-corretor/internal/catalog"
	"github.com/imobiliariaxyz/bot-corretor/internal/nlu"
	"github.com/imobiliariaxyz/bot-corretor/internal/observability/metrics"
	"github.com/imobiliariaxyz/bot-corretor/pkg/logging"
)

var engineTracer = otel.Tracer("corretor.internal.conversation")

const (
	maxPropertyCards = 3
	nearbyRadiusKm   = 5
)

// Engine drives the multi-turn dialogue. It owns no I/O beyond the
// Dispatcher; normalization happens upstream and transport downstream.
type Engine struct {
	sessions   *SessionStore
	profiles   *ProfileStore
	catalog    *catalog.Store
	nlu        nlu.Adapter
	dispatcher Dispatcher
	logger     *logging.Logger
	metrics    *metrics.BotMetrics
	clock      func() time.Time
}

// EngineConfig collects the engine's collaborators. Sessions, Catalog
// and Dispatcher are required; the rest default to safe no-ops.
type EngineConfig struct {
	Sessions   *SessionStore
	Profiles   *ProfileStore
	Catalog    *catalog.Store
	NLU        nlu.Adapter
	Dispatcher Dispatcher
	Logger     *logging.Logger
	Metrics    *metrics.BotMetrics
	Clock      func() time.Time
}

// NewEngine creates a dialogue engine.
func NewEngine(cfg EngineConfig) *Engine {
	if cfg.Sessions == nil {
		panic("conversation: EngineConfig.Sessions is required")
	}
	if cfg.Catalog == nil {
		panic("conversation: EngineConfig.Catalog is required")
	}
	if cfg.Dispatcher == nil {
		panic("conversation: EngineConfig.Dispatcher is required")
	}
	if cfg.Profiles == nil {
		cfg.Profiles = NewProfileStore()
	}
	if cfg.NLU == nil {
		cfg.NLU = nlu.Disabled{}
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	return &Engine{
		sessions:   cfg.Sessions,
		profiles:   cfg.Profiles,
		catalog:    cfg.Catalog,
		nlu:        cfg.NLU,
		dispatcher: cfg.Dispatcher,
		logger:     cfg.Logger,
		metrics:    cfg.Metrics,
		clock:      cfg.Clock,
	}
}

// HandleMessage processes one canonical inbound message end to end:
// session turn, reply planning and dispatch. Turns for the same sender
// are serialized; a failed turn never mutates the stored session.
func (e *Engine) HandleMessage(ctx context.Context, msg Inbound) (err error) {
	ctx, span := engineTracer.Start(ctx, "engine.handle_message",
		trace.WithAttributes(
			attribute.String("message.kind", string(msg.Kind)),
		),
	)
	defer span.End()

	if msg.FromSelf || msg.SenderID == "" || msg.Kind == KindUnrecognized {
		e.logger.Debug("dropping message outside dialogue scope",
			"sender_id", msg.SenderID,
			"kind", string(msg.Kind),
			"from_self", msg.FromSelf,
		)
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("panic while handling message",
				"sender_id", msg.SenderID,
				"panic", fmt.Sprintf("%v", r),
			)
			err = e.dispatcher.Dispatch(ctx, msg.SenderID, []Reply{TextReply{Text: errorMessage()}})
		}
	}()

	e.profiles.Touch(msg.SenderID, msg.PushName)

	if msg.Kind == KindAudio {
		resolved, handled, audioErr := e.resolveAudio(ctx, msg)
		if audioErr != nil || handled {
			return audioErr
		}
		msg = resolved
	}

	return e.sessions.Do(msg.SenderID, func(session *Session) error {
		plan := e.planTurn(ctx, session, msg)
		if len(plan) == 0 {
			return nil
		}
		if dispatchErr := e.dispatcher.Dispatch(ctx, msg.SenderID, plan); dispatchErr != nil {
			e.logger.Error("failed to dispatch reply plan",
				"sender_id", msg.SenderID,
				"stage", string(session.Stage),
				"error", dispatchErr.Error(),
			)
			return dispatchErr
		}
		return nil
	})
}

// resolveAudio turns a voice note into a text message. The second
// return is true when the turn was fully answered here (apology paths),
// so the caller must not run the state machine.
func (e *Engine) resolveAudio(ctx context.Context, msg Inbound) (Inbound, bool, error) {
	if msg.Audio == nil || msg.Audio.Unavailable {
		return msg, true, e.dispatcher.Dispatch(ctx, msg.SenderID, []Reply{TextReply{Text: audioUnavailableMessage()}})
	}
	if msg.Audio.TooLarge {
		return msg, true, e.dispatcher.Dispatch(ctx, msg.SenderID, []Reply{TextReply{Text: audioTooLargeMessage()}})
	}

	if ackErr := e.dispatcher.Dispatch(ctx, msg.SenderID, []Reply{TextReply{Text: audioAckMessage()}}); ackErr != nil {
		return msg, true, ackErr
	}

	transcript, err := e.nlu.Transcribe(ctx, msg.Audio.Data, msg.Audio.MimeType)
	if err != nil {
		e.logger.Warn("voice note transcription failed",
			"sender_id", msg.SenderID,
			"error", err.Error(),
		)
		e.metrics.ObserveNLUFailure("transcribe")
		return msg, true, e.dispatcher.Dispatch(ctx, msg.SenderID, []Reply{TextReply{Text: audioTranscriptionFailedMessage()}})
	}

	e.logger.Info("voice note transcribed",
		"sender_id", msg.SenderID,
		"transcript_length", len(transcript),
	)

	msg.Kind = KindText
	msg.Text = transcript
	msg.Audio = nil
	return msg, false, nil
}

// planTurn mutates the session for this turn and returns the ordered
// reply plan.
func (e *Engine) planTurn(ctx context.Context, session *Session, msg Inbound) []Reply {
	if isResetCommand(msg.Text) || !session.Started {
		return e.startOver(session, msg.PushName)
	}

	switch msg.Kind {
	case KindListSelection, KindButtonSelection:
		return e.handleSelection(ctx, session, msg.SelectionID)
	case KindLocation:
		return e.handleLocation(session, msg.Latitude, msg.Longitude)
	case KindText:
		return e.handleText(ctx, session, msg.Text)
	default:
		return []Reply{TextReply{Text: mainMenuFallbackMessage()}}
	}
}

func (e *Engine) startOver(session *Session, pushName string) []Reply {
	session.Started = true
	session.Stage = StageMain
	session.Filters = nil
	session.ViewingProperty = 0
	return []Reply{
		TextReply{Text: welcomeMessage(firstName(pushName), e.clock())},
		mainMenu(),
	}
}

func (e *Engine) handleText(ctx context.Context, session *Session, text string) []Reply {
	switch session.Stage {
	case StageMain, StageViewingProperty, StageContact:
		return e.handleMainText(ctx, session, text)
	case StageBuying:
		return e.handleSearchText(ctx, session, text, catalog.TransactionSale)
	case StageRenting:
		return e.handleSearchText(ctx, session, text, catalog.TransactionRent)
	case StageSelling:
		session.Stage = StageMain
		return []Reply{TextReply{Text: sellingReceivedMessage()}}
	case StageScheduling:
		session.Stage = StageMain
		return []Reply{TextReply{Text: scheduleConfirmationMessage()}}
	default:
		return e.handleMainText(ctx, session, text)
	}
}

// handleMainText resolves free text at the main menu: a digit or menu
// keyword first, an understood buy/rent intent second, a re-prompt last.
func (e *Engine) handleMainText(ctx context.Context, session *Session, text string) []Reply {
	normalized := normalizeText(text)

	// Only a bare digit or a bare keyword selects a menu option. A full
	// sentence that happens to contain a keyword still carries criteria
	// the menu would throw away, so it goes to intent analysis instead.
	switch normalized {
	case "1", "comprar":
		return e.handleSelection(ctx, session, SelectionBuy)
	case "2", "vender":
		return e.handleSelection(ctx, session, SelectionSell)
	case "3", "alugar":
		return e.handleSelection(ctx, session, SelectionRent)
	case "4", "agendar", "visita":
		return e.handleSelection(ctx, session, SelectionSchedule)
	case "5", "corretor", "contato", "falar":
		return e.handleSelection(ctx, session, SelectionContact)
	}

	intent, err := e.nlu.AnalyzeIntent(ctx, text)
	if err != nil {
		e.logger.Debug("intent analysis unavailable at main menu", "error", err.Error())
		e.metrics.ObserveNLUFailure("intent")
		return []Reply{TextReply{Text: mainMenuFallbackMessage()}}
	}
	e.profiles.Learn(session.SenderID, intent)

	switch intent.Action {
	case nlu.ActionBuy:
		return e.enterSearchStage(session, StageBuying, catalog.TransactionSale, intent)
	case nlu.ActionRent:
		return e.enterSearchStage(session, StageRenting, catalog.TransactionRent, intent)
	case nlu.ActionSell:
		return e.handleSelection(ctx, session, SelectionSell)
	case nlu.ActionVisit:
		return e.handleSelection(ctx, session, SelectionSchedule)
	default:
		return []Reply{TextReply{Text: mainMenuFallbackMessage()}}
	}
}

// enterSearchStage moves to a search stage carrying whatever criteria
// the intent supplied, searching immediately when the property type is
// already known.
func (e *Engine) enterSearchStage(session *Session, stage Stage, transaction catalog.Transaction, intent nlu.Intent) []Reply {
	session.Stage = stage
	e.mergeFilters(session, transaction, intent)

	if session.Filters.Type == catalog.TypeAny {
		if stage == StageRenting {
			return []Reply{rentingTypeButtons()}
		}
		return []Reply{buyingTypeButtons()}
	}
	return e.searchAndPresent(session)
}

// handleSearchText refines an in-progress search with free text. When
// analysis is unavailable the current criteria are re-run unchanged.
func (e *Engine) handleSearchText(ctx context.Context, session *Session, text string, transaction catalog.Transaction) []Reply {
	intent, err := e.nlu.AnalyzeIntent(ctx, text)
	if err != nil {
		e.logger.Debug("intent analysis unavailable during search",
			"stage", string(session.Stage),
			"error", err.Error(),
		)
		e.metrics.ObserveNLUFailure("intent")
		intent = nlu.Neutral()
	} else {
		e.profiles.Learn(session.SenderID, intent)
	}

	e.mergeFilters(session, transaction, intent)
	if session.Filters.Type == catalog.TypeAny {
		if session.Stage == StageRenting {
			return []Reply{rentingTypeButtons()}
		}
		return []Reply{buyingTypeButtons()}
	}
	return e.searchAndPresent(session)
}

func (e *Engine) handleSelection(ctx context.Context, session *Session, selectionID string) []Reply {
	switch selectionID {
	case SelectionBuy:
		session.Stage = StageBuying
		e.mergeFilters(session, catalog.TransactionSale, nlu.Neutral())
		return []Reply{buyingTypeButtons()}
	case SelectionSell:
		session.Stage = StageSelling
		return []Reply{TextReply{Text: sellingFormMessage()}}
	case SelectionRent:
		session.Stage = StageRenting
		e.mergeFilters(session, catalog.TransactionRent, nlu.Neutral())
		return []Reply{rentingTypeButtons()}
	case SelectionSchedule, SelectionScheduleVisit:
		session.Stage = StageScheduling
		return []Reply{TextReply{Text: scheduleFormMessage()}}
	case SelectionContact, SelectionTalkAgent:
		session.Stage = StageMain
		return []Reply{TextReply{Text: contactInfoMessage()}}

	case SelectionBuyHouse:
		return e.selectType(session, StageBuying, catalog.TransactionSale, catalog.TypeHouse)
	case SelectionBuyApartment:
		return e.selectType(session, StageBuying, catalog.TransactionSale, catalog.TypeApartment)
	case SelectionBuyLand:
		return e.selectType(session, StageBuying, catalog.TransactionSale, catalog.TypeLand)
	case SelectionRentHouse:
		return e.selectType(session, StageRenting, catalog.TransactionRent, catalog.TypeHouse)
	case SelectionRentApartment:
		return e.selectType(session, StageRenting, catalog.TransactionRent, catalog.TypeApartment)

	case SelectionSeeMore:
		return []Reply{TextReply{Text: refineSearchMessage()}}
	default:
		e.logger.Warn("unknown selection id", "selection_id", selectionID)
		return []Reply{TextReply{Text: mainMenuFallbackMessage()}}
	}
}

func (e *Engine) selectType(session *Session, stage Stage, transaction catalog.Transaction, propertyType catalog.PropertyType) []Reply {
	session.Stage = stage
	e.mergeFilters(session, transaction, nlu.Neutral())
	session.Filters.Type = propertyType
	return e.searchAndPresent(session)
}

// handleLocation answers a shared pin with listings inside a 5 km
// radius. The dialogue stage is left as-is.
func (e *Engine) handleLocation(session *Session, lat, lng float64) []Reply {
	results := e.catalog.Nearby(lat, lng, nearbyRadiusKm)
	plan := []Reply{TextReply{Text: nearbyResultsMessage(len(results))}}
	if len(results) == 0 {
		return plan
	}
	plan = append(plan, propertyCards(results)...)
	if nearest := results[0]; nearest.Location != nil {
		plan = append(plan, LocationReply{
			Latitude:  nearest.Location.Lat,
			Longitude: nearest.Location.Lng,
			Name:      nearest.Title,
			Address:   nearest.Address,
		})
	}
	return append(plan, resultActionButtons())
}

// searchAndPresent runs the accumulated criteria against the catalog.
// An empty result keeps the stage and criteria so the visitor can
// broaden the search on the next turn.
func (e *Engine) searchAndPresent(session *Session) []Reply {
	filters := session.Filters
	results := e.catalog.Search(catalog.Filters{
		Type:        filters.Type,
		Transaction: filters.Transaction,
		City:        filters.City,
		MinPrice:    filters.MinPrice,
		MaxPrice:    filters.MaxPrice,
		MinBedrooms: filters.Bedrooms,
	})

	e.logger.Info("catalog search executed",
		"sender_id", session.SenderID,
		"stage", string(session.Stage),
		"transaction", string(filters.Transaction),
		"type", string(filters.Type),
		"results", len(results),
	)

	if len(results) == 0 {
		return []Reply{TextReply{Text: noResultsMessage()}}
	}

	plan := []Reply{TextReply{Text: foundResultsMessage(len(results))}}
	plan = append(plan, propertyCards(results)...)
	return append(plan, resultActionButtons())
}

func propertyCards(results []catalog.Property) []Reply {
	limit := len(results)
	if limit > maxPropertyCards {
		limit = maxPropertyCards
	}
	cards := make([]Reply, 0, limit)
	for _, p := range results[:limit] {
		card := propertyCard(p)
		if len(p.Images) > 0 {
			cards = append(cards, ImageReply{URL: p.Images[0], Caption: card})
			continue
		}
		cards = append(cards, TextReply{Text: card})
	}
	return cards
}

// mergeFilters overlays this turn's criteria onto the session,
// enforcing the stage's transaction. Criteria only ever narrow; a turn
// that supplies nothing keeps everything already learned.
func (e *Engine) mergeFilters(session *Session, transaction catalog.Transaction, intent nlu.Intent) {
	if session.Filters == nil {
		session.Filters = &SearchFilters{}
	}
	session.Filters.Merge(SearchFilters{
		Transaction: transaction,
		Type:        propertyTypeFromIntent(intent.PropertyType),
		MinPrice:    intent.PriceRange.Min,
		MaxPrice:    intent.PriceRange.Max,
		Bedrooms:    intent.Bedrooms,
		City:        intent.Location,
	})
}

func propertyTypeFromIntent(propertyType string) catalog.PropertyType {
	switch propertyType {
	case "house", "casa":
		return catalog.TypeHouse
	case "apartment", "apartamento":
		return catalog.TypeApartment
	case "land", "terreno":
		return catalog.TypeLand
	case "commercial", "comercial":
		return catalog.TypeCommercial
	default:
		return catalog.TypeAny
	}
}

func isResetCommand(text string) bool {
	switch normalizeText(text) {
	case "menu", "início", "inicio", "oi", "olá", "ola":
		return true
	}
	return false
}

func normalizeText(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

func firstName(pushName string) string {
	fields := strings.Fields(strings.TrimSpace(pushName))
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
