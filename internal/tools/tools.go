package tools

import (
	"context"
	"errors"
	"strings"

	"github.com/avstrong/campsite/internal/availability"
	"github.com/avstrong/campsite/internal/logger"
	"github.com/avstrong/campsite/internal/pricing"
	"github.com/avstrong/campsite/internal/reservation"
	"github.com/avstrong/campsite/internal/slots"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/avstrong/campsite/internal/tools"

type Tool string

const (
	ToolQuote         Tool = "quote"
	ToolPriceTable    Tool = "price_table"
	ToolAddOns        Tool = "add_ons"
	ToolPriceListHTML Tool = "price_list_html"
	ToolAvailability  Tool = "availability"
	ToolSearch        Tool = "search"
	ToolCreate        Tool = "create"
	ToolList          Tool = "list"
	ToolCancel        Tool = "cancel"
	ToolModify        Tool = "modify"
	ToolHelp          Tool = "help"
)

// Tools lists every tool that can be called by name.
func Tools() []Tool {
	return []Tool{
		ToolQuote, ToolPriceTable, ToolAddOns, ToolPriceListHTML, ToolAvailability,
		ToolSearch, ToolCreate, ToolList, ToolCancel, ToolModify,
	}
}

var intentTools = map[slots.Intent]Tool{
	slots.IntentListAddOns:   ToolAddOns,
	slots.IntentPriceTable:   ToolPriceTable,
	slots.IntentModify:       ToolModify,
	slots.IntentCancel:       ToolCancel,
	slots.IntentList:         ToolList,
	slots.IntentSearch:       ToolSearch,
	slots.IntentAvailability: ToolAvailability,
	slots.IntentCreate:       ToolCreate,
	slots.IntentQuote:        ToolQuote,
}

type reservationManager interface {
	Get(ctx context.Context, id int64) (*reservation.Record, error)
	Search(ctx context.Context, filter reservation.Filter) ([]*reservation.Record, error)
	List(ctx context.Context) ([]*reservation.Record, error)
	Create(ctx context.Context, input reservation.CreateInput) (*reservation.Record, error)
	Modify(ctx context.Context, id int64, input reservation.ModifyInput) (*reservation.Record, error)
	Cancel(ctx context.Context, id int64) error
}

type availabilityChecker interface {
	Check(ctx context.Context, s *slots.Slots) (*availability.Result, error)
}

type Config struct {
	L            *logger.Logger
	Parser       *slots.Parser
	Pricing      *pricing.Engine
	Availability availabilityChecker
	Reservations reservationManager
}

// Dispatcher is the single place where an instruction is routed to the
// engine that serves it and where results become user-facing replies.
type Dispatcher struct {
	l            *logger.Logger
	parser       *slots.Parser
	pricing      *pricing.Engine
	availability availabilityChecker
	reservations reservationManager
	tracer       trace.Tracer
}

func New(conf Config) *Dispatcher {
	return &Dispatcher{
		l:            conf.L,
		parser:       conf.Parser,
		pricing:      conf.Pricing,
		availability: conf.Availability,
		reservations: conf.Reservations,
		tracer:       otel.Tracer(tracerName),
	}
}

type Reply struct {
	Intent string `json:"intent"`
	Tool   Tool   `json:"tool"`
	Text   string `json:"text"`
}

// Handle parses the instruction once and runs the tool chosen by its intent.
func (d *Dispatcher) Handle(ctx context.Context, text string) *Reply {
	s := d.parser.Parse(text)

	tool, ok := intentTools[s.Intent]
	if !ok {
		tool = ToolHelp
	}

	return &Reply{
		Intent: s.Intent.String(),
		Tool:   tool,
		Text:   d.run(ctx, tool, text, s),
	}
}

// Call runs a tool chosen by the caller, ignoring the detected intent.
func (d *Dispatcher) Call(ctx context.Context, name string, text string) (*Reply, error) {
	tool := Tool(strings.TrimSpace(name))

	if !isKnown(tool) {
		return nil, &UnknownToolError{Name: name}
	}

	s := d.parser.Parse(text)

	return &Reply{
		Intent: s.Intent.String(),
		Tool:   tool,
		Text:   d.run(ctx, tool, text, s),
	}, nil
}

func isKnown(tool Tool) bool {
	for _, t := range Tools() {
		if t == tool {
			return true
		}
	}

	return false
}

func (d *Dispatcher) run(ctx context.Context, tool Tool, text string, s *slots.Slots) string {
	ctx, span := d.tracer.Start(ctx, "tools."+string(tool))
	defer span.End()

	span.SetAttributes(
		attribute.String("campsite.tool", string(tool)),
		attribute.String("campsite.intent", s.Intent.String()),
	)

	var (
		reply string
		err   error
	)

	switch tool {
	case ToolQuote:
		reply, err = d.quote(s)
	case ToolPriceTable:
		reply, err = d.priceTable(s)
	case ToolAddOns:
		reply = d.addOns()
	case ToolPriceListHTML:
		reply, err = d.priceListHTML(s)
	case ToolAvailability:
		reply, err = d.checkAvailability(ctx, s)
	case ToolSearch:
		reply, err = d.search(ctx, s)
	case ToolCreate:
		reply, err = d.create(ctx, text, s)
	case ToolList:
		reply, err = d.list(ctx)
	case ToolCancel:
		reply, err = d.cancel(ctx, s)
	case ToolModify:
		reply, err = d.modify(ctx, text, s)
	case ToolHelp:
		reply = helpText
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return d.failure(tool, err)
	}

	d.l.WithField("tool", tool).WithField("intent", s.Intent.String()).LogInfo("Instruction handled")

	return reply
}

func (d *Dispatcher) failure(tool Tool, err error) string {
	entry := d.l.WithField("tool", tool)

	if errors.Is(err, reservation.ErrPersistence) {
		entry.LogErrorf("Reservation storage failed: %v", err)

		return persistenceFailureText
	}

	entry.LogErrorf("Could not handle instruction: %v", err)

	return genericFailureText
}

// Quote prices the instruction or asks for everything it lacks.
func (d *Dispatcher) Quote(ctx context.Context, text string) string {
	return d.run(ctx, ToolQuote, text, d.parser.Parse(text))
}

func (d *Dispatcher) PriceTable(ctx context.Context, text string) string {
	return d.run(ctx, ToolPriceTable, text, d.parser.Parse(text))
}

func (d *Dispatcher) ListAddOns(ctx context.Context) string {
	return d.run(ctx, ToolAddOns, "", d.parser.Parse(""))
}

func (d *Dispatcher) PriceListHTML(ctx context.Context, text string) string {
	return d.run(ctx, ToolPriceListHTML, text, d.parser.Parse(text))
}

func (d *Dispatcher) Availability(ctx context.Context, text string) string {
	return d.run(ctx, ToolAvailability, text, d.parser.Parse(text))
}

func (d *Dispatcher) Search(ctx context.Context, text string) string {
	return d.run(ctx, ToolSearch, text, d.parser.Parse(text))
}

func (d *Dispatcher) Create(ctx context.Context, text string) string {
	return d.run(ctx, ToolCreate, text, d.parser.Parse(text))
}

func (d *Dispatcher) List(ctx context.Context) string {
	return d.run(ctx, ToolList, "", d.parser.Parse(""))
}

func (d *Dispatcher) Cancel(ctx context.Context, text string) string {
	return d.run(ctx, ToolCancel, text, d.parser.Parse(text))
}

func (d *Dispatcher) Modify(ctx context.Context, text string) string {
	return d.run(ctx, ToolModify, text, d.parser.Parse(text))
}
