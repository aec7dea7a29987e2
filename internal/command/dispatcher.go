package command

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/AdamBeresnev/tourney-bot/internal/service"
	"github.com/AdamBeresnev/tourney-bot/internal/tournament"
	users "github.com/AdamBeresnev/tourney-bot/internal/user"
	"github.com/google/uuid"
)

// Registrar is the tournament state the dispatcher drives.
type Registrar interface {
	SetSlots(ctx context.Context, caller users.User, n int) error
	Register(ctx context.Context, caller users.User, teamName string, players []string) (tournament.Team, error)
	Confirm(ctx context.Context, caller users.User) (tournament.Team, error)
	ListTeams(ctx context.Context, caller users.User) ([]tournament.Team, error)
	SlotsStatus(ctx context.Context) service.SlotsStatus
	Reset(ctx context.Context, caller users.User) error
}

type definition struct {
	name    string
	args    string
	summary string
	admin   bool
	handler HandlerFunc
}

type Dispatcher struct {
	prefix      string
	registrar   Registrar
	logger      *slog.Logger
	definitions []definition
	handlers    map[string]HandlerFunc
}

func NewDispatcher(prefix string, registrar Registrar, logger *slog.Logger) *Dispatcher {
	d := &Dispatcher{
		prefix:    prefix,
		registrar: registrar,
		logger:    logger,
	}

	// Help lists commands in this order.
	d.definitions = []definition{
		{name: "setslots", args: "<number>", summary: "Set tournament slots", admin: true, handler: d.setSlots},
		{name: "teams", summary: "List all teams", admin: true, handler: d.teams},
		{name: "reset", summary: "Reset tournament data", admin: true, handler: d.reset},
		{name: "register", args: "<team_name> <player1> <player2> ...", summary: "Register a team", handler: d.register},
		{name: "confirm", summary: "Confirm team participation", handler: d.confirm},
		{name: "slots", summary: "Check available slots", handler: d.slots},
		{name: "help", summary: "Show this help message", handler: d.help},
	}

	d.handlers = make(map[string]HandlerFunc, len(d.definitions))
	for _, def := range d.definitions {
		h := def.handler
		if def.admin {
			h = RequireAdmin(h)
		}
		d.handlers[def.name] = h
	}
	return d
}

func (d *Dispatcher) Prefix() string {
	return d.prefix
}

// Handle runs one invocation and sends exactly one reply. Failures are logged,
// never returned: a single command must not take the bot down.
func (d *Dispatcher) Handle(ctx context.Context, inv Invocation, sender Sender) {
	logger := d.logger.With(
		"invocation_id", uuid.NewString(),
		"command", inv.Name,
		"caller", inv.Caller.ID,
		"channel", inv.ChannelID,
	)

	defer func() {
		if rec := recover(); rec != nil {
			logger.ErrorContext(ctx, "panic while sending reply", "panic", rec)
		}
	}()

	reply := d.dispatch(ctx, inv, logger)
	if err := sender.Send(ctx, inv.ChannelID, reply); err != nil {
		logger.ErrorContext(ctx, "could not send reply", "error", err)
	}
}

// Dispatch resolves and runs the invocation and renders its reply.
func (d *Dispatcher) Dispatch(ctx context.Context, inv Invocation) Reply {
	return d.dispatch(ctx, inv, d.logger)
}

func (d *Dispatcher) dispatch(ctx context.Context, inv Invocation, logger *slog.Logger) (reply Reply) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.ErrorContext(ctx, "command handler panicked", "panic", rec)
			reply = Reply{Content: "Something went wrong while running this command."}
		}
	}()

	handler, ok := d.handlers[inv.Name]
	if !ok {
		logger.DebugContext(ctx, "unknown command")
		return d.renderError(ctx, ErrCommandNotFound, logger)
	}

	// Commands without parameters never read their arguments, so a stray
	// quote after them is not an error.
	args := inv.Args
	if def, _ := d.lookup(inv.Name); inv.ParseErr != nil && def.args != "" {
		handler = d.rejectArgs(def, inv.ParseErr)
	}

	ctx = users.WithUser(ctx, inv.Caller)
	reply, err := handler(ctx, args)
	if err != nil {
		return d.renderError(ctx, err, logger)
	}

	logger.DebugContext(ctx, "command handled")
	return reply
}

// rejectArgs keeps the admin check in front of argument errors.
func (d *Dispatcher) rejectArgs(def definition, cause error) HandlerFunc {
	h := func(ctx context.Context, args []string) (Reply, error) {
		return Reply{}, malformed(d.usageOf(def), cause)
	}
	if def.admin {
		return RequireAdmin(h)
	}
	return h
}

func (d *Dispatcher) lookup(name string) (definition, bool) {
	for _, def := range d.definitions {
		if def.name == name {
			return def, true
		}
	}
	return definition{}, false
}

func (d *Dispatcher) usage(name string) string {
	def, ok := d.lookup(name)
	if !ok {
		return d.prefix + name
	}
	return d.usageOf(def)
}

func (d *Dispatcher) usageOf(def definition) string {
	if def.args == "" {
		return d.prefix + def.name
	}
	return d.prefix + def.name + " " + def.args
}

func (d *Dispatcher) renderError(ctx context.Context, err error, logger *slog.Logger) Reply {
	var msg string
	var argErr *argumentError

	switch {
	case errors.As(err, &argErr):
		msg = fmt.Sprintf("Invalid arguments. Usage: `%s`", argErr.usage)
	case errors.Is(err, ErrCommandNotFound):
		msg = fmt.Sprintf("Command not found. Use %shelp to see available commands.", d.prefix)
	case errors.Is(err, service.ErrUnauthorized):
		msg = "You don't have permission to use this command."
	case errors.Is(err, service.ErrSlotsFull):
		msg = "All slots are full."
	case errors.Is(err, service.ErrDuplicateTeamName):
		msg = "This team name is already registered."
	case errors.Is(err, service.ErrTeamNameRequired):
		msg = "A team name is required."
	case errors.Is(err, service.ErrNoTeamForCaller):
		msg = "You don't have a registered team."
	case errors.Is(err, service.ErrAlreadyConfirmed):
		msg = "Your team is already confirmed."
	case errors.Is(err, service.ErrInvalidSlotCount):
		msg = "The number of slots can't be negative."
	case errors.Is(err, service.ErrPersist):
		msg = "Could not save tournament data, please try again."
	default:
		logger.ErrorContext(ctx, "command failed", "error", err)
		return Reply{Content: "Something went wrong while running this command."}
	}

	logger.InfoContext(ctx, "command rejected", "reason", err.Error())
	return Reply{Content: msg}
}

func (d *Dispatcher) setSlots(ctx context.Context, args []string) (Reply, error) {
	// Extra words after the number are ignored.
	if len(args) == 0 {
		return Reply{}, malformed(d.usage("setslots"), nil)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return Reply{}, malformed(d.usage("setslots"), err)
	}

	caller, _ := users.FromContext(ctx)
	if err := d.registrar.SetSlots(ctx, caller, n); err != nil {
		return Reply{}, err
	}
	return Reply{Content: fmt.Sprintf("Tournament slots set to %d.", n)}, nil
}

func (d *Dispatcher) register(ctx context.Context, args []string) (Reply, error) {
	if len(args) == 0 {
		return Reply{}, malformed(d.usage("register"), nil)
	}

	caller, _ := users.FromContext(ctx)
	team, err := d.registrar.Register(ctx, caller, args[0], args[1:])
	if err != nil {
		return Reply{}, err
	}

	if len(team.Players) == 0 {
		return Reply{Content: fmt.Sprintf("Team '%s' registered with no players listed.", team.Name)}, nil
	}
	return Reply{Content: fmt.Sprintf("Team '%s' registered with players: %s", team.Name, strings.Join(team.Players, ", "))}, nil
}

func (d *Dispatcher) confirm(ctx context.Context, args []string) (Reply, error) {
	caller, _ := users.FromContext(ctx)
	team, err := d.registrar.Confirm(ctx, caller)
	if err != nil {
		return Reply{}, err
	}
	return Reply{Content: fmt.Sprintf("Team '%s' confirmed.", team.Name)}, nil
}

func (d *Dispatcher) slots(ctx context.Context, args []string) (Reply, error) {
	status := d.registrar.SlotsStatus(ctx)
	return Reply{Content: fmt.Sprintf("%d/%d slots filled.", status.Filled, status.Total)}, nil
}

func (d *Dispatcher) teams(ctx context.Context, args []string) (Reply, error) {
	caller, _ := users.FromContext(ctx)
	teams, err := d.registrar.ListTeams(ctx, caller)
	if err != nil {
		return Reply{}, err
	}
	if len(teams) == 0 {
		return Reply{Content: "No teams registered yet."}, nil
	}

	var b strings.Builder
	b.WriteString("Registered Teams:\n")
	for _, team := range teams {
		fmt.Fprintf(&b, "- %s: %s\n", team.Name, strings.Join(team.Players, ", "))
	}
	return Reply{Content: b.String()}, nil
}

func (d *Dispatcher) reset(ctx context.Context, args []string) (Reply, error) {
	caller, _ := users.FromContext(ctx)
	if err := d.registrar.Reset(ctx, caller); err != nil {
		return Reply{}, err
	}
	return Reply{Content: "Tournament data has been reset."}, nil
}

func (d *Dispatcher) help(ctx context.Context, args []string) (Reply, error) {
	var adminLines, userLines []string
	for _, def := range d.definitions {
		line := fmt.Sprintf("`%s` - %s", d.usageOf(def), def.summary)
		if def.admin {
			adminLines = append(adminLines, line+" (Admin only)")
		} else {
			userLines = append(userLines, line)
		}
	}

	return Reply{Embed: &Embed{
		Title: "Tournament Bot Commands",
		Color: colorBlue,
		Fields: []EmbedField{
			{Name: "Admin Commands", Value: strings.Join(adminLines, "\n")},
			{Name: "User Commands", Value: strings.Join(userLines, "\n")},
		},
	}}, nil
}
