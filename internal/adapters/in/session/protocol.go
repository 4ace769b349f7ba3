package session

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"cafe/internal/core/application/usecases/queries"
	"cafe/internal/core/domain/model/order"
)

// Server messages.
const (
	MsgNamePrompt      = "Welcome! Please enter your name -->"
	MsgUnknownCommand  = "User Command Unknown. Try again Please!"
	MsgInvalidOrder    = "Error! Invalid order format. Please retry."
	MsgInvalidItemType = "Error! Invalid item type. Only 'tea' or 'coffee' are allowed."
	MsgReadyToCollect  = "Your order is ready to collect!"
	MsgStillBrewing    = "We are still brewing up love for you ;) - Please check the status again in a bit."
	MsgExit            = "Exiting the cafe"
	MsgServiceError    = "Error! Something went wrong. Please retry."
	MsgTooManyAttempts = "Error! Too many attempts. Goodbye."

	// NotifyPrefix marks lines the server pushes without a request.
	NotifyPrefix = "[notify] "
)

// CommandKind is the verb of a client line.
type CommandKind int

const (
	CommandUnknown CommandKind = iota
	CommandOrder
	CommandStatus
	CommandCollect
	CommandExit
)

// Command is a parsed client line.
type Command struct {
	Kind  CommandKind
	Lines []order.Line
}

// ParseCommand interprets one client line. Matching is case-insensitive and
// ignores surrounding whitespace. Any line starting with "order" other than
// "order status" is an order request; a malformed one returns an error
// wrapping order.ErrInvalidOrder.
func ParseCommand(line string) (Command, error) {
	normalized := strings.ToLower(strings.TrimSpace(line))

	switch {
	case normalized == "order status":
		return Command{Kind: CommandStatus}, nil
	case normalized == "collect":
		return Command{Kind: CommandCollect}, nil
	case normalized == "exit":
		return Command{Kind: CommandExit}, nil
	case strings.HasPrefix(normalized, "order"):
		lines, err := ParseOrder(strings.TrimPrefix(normalized, "order"))
		if err != nil {
			return Command{Kind: CommandOrder}, err
		}
		return Command{Kind: CommandOrder, Lines: lines}, nil
	default:
		return Command{Kind: CommandUnknown}, nil
	}
}

// ParseOrder parses "<qty> <kind> [and <qty> <kind>]*".
func ParseOrder(details string) ([]order.Line, error) {
	tokens := strings.Fields(details)
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: empty order", order.ErrInvalidOrder)
	}

	var lines []order.Line
	for _, part := range splitOnAnd(tokens) {
		if len(part) != 2 {
			return nil, fmt.Errorf("%w: %q is not <quantity> <kind>", order.ErrInvalidOrder, strings.Join(part, " "))
		}

		quantity, err := strconv.Atoi(part[0])
		if err != nil {
			return nil, fmt.Errorf("%w: quantity %q is not a number", order.ErrInvalidOrder, part[0])
		}

		kind, err := order.ParseKind(part[1])
		if err != nil {
			return nil, fmt.Errorf("%w: %w", order.ErrInvalidOrder, err)
		}

		line, err := order.NewLine(quantity, kind)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func splitOnAnd(tokens []string) [][]string {
	var parts [][]string
	start := 0
	for i, token := range tokens {
		if token == "and" {
			parts = append(parts, tokens[start:i])
			start = i + 1
		}
	}
	return append(parts, tokens[start:])
}

// OrderErrorMessage picks the client message for a rejected order.
func OrderErrorMessage(err error) string {
	if errors.Is(err, order.ErrUnknownKind) {
		return MsgInvalidItemType
	}
	return MsgInvalidOrder
}

func welcomeMessage(identity string) string {
	return fmt.Sprintf("Welcome %s! What would you like to order today?", identity)
}

func duplicateNameMessage(identity string) string {
	return fmt.Sprintf("Error! The name %s is already taken. Please choose another -->", identity)
}

func orderReceivedMessage(identity, details string) string {
	return fmt.Sprintf("Order received for %s (%s)", identity, details)
}

func noOrderMessage(identity string) string {
	return "No order found for " + identity
}

func collectedMessage(identity string) string {
	return fmt.Sprintf("Order collected! Thank you %s - Hope to see you again soon!", identity)
}

func readyNotification(identity string) string {
	return NotifyPrefix + identity + " - Your order is ready to be collected. Thank you!"
}

func statusMessage(status queries.GetOrderStatusQueryResponse) []string {
	lines := []string{
		fmt.Sprintf("Order status for %s:", status.Owner),
		fmt.Sprintf("--> %d items in the waiting area", status.Waiting),
		fmt.Sprintf("--> %d items being prepared", status.Preparing),
		fmt.Sprintf("--> %d items in the tray", status.Ready),
	}
	if status.IsReady() {
		lines = append(lines, MsgReadyToCollect)
	}
	return lines
}
